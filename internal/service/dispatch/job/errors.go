package job

import (
	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
)

var (
	// ErrAlreadyRunning 실행 중인 작업을 다시 실행하려고 할 때 반환됩니다.
	ErrAlreadyRunning = apperrors.New(apperrors.Conflict, "Job already running")

	// ErrNotRunning 실행 중이 아닌 작업을 중단하려고 할 때 반환됩니다.
	ErrNotRunning = apperrors.New(apperrors.InvalidState, "Job cannot be killed because it is not running")

	// ErrAlreadyDone 이미 완료된 작업을 중단하려고 할 때 반환됩니다.
	ErrAlreadyDone = apperrors.New(apperrors.InvalidState, "Cannot kill complete job")

	// ErrJobRequired 작업 정의 또는 인스턴스가 비어 있을 때 반환됩니다.
	ErrJobRequired = apperrors.New(apperrors.InvalidInput, "job required")

	// ErrArgsNotArray 작업 정의의 args가 배열이 아닐 때 반환됩니다.
	ErrArgsNotArray = apperrors.New(apperrors.InvalidInput, "Args must be array")

	// ErrKilledWithoutRequest Kill 요청 없이 작업이 외부 요인(상위 context 종료 등)으로 취소되었을 때 스냅샷에 기록됩니다.
	ErrKilledWithoutRequest = apperrors.New(apperrors.Canceled, "작업 실행이 외부 요인으로 취소되었습니다")
)

func newErrUnknownType(name string) error {
	return apperrors.Newf(apperrors.InvalidInput, "Unknown job type: %s", name)
}

func newErrFactoryNotRegistered(t Type) error {
	return apperrors.Newf(apperrors.InvalidInput, "작업 타입('%s')에 등록된 생성기가 없습니다", t)
}

func newErrFactoryAlreadyRegistered(t Type) error {
	return apperrors.Newf(apperrors.Conflict, "작업 타입('%s')의 생성기가 이미 등록되어 있습니다", t)
}

func newErrConstructFailed(t Type, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "작업('%s') 생성에 실패했습니다", t)
}

func newErrNilTask(t Type) error {
	return apperrors.Newf(apperrors.Internal, "작업('%s')이 실행할 Task를 생성하지 않았습니다", t)
}

func newErrRunnerPanic(t Type, r any) error {
	return apperrors.Newf(apperrors.Internal, "작업('%s')의 Task 생성 중 패닉이 발생했습니다: %v", t, r)
}
