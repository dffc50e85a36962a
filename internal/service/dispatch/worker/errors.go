package worker

import (
	"strings"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
)

var (
	ErrAddToUninitialized = apperrors.New(apperrors.InvalidState, "Can't add job to uninitialized worker")
	ErrAddToDestroyed     = apperrors.New(apperrors.InvalidState, "Can't add job to destroyed worker")

	// ErrNotInitialized 초기화되지 않은 Worker에 작업 제거/실행을 요청했을 때 반환됩니다.
	ErrNotInitialized = apperrors.New(apperrors.InvalidState, "Worker not initialized")

	// ErrDestroyed 파괴된 Worker에 요청했을 때 반환됩니다.
	ErrDestroyed = apperrors.New(apperrors.InvalidState, "Worker destroyed")

	ErrDestroyNotReady = apperrors.New(apperrors.InvalidState, "Cannot destroy worker: not yet ready")

	ErrIDRequired = apperrors.New(apperrors.InvalidInput, "id required")

	// ErrJobRequired 작업 정의가 비어 있을 때 반환됩니다.
	ErrJobRequired = job.ErrJobRequired
)

func newErrDuplicateID(id string) error {
	return apperrors.Newf(apperrors.Conflict, "ID %s already in job queue", id)
}

func newErrJobNotFound(id string) error {
	return apperrors.Newf(apperrors.NotFound, "ID %s not in job queue", id)
}

func newErrRemoveRunning(id string) error {
	return apperrors.Newf(apperrors.Conflict, "Can't remove running job %s", id)
}

func newErrDestroyRunning(ids []string) error {
	return apperrors.Newf(apperrors.Conflict, "Can't destroy worker: running jobs in queue: %s", strings.Join(ids, ","))
}

func newErrUnknownCommand(name string) error {
	return apperrors.Newf(apperrors.InvalidInput, "Command %s DNE", name)
}

func newErrInvalidArgs(cmd Command, format string, args ...any) error {
	return apperrors.Wrapf(apperrors.Newf(apperrors.InvalidInput, format, args...), apperrors.InvalidInput, "%s 명령의 인자가 올바르지 않습니다", cmd)
}

func newErrCopyResult(id string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.Internal, "Result of job %s could not be copied", id)
}
