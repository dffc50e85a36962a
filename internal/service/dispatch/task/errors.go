package task

import (
	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
)

// ErrCanceled 취소된 Task의 결과 에러입니다.
var ErrCanceled = apperrors.New(apperrors.Canceled, "작업이 취소되었습니다")

func newErrTaskPanic(r any) error {
	return apperrors.Newf(apperrors.Internal, "작업 실행 중 panic이 발생했습니다: %v", r)
}
