package scheduler

import (
	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
)

// ErrRunnerNotInitialized 작업을 실행할 Runner 없이 서비스를 시작하려 할 때 반환됩니다.
var ErrRunnerNotInitialized = apperrors.New(apperrors.Internal, "Runner 객체가 초기화되지 않았습니다")

func newErrInvalidCronSpec(scheduleID, timeSpec string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "스케줄 등록 실패: 잘못된 Cron 표현식입니다 (ScheduleID=%s, TimeSpec='%s')", scheduleID, timeSpec)
}
