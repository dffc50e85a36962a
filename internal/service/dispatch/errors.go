package dispatch

import (
	"strings"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
)

var (
	// ErrJobKilled RunJobs 결과에서 중단된 작업을 나타냅니다.
	ErrJobKilled = apperrors.New(apperrors.Canceled, "작업이 중단되었습니다")

	// ErrNoJobs 실행할 작업이 하나도 없을 때 반환됩니다.
	ErrNoJobs = apperrors.New(apperrors.InvalidInput, "jobs required")
)

func newErrUnknownWorker(id string) error {
	return apperrors.Newf(apperrors.NotFound, "ID %s not a valid worker ID", id)
}

func newErrWorkerDNE(id string) error {
	return apperrors.Newf(apperrors.NotFound, "Worker %s DNE", id)
}

func newErrUnknownJob(id string) error {
	return apperrors.Newf(apperrors.NotFound, "ID %s not a valid job ID", id)
}

func newErrJobAssigned(id, workerID string) error {
	return apperrors.Newf(apperrors.Conflict, "Job %s already assigned to worker %s", id, workerID)
}

func newErrJobNotAssigned(id string) error {
	return apperrors.Newf(apperrors.InvalidState, "Job %s is not assigned to a worker", id)
}

func newErrDuplicateJobID(id string) error {
	return apperrors.Newf(apperrors.InvalidInput, "Job ID %s given more than once", id)
}

func newErrNotRegisteredWithWorker(workerID string, ids []string) error {
	return apperrors.Newf(apperrors.InvalidInput, "Some job IDs are not registered with worker %s: %s", workerID, strings.Join(ids, ","))
}

func newErrWorkerNotReady(id string) error {
	return apperrors.Newf(apperrors.Internal, "Worker %s did not become ready", id)
}

func newErrWorkerBusy(id string, running []string) error {
	return apperrors.Newf(apperrors.Conflict, "Can't destroy worker %s: running jobs in queue: %s", id, strings.Join(running, ","))
}

func newErrBatchInProgress(id string) error {
	return apperrors.Newf(apperrors.Conflict, "Can't destroy worker %s: another operation on the worker is in progress", id)
}
