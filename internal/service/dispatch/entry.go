package dispatch

import (
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
)

// Entry Dispatcher 큐의 한 항목입니다. WorkerID가 비어 있다면 아직 어떤 Worker에도 할당되지 않은 작업입니다.
type Entry struct {
	ID       string     `json:"id"`
	WorkerID string     `json:"worker_id,omitempty"`
	Source   job.Source `json:"-"`
}

// entry 할당이 진행 중인 배치가 다른 배치와 같은 작업을 동시에 가져가지 못하도록 예약 정보를 함께 보관한다.
type entry struct {
	Entry
	reservedBy string
}

func (e *entry) owner() string {
	if e.WorkerID != "" {
		return e.WorkerID
	}
	return e.reservedBy
}
