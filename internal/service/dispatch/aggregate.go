package dispatch

import (
	"encoding/json"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
)

// Aggregate Worker의 작업을 모두 실행한 결과입니다. 각 목록은 큐 순서를 따릅니다.
type Aggregate struct {
	Done   []DoneItem  `json:"done"`
	Error  []ErrorItem `json:"error"`
	Killed []string    `json:"killed"`
}

func newAggregate() *Aggregate {
	return &Aggregate{
		Done:   []DoneItem{},
		Error:  []ErrorItem{},
		Killed: []string{},
	}
}

// Len 집계된 작업의 수를 반환합니다.
func (a *Aggregate) Len() int {
	return len(a.Done) + len(a.Error) + len(a.Killed)
}

type DoneItem struct {
	JobID  string `json:"job_id"`
	Result any    `json:"result"`
}

type ErrorItem struct {
	JobID string
	Error error
}

func (i ErrorItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		JobID string             `json:"job_id"`
		Error *apperrors.Payload `json:"error"`
	}{
		JobID: i.JobID,
		Error: apperrors.ToPayload(i.Error),
	})
}

// RunResult RunJobs에 전달된 작업 하나의 결과입니다. Index는 입력 순서입니다.
type RunResult struct {
	Index  int
	Result any
	Error  error
}

func (r RunResult) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(struct {
			Index int                `json:"index"`
			Error *apperrors.Payload `json:"error"`
		}{r.Index, apperrors.ToPayload(r.Error)})
	}

	return json.Marshal(struct {
		Index  int `json:"index"`
		Result any `json:"result"`
	}{r.Index, r.Result})
}
