package response

import (
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch"
)

type JobIDsResponse struct {
	JobIDs []string `json:"job_ids" example:"job-1,job-2"`
}

type EntriesResponse struct {
	Jobs []dispatch.Entry `json:"jobs"`
}

type WorkerResponse struct {
	WorkerID string `json:"worker_id" example:"worker-1"`
}

type WorkersResponse struct {
	WorkerIDs []string `json:"worker_ids" example:"worker-1,worker-2"`
}

// RunJobsResponse 입력 순서대로 정렬된 작업별 실행 결과입니다.
// 각 항목은 {index, result} 또는 {index, error} 형태입니다.
type RunJobsResponse struct {
	Results []dispatch.RunResult `json:"results"`
}
