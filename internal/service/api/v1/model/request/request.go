// Package request v1 API의 요청 본문 모델을 정의합니다.
package request

import (
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
)

// JobsRequest 작업 정의 목록을 전달하는 요청입니다.
//
//	{"jobs": [{"type": "echo", "args": ["I love bananas.", 1000]}]}
type JobsRequest struct {
	Jobs []job.Definition `json:"jobs" validate:"required,min=1"`
}

// Sources 작업 정의를 Dispatcher가 받는 형태로 변환합니다.
func (r *JobsRequest) Sources() []job.Source {
	sources := make([]job.Source, len(r.Jobs))
	for i, def := range r.Jobs {
		sources[i] = def
	}
	return sources
}

// JobIDsRequest 작업 ID 목록을 전달하는 요청입니다.
type JobIDsRequest struct {
	JobIDs []string `json:"job_ids" validate:"required,min=1,dive,required"`
}
