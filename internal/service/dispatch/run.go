package dispatch

import (
	"context"

	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
)

// RunJobs 작업들을 등록하고 전용 Worker를 만들어 모두 실행한 뒤 Worker와 작업을 정리합니다.
//
// 결과는 입력 순서(Index)대로 반환되며, 작업 자체의 실패와 중단은 해당 항목의 Error로 기록됩니다.
// 등록, 할당 단계에서 실패하면 지금까지 만든 Worker와 작업을 정리하고 에러를 반환합니다.
func (d *Dispatcher) RunJobs(ctx context.Context, sources []job.Source) ([]RunResult, error) {
	if len(sources) == 0 {
		return nil, ErrNoJobs
	}

	ids, err := d.AddJobs(ctx, sources...)
	if err != nil {
		return nil, err
	}

	workerID, err := d.CreateWorker(ctx)
	if err != nil {
		d.cleanupRun(ctx, "", ids)
		return nil, err
	}

	if err := d.AddJobsToWorker(ctx, workerID, ids); err != nil {
		d.cleanupRun(ctx, workerID, ids)
		return nil, err
	}

	agg, err := d.RunAllWorkerJobs(ctx, workerID)
	if err != nil {
		d.cleanupRun(ctx, workerID, ids)
		return nil, err
	}

	d.cleanupRun(ctx, workerID, ids)

	positions := make(map[string]int, len(ids))
	for i, id := range ids {
		positions[id] = i
	}

	results := make([]RunResult, len(ids))
	for i := range results {
		results[i].Index = i
	}
	for _, item := range agg.Done {
		results[positions[item.JobID]].Result = item.Result
	}
	for _, item := range agg.Error {
		results[positions[item.JobID]].Error = item.Error
	}
	for _, id := range agg.Killed {
		results[positions[id]].Error = ErrJobKilled
	}

	return results, nil
}

// cleanupRun RunJobs가 만든 Worker를 파괴하고 등록한 작업을 큐에서 제거한다. 정리 실패는 로그로만 남긴다.
func (d *Dispatcher) cleanupRun(ctx context.Context, workerID string, ids []string) {
	ctx = context.WithoutCancel(ctx)

	if workerID != "" {
		if _, err := d.DestroyWorkerForce(ctx, workerID); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"worker_id": workerID,
				"error":     err,
			}).Warn("실행이 끝난 Worker를 정리하지 못했습니다")
		}
	}

	if err := d.RemoveJobs(ctx, ids); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"job_ids": ids,
			"error":   err,
		}).Warn("실행이 끝난 작업을 큐에서 제거하지 못했습니다")
	}
}
