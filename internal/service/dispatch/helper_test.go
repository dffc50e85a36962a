package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/task"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/worker"
	"github.com/stretchr/testify/require"
)

// gate release가 닫히기 전까지 끝나지 않는 Runner
type gate struct {
	release chan struct{}
	value   any
}

func newGate(value any) *gate {
	return &gate{release: make(chan struct{}), value: value}
}

func (g *gate) NewTask(ctx context.Context) *task.Task {
	return task.Start(ctx, func(ctx context.Context) (any, error) {
		select {
		case <-g.release:
			return g.value, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
}

func (g *gate) open() {
	close(g.release)
}

func valueJob(v any) *job.Job {
	return job.New(job.Echo, job.RunnerFunc(func(ctx context.Context) *task.Task {
		return task.Start(ctx, func(context.Context) (any, error) { return v, nil })
	}))
}

func failJob(err error) *job.Job {
	return job.New(job.Echo, job.RunnerFunc(func(ctx context.Context) *task.Task {
		return task.Start(ctx, func(context.Context) (any, error) { return nil, err })
	}))
}

var errBoom = errors.New("boom")

// recorder Worker가 발행한 이벤트를 기록한다.
type recorder struct {
	mu     sync.Mutex
	events []worker.Event
}

func (r *recorder) OnEvent(e worker.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []worker.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]worker.EventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// setupWorker 작업을 등록하고 새 Worker에 할당한다.
func setupWorker(t *testing.T, d *Dispatcher, sources ...job.Source) (string, []string) {
	t.Helper()

	ctx := context.Background()

	ids, err := d.AddJobs(ctx, sources...)
	require.NoError(t, err)

	workerID, err := d.CreateWorker(ctx)
	require.NoError(t, err)

	require.NoError(t, d.AddJobsToWorker(ctx, workerID, ids))

	return workerID, ids
}

func waitRunning(t *testing.T, w *worker.Worker, n int) {
	t.Helper()

	require.Eventually(t, func() bool {
		return len(w.RunningJobIDs()) == n
	}, 2*time.Second, 5*time.Millisecond)
}
