package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/task"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// gate 테스트에서 작업 완료 시점을 제어하기 위한 Runner
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

func valueRunner(v any) job.Runner {
	return job.RunnerFunc(func(ctx context.Context) *task.Task {
		return task.Start(ctx, func(context.Context) (any, error) { return v, nil })
	})
}

func failRunner(err error) job.Runner {
	return job.RunnerFunc(func(ctx context.Context) *task.Task {
		return task.Start(ctx, func(context.Context) (any, error) { return nil, err })
	})
}

// newTestRegistry echo 타입은 첫 번째 인자를 그대로 돌려주고, filter 타입은 항상 실패한다.
func newTestRegistry() *job.Registry {
	r := job.NewRegistry()
	r.MustRegister(job.Echo, func(args []any) (job.Runner, error) {
		if len(args) == 0 {
			return nil, errors.New("message is required")
		}
		return valueRunner(args[0]), nil
	})
	r.MustRegister(job.Filter, func([]any) (job.Runner, error) {
		return failRunner(errors.New("filter failed")), nil
	})
	return r
}

// recorder 발행된 이벤트를 순서대로 기록한다.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]EventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func newReadyWorker(t *testing.T) (*Worker, *recorder) {
	t.Helper()

	rec := &recorder{}
	w := New(WithID("worker-test"), WithRegistry(newTestRegistry()), WithObserver(rec))
	if err := w.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	rec.reset()

	return w, rec
}
