// Package task 협력적 취소를 지원하는 비동기 작업 단위(CancelableTask)를 제공합니다.
//
// Task는 Pending 상태로 시작하여 Resolved, Rejected, Cancelled 중 정확히 하나의 상태로 한 번만 정착(settle)합니다.
// 취소는 선점형이 아니라 요청일 뿐입니다. 작업 본문은 전달받은 context의 Done 채널이나
// OnCancel로 등록한 콜백을 통해 취소 요청에 스스로 반응해야 합니다.
package task

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
)

// State Task의 정착 상태입니다.
type State int

const (
	Pending State = iota
	Resolved
	Rejected
	Cancelled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Func 값을 반환하거나 실패하는 작업 본문입니다. ctx는 Task가 취소되면 함께 취소됩니다.
type Func func(ctx context.Context) (any, error)

// Executor resolve/reject로 결과를 직접 정착시키고, onCancel로 취소 시 정리할 콜백을 등록하는 작업 본문입니다.
// Executor는 블로킹되지 않아야 합니다. 타이머나 고루틴을 시작한 뒤 즉시 반환하고, 결과는 이후에 resolve/reject로 전달합니다.
type Executor func(ctx context.Context, resolve func(any), reject func(error), onCancel func(func()))

// Task 취소 가능한 하나의 비동기 작업입니다.
type Task struct {
	mu       sync.Mutex
	state    State
	value    any
	err      error
	onCancel []func()

	cancelCtx context.CancelFunc
	stopAfter func() bool

	done chan struct{}
}

func newTask(parent context.Context) (*Task, context.Context) {
	ctx, cancel := context.WithCancel(parent)

	t := &Task{
		state:     Pending,
		cancelCtx: cancel,
		done:      make(chan struct{}),
	}

	// 상위 context가 먼저 끝나면 Task도 취소 상태로 정착한다.
	t.mu.Lock()
	t.stopAfter = context.AfterFunc(parent, func() { t.Cancel() })
	t.mu.Unlock()

	return t, ctx
}

// Start fn을 별도의 고루틴에서 실행하는 Task를 생성합니다.
// fn이 에러를 반환하면 Rejected, 그렇지 않으면 Resolved로 정착합니다. fn에서 발생한 panic은 Internal 에러로 Rejected 처리됩니다.
func Start(ctx context.Context, fn Func) *Task {
	t, taskCtx := newTask(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				t.reject(newErrTaskPanic(r))
			}
		}()

		v, err := fn(taskCtx)
		if err != nil {
			t.reject(err)
			return
		}
		t.resolve(v)
	}()

	return t
}

// New exec를 즉시(호출한 고루틴에서) 실행하는 Task를 생성합니다.
func New(ctx context.Context, exec Executor) *Task {
	t, taskCtx := newTask(ctx)

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.reject(newErrTaskPanic(r))
			}
		}()

		exec(taskCtx, t.resolve, t.reject, t.OnCancel)
	}()

	return t
}

func (t *Task) resolve(v any) {
	t.settle(Resolved, v, nil)
}

func (t *Task) reject(err error) {
	if err == nil {
		err = apperrors.New(apperrors.Internal, "작업이 원인 없이 실패 처리되었습니다")
	}
	t.settle(Rejected, nil, err)
}

// settle 최초 한 번만 상태를 확정합니다. 이미 정착한 Task에 대한 호출은 무시됩니다.
func (t *Task) settle(state State, v any, err error) bool {
	t.mu.Lock()
	if t.state != Pending {
		t.mu.Unlock()
		return false
	}
	t.state = state
	t.value = v
	t.err = err
	t.onCancel = nil
	stop := t.stopAfter
	close(t.done)
	t.mu.Unlock()

	stop()
	t.cancelCtx()

	return true
}

// Cancel Task를 취소 상태로 정착시키고 등록된 취소 콜백을 실행합니다.
// 이미 정착한 Task라면 아무 일도 하지 않고 false를 반환합니다.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	if t.state != Pending {
		t.mu.Unlock()
		return false
	}
	t.state = Cancelled
	t.err = ErrCanceled
	callbacks := t.onCancel
	t.onCancel = nil
	stop := t.stopAfter
	close(t.done)
	t.mu.Unlock()

	stop()
	t.cancelCtx()

	for _, fn := range callbacks {
		fn()
	}

	return true
}

// OnCancel Task가 취소될 때 실행할 콜백을 등록합니다.
// 이미 취소된 Task라면 즉시 실행하고, 다른 상태로 정착한 Task라면 무시합니다.
func (t *Task) OnCancel(fn func()) {
	if fn == nil {
		return
	}

	t.mu.Lock()
	switch t.state {
	case Pending:
		t.onCancel = append(t.onCancel, fn)
		t.mu.Unlock()
	case Cancelled:
		t.mu.Unlock()
		fn()
	default:
		t.mu.Unlock()
	}
}

// Done Task가 정착하면 닫히는 채널을 반환합니다.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// State 현재 상태를 반환합니다.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

// Result 정착한 결과를 반환합니다. Pending 상태라면 (nil, nil)을, 취소된 Task라면 ErrCanceled를 반환합니다.
func (t *Task) Result() (any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.value, t.err
}

// Wait Task가 정착할 때까지 기다린 뒤 결과를 반환합니다.
// ctx가 먼저 끝나면 ctx의 에러를 반환하며, 이 경우 Task 자체는 취소되지 않습니다.
func (t *Task) Wait(ctx context.Context) (any, error) {
	select {
	case <-t.done:
		return t.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
