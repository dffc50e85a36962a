// Package job 취소 가능한 작업(Job)과 작업 타입별 생성기 Registry를 제공합니다.
//
// Job은 작업 타입별 Runner를 감싸 실행 횟수와 마지막 실행 결과를 추적합니다.
// 실제 작업 내용은 echo, filter, status, scrape 하위 패키지의 Runner가 구현하며,
// 각 패키지는 init 시점에 Default Registry에 자신의 Factory를 등록합니다.
package job

import (
	"context"
	"sync"

	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/task"
)

// Runner 작업 타입별 실행 본문입니다.
//
// NewTask는 실행할 때마다 새로운 Task를 반환해야 하며, 반환된 Task는 ctx가 취소되거나
// Task.Cancel이 호출되면 가능한 한 빨리 실행을 멈춰야 합니다.
type Runner interface {
	NewTask(ctx context.Context) *task.Task
}

// RunnerFunc 함수를 Runner로 사용하기 위한 어댑터입니다.
type RunnerFunc func(ctx context.Context) *task.Task

func (f RunnerFunc) NewTask(ctx context.Context) *task.Task {
	return f(ctx)
}

// Job 하나의 Runner를 감싸 실행 상태를 관리합니다. 동시에 하나의 실행만 허용됩니다.
type Job struct {
	typ    Type
	runner Runner

	mu       sync.Mutex
	snapshot Snapshot
	current  *task.Task
	settled  chan struct{}
}

// New 주어진 Runner로 작업을 생성합니다.
func New(typ Type, runner Runner) *Job {
	return &Job{
		typ:    typ,
		runner: runner,
	}
}

func (j *Job) build(*Registry) (*Job, error) {
	if j == nil {
		return nil, ErrJobRequired
	}
	return j, nil
}

// Type 작업 타입을 반환합니다.
func (j *Job) Type() Type {
	return j.typ
}

// Start 작업을 실행 상태로 전환하고 Runner의 Task를 시작합니다.
//
// 반환된 채널로 실행이 끝난 시점의 스냅샷이 정확히 한 번 전달됩니다.
// 이미 실행 중이라면 상태를 변경하지 않고 ErrAlreadyRunning을 반환합니다.
func (j *Job) Start(ctx context.Context) (<-chan Snapshot, error) {
	j.mu.Lock()
	if j.snapshot.IsRunning {
		j.mu.Unlock()
		return nil, ErrAlreadyRunning
	}

	j.snapshot = Snapshot{
		IsRunning: true,
		RunCount:  j.snapshot.RunCount + 1,
	}

	t := j.newTask(ctx)

	settled := make(chan struct{})
	j.current = t
	j.settled = settled
	j.mu.Unlock()

	out := make(chan Snapshot, 1)
	go func() {
		<-t.Done()

		snap := j.finish(t)
		close(settled)

		out <- snap
		close(out)
	}()

	return out, nil
}

// newTask Runner가 Task를 만들지 못하거나 패닉을 일으키면 그 내용으로 실패하는 Task를 대신 반환한다.
// 호출자가 j.mu를 보유하고 있으므로 패닉이 호출자에게 전파되면 안 된다.
func (j *Job) newTask(ctx context.Context) (t *task.Task) {
	fail := func(err error) *task.Task {
		return task.Start(ctx, func(context.Context) (any, error) { return nil, err })
	}

	defer func() {
		if r := recover(); r != nil {
			t = fail(newErrRunnerPanic(j.typ, r))
		}
	}()

	if t = j.runner.NewTask(ctx); t == nil {
		t = fail(newErrNilTask(j.typ))
	}
	return t
}

// Run 작업을 실행하고 끝날 때까지 기다린 뒤 스냅샷을 반환합니다.
//
// 작업 자체의 실패는 에러로 반환되지 않고 스냅샷의 Error/IsError에 기록됩니다.
func (j *Job) Run(ctx context.Context) (Snapshot, error) {
	ch, err := j.Start(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return <-ch, nil
}

func (j *Job) finish(t *task.Task) Snapshot {
	v, err := t.Result()

	j.mu.Lock()
	defer j.mu.Unlock()

	switch t.State() {
	case task.Resolved:
		j.snapshot.IsDone = true
		j.snapshot.Result = v

	case task.Rejected:
		j.snapshot.IsError = true
		j.snapshot.Error = err

	case task.Cancelled:
		if !j.snapshot.IsKilled {
			j.snapshot.IsError = true
			j.snapshot.Error = ErrKilledWithoutRequest
		}
	}

	j.snapshot.IsRunning = false
	j.current = nil

	return j.snapshot
}

// Kill 실행 중인 작업의 취소를 요청합니다.
//
// 취소는 비동기로 진행되므로 IsRunning은 Task가 실제로 정착한 뒤에 false가 됩니다.
func (j *Job) Kill() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.snapshot.IsRunning {
		return ErrNotRunning
	}
	if j.snapshot.IsDone {
		return ErrAlreadyDone
	}

	// Task가 이미 정착했다면 스냅샷 반영만 남은 상태이므로 완료된 작업으로 취급한다.
	if !j.current.Cancel() {
		return ErrAlreadyDone
	}
	j.snapshot.IsKilled = true

	return nil
}

// State 현재 스냅샷을 반환합니다.
func (j *Job) State() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.snapshot
}

// IsRunning 실행 중인지 여부를 반환합니다.
func (j *Job) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.snapshot.IsRunning
}

// Wait 진행 중인 실행이 있다면 끝날 때까지 기다린 뒤 스냅샷을 반환합니다.
func (j *Job) Wait(ctx context.Context) (Snapshot, error) {
	j.mu.Lock()
	running := j.snapshot.IsRunning
	settled := j.settled
	j.mu.Unlock()

	if !running {
		return j.State(), nil
	}

	select {
	case <-settled:
		return j.State(), nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}
