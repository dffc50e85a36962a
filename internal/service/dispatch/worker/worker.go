// Package worker 작업 큐를 보유하고 실행하는 Worker를 제공합니다.
//
// Worker는 uninitialized → ready → destroyed 순서로만 상태가 전이되며 destroyed는 최종 상태입니다.
// 큐에 대한 모든 변경은 Worker마다 하나인 뮤텍스로 직렬화되고, 작업 실행을 기다리는 동안에는 잠금을 보유하지 않습니다.
package worker

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
	"github.com/mitchellh/copystructure"
	"golang.org/x/sync/errgroup"
)

// component 로깅용 컴포넌트 이름
const component = "dispatch.worker"

type state int

const (
	stateUninitialized state = iota
	stateReady
	stateDestroyed
)

// Worker 작업 ID별로 작업을 보관하고 실행합니다.
type Worker struct {
	id        string
	registry  *job.Registry
	observers []Observer

	// copyValue 완료된 작업 결과의 깊은 복사본을 만든다.
	copyValue func(any) (any, error)

	mu    sync.Mutex
	state state
	jobs  map[string]*job.Job
	order []string
}

// Option Worker 생성 옵션입니다.
type Option func(*Worker)

// WithID 이벤트와 로그에 기록될 Worker ID를 지정합니다.
func WithID(id string) Option {
	return func(w *Worker) { w.id = id }
}

// WithRegistry 작업 정의를 작업으로 변환할 때 사용할 Registry를 지정합니다. 기본값은 job.Default()입니다.
func WithRegistry(r *job.Registry) Option {
	return func(w *Worker) {
		if r != nil {
			w.registry = r
		}
	}
}

// WithObserver 이벤트를 전달받을 Observer를 추가합니다.
func WithObserver(o Observer) Option {
	return func(w *Worker) {
		if o != nil {
			w.observers = append(w.observers, o)
		}
	}
}

// New 초기화되지 않은 Worker를 생성합니다.
func New(opts ...Option) *Worker {
	w := &Worker{
		registry:  job.Default(),
		copyValue: copystructure.Copy,
		jobs:      make(map[string]*job.Job),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ID Worker ID를 반환합니다.
func (w *Worker) ID() string {
	return w.id
}

func (w *Worker) emit(e Event) {
	e.WorkerID = w.id
	for _, o := range w.observers {
		o.OnEvent(e)
	}
}

func (w *Worker) logger(fields applog.Fields) *applog.Entry {
	merged := applog.Fields{"worker_id": w.id}
	for k, v := range fields {
		merged[k] = v
	}
	return applog.WithComponentAndFields(component, merged)
}

// Initialize Worker를 ready 상태로 전환하고 ready 이벤트를 발행합니다.
// 이미 ready 상태라면 아무 일도 하지 않습니다.
func (w *Worker) Initialize(_ context.Context) error {
	w.mu.Lock()
	switch w.state {
	case stateDestroyed:
		w.mu.Unlock()
		w.emit(Event{Type: EventError, Err: ErrDestroyed})
		return ErrDestroyed

	case stateReady:
		w.mu.Unlock()
		w.logger(nil).Warn("이미 초기화된 Worker에 대한 초기화 요청을 무시합니다")
		return nil
	}
	w.state = stateReady
	w.mu.Unlock()

	w.logger(nil).Debug("Worker 준비 완료")
	w.emit(Event{Type: EventReady})

	return nil
}

// IsReady ready 상태인지 여부를 반환합니다.
func (w *Worker) IsReady() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.state == stateReady
}

// IsDestroyed destroyed 상태인지 여부를 반환합니다.
func (w *Worker) IsDestroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.state == stateDestroyed
}

// AddJob 작업을 큐에 추가합니다. src가 Definition이라면 Registry로 작업을 생성합니다.
func (w *Worker) AddJob(_ context.Context, id string, src job.Source) error {
	j, err := w.addJob(id, src)
	if err != nil {
		w.logger(applog.Fields{"job_id": id, "error": err}).Debug("작업 추가 실패")
		w.emit(Event{Type: EventJobAddError, JobID: id, Err: err})
		return err
	}

	w.logger(applog.Fields{"job_id": id, "job_type": j.Type().String()}).Debug("작업 추가 완료")
	w.emit(Event{Type: EventJobAdded, JobID: id})

	return nil
}

func (w *Worker) addJob(id string, src job.Source) (*job.Job, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.state == stateUninitialized:
		return nil, ErrAddToUninitialized
	case w.state == stateDestroyed:
		return nil, ErrAddToDestroyed
	case id == "":
		return nil, ErrIDRequired
	case src == nil:
		return nil, ErrJobRequired
	}
	if _, exists := w.jobs[id]; exists {
		return nil, newErrDuplicateID(id)
	}

	j, err := w.registry.Build(src)
	if err != nil {
		return nil, err
	}

	w.jobs[id] = j
	w.order = append(w.order, id)

	return j, nil
}

// RemoveJob 실행 중이 아닌 작업을 큐에서 제거합니다.
func (w *Worker) RemoveJob(_ context.Context, id string) error {
	if err := w.removeJob(id); err != nil {
		w.emit(Event{Type: EventJobRemoveError, JobID: id, Err: err})
		return err
	}

	w.logger(applog.Fields{"job_id": id}).Debug("작업 제거 완료")
	w.emit(Event{Type: EventJobRemoved, JobID: id})

	return nil
}

func (w *Worker) removeJob(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkReadyLocked(); err != nil {
		return err
	}

	j, ok := w.jobs[id]
	if !ok {
		return newErrJobNotFound(id)
	}
	if j.IsRunning() {
		return newErrRemoveRunning(id)
	}

	w.deleteLocked(id)

	return nil
}

func (w *Worker) deleteLocked(id string) {
	delete(w.jobs, id)
	if i := slices.Index(w.order, id); i >= 0 {
		w.order = slices.Delete(w.order, i, i+1)
	}
}

func (w *Worker) checkReadyLocked() error {
	switch w.state {
	case stateUninitialized:
		return ErrNotInitialized
	case stateDestroyed:
		return ErrDestroyed
	}
	return nil
}

// RunJob 작업을 실행하고 끝날 때까지 기다립니다.
//
// 실행이 끝나면 job:run:killed, job:run:done, job:run:error 중 정확히 하나의 이벤트를 발행합니다.
// job:run:done 이벤트와 반환되는 스냅샷의 Result는 작업이 보관한 값과 공유되지 않는 복사본입니다.
// 결과를 복사할 수 없다면 Internal 에러와 함께 job:run:error로 보고합니다.
func (w *Worker) RunJob(ctx context.Context, id string) (job.Snapshot, error) {
	ch, err := w.startJob(ctx, id)
	if err != nil {
		w.emit(Event{Type: EventJobRunError, JobID: id, Err: err})
		return job.Snapshot{}, err
	}

	snap := <-ch

	switch {
	case snap.IsKilled:
		w.logger(applog.Fields{"job_id": id}).Info("작업이 중단되었습니다")
		w.emit(Event{Type: EventJobRunKilled, JobID: id})

	case snap.IsError:
		w.logger(applog.Fields{"job_id": id, "error": snap.Error}).Warn("작업 실행 실패")
		w.emit(Event{Type: EventJobRunError, JobID: id, Err: snap.Error})

	default:
		result, err := w.copyResult(id, snap.Result)
		if err != nil {
			// 원본을 공유하지 않도록 결과 대신 복사 실패를 실행 에러로 전달한다.
			w.logger(applog.Fields{"job_id": id, "error": err}).Error("작업 결과를 복사하지 못했습니다")

			snap.IsDone = false
			snap.IsError = true
			snap.Result = nil
			snap.Error = err
			w.emit(Event{Type: EventJobRunError, JobID: id, Err: err})
			break
		}

		snap.Result = result
		w.logger(applog.Fields{"job_id": id, "run_count": snap.RunCount}).Debug("작업 실행 완료")
		w.emit(Event{Type: EventJobRunDone, JobID: id, Result: snap.Result})
	}

	return snap, nil
}

// startJob Worker 잠금 안에서 작업을 실행 상태로 전환하여 Destroy가 실행 중인 작업을 놓치지 않게 한다.
func (w *Worker) startJob(ctx context.Context, id string) (<-chan job.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkReadyLocked(); err != nil {
		return nil, err
	}

	j, ok := w.jobs[id]
	if !ok {
		return nil, newErrJobNotFound(id)
	}

	return j.Start(ctx)
}

func (w *Worker) copyResult(id string, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	cp, err := w.copyValue(v)
	if err != nil {
		return nil, newErrCopyResult(id, err)
	}

	return cp, nil
}

// RunAllJobs 큐에 있는 모든 작업을 동시에 실행합니다.
//
// 일부 작업이 실패해도 다른 작업의 실행은 중단되지 않습니다. 실행을 시작하지 못한 작업의 에러는
// 합쳐서 반환하며, 반환된 맵에는 실행이 끝난 작업의 스냅샷만 포함됩니다.
func (w *Worker) RunAllJobs(ctx context.Context) (map[string]job.Snapshot, error) {
	w.mu.Lock()
	if err := w.checkReadyLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	ids := slices.Clone(w.order)
	w.mu.Unlock()

	var (
		mu      sync.Mutex
		results = make(map[string]job.Snapshot, len(ids))
		errs    []error
	)

	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			snap, err := w.RunJob(ctx, id)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				errs = append(errs, err)
				return nil
			}
			results[id] = snap

			return nil
		})
	}
	_ = g.Wait()

	return results, errors.Join(errs...)
}

// KillJob 실행 중인 작업의 취소를 요청합니다.
func (w *Worker) KillJob(_ context.Context, id string) error {
	w.mu.Lock()
	if err := w.checkReadyLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	j, ok := w.jobs[id]
	w.mu.Unlock()

	if !ok {
		return newErrJobNotFound(id)
	}

	return j.Kill()
}

// Destroy 실행 중인 작업이 없다면 모든 작업을 제거하고 Worker를 destroyed 상태로 전환합니다.
func (w *Worker) Destroy(_ context.Context) error {
	w.mu.Lock()
	if w.state != stateReady {
		w.mu.Unlock()
		w.emit(Event{Type: EventDestroyError, Err: ErrDestroyNotReady})
		return ErrDestroyNotReady
	}

	if running := w.runningLocked(); len(running) > 0 {
		w.mu.Unlock()
		return newErrDestroyRunning(running)
	}

	removed := slices.Clone(w.order)
	for _, id := range removed {
		w.deleteLocked(id)
	}
	w.state = stateDestroyed
	w.mu.Unlock()

	for _, id := range removed {
		w.emit(Event{Type: EventJobRemoved, JobID: id})
	}

	w.logger(applog.Fields{"removed_jobs": len(removed)}).Debug("Worker 파괴 완료")
	w.emit(Event{Type: EventDestroyed})

	return nil
}

// DestroyForce 실행 중인 작업을 모두 중단하고 정착할 때까지 기다린 뒤 Destroy합니다.
func (w *Worker) DestroyForce(ctx context.Context) error {
	w.mu.Lock()
	var running []*job.Job
	if w.state == stateReady {
		for _, id := range w.runningLocked() {
			running = append(running, w.jobs[id])
		}
	}
	w.mu.Unlock()

	for _, j := range running {
		if err := j.Kill(); err != nil && !errors.Is(err, job.ErrNotRunning) && !errors.Is(err, job.ErrAlreadyDone) {
			return err
		}
	}
	for _, j := range running {
		if _, err := j.Wait(ctx); err != nil {
			return err
		}
	}

	if len(running) > 0 {
		w.logger(applog.Fields{"killed_jobs": len(running)}).Info("실행 중인 작업을 중단하고 Worker를 파괴합니다")
	}

	return w.Destroy(ctx)
}

func (w *Worker) runningLocked() []string {
	var running []string
	for _, id := range w.order {
		if w.jobs[id].IsRunning() {
			running = append(running, id)
		}
	}
	return running
}

// JobIDs 큐에 추가된 순서대로 작업 ID를 반환합니다.
func (w *Worker) JobIDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return slices.Clone(w.order)
}

// RunningJobIDs 실행 중인 작업의 ID를 반환합니다.
func (w *Worker) RunningJobIDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.runningLocked()
}

// WaitJob 작업의 진행 중인 실행이 끝날 때까지 기다린 뒤 스냅샷을 반환합니다.
func (w *Worker) WaitJob(ctx context.Context, id string) (job.Snapshot, error) {
	w.mu.Lock()
	j, ok := w.jobs[id]
	w.mu.Unlock()

	if !ok {
		return job.Snapshot{}, newErrJobNotFound(id)
	}
	return j.Wait(ctx)
}

// JobState 작업의 현재 스냅샷을 반환합니다.
func (w *Worker) JobState(id string) (job.Snapshot, error) {
	w.mu.Lock()
	j, ok := w.jobs[id]
	w.mu.Unlock()

	if !ok {
		return job.Snapshot{}, newErrJobNotFound(id)
	}
	return j.State(), nil
}
