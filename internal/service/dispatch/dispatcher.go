// Package dispatch 작업을 등록하고 Worker를 생성하여 작업을 할당, 실행, 회수하는 Dispatcher를 제공합니다.
//
// Dispatcher는 등록된 작업의 큐(작업 ID → 할당된 Worker ID)와 생성된 Worker 목록을 관리합니다.
// 레지스트리 자체는 하나의 뮤텍스로 보호되고, 같은 Worker를 대상으로 하는 배치 작업(할당, 회수, 일괄 실행, 파괴)은
// Worker ID 단위의 KeyedMutex로 직렬화됩니다. 작업 실행을 기다리는 동안에는 레지스트리 잠금을 보유하지 않습니다.
package dispatch

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/idgen"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/worker"
	"github.com/darkkaiser/job-dispatcher/pkg/concurrency"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
	"golang.org/x/sync/errgroup"
)

// component 로깅용 컴포넌트 이름
const component = "dispatch"

// forceDestroyRetryInterval 강제 파괴가 배치 잠금 획득을 다시 시도하는 간격
const forceDestroyRetryInterval = 2 * time.Millisecond

// Dispatcher 작업과 Worker의 레지스트리입니다.
type Dispatcher struct {
	registry  *job.Registry
	observers []worker.Observer

	jobIDs    *idgen.Generator
	workerIDs *idgen.Generator

	// batches 같은 Worker에 대한 배치 작업을 직렬화한다.
	batches *concurrency.KeyedMutex

	mu          sync.Mutex
	entries     []*entry
	index       map[string]int
	workers     map[string]*worker.Worker
	workerOrder []string
}

// Option Dispatcher 생성 옵션입니다.
type Option func(*Dispatcher)

// WithRegistry Worker가 작업 정의를 작업으로 변환할 때 사용할 Registry를 지정합니다.
func WithRegistry(r *job.Registry) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.registry = r
		}
	}
}

// WithWorkerObserver 생성되는 모든 Worker에 Observer를 연결합니다.
func WithWorkerObserver(o worker.Observer) Option {
	return func(d *Dispatcher) {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
}

// New 비어 있는 Dispatcher를 생성합니다.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:  job.Default(),
		jobIDs:    idgen.New(idgen.JobPrefix),
		workerIDs: idgen.New(idgen.WorkerPrefix),
		batches:   concurrency.NewKeyedMutex(),
		index:     make(map[string]int),
		workers:   make(map[string]*worker.Worker),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddJobs 작업을 큐에 등록하고 입력 순서대로 새로 발급한 작업 ID를 반환합니다.
// 하나라도 비어 있는 작업이 있다면 아무것도 등록하지 않습니다.
func (d *Dispatcher) AddJobs(_ context.Context, sources ...job.Source) ([]string, error) {
	for _, src := range sources {
		if src == nil {
			return nil, job.ErrJobRequired
		}
	}

	ids := make([]string, len(sources))
	for i := range sources {
		ids[i] = d.jobIDs.Next()
	}

	d.mu.Lock()
	for i, src := range sources {
		d.index[ids[i]] = len(d.entries)
		d.entries = append(d.entries, &entry{Entry: Entry{ID: ids[i], Source: src}})
	}
	d.mu.Unlock()

	applog.WithComponentAndFields(component, applog.Fields{"job_ids": ids}).Debug("작업 등록 완료")

	return ids, nil
}

// RemoveJobs 어떤 Worker에도 할당되지 않은 작업을 큐에서 제거합니다.
// 하나라도 존재하지 않거나 할당된 작업이 있다면 아무것도 제거하지 않습니다.
func (d *Dispatcher) RemoveJobs(_ context.Context, jobIDs []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	seen := make(map[string]struct{}, len(jobIDs))
	for _, id := range jobIDs {
		if _, dup := seen[id]; dup {
			return newErrDuplicateJobID(id)
		}
		seen[id] = struct{}{}

		e, ok := d.lookupLocked(id)
		if !ok {
			return newErrUnknownJob(id)
		}
		if owner := e.owner(); owner != "" {
			return newErrJobAssigned(id, owner)
		}
	}

	d.entries = slices.DeleteFunc(d.entries, func(e *entry) bool {
		_, remove := seen[e.ID]
		return remove
	})
	d.reindexLocked()

	return nil
}

func (d *Dispatcher) lookupLocked(id string) (*entry, bool) {
	if !d.jobIDs.Valid(id) {
		return nil, false
	}

	i, ok := d.index[id]
	if !ok {
		return nil, false
	}
	return d.entries[i], true
}

func (d *Dispatcher) reindexLocked() {
	clear(d.index)
	for i, e := range d.entries {
		d.index[e.ID] = i
	}
}

// Entries 큐의 항목을 등록 순서대로 반환합니다.
func (d *Dispatcher) Entries() []Entry {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries := make([]Entry, len(d.entries))
	for i, e := range d.entries {
		entries[i] = e.Entry
	}
	return entries
}

// CreateWorker 새 Worker를 생성하여 초기화하고, 준비가 완료되면 레지스트리에 등록합니다.
func (d *Dispatcher) CreateWorker(ctx context.Context) (string, error) {
	id := d.workerIDs.Next()

	opts := []worker.Option{worker.WithID(id), worker.WithRegistry(d.registry)}
	for _, o := range d.observers {
		opts = append(opts, worker.WithObserver(o))
	}
	w := worker.New(opts...)

	if err := w.Initialize(ctx); err != nil {
		return "", err
	}
	if !w.IsReady() {
		return "", newErrWorkerNotReady(id)
	}

	d.mu.Lock()
	d.workers[id] = w
	d.workerOrder = append(d.workerOrder, id)
	d.mu.Unlock()

	applog.WithComponentAndFields(component, applog.Fields{"worker_id": id}).Info("Worker 생성 완료")

	return id, nil
}

// GetWorker Worker를 조회합니다.
func (d *Dispatcher) GetWorker(id string) (*worker.Worker, error) {
	if !d.workerIDs.Valid(id) {
		return nil, newErrUnknownWorker(id)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.workers[id]
	if !ok {
		return nil, newErrUnknownWorker(id)
	}
	return w, nil
}

// WorkerIDs 등록된 Worker의 ID를 생성 순서대로 반환합니다.
func (d *Dispatcher) WorkerIDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return slices.Clone(d.workerOrder)
}

// GetWorkerJobIDs Worker에 할당된 작업 ID를 큐 순서대로 반환합니다.
func (d *Dispatcher) GetWorkerJobIDs(workerID string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.workers[workerID]; !ok {
		return nil, newErrWorkerDNE(workerID)
	}
	return d.ownedLocked(workerID), nil
}

func (d *Dispatcher) ownedLocked(workerID string) []string {
	ids := make([]string, 0)
	for _, e := range d.entries {
		if e.WorkerID == workerID {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// AddJobsToWorker 작업들을 Worker에 할당합니다.
//
// 모든 작업을 동시에 Worker에 추가하고 작업 ID별로 결과를 기다립니다. 하나라도 실패하면 이미 추가된 작업을
// Worker에서 다시 제거하고 아무것도 할당하지 않은 채 첫 번째 에러를 반환합니다.
func (d *Dispatcher) AddJobsToWorker(ctx context.Context, workerID string, jobIDs []string) error {
	unlock := d.batches.Lock(workerID)
	defer unlock()

	w, sources, err := d.reserve(workerID, jobIDs)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return nil
	}

	var (
		mu    sync.Mutex
		added = make([]string, 0, len(jobIDs))
	)

	var g errgroup.Group
	for i, id := range jobIDs {
		src := sources[i]
		g.Go(func() error {
			err := w.AddJob(ctx, id, src)

			mu.Lock()
			if err == nil {
				added = append(added, id)
			}
			mu.Unlock()

			return err
		})
	}
	err = g.Wait()

	// 예약은 Worker에서 회수를 마친 뒤에 해제해야 다른 배치가 같은 작업을 동시에 가져가지 않는다.
	if err != nil {
		for _, id := range added {
			if rmErr := w.RemoveJob(ctx, id); rmErr != nil {
				applog.WithComponentAndFields(component, applog.Fields{
					"worker_id": workerID,
					"job_id":    id,
					"error":     rmErr,
				}).Warn("할당 실패 후 작업을 Worker에서 회수하지 못했습니다")
			}
		}
	}

	d.mu.Lock()
	for _, id := range jobIDs {
		if e, ok := d.lookupLocked(id); ok {
			e.reservedBy = ""
			if err == nil {
				e.WorkerID = workerID
			}
		}
	}
	d.mu.Unlock()

	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"worker_id": workerID,
			"job_ids":   jobIDs,
			"error":     err,
		}).Warn("작업 할당 실패")

		return err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"worker_id": workerID,
		"job_ids":   jobIDs,
	}).Debug("작업 할당 완료")

	return nil
}

// reserve 할당 대상 작업을 검증하고 다른 배치가 가져가지 못하도록 예약한다.
func (d *Dispatcher) reserve(workerID string, jobIDs []string) (*worker.Worker, []job.Source, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.workers[workerID]
	if !ok {
		return nil, nil, newErrUnknownWorker(workerID)
	}

	seen := make(map[string]struct{}, len(jobIDs))
	targets := make([]*entry, 0, len(jobIDs))
	for _, id := range jobIDs {
		if _, dup := seen[id]; dup {
			return nil, nil, newErrDuplicateJobID(id)
		}
		seen[id] = struct{}{}

		e, ok := d.lookupLocked(id)
		if !ok {
			return nil, nil, newErrUnknownJob(id)
		}
		if owner := e.owner(); owner != "" {
			return nil, nil, newErrJobAssigned(id, owner)
		}
		targets = append(targets, e)
	}

	sources := make([]job.Source, len(targets))
	for i, e := range targets {
		e.reservedBy = workerID
		sources[i] = e.Source
	}

	return w, sources, nil
}

// RemoveJobsFromWorker Worker에서 작업들을 회수합니다.
//
// 하나라도 해당 Worker에 할당되지 않은 작업이 있다면 즉시 거부합니다. 그렇지 않다면 모든 작업의 제거를 시도하고
// Worker가 제거를 확인한 작업만 할당을 해제한 뒤, 실패가 있었다면 첫 번째 에러를 반환합니다.
func (d *Dispatcher) RemoveJobsFromWorker(ctx context.Context, workerID string, jobIDs []string) error {
	unlock := d.batches.Lock(workerID)
	defer unlock()

	return d.removeJobsFromWorker(ctx, workerID, jobIDs)
}

func (d *Dispatcher) removeJobsFromWorker(ctx context.Context, workerID string, jobIDs []string) error {
	d.mu.Lock()
	w, ok := d.workers[workerID]
	if !ok {
		d.mu.Unlock()
		return newErrUnknownWorker(workerID)
	}

	var missing []string
	for _, id := range jobIDs {
		if e, ok := d.lookupLocked(id); !ok || e.WorkerID != workerID {
			missing = append(missing, id)
		}
	}
	d.mu.Unlock()

	if len(missing) > 0 {
		return newErrNotRegisteredWithWorker(workerID, missing)
	}

	var firstErr error
	for _, id := range jobIDs {
		if err := w.RemoveJob(ctx, id); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		d.mu.Lock()
		if e, ok := d.lookupLocked(id); ok && e.WorkerID == workerID {
			e.WorkerID = ""
		}
		d.mu.Unlock()
	}

	return firstErr
}

// RunAllWorkerJobs Worker에 할당된 모든 작업을 실행하고 결과를 집계합니다.
//
// 할당된 작업이 없다면 작업을 실행하지 않고 빈 집계 결과를 반환합니다. 작업 자체의 실패는 에러가 아니라 집계 결과의
// Error 목록에 기록됩니다.
func (d *Dispatcher) RunAllWorkerJobs(ctx context.Context, workerID string) (*Aggregate, error) {
	unlock := d.batches.Lock(workerID)
	defer unlock()

	d.mu.Lock()
	w, ok := d.workers[workerID]
	if !ok {
		d.mu.Unlock()
		return nil, newErrUnknownWorker(workerID)
	}
	ids := d.ownedLocked(workerID)
	d.mu.Unlock()

	if len(ids) == 0 {
		return newAggregate(), nil
	}

	type outcome struct {
		snap job.Snapshot
		err  error
	}

	var (
		mu       sync.Mutex
		outcomes = make(map[string]outcome, len(ids))
	)

	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			snap, err := w.RunJob(ctx, id)

			mu.Lock()
			outcomes[id] = outcome{snap: snap, err: err}
			mu.Unlock()

			return nil
		})
	}
	_ = g.Wait()

	agg := newAggregate()
	for _, id := range ids {
		o := outcomes[id]
		switch {
		case o.err != nil:
			agg.Error = append(agg.Error, ErrorItem{JobID: id, Error: o.err})
		case o.snap.IsKilled:
			agg.Killed = append(agg.Killed, id)
		case o.snap.IsError:
			agg.Error = append(agg.Error, ErrorItem{JobID: id, Error: o.snap.Error})
		default:
			agg.Done = append(agg.Done, DoneItem{JobID: id, Result: o.snap.Result})
		}
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"worker_id": workerID,
		"done":      len(agg.Done),
		"error":     len(agg.Error),
		"killed":    len(agg.Killed),
	}).Info("Worker 작업 일괄 실행 완료")

	return agg, nil
}

// KillJob Worker에 할당되어 실행 중인 작업의 취소를 요청합니다.
func (d *Dispatcher) KillJob(ctx context.Context, jobID string) error {
	d.mu.Lock()
	e, ok := d.lookupLocked(jobID)
	if !ok {
		d.mu.Unlock()
		return newErrUnknownJob(jobID)
	}
	if e.WorkerID == "" {
		d.mu.Unlock()
		return newErrJobNotAssigned(jobID)
	}
	w := d.workers[e.WorkerID]
	d.mu.Unlock()

	return w.KillJob(ctx, jobID)
}

// DestroyWorker Worker에 할당된 작업을 모두 회수한 뒤 Worker를 파괴하고 레지스트리에서 제거합니다.
// 실행 중인 작업이 있거나 같은 Worker에 대한 배치 작업이 진행 중이라면 기다리지 않고 바로 실패합니다.
func (d *Dispatcher) DestroyWorker(ctx context.Context, workerID string) (string, error) {
	w, err := d.GetWorker(workerID)
	if err != nil {
		return "", err
	}

	unlock, ok := d.batches.TryLock(workerID)
	if !ok {
		if running := w.RunningJobIDs(); len(running) > 0 {
			return "", newErrWorkerBusy(workerID, running)
		}
		return "", newErrBatchInProgress(workerID)
	}
	defer unlock()

	return d.destroyWorker(ctx, workerID, false)
}

// DestroyWorkerForce 실행 중인 작업을 먼저 중단시킨 뒤 DestroyWorker와 같이 동작합니다.
//
// 일괄 실행이 배치 잠금을 보유하고 있다면 잠금을 얻을 때까지 실행을 시작한 작업을 계속 중단시킵니다.
func (d *Dispatcher) DestroyWorkerForce(ctx context.Context, workerID string) (string, error) {
	w, err := d.GetWorker(workerID)
	if err != nil {
		return "", err
	}

	unlock, err := d.lockKillingRunning(ctx, workerID, w)
	if err != nil {
		return "", err
	}
	defer unlock()

	return d.destroyWorker(ctx, workerID, true)
}

// lockKillingRunning 배치 잠금을 얻을 때까지 Worker에서 실행 중인 작업을 중단시키며 재시도한다.
func (d *Dispatcher) lockKillingRunning(ctx context.Context, workerID string, w *worker.Worker) (func(), error) {
	for {
		if unlock, ok := d.batches.TryLock(workerID); ok {
			return unlock, nil
		}

		for _, id := range w.RunningJobIDs() {
			_ = w.KillJob(ctx, id)
		}

		timer := time.NewTimer(forceDestroyRetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (d *Dispatcher) destroyWorker(ctx context.Context, workerID string, force bool) (string, error) {
	d.mu.Lock()
	w, ok := d.workers[workerID]
	if !ok {
		d.mu.Unlock()
		return "", newErrUnknownWorker(workerID)
	}
	ids := d.ownedLocked(workerID)
	d.mu.Unlock()

	if !force {
		if running := w.RunningJobIDs(); len(running) > 0 {
			return "", newErrWorkerBusy(workerID, running)
		}
	}

	if force {
		for _, id := range w.RunningJobIDs() {
			_ = w.KillJob(ctx, id)
		}
		for _, id := range ids {
			if _, err := w.WaitJob(ctx, id); err != nil {
				return "", err
			}
		}
	}

	if err := d.removeJobsFromWorker(ctx, workerID, ids); err != nil {
		return "", err
	}

	destroy := w.Destroy
	if force {
		destroy = w.DestroyForce
	}
	if err := destroy(ctx); err != nil {
		return "", err
	}

	d.mu.Lock()
	delete(d.workers, workerID)
	if i := slices.Index(d.workerOrder, workerID); i >= 0 {
		d.workerOrder = slices.Delete(d.workerOrder, i, i+1)
	}
	for _, e := range d.entries {
		if e.WorkerID == workerID {
			e.WorkerID = ""
		}
	}
	d.mu.Unlock()

	applog.WithComponentAndFields(component, applog.Fields{
		"worker_id": workerID,
		"force":     force,
	}).Info("Worker 파괴 완료")

	return workerID, nil
}
