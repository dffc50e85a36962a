package job

import (
	"sync"
)

// Factory 작업 인자를 검증하고 Runner를 생성합니다.
// 인자가 잘못되었다면 실행 시점이 아니라 이 시점에 에러를 반환해야 합니다.
type Factory func(args []any) (Runner, error)

// Registry 작업 타입별 Factory를 관리합니다.
type Registry struct {
	mu        sync.RWMutex
	factories map[Type]Factory
}

// NewRegistry 비어 있는 Registry를 생성합니다.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Type]Factory)}
}

var defaultRegistry = NewRegistry()

// Default 작업 패키지들이 init 시점에 등록하는 전역 Registry를 반환합니다.
func Default() *Registry {
	return defaultRegistry
}

// Register 전역 Registry에 Factory를 등록합니다. 실패하면 panic이 발생합니다.
func Register(t Type, f Factory) {
	defaultRegistry.MustRegister(t, f)
}

// Register 작업 타입에 Factory를 등록합니다.
func (r *Registry) Register(t Type, f Factory) error {
	if _, ok := typeNames[t]; !ok {
		return newErrUnknownType(t.String())
	}
	if f == nil {
		return newErrFactoryNotRegistered(t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[t]; exists {
		return newErrFactoryAlreadyRegistered(t)
	}
	r.factories[t] = f

	return nil
}

// MustRegister Register와 같지만 실패하면 panic이 발생합니다.
func (r *Registry) MustRegister(t Type, f Factory) {
	if err := r.Register(t, f); err != nil {
		panic(err)
	}
}

// Registered 등록된 작업 타입인지 확인합니다.
func (r *Registry) Registered(t Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[t]
	return ok
}

// NewJob 등록된 Factory로 작업을 생성합니다.
func (r *Registry) NewJob(t Type, args []any) (*Job, error) {
	r.mu.RLock()
	f, ok := r.factories[t]
	r.mu.RUnlock()

	if !ok {
		return nil, newErrFactoryNotRegistered(t)
	}

	runner, err := f(args)
	if err != nil {
		return nil, newErrConstructFailed(t, err)
	}

	return New(t, runner), nil
}

// Build Source로부터 작업 인스턴스를 얻습니다.
func (r *Registry) Build(src Source) (*Job, error) {
	if src == nil {
		return nil, ErrJobRequired
	}
	return src.build(r)
}
