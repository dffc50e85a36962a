// Package concurrency 동시성 제어용 유틸리티를 제공합니다.
package concurrency

import "sync"

// KeyedMutex 키마다 독립적인 뮤텍스를 제공합니다.
// 서로 다른 키에 대한 임계 구역은 동시에 실행될 수 있으며, 더 이상 사용되지 않는 키의 뮤텍스는 즉시 정리됩니다.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex 새로운 KeyedMutex를 생성합니다.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*refMutex)}
}

// Lock 키에 대한 락을 획득하고, 락을 해제하는 함수를 반환합니다.
//
//	unlock := km.Lock(workerID)
//	defer unlock()
func (km *KeyedMutex) Lock(key string) (unlock func()) {
	m := km.acquire(key)
	m.mu.Lock()
	return km.releaser(key, m)
}

// TryLock 대기하지 않고 락 획득을 시도합니다. 실패하면 ok는 false이며 unlock은 nil입니다.
func (km *KeyedMutex) TryLock(key string) (unlock func(), ok bool) {
	m := km.acquire(key)
	if !m.mu.TryLock() {
		km.release(key, m)
		return nil, false
	}
	return km.releaser(key, m), true
}

// Len 현재 락을 보유 중이거나 대기 중인 키의 개수를 반환합니다.
func (km *KeyedMutex) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()

	return len(km.locks)
}

func (km *KeyedMutex) acquire(key string) *refMutex {
	km.mu.Lock()
	defer km.mu.Unlock()

	m, ok := km.locks[key]
	if !ok {
		m = &refMutex{}
		km.locks[key] = m
	}
	m.refs++
	return m
}

func (km *KeyedMutex) release(key string, m *refMutex) {
	km.mu.Lock()
	defer km.mu.Unlock()

	m.refs--
	if m.refs == 0 {
		delete(km.locks, key)
	}
}

func (km *KeyedMutex) releaser(key string, m *refMutex) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Unlock()
			km.release(key, m)
		})
	}
}
