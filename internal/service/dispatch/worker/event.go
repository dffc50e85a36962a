package worker

import (
	"fmt"
)

// EventType Worker가 발행하는 이벤트의 종류입니다.
type EventType int

const (
	EventReady EventType = iota + 1
	EventDestroyed
	EventDestroyError
	EventJobAdded
	EventJobAddError
	EventJobRemoved
	EventJobRemoveError
	EventJobRunDone
	EventJobRunError
	EventJobRunKilled
	EventError
)

var eventNames = map[EventType]string{
	EventReady:          "ready",
	EventDestroyed:      "destroyed",
	EventDestroyError:   "destroy:error",
	EventJobAdded:       "job:added",
	EventJobAddError:    "job:add:error",
	EventJobRemoved:     "job:removed",
	EventJobRemoveError: "job:remove:error",
	EventJobRunDone:     "job:run:done",
	EventJobRunError:    "job:run:error",
	EventJobRunKilled:   "job:run:killed",
	EventError:          "error",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event Worker에서 발생한 사건입니다.
//
// JobID는 작업 관련 이벤트에서, Result는 job:run:done에서, Err는 *:error 이벤트에서만 채워집니다.
type Event struct {
	Type     EventType
	WorkerID string
	JobID    string
	Result   any
	Err      error
}

// Observer Worker 이벤트를 동기적으로 전달받습니다.
// OnEvent는 Worker의 잠금을 보유하지 않은 상태에서 호출되므로 Worker의 메서드를 다시 호출해도 안전합니다.
type Observer interface {
	OnEvent(e Event)
}

// ObserverFunc 함수를 Observer로 사용하기 위한 어댑터입니다.
type ObserverFunc func(e Event)

func (f ObserverFunc) OnEvent(e Event) {
	f(e)
}
