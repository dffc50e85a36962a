package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// routingHook 로그 레벨에 따라 출력 대상을 나누는 logrus Hook입니다.
//
//   - console:  모든 레벨
//   - critical: Error, Fatal, Panic
//   - verbose:  Debug, Trace (main에는 기록하지 않음)
//   - main:     Info 이상
type routingHook struct {
	main     io.Writer
	critical io.Writer
	verbose  io.Writer
	console  io.Writer

	formatter Formatter

	mu     sync.RWMutex
	closed bool
}

func (h *routingHook) Levels() []Level {
	return AllLevels
}

func (h *routingHook) Fire(entry *Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	msg, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	if h.console != nil {
		if _, err := h.console.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] 콘솔 출력 실패: %v\n", err)
		}
	}

	var firstErr error
	write := func(w io.Writer, name string) {
		if w == nil {
			return
		}
		if _, err := w.Write(msg); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] %s 로그 파일 쓰기 실패: %v\n", name, err)
		}
	}

	if entry.Level <= ErrorLevel {
		write(h.critical, "critical")
	}

	if entry.Level >= DebugLevel {
		write(h.verbose, "verbose")
		return firstErr
	}

	write(h.main, "main")

	return firstErr
}

// close 이후의 모든 로그 기록을 무시하도록 전환합니다.
// 진행 중인 Fire 호출이 끝날 때까지 대기합니다.
func (h *routingHook) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
}
