// Package echo 지정된 시간만큼 기다린 뒤 메시지를 그대로 돌려주는 작업을 제공합니다.
//
//	{"type": "echo", "args": ["I love bananas.", 1000]}
package echo

import (
	"context"
	"time"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/task"
)

// DefaultDelay 인자로 지연 시간이 주어지지 않았을 때의 기본값
const DefaultDelay = 1000 * time.Millisecond

var (
	ErrMessageRequired = apperrors.New(apperrors.InvalidInput, "message is required")
	ErrInvalidDelay    = apperrors.New(apperrors.InvalidInput, "delay must be a non-negative number of milliseconds")
)

func init() {
	job.Register(job.Echo, NewFactory(Options{}))
}

// Options echo 작업 생성 옵션입니다.
type Options struct {
	// DefaultDelay 0 이하라면 DefaultDelay(1초)를 사용합니다.
	DefaultDelay time.Duration
}

// Runner 메시지와 지연 시간을 보관합니다.
type Runner struct {
	message string
	delay   time.Duration
}

var _ job.Runner = (*Runner)(nil)

// NewFactory args: [message string, delay-ms number?]
func NewFactory(opts Options) job.Factory {
	defaultDelay := opts.DefaultDelay
	if defaultDelay <= 0 {
		defaultDelay = DefaultDelay
	}

	return func(args []any) (job.Runner, error) {
		var message string
		if _, err := job.DecodeArg(args, 0, &message); err != nil || message == "" {
			return nil, ErrMessageRequired
		}

		delay := defaultDelay

		var ms int64
		ok, err := job.DecodeArg(args, 1, &ms)
		if err != nil || ms < 0 {
			return nil, ErrInvalidDelay
		}
		if ok {
			delay = time.Duration(ms) * time.Millisecond
		}

		return New(message, delay), nil
	}
}

// New 주어진 메시지와 지연 시간으로 Runner를 생성합니다.
func New(message string, delay time.Duration) *Runner {
	return &Runner{message: message, delay: delay}
}

// NewTask 타이머가 만료되면 메시지로 정착하는 Task를 반환합니다. 취소되면 타이머를 멈춥니다.
func (r *Runner) NewTask(ctx context.Context) *task.Task {
	return task.New(ctx, func(_ context.Context, resolve func(any), _ func(error), onCancel func(func())) {
		timer := time.AfterFunc(r.delay, func() {
			resolve(r.message)
		})

		onCancel(func() {
			timer.Stop()
		})
	})
}
