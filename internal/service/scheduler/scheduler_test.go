package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/job-dispatcher/internal/config"
	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/darkkaiser/job-dispatcher/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) RunJobs(ctx context.Context, sources []job.Source) ([]dispatch.RunResult, error) {
	args := m.Called(ctx, sources)
	results, _ := args.Get(0).([]dispatch.RunResult)
	return results, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

// blockingRunner 호출될 때마다 started로 알리고 ctx가 취소될 때까지 기다린다.
type blockingRunner struct {
	started chan struct{}

	mu   sync.Mutex
	errs []error
}

func (r *blockingRunner) RunJobs(ctx context.Context, _ []job.Source) ([]dispatch.RunResult, error) {
	select {
	case r.started <- struct{}{}:
	default:
	}

	<-ctx.Done()

	r.mu.Lock()
	r.errs = append(r.errs, ctx.Err())
	r.mu.Unlock()

	return nil, ctx.Err()
}

var nightly = config.ScheduleConfig{
	ID:       "nightly",
	TimeSpec: "0 0 3 * * *",
	Jobs: []config.JobConfig{
		{Type: "echo", Args: []any{"I love bananas.", 10}},
		{Type: "filter", Args: []any{[]any{1, 2}, 1}},
	},
	Notify: true,
}

func TestNewService(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "Runner는 필수입니다", func() { NewService(nil, nil, nil) })

	s := NewService([]config.ScheduleConfig{nightly}, &mockRunner{}, nil)
	assert.IsType(t, notification.Noop{}, s.notifier)
	assert.Len(t, s.schedules, 1)
}

func TestRunSchedule_NotifiesSummary(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	runner.On("RunJobs", mock.Anything, []job.Source{
		job.Definition{Type: "echo", Args: []any{"I love bananas.", 10}},
		job.Definition{Type: "filter", Args: []any{[]any{1, 2}, 1}},
	}).Return([]dispatch.RunResult{
		{Index: 0, Result: "I love bananas."},
		{Index: 1, Error: apperrors.New(apperrors.InvalidInput, "Expected <value>")},
	}, nil).Once()

	n := &mockNotifier{}
	n.On("Notify", mock.Anything, mock.MatchedBy(func(msg string) bool {
		return strings.HasPrefix(msg, "<b>[nightly]</b> 예약 실행 완료 (성공 1 / 실패 1)") &&
			strings.Contains(msg, `#0 echo: &#34;I love bananas.&#34;`) &&
			strings.Contains(msg, "#1 filter: [InvalidInput] Expected &lt;value&gt;")
	})).Return(nil).Once()

	NewService(nil, runner, n).runSchedule(context.Background(), nightly)

	runner.AssertExpectations(t)
	n.AssertExpectations(t)
}

func TestRunSchedule_RunFailure(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	runner.On("RunJobs", mock.Anything, mock.Anything).Return(nil, dispatch.ErrNoJobs).Once()

	n := &mockNotifier{}
	n.On("Notify", mock.Anything, "<b>[nightly]</b> 예약 실행 실패\n[InvalidInput] jobs required").Return(nil).Once()

	NewService(nil, runner, n).runSchedule(context.Background(), nightly)

	n.AssertExpectations(t)
}

func TestRunSchedule_WithoutNotify(t *testing.T) {
	t.Parallel()

	sc := nightly
	sc.Notify = false

	runner := &mockRunner{}
	runner.On("RunJobs", mock.Anything, mock.Anything).Return([]dispatch.RunResult{{Index: 0, Result: 1}}, nil).Once()

	n := &mockNotifier{}

	NewService(nil, runner, n).runSchedule(context.Background(), sc)

	runner.AssertExpectations(t)
	n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestRunSchedule_NotifyFailureIsIgnored(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	runner.On("RunJobs", mock.Anything, mock.Anything).Return([]dispatch.RunResult{{Index: 0, Result: 1}}, nil).Once()

	n := &mockNotifier{}
	n.On("Notify", mock.Anything, mock.Anything).Return(errors.New("telegram down")).Once()

	assert.NotPanics(t, func() {
		NewService(nil, runner, n).runSchedule(context.Background(), nightly)
	})
	n.AssertExpectations(t)
}

func TestScheduler_StartStop(t *testing.T) {
	runner := &blockingRunner{started: make(chan struct{}, 1)}
	s := NewService([]config.ScheduleConfig{{
		ID:       "every-second",
		TimeSpec: "* * * * * *",
		Jobs:     []config.JobConfig{{Type: "echo", Args: []any{"hi"}}},
	}}, runner, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	// 이미 실행 중이라면 WaitGroup만 정리하고 반환한다.
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	select {
	case <-runner.started:
	case <-time.After(3 * time.Second):
		t.Fatal("예약 실행이 시작되지 않았습니다")
	}

	// 종료하면 진행 중인 실행의 context가 취소되고 실행이 끝날 때까지 기다린다.
	cancel()
	wg.Wait()

	s.runningMu.Lock()
	assert.False(t, s.running)
	assert.Nil(t, s.cron)
	s.runningMu.Unlock()

	runner.mu.Lock()
	defer runner.mu.Unlock()
	require.NotEmpty(t, runner.errs)
	assert.ErrorIs(t, runner.errs[0], context.Canceled)
}

func TestScheduler_InvalidCronSpec(t *testing.T) {
	t.Parallel()

	n := &mockNotifier{}
	n.On("Notify", mock.Anything, mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, "<b>[broken]</b> 예약 실행 실패") && strings.Contains(msg, "[InvalidInput]")
	})).Return(nil).Once()

	s := NewService([]config.ScheduleConfig{
		{ID: "broken", TimeSpec: "not a cron", Jobs: nightly.Jobs, Notify: true},
		{ID: "valid", TimeSpec: "0 0 3 * * *", Jobs: nightly.Jobs},
	}, &mockRunner{}, n)

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	s.runningMu.Lock()
	assert.Len(t, s.cron.Entries(), 1)
	s.runningMu.Unlock()

	cancel()
	wg.Wait()

	n.AssertExpectations(t)
}

func TestFormatSummary_TruncatesLongResult(t *testing.T) {
	t.Parallel()

	msg := formatSummary(nightly, []dispatch.RunResult{{Index: 0, Result: strings.Repeat("a", 1000)}})

	lines := strings.Split(msg, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], "..."))
	assert.Less(t, len(lines[1]), 1000)
}
