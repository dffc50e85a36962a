package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitSettled(t *testing.T, tk *Task) {
	t.Helper()

	select {
	case <-tk.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Task가 정착하지 않았습니다")
	}
}

func TestStart_Resolve(t *testing.T) {
	t.Parallel()

	tk := Start(context.Background(), func(ctx context.Context) (any, error) {
		return "I love bananas.", nil
	})
	waitSettled(t, tk)

	v, err := tk.Result()
	assert.NoError(t, err)
	assert.Equal(t, "I love bananas.", v)
	assert.Equal(t, Resolved, tk.State())
}

func TestStart_Reject(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	tk := Start(context.Background(), func(ctx context.Context) (any, error) {
		return nil, boom
	})

	v, err := tk.Wait(context.Background())
	assert.Nil(t, v)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Rejected, tk.State())
}

func TestStart_Panic(t *testing.T) {
	t.Parallel()

	tk := Start(context.Background(), func(ctx context.Context) (any, error) {
		panic("unexpected")
	})

	_, err := tk.Wait(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Internal))
	assert.Contains(t, err.Error(), "unexpected")
}

func TestCancel_CooperativeBody(t *testing.T) {
	t.Parallel()

	exited := make(chan struct{})
	tk := Start(context.Background(), func(ctx context.Context) (any, error) {
		defer close(exited)
		<-ctx.Done()
		return "late value", nil
	})

	assert.True(t, tk.Cancel())
	waitSettled(t, tk)
	<-exited

	v, err := tk.Result()
	assert.Nil(t, v, "취소 이후의 resolve는 결과를 바꾸지 않아야 합니다")
	assert.ErrorIs(t, err, ErrCanceled)
	assert.Equal(t, Cancelled, tk.State())
}

func TestCancel_AfterSettleIsNoop(t *testing.T) {
	t.Parallel()

	var cancelled atomic.Bool
	tk := New(context.Background(), func(ctx context.Context, resolve func(any), reject func(error), onCancel func(func())) {
		onCancel(func() { cancelled.Store(true) })
		resolve(42)
	})
	waitSettled(t, tk)

	assert.False(t, tk.Cancel())
	assert.False(t, cancelled.Load(), "정착한 Task의 취소 콜백은 실행되지 않아야 합니다")

	v, err := tk.Result()
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestNew_SettleOnlyOnce(t *testing.T) {
	t.Parallel()

	tk := New(context.Background(), func(ctx context.Context, resolve func(any), reject func(error), onCancel func(func())) {
		resolve("first")
		reject(errors.New("ignored"))
		resolve("ignored")
	})

	v, err := tk.Wait(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestNew_OnCancelReleasesTimer(t *testing.T) {
	t.Parallel()

	var stopped atomic.Bool
	tk := New(context.Background(), func(ctx context.Context, resolve func(any), reject func(error), onCancel func(func())) {
		timer := time.AfterFunc(time.Hour, func() { resolve("never") })
		onCancel(func() {
			stopped.Store(timer.Stop())
		})
	})

	require.Equal(t, Pending, tk.State())
	require.True(t, tk.Cancel())

	assert.True(t, stopped.Load())
	assert.Equal(t, Cancelled, tk.State())

	// 취소 이후 등록된 콜백은 즉시 실행된다.
	var late atomic.Bool
	tk.OnCancel(func() { late.Store(true) })
	assert.True(t, late.Load())
}

func TestParentContextCancelsTask(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	tk := Start(ctx, func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	cancel()
	waitSettled(t, tk)

	assert.Equal(t, Cancelled, tk.State())
}

func TestWait_ContextDone(t *testing.T) {
	t.Parallel()

	tk := Start(context.Background(), func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, nil
	})
	defer tk.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := tk.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Pending, tk.State(), "Wait의 시간 초과가 Task를 취소하면 안 됩니다")
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "resolved", Resolved.String())
	assert.Equal(t, "rejected", Rejected.String())
	assert.Equal(t, "cancelled", Cancelled.String())
	assert.Equal(t, "State(9)", State(9).String())
}
