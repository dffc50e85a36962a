package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_Initialize(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w := New(WithID("w1"), WithObserver(rec))
	assert.False(t, w.IsReady())

	require.NoError(t, w.Initialize(context.Background()))
	assert.True(t, w.IsReady())
	assert.Equal(t, []EventType{EventReady}, rec.types())
	assert.Equal(t, "w1", rec.last().WorkerID)

	// 두 번째 초기화는 아무 일도 하지 않는다.
	require.NoError(t, w.Initialize(context.Background()))
	assert.Equal(t, []EventType{EventReady}, rec.types())

	require.NoError(t, w.Destroy(context.Background()))
	assert.Same(t, ErrDestroyed, w.Initialize(context.Background()))
	assert.False(t, w.IsReady())
}

func TestWorker_AddJob_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("초기화되지 않은 Worker", func(t *testing.T) {
		rec := &recorder{}
		w := New(WithObserver(rec))

		err := w.AddJob(ctx, "job-1", job.Definition{Type: "echo", Args: []any{"hi"}})
		assert.Same(t, ErrAddToUninitialized, err)
		assert.Equal(t, []EventType{EventJobAddError}, rec.types())
		assert.Same(t, err, rec.last().Err)
	})

	t.Run("파괴된 Worker", func(t *testing.T) {
		w, _ := newReadyWorker(t)
		require.NoError(t, w.Destroy(ctx))

		assert.Same(t, ErrAddToDestroyed, w.AddJob(ctx, "job-1", job.Definition{Type: "echo", Args: []any{"hi"}}))
	})

	w, rec := newReadyWorker(t)
	require.NoError(t, w.AddJob(ctx, "job-1", job.Definition{Type: "echo", Args: []any{"hi"}}))
	rec.reset()

	tests := []struct {
		name string
		id   string
		src  job.Source
		msg  string
		typ  apperrors.ErrorType
	}{
		{"ID 누락", "", job.Definition{Type: "echo"}, "id required", apperrors.InvalidInput},
		{"작업 누락", "job-2", nil, "job required", apperrors.InvalidInput},
		{"중복 ID", "job-1", job.Definition{Type: "echo", Args: []any{"x"}}, "ID job-1 already in job queue", apperrors.Conflict},
		{"알 수 없는 타입", "job-2", job.Definition{Type: "bogus"}, "Unknown job type: bogus", apperrors.InvalidInput},
		{"생성 실패", "job-2", job.Definition{Type: "echo"}, "message is required", apperrors.InvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.AddJob(ctx, tt.id, tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.True(t, apperrors.Is(err, tt.typ), "err=%v", err)
			assert.Equal(t, EventJobAddError, rec.last().Type)
		})
	}

	assert.Equal(t, []string{"job-1"}, w.JobIDs())
}

func TestWorker_AddJob_Instance(t *testing.T) {
	t.Parallel()

	w, rec := newReadyWorker(t)

	j := job.New(job.Echo, valueRunner("direct"))
	require.NoError(t, w.AddJob(context.Background(), "job-1", j))
	assert.Equal(t, []EventType{EventJobAdded}, rec.types())
	assert.Equal(t, "job-1", rec.last().JobID)

	snap, err := w.RunJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "direct", snap.Result)
}

func TestWorker_RemoveJob(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w, rec := newReadyWorker(t)

	err := w.RemoveJob(ctx, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ID nope not in job queue")
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
	assert.Equal(t, EventJobRemoveError, rec.last().Type)

	g := newGate("v")
	require.NoError(t, w.AddJob(ctx, "job-1", job.New(job.Echo, g)))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = w.RunJob(ctx, "job-1")
	}()
	require.Eventually(t, func() bool { return len(w.RunningJobIDs()) == 1 }, time.Second, time.Millisecond)

	err = w.RemoveJob(ctx, "job-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't remove running job job-1")

	close(g.release)
	<-done

	rec.reset()
	require.NoError(t, w.RemoveJob(ctx, "job-1"))
	assert.Equal(t, []EventType{EventJobRemoved}, rec.types())
	assert.Empty(t, w.JobIDs())

	uninit := New()
	assert.Same(t, ErrNotInitialized, uninit.RemoveJob(ctx, "job-1"))
}

func TestWorker_RunJob_Outcomes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w, rec := newReadyWorker(t)

	require.NoError(t, w.AddJob(ctx, "ok", job.Definition{Type: "echo", Args: []any{"hello"}}))
	require.NoError(t, w.AddJob(ctx, "bad", job.Definition{Type: "filter"}))
	rec.reset()

	snap, err := w.RunJob(ctx, "ok")
	require.NoError(t, err)
	assert.True(t, snap.IsDone)
	assert.Equal(t, "hello", snap.Result)
	e := rec.last()
	assert.Equal(t, EventJobRunDone, e.Type)
	assert.Equal(t, "ok", e.JobID)
	assert.Equal(t, "hello", e.Result)

	snap, err = w.RunJob(ctx, "bad")
	require.NoError(t, err)
	assert.True(t, snap.IsError)
	e = rec.last()
	assert.Equal(t, EventJobRunError, e.Type)
	assert.EqualError(t, e.Err, "filter failed")

	_, err = w.RunJob(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
	assert.Equal(t, EventJobRunError, rec.last().Type)
}

func TestWorker_RunJob_ResultIsDeepCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w, rec := newReadyWorker(t)

	original := map[string]any{"fruits": []any{"apple", "banana"}}
	j := job.New(job.Echo, valueRunner(original))
	require.NoError(t, w.AddJob(ctx, "job-1", j))

	snap, err := w.RunJob(ctx, "job-1")
	require.NoError(t, err)

	copied := snap.Result.(map[string]any)
	copied["fruits"].([]any)[0] = "cherry"
	copied["extra"] = true

	assert.Equal(t, "apple", original["fruits"].([]any)[0])
	assert.NotContains(t, original, "extra")
	assert.Equal(t, original, j.State().Result)
	assert.Equal(t, snap.Result, rec.last().Result)
}

func TestWorker_RunJob_UncopyableResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w, rec := newReadyWorker(t)
	w.copyValue = func(any) (any, error) { return nil, errors.New("uncopyable") }

	original := map[string]any{"fruits": []any{"apple"}}
	require.NoError(t, w.AddJob(ctx, "job-1", job.New(job.Echo, valueRunner(original))))
	rec.reset()

	snap, err := w.RunJob(ctx, "job-1")
	require.NoError(t, err)
	assert.False(t, snap.IsDone)
	assert.True(t, snap.IsError)
	assert.Nil(t, snap.Result, "원본 참조가 그대로 전달되면 안 된다")
	require.Error(t, snap.Error)
	assert.True(t, apperrors.Is(snap.Error, apperrors.Internal))
	assert.Contains(t, snap.Error.Error(), "job-1")

	assert.Equal(t, []EventType{EventJobRunError}, rec.types())
	e := rec.last()
	assert.Equal(t, "job-1", e.JobID)
	assert.Nil(t, e.Result)
	assert.Equal(t, snap.Error, e.Err)
}

func TestWorker_RunJob_KillThenRerun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w, rec := newReadyWorker(t)

	g := newGate("finished")
	require.NoError(t, w.AddJob(ctx, "job-1", job.New(job.Echo, g)))
	rec.reset()

	result := make(chan job.Snapshot, 1)
	go func() {
		snap, _ := w.RunJob(ctx, "job-1")
		result <- snap
	}()
	require.Eventually(t, func() bool { return len(w.RunningJobIDs()) == 1 }, time.Second, time.Millisecond)

	_, err := w.RunJob(ctx, "job-1")
	assert.Same(t, job.ErrAlreadyRunning, err)

	require.NoError(t, w.KillJob(ctx, "job-1"))
	snap := <-result
	assert.True(t, snap.IsKilled)
	assert.Equal(t, []EventType{EventJobRunError, EventJobRunKilled}, rec.types())

	close(g.release)
	snap, err = w.RunJob(ctx, "job-1")
	require.NoError(t, err)
	assert.True(t, snap.IsDone)
	assert.False(t, snap.IsKilled)
	assert.Equal(t, "finished", snap.Result)
	assert.Equal(t, 2, snap.RunCount)
}

func TestWorker_RunAllJobs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w, rec := newReadyWorker(t)

	require.NoError(t, w.AddJob(ctx, "a", job.Definition{Type: "echo", Args: []any{"A"}}))
	require.NoError(t, w.AddJob(ctx, "b", job.Definition{Type: "filter"}))
	require.NoError(t, w.AddJob(ctx, "c", job.Definition{Type: "echo", Args: []any{"C"}}))
	rec.reset()

	results, err := w.RunAllJobs(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "A", results["a"].Result)
	assert.True(t, results["b"].IsError)
	assert.Equal(t, "C", results["c"].Result)

	assert.ElementsMatch(t, []EventType{EventJobRunDone, EventJobRunError, EventJobRunDone}, rec.types())

	empty, _ := newReadyWorker(t)
	results, err = empty.RunAllJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = New().RunAllJobs(ctx)
	assert.Same(t, ErrNotInitialized, err)
}

func TestWorker_Destroy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("초기화되지 않은 Worker", func(t *testing.T) {
		rec := &recorder{}
		w := New(WithObserver(rec))

		assert.Same(t, ErrDestroyNotReady, w.Destroy(ctx))
		assert.Equal(t, []EventType{EventDestroyError}, rec.types())
		assert.False(t, w.IsDestroyed())
	})

	t.Run("실행 중인 작업이 있으면 거부", func(t *testing.T) {
		w, rec := newReadyWorker(t)

		g := newGate(nil)
		require.NoError(t, w.AddJob(ctx, "job-1", job.New(job.Echo, g)))
		require.NoError(t, w.AddJob(ctx, "job-2", job.Definition{Type: "echo", Args: []any{"x"}}))

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = w.RunJob(ctx, "job-1")
		}()
		require.Eventually(t, func() bool { return len(w.RunningJobIDs()) == 1 }, time.Second, time.Millisecond)
		rec.reset()

		err := w.Destroy(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Can't destroy worker: running jobs in queue: job-1")
		assert.True(t, w.IsReady())
		assert.False(t, w.IsDestroyed())
		assert.Equal(t, []string{"job-1", "job-2"}, w.JobIDs())
		assert.Empty(t, rec.types())

		close(g.release)
		<-done
	})

	t.Run("성공", func(t *testing.T) {
		w, rec := newReadyWorker(t)
		require.NoError(t, w.AddJob(ctx, "job-1", job.Definition{Type: "echo", Args: []any{"x"}}))
		require.NoError(t, w.AddJob(ctx, "job-2", job.Definition{Type: "echo", Args: []any{"y"}}))
		rec.reset()

		require.NoError(t, w.Destroy(ctx))
		assert.True(t, w.IsDestroyed())
		assert.False(t, w.IsReady())
		assert.Empty(t, w.JobIDs())
		assert.Equal(t, []EventType{EventJobRemoved, EventJobRemoved, EventDestroyed}, rec.types())

		// destroyed는 최종 상태이다.
		assert.Same(t, ErrDestroyNotReady, w.Destroy(ctx))
		_, err := w.RunJob(ctx, "job-1")
		assert.Same(t, ErrDestroyed, err)
	})
}

func TestWorker_DestroyForce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w, rec := newReadyWorker(t)

	g := newGate(nil)
	require.NoError(t, w.AddJob(ctx, "job-1", job.New(job.Echo, g)))

	result := make(chan job.Snapshot, 1)
	go func() {
		snap, _ := w.RunJob(ctx, "job-1")
		result <- snap
	}()
	require.Eventually(t, func() bool { return len(w.RunningJobIDs()) == 1 }, time.Second, time.Millisecond)

	require.NoError(t, w.DestroyForce(ctx))
	assert.True(t, w.IsDestroyed())
	assert.True(t, (<-result).IsKilled)
	assert.Contains(t, rec.types(), EventDestroyed)
}
