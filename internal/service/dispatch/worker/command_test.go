package worker

import (
	"context"
	"testing"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := map[string]Command{
		"initialize":   CommandInitialize,
		"addJob":       CommandAddJob,
		"add_job":      CommandAddJob,
		"add-job":      CommandAddJob,
		"removeJob":    CommandRemoveJob,
		"run_all_jobs": CommandRunAllJobs,
		"runJob":       CommandRunJob,
		"destroy":      CommandDestroy,
	}

	for in, want := range tests {
		got, err := ParseCommand(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCommand("explode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Command explode DNE")
}

func TestWorker_Exec(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := &recorder{}
	w := New(WithRegistry(newTestRegistry()), WithObserver(rec))

	_, err := w.ExecName(ctx, "initialize")
	require.NoError(t, err)
	assert.True(t, w.IsReady())

	id, err := w.ExecName(ctx, "addJob", "job-1", map[string]any{"type": "echo", "args": []any{"hi"}})
	require.NoError(t, err)
	assert.Equal(t, "job-1", id)

	_, err = w.Exec(ctx, CommandAddJob, "job-2", job.Definition{Type: "echo", Args: []any{"there"}})
	require.NoError(t, err)

	_, err = w.Exec(ctx, CommandAddJob, "job-3", map[string]any{"type": "echo", "args": "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Args must be array")

	out, err := w.Exec(ctx, CommandRunJob, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "hi", out.(job.Snapshot).Result)

	out, err = w.Exec(ctx, CommandRunAllJobs)
	require.NoError(t, err)
	assert.Len(t, out.(map[string]job.Snapshot), 2)

	_, err = w.Exec(ctx, CommandRemoveJob, "job-2")
	require.NoError(t, err)

	_, err = w.Exec(ctx, CommandRemoveJob, 42)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))

	rec.reset()
	_, err = w.ExecName(ctx, "explode")
	require.Error(t, err)
	assert.Equal(t, []EventType{EventError}, rec.types())

	_, err = w.Exec(ctx, Command(99))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DNE")

	_, err = w.Exec(ctx, CommandDestroy)
	require.NoError(t, err)
	assert.True(t, w.IsDestroyed())
}

func TestEventType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "job:run:killed", EventJobRunKilled.String())
	assert.Equal(t, "destroy:error", EventDestroyError.String())
	assert.Equal(t, "EventType(0)", EventType(0).String())
}
