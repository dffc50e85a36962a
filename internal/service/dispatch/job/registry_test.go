package job

import (
	"encoding/json"
	"errors"
	"testing"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Type
	}{
		{"echo", Echo},
		{"Echo", Echo},
		{"filter", Filter},
		{"githubStatus", RemoteStatus},
		{"remote-status", RemoteStatus},
		{"remote_status", RemoteStatus},
		{"remoteStatus", RemoteStatus},
		{"scrape", Scrape},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseType("bogus")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	assert.Contains(t, err.Error(), "Unknown job type: bogus")
}

func TestDefinition_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var d Definition
	require.NoError(t, json.Unmarshal([]byte(`{"type":"echo","args":["hi",10]}`), &d))
	assert.Equal(t, Definition{Type: "echo", Args: []any{"hi", float64(10)}}, d)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"echo"}`), &d))
	assert.Nil(t, d.Args)

	err := json.Unmarshal([]byte(`{"type":"echo","args":{"message":"hi"}}`), &d)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArgsNotArray)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register(Echo, func(args []any) (Runner, error) {
		if len(args) == 0 {
			return nil, errors.New("message is required")
		}
		return resolveRunner(args[0]), nil
	}))

	err := r.Register(Echo, func([]any) (Runner, error) { return nil, nil })
	assert.True(t, apperrors.Is(err, apperrors.Conflict))
	assert.True(t, apperrors.Is(r.Register(Unknown, func([]any) (Runner, error) { return nil, nil }), apperrors.InvalidInput))
	assert.Panics(t, func() { r.MustRegister(Echo, nil) })

	t.Run("Definition", func(t *testing.T) {
		j, err := r.Build(Definition{Type: "echo", Args: []any{"hello"}})
		require.NoError(t, err)
		assert.Equal(t, Echo, j.Type())
	})

	t.Run("인스턴스", func(t *testing.T) {
		inst := New(Filter, resolveRunner(nil))
		j, err := r.Build(inst)
		require.NoError(t, err)
		assert.Same(t, inst, j)
	})

	t.Run("생성 실패", func(t *testing.T) {
		_, err := r.Build(Definition{Type: "echo"})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
		assert.Contains(t, err.Error(), "message is required")
	})

	t.Run("알 수 없는 타입", func(t *testing.T) {
		_, err := r.Build(Definition{Type: "nope"})
		assert.Contains(t, err.Error(), "Unknown job type: nope")
	})

	t.Run("등록되지 않은 타입", func(t *testing.T) {
		_, err := r.Build(Definition{Type: "filter"})
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("nil", func(t *testing.T) {
		_, err := r.Build(nil)
		assert.Same(t, ErrJobRequired, err)

		var nilJob *Job
		_, err = r.Build(nilJob)
		assert.Same(t, ErrJobRequired, err)
	})
}

func TestDecodeArg(t *testing.T) {
	t.Parallel()

	var delay int64
	ok, err := DecodeArg([]any{"msg", float64(250)}, 1, &delay)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 250, delay)

	ok, err = DecodeArg([]any{"msg", "300"}, 1, &delay)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 300, delay)

	ok, err = DecodeArg([]any{"msg"}, 1, &delay)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = DecodeArg([]any{"msg", "abc"}, 1, &delay)
	assert.Error(t, err)
}
