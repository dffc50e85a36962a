package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected *Payload
	}{
		{"nil", nil, nil},
		{"AppError", New(NotFound, "ID job-9 not in job queue"), &Payload{Type: "NotFound", Message: "ID job-9 not in job queue"}},
		{"래핑된 AppError", Wrap(errStd, ExecutionFailed, "요청 실패"), &Payload{Type: "ExecutionFailed", Message: "요청 실패: standard error"}},
		{"context 취소", fmt.Errorf("run: %w", context.Canceled), &Payload{Type: "Canceled", Message: "run: context canceled"}},
		{"context 시간 초과", context.DeadlineExceeded, &Payload{Type: "Timeout", Message: "context deadline exceeded"}},
		{"표준 에러", errStd, &Payload{Type: "Unknown", Message: "standard error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToPayload(tt.err))
		})
	}
}

func TestPayload_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(ToPayload(New(Conflict, "Job already running")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Conflict","message":"Job already running"}`, string(b))

	var p Payload
	require.NoError(t, json.Unmarshal(b, &p))

	restored := FromPayload(&p)
	assert.True(t, Is(restored, Conflict))
	assert.Equal(t, "[Conflict] Job already running", restored.Error())
	assert.Nil(t, FromPayload(nil))
}

func TestToPayload_PassesThroughPayload(t *testing.T) {
	t.Parallel()

	p := &Payload{Type: "Timeout", Message: "slow"}
	got := ToPayload(fmt.Errorf("wrapped: %w", p))

	assert.Equal(t, p, got)
	assert.NotSame(t, p, got)
}
