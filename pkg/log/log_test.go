package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithComponentAndFields(t *testing.T) {
	t.Parallel()

	fields := Fields{"worker_id": "worker-1"}
	entry := WithComponentAndFields("dispatch.worker", fields)

	assert.Equal(t, "dispatch.worker", entry.Data["component"])
	assert.Equal(t, "worker-1", entry.Data["worker_id"])
	assert.NotContains(t, fields, "component", "전달된 맵은 변경되지 않아야 합니다")
}

func TestWithComponent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "api", WithComponent("api").Data["component"])
}

func TestMaskSensitiveData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"abc", "***"},
		{"abcdefgh", "abcd***"},
		{"123456789:ABCDEFGHIJKLMNOP", "1234***MNOP"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MaskSensitiveData(tt.input))
	}
}
