package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStd = errors.New("standard error")

// =============================================================================
// Creation
// =============================================================================

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		errType ErrorType
		message string
	}{
		{"InvalidInput", InvalidInput, "id required"},
		{"InvalidState", InvalidState, "Can't add job to uninitialized worker"},
		{"NotFound", NotFound, "ID job-1 not in job queue"},
		{"Empty Message", Conflict, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.errType, tt.message)

			require.Error(t, err)
			assert.Equal(t, fmt.Sprintf("[%s] %s", tt.errType, tt.message), err.Error())
			assert.True(t, Is(err, tt.errType))

			var appErr *AppError
			require.True(t, As(err, &appErr))
			assert.Equal(t, tt.errType, appErr.Type())
			assert.Equal(t, tt.message, appErr.Message())
			assert.NotEmpty(t, appErr.Stack())
		})
	}
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf(NotFound, "Worker %s DNE", "worker-1")

	assert.Equal(t, "[NotFound] Worker worker-1 DNE", err.Error())
}

// =============================================================================
// Wrapping
// =============================================================================

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("표준 에러 래핑", func(t *testing.T) {
		wrapped := Wrap(errStd, ExecutionFailed, "상태 조회 실패")

		assert.Equal(t, "[ExecutionFailed] 상태 조회 실패: standard error", wrapped.Error())
		assert.True(t, errors.Is(wrapped, errStd))
		assert.Equal(t, errStd, RootCause(wrapped))
	})

	t.Run("nil 에러", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, Internal, "무시됨"))
		assert.Nil(t, Wrapf(nil, Internal, "무시됨 %d", 1))
	})

	t.Run("중첩 체인", func(t *testing.T) {
		err := Wrap(Wrap(New(NotFound, "not found"), Internal, "internal"), System, "system")

		assert.True(t, Is(err, System))
		assert.True(t, Is(err, Internal))
		assert.True(t, Is(err, NotFound))
		assert.False(t, Is(err, Conflict))
		assert.Equal(t, NotFound, UnderlyingType(err))
	})
}

func TestUnderlyingType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Unknown, UnderlyingType(nil))
	assert.Equal(t, Unknown, UnderlyingType(errStd))
	assert.Equal(t, Timeout, UnderlyingType(Wrap(errStd, Timeout, "timeout")))
	assert.Equal(t, InvalidInput, UnderlyingType(fmt.Errorf("outer: %w", New(InvalidInput, "bad"))))
}

func TestRootCause(t *testing.T) {
	t.Parallel()

	assert.Nil(t, RootCause(nil))
	assert.Equal(t, errStd, RootCause(errStd))

	root := New(NotFound, "root")
	assert.Equal(t, root, RootCause(Wrap(root, Internal, "wrap")))
}

// =============================================================================
// Formatting
// =============================================================================

func TestFormat(t *testing.T) {
	t.Parallel()

	err := Wrap(New(NotFound, "inner"), Internal, "outer")

	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	assert.Equal(t, err.Error(), fmt.Sprintf("%v", err))
	assert.Equal(t, fmt.Sprintf("%q", err.Error()), fmt.Sprintf("%q", err))

	verbose := fmt.Sprintf("%+v", err)
	assert.True(t, strings.HasPrefix(verbose, "[Internal] outer"))
	assert.Contains(t, verbose, "Caused by:")
	assert.Contains(t, verbose, "[NotFound] inner")
	assert.Equal(t, 1, strings.Count(verbose, "Stack trace:"), "스택은 가장 안쪽 AppError에서만 출력되어야 합니다")
}

func TestFormat_ExternalCause(t *testing.T) {
	t.Parallel()

	verbose := fmt.Sprintf("%+v", Wrap(errStd, System, "io"))

	assert.Contains(t, verbose, "Stack trace:")
	assert.Contains(t, verbose, "errors_test.go")
	assert.Contains(t, verbose, "\tstandard error")
}
