package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicRecovery(t *testing.T) {
	t.Parallel()

	newContext := func() echo.Context {
		e := echo.New()
		return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	}

	t.Run("정상 처리", func(t *testing.T) {
		t.Parallel()

		h := PanicRecovery()(func(c echo.Context) error { return nil })
		assert.NoError(t, h(newContext()))
	})

	t.Run("핸들러 에러는 그대로 전달", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		h := PanicRecovery()(func(c echo.Context) error { return boom })
		assert.ErrorIs(t, h(newContext()), boom)
	})

	t.Run("error 값 panic", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		h := PanicRecovery()(func(c echo.Context) error { panic(boom) })

		var err error
		require.NotPanics(t, func() { err = h(newContext()) })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("error가 아닌 값 panic은 Internal로 변환", func(t *testing.T) {
		t.Parallel()

		h := PanicRecovery()(func(c echo.Context) error { panic("nil map") })

		var err error
		require.NotPanics(t, func() { err = h(newContext()) })
		assert.True(t, apperrors.Is(err, apperrors.Internal))
		assert.Contains(t, err.Error(), "nil map")
	})

	t.Run("ErrAbortHandler는 다시 panic", func(t *testing.T) {
		t.Parallel()

		h := PanicRecovery()(func(c echo.Context) error { panic(http.ErrAbortHandler) })
		assert.PanicsWithValue(t, http.ErrAbortHandler, func() { _ = h(newContext()) })
	})
}
