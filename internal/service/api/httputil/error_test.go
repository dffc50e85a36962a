package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidInput", apperrors.New(apperrors.InvalidInput, "bad"), http.StatusBadRequest},
		{"NotFound", apperrors.New(apperrors.NotFound, "dne"), http.StatusNotFound},
		{"Conflict", apperrors.New(apperrors.Conflict, "assigned"), http.StatusConflict},
		{"InvalidState", apperrors.New(apperrors.InvalidState, "not running"), http.StatusConflict},
		{"Timeout", apperrors.New(apperrors.Timeout, "slow"), http.StatusGatewayTimeout},
		{"Unavailable", apperrors.New(apperrors.Unavailable, "down"), http.StatusServiceUnavailable},
		{"Internal", apperrors.New(apperrors.Internal, "bug"), http.StatusInternalServerError},
		{"일반 에러", errors.New("plain"), http.StatusInternalServerError},
		{"래핑된 NotFound", apperrors.Wrap(apperrors.New(apperrors.NotFound, "dne"), apperrors.Unknown, "wrapped"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, StatusCodeOf(tt.err))
		})
	}
}

func serveError(t *testing.T, method string, err error) (*httptest.ResponseRecorder, response.ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/api/v1/workers/worker-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(err, c)

	var body response.ErrorResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("ErrorResponse를 담은 HTTPError", func(t *testing.T) {
		t.Parallel()

		rec, body := serveError(t, http.MethodGet, NewBadRequestError("jobs는 필수입니다"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, http.StatusBadRequest, body.ResultCode)
		assert.Equal(t, "jobs는 필수입니다", body.Message)
		assert.Empty(t, body.ErrorType)
	})

	t.Run("문자열 메시지 HTTPError", func(t *testing.T) {
		t.Parallel()

		rec, body := serveError(t, http.MethodGet, echo.NewHTTPError(http.StatusForbidden, "금지"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "금지", body.Message)
	})

	t.Run("라우트가 없는 경우의 기본 404", func(t *testing.T) {
		t.Parallel()

		rec, body := serveError(t, http.MethodGet, echo.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, constants.ErrMsgNotFound, body.Message)
	})

	t.Run("AppError는 분류에 따른 상태 코드", func(t *testing.T) {
		t.Parallel()

		rec, body := serveError(t, http.MethodGet, apperrors.New(apperrors.Conflict, "Job job-1 already assigned to worker worker-2"))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, http.StatusConflict, body.ResultCode)
		assert.Equal(t, "Conflict", body.ErrorType)
		assert.Equal(t, "Job job-1 already assigned to worker worker-2", body.Message)
	})

	t.Run("알 수 없는 에러는 내부 메시지를 노출하지 않음", func(t *testing.T) {
		t.Parallel()

		rec, body := serveError(t, http.MethodGet, errors.New("db password=secret"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, constants.ErrMsgInternalServer, body.Message)
		assert.NotContains(t, rec.Body.String(), "secret")
	})

	t.Run("HEAD 요청은 본문 없이 응답", func(t *testing.T) {
		t.Parallel()

		rec, _ := serveError(t, http.MethodHead, apperrors.New(apperrors.NotFound, "dne"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Zero(t, rec.Body.Len())
	})

	t.Run("이미 응답이 전송된 경우 아무것도 쓰지 않음", func(t *testing.T) {
		t.Parallel()

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, c.String(http.StatusOK, "ok"))

		ErrorHandler(apperrors.New(apperrors.Internal, "late"), c)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})
}
