package httputil

import (
	"errors"
	"net/http"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/model/response"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
)

// StatusCodeOf AppError의 분류를 HTTP 상태 코드로 변환합니다.
//
// 잘못된 입력은 400, 존재하지 않는 대상은 404, 현재 상태와 충돌하는 요청은 409로 응답하며
// 그 외의 분류는 모두 서버 오류(500)로 취급합니다.
func StatusCodeOf(err error) int {
	switch apperrors.UnderlyingType(err) {
	case apperrors.InvalidInput:
		return http.StatusBadRequest
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict, apperrors.InvalidState:
		return http.StatusConflict
	case apperrors.Timeout:
		return http.StatusGatewayTimeout
	case apperrors.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler Echo 프레임워크의 커스텀 HTTP 에러 핸들러입니다.
//
// 핸들러가 반환한 에러를 {result_code, message} 형식의 JSON으로 응답합니다.
//   - *echo.HTTPError: 지정된 상태 코드와 메시지를 그대로 사용합니다.
//   - *apperrors.AppError: 에러 분류에 따라 상태 코드를 결정하고 에러 메시지를 전달합니다.
//   - 그 외: 500 Internal Server Error로 응답하며 내부 메시지는 노출하지 않습니다.
//
// 5xx는 Error, 4xx는 Warn 레벨로 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := constants.ErrMsgInternalServer
	errorType := ""

	var he *echo.HTTPError
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &he):
		code = he.Code
		switch msg := he.Message.(type) {
		case string:
			message = msg
		case response.ErrorResponse:
			message = msg.Message
		}
		if code == http.StatusNotFound && he.Message == http.StatusText(http.StatusNotFound) {
			message = constants.ErrMsgNotFound
		}

	case errors.As(err, &appErr):
		code = StatusCodeOf(err)
		payload := apperrors.ToPayload(err)
		errorType = payload.Type
		message = payload.Message
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		ErrorType:  errorType,
		Message:    message,
	})
}
