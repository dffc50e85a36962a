// Package handler v1 API의 요청을 Dispatcher 호출로 변환하는 핸들러를 제공합니다.
//
// 요청 처리 실패(존재하지 않는 Worker, 이미 할당된 작업 등)는 에러 분류에 따른 4xx/5xx 응답이 되고,
// 요청은 성공했지만 개별 작업이 실패한 경우는 200 응답 본문의 error 항목으로 전달됩니다.
package handler

import (
	"errors"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/constants"
	apihandler "github.com/darkkaiser/job-dispatcher/internal/service/api/handler"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/httputil"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler v1 API 핸들러입니다.
type Handler struct {
	dispatcher *dispatch.Dispatcher
}

// NewHandler Handler 인스턴스를 생성합니다. d가 nil이면 panic이 발생합니다.
func NewHandler(d *dispatch.Dispatcher) *Handler {
	if d == nil {
		panic("Dispatcher는 필수입니다")
	}

	return &Handler{dispatcher: d}
}

// bind 요청 본문을 디코딩한 뒤 validate 태그에 따라 검증합니다.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		// 작업 정의 디코딩 단계의 검증 실패(Args must be array 등)는 메시지를 그대로 전달한다.
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return httputil.NewBadRequestError(appErr.Message())
		}
		return httputil.NewBadRequestError(constants.ErrMsgInvalidBody)
	}

	if err := apihandler.ValidateRequest(req); err != nil {
		return httputil.NewBadRequestError(apihandler.FormatValidationError(err))
	}

	return nil
}

// log 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
