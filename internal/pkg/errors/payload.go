package errors

import (
	"context"
	"errors"
	"fmt"
)

// Payload 프로세스 경계(HTTP 응답, 알림 메시지 등)를 넘어 전달되는 에러의 직렬화 형태입니다.
//
// 스택 정보와 원인 에러 객체는 포함하지 않으며, 에러의 분류와 사람이 읽을 수 있는 메시지만 전달합니다.
type Payload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (p Payload) Error() string {
	return fmt.Sprintf("[%s] %s", p.Type, p.Message)
}

// ToPayload 에러를 직렬화 가능한 Payload로 변환합니다. err가 nil이면 nil을 반환합니다.
//
// AppError가 아닌 에러는 context 취소/시간 초과를 각각 Canceled/Timeout으로,
// 그 외는 Unknown으로 분류합니다.
func ToPayload(err error) *Payload {
	if err == nil {
		return nil
	}

	var p *Payload
	if errors.As(err, &p) && p != nil {
		cp := *p
		return &cp
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		msg := appErr.message
		if appErr.cause != nil {
			msg += ": " + appErr.cause.Error()
		}
		return &Payload{Type: UnderlyingType(err).String(), Message: msg}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return &Payload{Type: Canceled.String(), Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return &Payload{Type: Timeout.String(), Message: err.Error()}
	}

	return &Payload{Type: Unknown.String(), Message: err.Error()}
}

// FromPayload 직렬화된 Payload를 다시 AppError로 복원합니다.
func FromPayload(p *Payload) error {
	if p == nil {
		return nil
	}
	return New(ParseErrorType(p.Type), p.Message)
}
