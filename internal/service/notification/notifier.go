// Package notification 예약 실행 결과 등 운영 메시지를 외부 메신저로 전달합니다.
package notification

import (
	"context"

	"github.com/darkkaiser/job-dispatcher/internal/config"
)

// component 로깅용 컴포넌트 이름
const component = "notification"

// Notifier 메시지 하나를 외부 채널로 전송합니다.
//
// 메시지는 텔레그램 HTML 파싱 모드로 해석되므로, 사용자 입력이나 작업 결과를 포함할 때는
// 호출자가 html.EscapeString으로 이스케이프해야 합니다.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Noop 알림 채널이 설정되지 않았을 때 사용하는 Notifier입니다. 모든 메시지를 버립니다.
type Noop struct{}

func (Noop) Notify(context.Context, string) error { return nil }

// New 설정에 따라 Notifier를 생성합니다. 텔레그램이 설정되지 않았다면 Noop을 반환합니다.
func New(cfg config.NotifierConfig, debug bool) (Notifier, error) {
	if !cfg.Telegram.Enabled() {
		return Noop{}, nil
	}

	return NewTelegram(cfg.Telegram, debug)
}
