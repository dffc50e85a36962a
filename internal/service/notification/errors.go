package notification

import (
	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
)

// ErrEmptyMessage 전송할 메시지가 비어 있을 때 반환됩니다.
var ErrEmptyMessage = apperrors.New(apperrors.InvalidInput, "전송할 메시지가 비어 있습니다")

func newErrBotInit(err error) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
}

func newErrSendFailed(attempts int, err error) error {
	return apperrors.Wrapf(err, apperrors.Unavailable, "텔레그램 메시지 전송에 실패했습니다 (시도 횟수: %d)", attempts)
}
