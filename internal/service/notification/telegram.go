package notification

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/darkkaiser/job-dispatcher/internal/config"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
	"github.com/darkkaiser/job-dispatcher/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const (
	// messageMaxLength 텔레그램 공식 제한(4096자)에서 HTML 태그 오버헤드를 감안한 분할 기준 길이입니다.
	messageMaxLength = 3900

	httpClientTimeout = 30 * time.Second

	defaultRetryDelay = time.Second
	maxSendAttempts   = 3

	// 채팅방당 초당 1회 정책
	defaultRateLimit = 1
	defaultRateBurst = 5
)

// botClient 텔레그램 봇 API 중 메시지 전송에 필요한 부분입니다.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram 지정된 채팅방으로 HTML 메시지를 보내는 Notifier입니다.
//
// 긴 메시지는 UTF-8 경계에서 나누어 순서대로 전송하며, 429와 5xx 응답은 재시도합니다.
type Telegram struct {
	chatID int64
	client botClient

	limiter    *rate.Limiter
	retryDelay time.Duration
}

var _ Notifier = (*Telegram)(nil)

// NewTelegram 봇 토큰으로 텔레그램 API 클라이언트를 초기화합니다. 토큰 확인을 위해 getMe를 호출합니다.
func NewTelegram(cfg config.TelegramConfig, debug bool) (*Telegram, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"bot_token": applog.MaskSensitiveData(cfg.BotToken),
		"chat_id":   cfg.ChatID,
	}).Debug("텔레그램 봇 API 클라이언트 초기화")

	botAPI, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, &http.Client{Timeout: httpClientTimeout})
	if err != nil {
		return nil, newErrBotInit(err)
	}
	botAPI.Debug = debug

	return newTelegram(cfg.ChatID, botAPI), nil
}

func newTelegram(chatID int64, client botClient) *Telegram {
	return &Telegram{
		chatID:     chatID,
		client:     client,
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
		retryDelay: defaultRetryDelay,
	}
}

// Notify 메시지를 전송합니다. 분할된 조각 중 하나라도 실패하면 남은 조각은 보내지 않습니다.
func (t *Telegram) Notify(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrEmptyMessage
	}

	for remainder := message; remainder != ""; {
		var chunk string
		chunk, remainder = safeSplit(remainder, messageMaxLength)

		if err := t.send(ctx, chunk); err != nil {
			return err
		}
	}

	return nil
}

func (t *Telegram) send(ctx context.Context, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	var lastErr error
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		_, err := t.client.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err

		code, retryAfter := apiErrorOf(err)
		if !shouldRetry(code) || attempt == maxSendAttempts {
			break
		}

		wait := t.retryDelay
		if retryAfter > 0 {
			wait = time.Duration(retryAfter) * time.Second
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": t.chatID,
			"attempt": attempt,
			"wait":    wait.String(),
			"error":   err,
		}).Warn("텔레그램 메시지 전송 실패, 재시도합니다")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"chat_id": t.chatID,
		"error":   lastErr,
	}).Error("텔레그램 메시지 전송 최종 실패")

	return newErrSendFailed(maxSendAttempts, lastErr)
}

// apiErrorOf 텔레그램 API 에러라면 에러 코드와 Retry-After(초)를 반환합니다. 그 외에는 0을 반환합니다.
func apiErrorOf(err error) (code, retryAfter int) {
	var apiErrPtr *tgbotapi.Error
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.RetryAfter
	}

	var apiErr tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.RetryAfter
	}

	return 0, 0
}

// shouldRetry 429와 5xx, 그리고 코드가 없는 네트워크 오류는 재시도합니다. 그 외의 4xx는 재시도하지 않습니다.
func shouldRetry(code int) bool {
	if code >= 400 && code < 500 {
		return code == http.StatusTooManyRequests
	}
	return true
}

// safeSplit UTF-8 문자가 깨지지 않도록 limit 바이트 이내의 마지막 룬 경계에서 자릅니다.
func safeSplit(s string, limit int) (chunk, remainder string) {
	if len(s) <= limit {
		return s, ""
	}

	i := strutil.RuneBoundary(s, limit)
	if i == 0 {
		i = limit
	}

	return s[:i], s[i:]
}
