package fetcher

import (
	"time"
)

// Options Fetcher 체인 구성 옵션입니다.
type Options struct {
	// Timeout 요청 하나의 최대 시간
	Timeout time.Duration

	// MaxRetries 일시적 실패 시 최대 재시도 횟수 (0 ~ 10)
	MaxRetries int

	// MinRetryDelay, MaxRetryDelay 재시도 대기 시간의 범위
	MinRetryDelay time.Duration
	MaxRetryDelay time.Duration

	// RateLimit 초당 최대 요청 수 (0 이하면 제한 없음)
	RateLimit float64

	// MaxBodyBytes 응답 본문의 최대 크기 (0 이하면 10MB)
	MaxBodyBytes int64
}

// New 옵션에 따라 Fetcher 체인을 구성합니다.
//
// 요청 흐름: RateLimit → Retry → StatusCode → MaxBytes → HTTP
func New(opts Options) Fetcher {
	var f Fetcher = NewHTTPFetcher(opts.Timeout)
	f = NewMaxBytesFetcher(f, opts.MaxBodyBytes)
	f = NewStatusCodeFetcher(f)
	f = NewRetryFetcher(f, opts.MaxRetries, opts.MinRetryDelay, opts.MaxRetryDelay)
	f = NewRateLimitFetcher(f, opts.RateLimit, 1)

	return f
}
