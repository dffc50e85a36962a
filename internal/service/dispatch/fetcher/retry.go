package fetcher

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
)

const (
	minAllowedRetries = 0
	maxAllowedRetries = 10

	defaultMinRetryDelay = time.Second
	defaultMaxRetryDelay = 30 * time.Second
)

// RetryFetcher 일시적인 실패(네트워크 오류, 5xx, 429)에 대해 지수 백오프와 지터를 적용하여 재시도합니다.
// 멱등하지 않은 메서드(POST, PATCH)는 재시도하지 않습니다.
type RetryFetcher struct {
	delegate Fetcher

	maxRetries    int
	minRetryDelay time.Duration
	maxRetryDelay time.Duration
}

var _ Fetcher = (*RetryFetcher)(nil)

func NewRetryFetcher(delegate Fetcher, maxRetries int, minRetryDelay, maxRetryDelay time.Duration) *RetryFetcher {
	maxRetries = min(max(maxRetries, minAllowedRetries), maxAllowedRetries)

	if minRetryDelay <= 0 {
		minRetryDelay = defaultMinRetryDelay
	}
	if maxRetryDelay <= 0 {
		maxRetryDelay = defaultMaxRetryDelay
	}
	if maxRetryDelay < minRetryDelay {
		maxRetryDelay = minRetryDelay
	}

	return &RetryFetcher{
		delegate:      delegate,
		maxRetries:    maxRetries,
		minRetryDelay: minRetryDelay,
		maxRetryDelay: maxRetryDelay,
	}
}

func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	retries := f.maxRetries
	if req.Method == http.MethodPost || req.Method == http.MethodPatch {
		retries = 0
	}
	if req.Body != nil && req.GetBody == nil {
		retries = 0
	}

	var lastErr error
	for i := 0; ; i++ {
		if i > 0 {
			delay := f.backoff(i)

			applog.WithComponentAndFields(component, applog.Fields{
				"url":         redactURL(req.URL),
				"retry":       i,
				"max_retries": retries,
				"delay":       delay.String(),
				"error":       lastErr.Error(),
			}).Warn("재시도 대기 중: 일시적 오류로 인해 요청 재시도를 준비합니다")

			timer := time.NewTimer(delay)
			select {
			case <-req.Context().Done():
				timer.Stop()
				return nil, req.Context().Err()
			case <-timer.C:
			}

			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, apperrors.Wrap(err, apperrors.Internal, "재시도를 위한 요청 본문을 다시 만들지 못했습니다")
				}
				req = req.Clone(req.Context())
				req.Body = body
			}
		}

		resp, err := f.delegate.Do(req)
		if err == nil && !isRetriableStatus(resp.StatusCode) {
			return resp, nil
		}

		if err == nil {
			lastErr = CheckResponseStatus(resp)
		} else {
			lastErr = err
		}

		if i >= retries || (err != nil && !isRetriable(err)) || req.Context().Err() != nil {
			if err == nil {
				// 재시도 대상 상태 코드라도 더 이상 재시도하지 않는다면 응답을 그대로 돌려준다.
				return resp, nil
			}
			if resp != nil {
				drainAndCloseBody(resp.Body)
			}
			return nil, err
		}

		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
	}
}

// backoff i번째 재시도 전의 대기 시간 (Full Jitter)
func (f *RetryFetcher) backoff(i int) time.Duration {
	delay := f.minRetryDelay << (i - 1)
	if delay > f.maxRetryDelay || delay <= 0 {
		delay = f.maxRetryDelay
	}

	delay = time.Duration(rand.Int64N(int64(delay) + 1))
	if delay < time.Millisecond {
		delay = f.minRetryDelay
	}

	return delay
}

func isRetriableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true
	case http.StatusNotImplemented, http.StatusHTTPVersionNotSupported, http.StatusNetworkAuthenticationRequired:
		return false
	}
	return code >= 500
}

func isRetriable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return isRetriableStatus(statusErr.StatusCode)
	}

	return apperrors.Is(err, apperrors.Unavailable)
}
