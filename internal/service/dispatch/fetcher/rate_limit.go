package fetcher

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitFetcher 초당 요청 수를 제한합니다. 대기 중 요청이 취소되면 즉시 반환합니다.
type RateLimitFetcher struct {
	delegate Fetcher
	limiter  *rate.Limiter
}

var _ Fetcher = (*RateLimitFetcher)(nil)

// NewRateLimitFetcher rps가 0 이하라면 제한 없이 delegate를 그대로 반환합니다.
func NewRateLimitFetcher(delegate Fetcher, rps float64, burst int) Fetcher {
	if rps <= 0 {
		return delegate
	}
	if burst < 1 {
		burst = 1
	}

	return &RateLimitFetcher{
		delegate: delegate,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (f *RateLimitFetcher) Do(req *http.Request) (*http.Response, error) {
	if err := f.limiter.Wait(req.Context()); err != nil {
		// 취소가 원인이라면 context 에러를 그대로 돌려준다.
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	return f.delegate.Do(req)
}
