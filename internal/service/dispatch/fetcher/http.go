package fetcher

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/darkkaiser/job-dispatcher/internal/pkg/version"
)

const defaultTimeout = 30 * time.Second

// HTTPFetcher net/http 클라이언트로 요청을 수행하는 기본 Fetcher입니다.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher timeout이 0 이하라면 기본값(30초)을 사용합니다.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: "job-dispatcher/" + version.Get().Version,
	}
}

// Client 내부 http.Client를 반환합니다. 다른 라이브러리와 연결 설정을 공유할 때 사용합니다.
func (f *HTTPFetcher) Client() *http.Client {
	return f.client
}

func (f *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// 취소/시간 초과는 원인을 그대로 보존하여 상위에서 구분할 수 있게 한다.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return resp, err
		}
		return resp, newErrRequestFailed(redactURL(req.URL), err)
	}

	return resp, nil
}
