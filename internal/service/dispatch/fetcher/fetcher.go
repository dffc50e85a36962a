// Package fetcher 원격 작업(상태 조회, 페이지 수집)이 사용하는 HTTP 요청 수행기와 데코레이터를 제공합니다.
//
// 기본 HTTPFetcher 위에 재시도, 요청 속도 제한, 상태 코드 검사, 응답 크기 제한을 데코레이터로 조합합니다.
//
//	f := fetcher.New(fetcher.Options{Timeout: 10 * time.Second, MaxRetries: 2})
//	resp, err := fetcher.Get(ctx, f, "https://example.com/status.json")
package fetcher

import (
	"context"
	"io"
	"net/http"
)

// component 로깅용 컴포넌트 이름
const component = "dispatch.fetcher"

// Fetcher HTTP 요청을 수행합니다.
//
// 반환된 응답의 Body는 호출자가 닫아야 하며, ctx가 취소되면 즉시 요청을 중단해야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Func 함수를 Fetcher로 사용하기 위한 어댑터입니다.
type Func func(req *http.Request) (*http.Response, error)

func (f Func) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Get 지정된 URL로 GET 요청을 전송합니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newErrInvalidURL(url, err)
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}

// drainAndCloseBody 커넥션 재사용을 위해 남은 본문을 일부 읽어서 버린 뒤 닫는다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, body, 64*1024)
	_ = body.Close()
}
