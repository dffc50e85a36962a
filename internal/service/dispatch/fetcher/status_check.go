package fetcher

import (
	"net/http"
	"slices"
)

// StatusCodeFetcher 허용되지 않은 상태 코드의 응답을 HTTPStatusError로 변환합니다.
// 허용 목록을 지정하지 않으면 2xx만 허용합니다.
type StatusCodeFetcher struct {
	delegate        Fetcher
	allowedStatuses []int
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

func NewStatusCodeFetcher(delegate Fetcher, allowedStatuses ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{
		delegate:        delegate,
		allowedStatuses: allowedStatuses,
	}
}

func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		return resp, err
	}

	if err := CheckResponseStatus(resp, f.allowedStatuses...); err != nil {
		drainAndCloseBody(resp.Body)
		return nil, err
	}

	return resp, nil
}

// CheckResponseStatus 응답의 상태 코드를 검사합니다.
// 5xx와 429는 Unavailable, 그 밖의 실패는 ExecutionFailed로 분류됩니다.
func CheckResponseStatus(resp *http.Response, allowedStatuses ...int) error {
	if len(allowedStatuses) == 0 {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
	} else if slices.Contains(allowedStatuses, resp.StatusCode) {
		return nil
	}

	var u string
	if resp.Request != nil {
		u = redactURL(resp.Request.URL)
	}

	return newErrHTTPStatus(&HTTPStatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        u,
	})
}
