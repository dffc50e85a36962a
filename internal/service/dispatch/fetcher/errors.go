package fetcher

import (
	"fmt"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
)

// HTTPStatusError 허용되지 않은 HTTP 상태 코드를 받았을 때 반환됩니다.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP 요청 실패 (%s): %s", e.Status, e.URL)
}

func newErrInvalidURL(url string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "요청 URL('%s')이 올바르지 않습니다", url)
}

func newErrHTTPStatus(statusErr *HTTPStatusError) error {
	errType := apperrors.ExecutionFailed
	if statusErr.StatusCode >= 500 || statusErr.StatusCode == 429 {
		errType = apperrors.Unavailable
	}
	return apperrors.Wrap(statusErr, errType, "원격 서버가 요청을 처리하지 못했습니다")
}

func newErrBodyTooLarge(limit int64) error {
	return apperrors.Newf(apperrors.ExecutionFailed, "응답 본문이 허용된 크기(%d bytes)를 초과했습니다", limit)
}

func newErrRequestFailed(url string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.Unavailable, "HTTP 요청('%s')을 전송하지 못했습니다", url)
}
