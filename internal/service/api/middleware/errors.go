package middleware

import (
	"fmt"

	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/httputil"
)

var (
	// ErrRateLimitExceeded 허용된 요청 속도를 초과했을 때 반환됩니다.
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)

	// ErrUnsupportedMediaType 요청 본문의 Content-Type이 기대와 다를 때 반환됩니다.
	ErrUnsupportedMediaType = httputil.NewUnsupportedMediaTypeError(constants.ErrMsgUnsupportedMedia)
)

// newErrPanicRecovered error가 아닌 값으로 발생한 panic을 AppError로 감쌉니다.
func newErrPanicRecovered(r any) error {
	return apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
}
