package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/job-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/job-dispatcher/internal/service/api/middleware"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig Echo 서버 생성에 필요한 설정입니다.
type HTTPServerConfig struct {
	Debug bool

	// AllowOrigins CORS 허용 Origin 목록
	AllowOrigins []string

	// RequestTimeout 0이면 constants.DefaultRequestTimeout이 적용됩니다.
	RequestTimeout time.Duration

	// RateLimitPerSecond, RateLimitBurst IP별 요청 속도 제한입니다.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// NewHTTPServer 미들웨어 체인과 에러 핸들러가 설정된 Echo 인스턴스를 생성합니다.
//
// 미들웨어 적용 순서:
//  1. PanicRecovery  - 이후 단계에서 발생한 panic 복구
//  2. RequestID      - 요청 추적용 ID 부여
//  3. Server 헤더 제거
//  4. HTTPLogger     - 접근 로그
//  5. RateLimit      - IP별 요청 속도 제한
//  6. BodyLimit      - 요청 본문 크기 제한
//  7. Timeout        - 요청 처리 시간 제한
//  8. CORS
//  9. Secure         - 보안 헤더
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	// 작업 실행 결과를 기다리는 요청이 있으므로 쓰기 제한은 요청 타임아웃보다 길어야 한다.
	e.Server.WriteTimeout = timeout + 10*time.Second
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}
	e.HTTPErrorHandler = httputil.ErrorHandler

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	if cfg.RateLimitPerSecond > 0 && cfg.RateLimitBurst > 0 {
		e.Use(appmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: timeout,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))
	e.Use(middleware.Secure())

	return e
}
