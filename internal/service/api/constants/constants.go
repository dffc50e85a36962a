// Package constants API 서비스 전반에서 공유하는 컴포넌트 이름, 기본값, 메시지를 정의합니다.
package constants

import "time"

// 로그 발생 위치(컴포넌트) 식별을 위한 상수입니다.
const (
	ComponentService      = "api.service"
	ComponentHandler      = "api.handler"
	ComponentMiddleware   = "api.middleware"
	ComponentRateLimit    = "api.middleware.rate_limit"
	ComponentErrorHandler = "api.error_handler"
)

// 서버 설정 기본값입니다.
const (
	// DefaultRequestTimeout 설정에 요청 타임아웃이 지정되지 않았을 때 적용됩니다.
	DefaultRequestTimeout = 60 * time.Second

	// DefaultMaxBodySize 요청 본문의 최대 크기입니다. 작업 정의 배열이 들어오므로 넉넉하게 잡는다.
	DefaultMaxBodySize = "1M"

	DefaultReadTimeout       = 30 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// ShutdownTimeout Graceful Shutdown 시 최대 대기 시간
	ShutdownTimeout = 5 * time.Second
)

// 헬스체크 상태 값입니다.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"

	DependencyDispatcher = "dispatcher"
)

// URL 경로 및 쿼리 파라미터 키입니다.
const (
	ParamWorkerID = "id"
	ParamJobID    = "id"
	QueryForce    = "force"
)

// 클라이언트에게 반환되는 에러 메시지입니다.
const (
	ErrMsgBadRequest          = "잘못된 요청입니다"
	ErrMsgInvalidBody         = "요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요"
	ErrMsgNotFound            = "요청한 리소스를 찾을 수 없습니다"
	ErrMsgTooManyRequests     = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
	ErrMsgUnsupportedMedia    = "지원하지 않는 Content-Type 형식입니다"
	ErrMsgInternalServer      = "내부 서버 오류가 발생했습니다"
	ErrMsgInvalidForceQuery   = "force 파라미터는 true 또는 false 여야 합니다"
	ErrMsgDispatcherNotActive = "디스패처가 초기화되지 않았습니다"
)

// 내부 로깅 메시지입니다.
const (
	LogMsgServiceStarting       = "API 서비스 시작중..."
	LogMsgServiceStarted        = "API 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "API 서비스 중지중..."
	LogMsgServiceStopped        = "API 서비스 중지됨"
	LogMsgServiceUnexpectedExit = "API 서비스가 예기치 않게 종료되었습니다"

	LogMsgHTTPServerStarting      = "API 서비스 > http 서버 시작"
	LogMsgHTTPServerStopped       = "API 서비스 > http 서버 중지됨"
	LogMsgHTTPServerShutdownError = "API 서비스 > http 서버 종료 중 오류 발생"
	LogMsgHTTPServerFatalError    = "API 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다."

	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"
)

// SensitiveQueryParams 로그에 남길 때 마스킹 처리해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"api_key",
	"password",
	"token",
	"secret",
}
