package errors

import "strconv"

// ErrorType 에러의 성격을 분류하는 타입입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그, 예상하지 못한 상태)
	Internal

	// System 파일, 네트워크 등 인프라 수준의 장애
	System

	// InvalidInput 잘못된 입력 (작업 정의 형식 오류, 필수 값 누락, 알 수 없는 작업 타입 등)
	InvalidInput

	// InvalidState 현재 상태에서 허용되지 않는 요청 (초기화되지 않은 Worker, 실행 중이 아닌 작업의 Kill 등)
	InvalidState

	// Conflict 리소스 충돌 (중복 ID, 이미 실행 중인 작업, 다른 Worker에 이미 할당된 작업 등)
	Conflict

	// NotFound 존재하지 않는 작업 또는 Worker
	NotFound

	// ExecutionFailed 작업 실행 실패 (외부 API 호출 실패 등)
	ExecutionFailed

	// ParsingFailed 응답 데이터 파싱 실패
	ParsingFailed

	// Timeout 시간 초과
	Timeout

	// Unavailable 외부 서비스 일시적 사용 불가
	Unavailable

	// Canceled 협력적 취소에 의해 중단됨
	Canceled
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	InvalidInput:    "InvalidInput",
	InvalidState:    "InvalidState",
	Conflict:        "Conflict",
	NotFound:        "NotFound",
	ExecutionFailed: "ExecutionFailed",
	ParsingFailed:   "ParsingFailed",
	Timeout:         "Timeout",
	Unavailable:     "Unavailable",
	Canceled:        "Canceled",
}

func (t ErrorType) String() string {
	if t >= 0 && int(t) < len(errorTypeNames) {
		return errorTypeNames[t]
	}
	return "ErrorType(" + strconv.Itoa(int(t)) + ")"
}

// ParseErrorType 문자열로 표현된 에러 타입을 ErrorType으로 변환합니다.
// 알 수 없는 문자열은 Unknown으로 변환됩니다.
func ParseErrorType(s string) ErrorType {
	for i, name := range errorTypeNames {
		if name == s {
			return ErrorType(i)
		}
	}
	return Unknown
}
