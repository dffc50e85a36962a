package response

// ErrorResponse 요청 처리에 실패했을 때의 응답 본문입니다.
type ErrorResponse struct {
	// ResultCode HTTP 상태 코드와 동일한 값입니다.
	ResultCode int `json:"result_code" example:"404"`

	// ErrorType 에러 분류입니다. 디스패처가 반환한 에러일 때만 채워집니다.
	ErrorType string `json:"error_type,omitempty" example:"NotFound"`

	Message string `json:"message" example:"Worker worker-1 DNE"`
}
