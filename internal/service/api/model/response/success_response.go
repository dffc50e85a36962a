package response

// SuccessResponse 본문이 필요 없는 요청이 성공했을 때의 응답입니다.
type SuccessResponse struct {
	ResultCode int    `json:"result_code" example:"0"`
	Message    string `json:"message" example:"성공"`
}
