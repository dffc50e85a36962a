package system

// HealthResponse 서버 상태 응답입니다.
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`

	// Uptime 서버가 시작된 이후 경과한 시간(초)
	Uptime int64 `json:"uptime" example:"3600"`

	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}
