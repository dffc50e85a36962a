package system

// DependencyStatus 내부 구성 요소 하나의 상태입니다.
type DependencyStatus struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty" example:"workers: 2, jobs: 5"`
}
