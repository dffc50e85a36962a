// Package v1 /api/v1 경로 하위의 디스패처 엔드포인트를 등록합니다.
//
// 주요 엔드포인트:
//   - POST   /api/v1/jobs                        - 작업 등록
//   - GET    /api/v1/jobs                        - 작업 목록 조회
//   - DELETE /api/v1/jobs                        - 할당되지 않은 작업 제거
//   - POST   /api/v1/jobs/:id/kill               - 실행 중인 작업 중단
//   - POST   /api/v1/workers                     - Worker 생성
//   - GET    /api/v1/workers                     - Worker 목록 조회
//   - GET    /api/v1/workers/:id/jobs            - Worker에 할당된 작업 조회
//   - PUT    /api/v1/workers/:id/jobs            - Worker에 작업 할당
//   - DELETE /api/v1/workers/:id/jobs            - Worker에서 작업 회수
//   - GET    /api/v1/workers/:id/jobs/:job_id    - 작업 상태 조회
//   - POST   /api/v1/workers/:id/run             - Worker 작업 일괄 실행
//   - DELETE /api/v1/workers/:id                 - Worker 파괴 (?force=true)
//   - POST   /api/v1/run                         - 작업 일회성 실행
package v1

import (
	"github.com/darkkaiser/job-dispatcher/internal/service/api/middleware"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 등록합니다.
// 본문을 받는 엔드포인트에는 JSON Content-Type 검증 미들웨어가 적용됩니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	g := e.Group("/api/v1")

	jsonOnly := middleware.ValidateContentType(echo.MIMEApplicationJSON)

	g.POST("/jobs", h.AddJobsHandler, jsonOnly)
	g.GET("/jobs", h.ListJobsHandler)
	g.DELETE("/jobs", h.RemoveJobsHandler, jsonOnly)
	g.POST("/jobs/:id/kill", h.KillJobHandler)

	g.POST("/workers", h.CreateWorkerHandler)
	g.GET("/workers", h.ListWorkersHandler)
	g.GET("/workers/:id/jobs", h.GetWorkerJobsHandler)
	g.PUT("/workers/:id/jobs", h.AddJobsToWorkerHandler, jsonOnly)
	g.DELETE("/workers/:id/jobs", h.RemoveJobsFromWorkerHandler, jsonOnly)
	g.GET("/workers/:id/jobs/:job_id", h.GetJobStateHandler)
	g.POST("/workers/:id/run", h.RunWorkerJobsHandler)
	g.DELETE("/workers/:id", h.DestroyWorkerHandler)

	g.POST("/run", h.RunJobsHandler, jsonOnly)
}
