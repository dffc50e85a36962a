// Package system 서버 상태와 빌드 정보를 제공하는 시스템 엔드포인트 핸들러입니다.
package system

import (
	"fmt"
	"net/http"
	"time"

	"github.com/darkkaiser/job-dispatcher/internal/pkg/version"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/model/system"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 헬스체크, 버전 정보 요청을 처리합니다.
type Handler struct {
	dispatcher *dispatch.Dispatcher

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(d *dispatch.Dispatcher, buildInfo version.Info) *Handler {
	return &Handler{
		dispatcher:      d,
		buildInfo:       buildInfo,
		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 상태 확인
// @Description 서버의 가동 시간과 디스패처 상태를 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "서버 상태"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	deps := map[string]system.DependencyStatus{
		constants.DependencyDispatcher: h.dispatcherStatus(),
	}

	status := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			status = constants.HealthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       status,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

func (h *Handler) dispatcherStatus() system.DependencyStatus {
	if h.dispatcher == nil {
		return system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: constants.ErrMsgDispatcherNotActive,
		}
	}

	return system.DependencyStatus{
		Status:  constants.HealthStatusHealthy,
		Message: fmt.Sprintf("workers: %d, jobs: %d", len(h.dispatcher.WorkerIDs()), len(h.dispatcher.Entries())),
	}
}

// VersionHandler godoc
// @Summary 빌드 정보 조회
// @Description 서버 바이너리의 버전, 커밋, 빌드 일시, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "빌드 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
		Platform:    h.buildInfo.OS + "/" + h.buildInfo.Arch,
	})
}
