// Package api 디스패처를 HTTP로 노출하는 API 서비스를 제공합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/job-dispatcher/docs"
	"github.com/darkkaiser/job-dispatcher/internal/config"
	"github.com/darkkaiser/job-dispatcher/internal/pkg/version"
	"github.com/darkkaiser/job-dispatcher/internal/service"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/job-dispatcher/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/job-dispatcher/internal/service/api/v1"
	v1handler "github.com/darkkaiser/job-dispatcher/internal/service/api/v1/handler"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch"
	"github.com/darkkaiser/job-dispatcher/internal/service/notification"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
)

var _ service.Service = (*Service)(nil)

// Service API 서버의 생명주기를 관리합니다.
//
// Start로 시작하면 고루틴에서 HTTP(S) 서버를 실행하고, context가 취소되면 Graceful Shutdown을 수행합니다.
// 서버가 예기치 않게 종료되면 그 내용을 기록하고 알림 채널로 전송합니다.
type Service struct {
	appConfig *config.AppConfig

	dispatcher *dispatch.Dispatcher
	notifier   notification.Notifier

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다. appConfig 또는 d가 nil이면 panic이 발생합니다.
func NewService(appConfig *config.AppConfig, d *dispatch.Dispatcher, n notification.Notifier, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic("AppConfig는 필수입니다")
	}
	if d == nil {
		panic("Dispatcher는 필수입니다")
	}
	if n == nil {
		n = notification.Noop{}
	}

	return &Service{
		appConfig:  appConfig,
		dispatcher: d,
		notifier:   n,
		buildInfo:  buildInfo,
	}
}

// Start API 서비스를 시작합니다. 이 함수는 즉시 반환되며, 실제 서버는 고루틴에서 실행됩니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	e := s.setupServer()
	go s.run(serviceStopCtx, serviceStopWG, e)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) run(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, e *echo.Echo) {
	defer serviceStopWG.Done()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(serviceStopCtx, e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer 미들웨어 체인과 라우트가 등록된 Echo 인스턴스를 생성합니다.
func (s *Service) setupServer() *echo.Echo {
	cfg := s.appConfig.API

	e := NewHTTPServer(HTTPServerConfig{
		Debug:              s.appConfig.Debug,
		AllowOrigins:       cfg.AllowOrigins,
		RequestTimeout:     cfg.RequestTimeout,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	RegisterRoutes(e, system.NewHandler(s.dispatcher, s.buildInfo))
	v1.RegisterRoutes(e, v1handler.NewHandler(s.dispatcher))

	return e
}

// startHTTPServer 서버가 종료될 때까지 블로킹되며, 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(ctx context.Context, e *echo.Echo, done chan struct{}) {
	defer close(done)

	cfg := s.appConfig.API
	address := fmt.Sprintf(":%d", cfg.ListenPort)

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": cfg.ListenPort,
		"tls":  cfg.TLSServer,
	}).Debug(constants.LogMsgHTTPServerStarting)

	var err error
	if cfg.TLSServer {
		err = e.StartTLS(address, cfg.TLSCertFile, cfg.TLSKeyFile)
	} else {
		err = e.Start(address)
	}

	s.handleServerError(ctx, err)
}

// handleServerError 정상 종료(http.ErrServerClosed)가 아닌 에러는 기록하고 알림으로 전송합니다.
func (s *Service) handleServerError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.API.ListenPort,
		"error": err,
	}).Error(constants.LogMsgHTTPServerFatalError)

	message := fmt.Sprintf("%s\n\n%s", constants.LogMsgHTTPServerFatalError, err)
	if notifyErr := s.notifier.Notify(context.WithoutCancel(ctx), message); notifyErr != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": notifyErr,
		}).Warn("서버 오류 알림 전송에 실패했습니다")
	}
}

// waitForShutdown 종료 신호를 기다린 뒤 Graceful Shutdown을 수행합니다.
// 서버가 먼저 종료되었다면 Shutdown 없이 상태만 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)

	case <-httpServerDone:
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
