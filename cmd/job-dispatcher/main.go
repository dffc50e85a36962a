package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/job-dispatcher/internal/config"
	"github.com/darkkaiser/job-dispatcher/internal/pkg/version"
	"github.com/darkkaiser/job-dispatcher/internal/service"
	"github.com/darkkaiser/job-dispatcher/internal/service/api"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/fetcher"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job/echo"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job/filter"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job/scrape"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job/status"
	"github.com/darkkaiser/job-dispatcher/internal/service/notification"
	"github.com/darkkaiser/job-dispatcher/internal/service/scheduler"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
)

// @title Job Dispatcher API
// @version 1.0
// @description 작업(Job)을 등록하고 워커(Worker)에 배정하여 일괄 실행하는 디스패처의 REST API입니다.
// @description
// @description ## 주요 기능
// @description - 작업 등록/삭제 및 워커 생성/파괴
// @description - 워커 단위 일괄 실행과 결과 집계 (done / error / killed)
// @description - 실행 중인 작업의 협조적 취소
// @description - 일회성 일괄 실행 (/api/v1/run)

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser
// @contact.email darkkaiser@gmail.com

// @license.name MIT

// @BasePath /

const component = "main"

const banner = `
   _       _         ____  _                 _       _
  (_) ___ | |__     |  _ \(_)___ _ __   __ _| |_ ___| |__   ___ _ __
  | |/ _ \| '_ \    | | | | / __| '_ \ / _' | __/ __| '_ \ / _ \ '__|
  | | (_) | |_) |   | |_| | \__ \ |_) | (_| | || (__| | | |  __/ |
 _/ |\___/|_.__/    |____/|_|___/ .__/ \__,_|\__\___|_| |_|\___|_|
|__/                            |_|                           %s
                                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`

func main() {
	configFile := flag.String("config", config.DefaultFilename, "설정 파일 경로")
	flag.Parse()

	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.LoadWithFile(*configFile)
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	logOpts, err := newLogOptions(appConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 설정이 올바르지 않습니다: %v\n", err)
		os.Exit(1)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	// 로그 레벨이 명시되지 않았다면 디버그 모드 여부로 결정한다.
	if appConfig.Log.Level == "" {
		applog.SetDebugMode(appConfig.Debug)
	}

	buildInfo := version.Get()

	// 아스키아트 출력(https://ko.rakko.tools/tools/68/, 폰트:standard)
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields(component, applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
		"config":  *configFile,
	}).Info("서버 초기화 시작")

	for _, w := range appConfig.VerifyRecommendations() {
		applog.WithComponent(component).Warn(w)
	}

	// 서비스를 생성하고 초기화한다.
	dispatcher := dispatch.New(dispatch.WithRegistry(newRegistry(appConfig)))

	notifier, err := notification.New(appConfig.Notifier, appConfig.Debug)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Fatal("알림 채널 초기화 실패로 프로그램을 종료합니다")
	}

	apiService := api.NewService(appConfig, dispatcher, notifier, buildInfo)
	schedulerService := scheduler.NewService(appConfig.Schedules, dispatcher, notifier)

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	services := []service.Service{apiService, schedulerService}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			applog.WithComponent(component).Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent(component).Info("서버 가동 완료")

	sig := <-termC

	applog.WithComponentAndFields(component, applog.Fields{
		"signal": sig.String(),
	}).Info("종료 신호를 수신했습니다")

	cancel()
	serviceStopWG.Wait()

	applog.WithComponent(component).Info("서버를 종료합니다")
}

// newLogOptions 실행 모드별 기본 로그 옵션에 설정 파일의 값을 덮어씁니다.
func newLogOptions(appConfig *config.AppConfig) (applog.Options, error) {
	var opts applog.Options
	if appConfig.Debug {
		opts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		opts = applog.NewProductionOptions(config.AppName)
	}

	c := appConfig.Log
	opts.Dir = c.Dir
	opts.MaxAge = c.MaxAge
	opts.MaxSizeMB = c.MaxSizeMB
	opts.MaxBackups = c.MaxBackups
	opts.EnableConsoleLog = opts.EnableConsoleLog || c.Console

	if c.Level != "" {
		level, err := applog.ParseLevel(c.Level)
		if err != nil {
			return applog.Options{}, err
		}
		opts.Level = level
	}

	return opts, opts.Validate()
}

// newRegistry 설정값으로 작업 타입별 Factory를 구성합니다.
// 원격 작업(status, scrape)은 재시도 정책을 공유하지만 Fetcher 체인은 각자 가집니다.
func newRegistry(appConfig *config.AppConfig) *job.Registry {
	retry := appConfig.HTTPRetry
	jobs := appConfig.Jobs

	r := job.NewRegistry()

	r.MustRegister(job.Echo, echo.NewFactory(echo.Options{
		DefaultDelay: jobs.Echo.DefaultDelay,
	}))

	r.MustRegister(job.Filter, filter.NewFactory())

	r.MustRegister(job.RemoteStatus, status.NewFactory(status.Options{
		URL:     jobs.RemoteStatus.URL,
		Timeout: jobs.RemoteStatus.Timeout,
		Fetcher: fetcher.New(fetcher.Options{
			Timeout:       jobs.RemoteStatus.Timeout,
			MaxRetries:    retry.MaxRetries,
			MinRetryDelay: retry.MinRetryDelay,
			MaxRetryDelay: retry.MaxRetryDelay,
			RateLimit:     jobs.RemoteStatus.RateLimit,
		}),
	}))

	r.MustRegister(job.Scrape, scrape.NewFactory(scrape.Options{
		Timeout:      jobs.Scrape.Timeout,
		MaxBodyBytes: jobs.Scrape.MaxBodyBytes,
		Fetcher: fetcher.New(fetcher.Options{
			Timeout:       jobs.Scrape.Timeout,
			MaxRetries:    retry.MaxRetries,
			MinRetryDelay: retry.MinRetryDelay,
			MaxRetryDelay: retry.MaxRetryDelay,
			MaxBodyBytes:  jobs.Scrape.MaxBodyBytes,
		}),
	}))

	return r
}
