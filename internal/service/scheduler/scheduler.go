// Package scheduler 설정 파일에 정의된 작업 묶음을 Cron 스케줄에 맞춰 실행하는 서비스를 제공합니다.
package scheduler

import (
	"context"
	"sync"

	"github.com/darkkaiser/job-dispatcher/internal/config"
	"github.com/darkkaiser/job-dispatcher/internal/service"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/darkkaiser/job-dispatcher/internal/service/notification"
	"github.com/darkkaiser/job-dispatcher/pkg/cronx"
	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// Runner 작업 묶음을 일회성으로 실행합니다. *dispatch.Dispatcher가 이 인터페이스를 구현합니다.
type Runner interface {
	RunJobs(ctx context.Context, sources []job.Source) ([]dispatch.RunResult, error)
}

var _ Runner = (*dispatch.Dispatcher)(nil)

var _ service.Service = (*Scheduler)(nil)

// Scheduler 설정의 schedules 항목마다 Cron 엔트리를 등록하고, 실행 시점마다 전용 Worker로 작업을 실행합니다.
type Scheduler struct {
	schedules []config.ScheduleConfig

	cron *cron.Cron

	runner   Runner
	notifier notification.Notifier

	// cancelRun 진행 중인 예약 실행의 context를 취소한다.
	cancelRun context.CancelFunc

	running   bool
	runningMu sync.Mutex
}

// NewService Scheduler 인스턴스를 생성합니다. runner가 nil이면 panic이 발생하며, n이 nil이면 알림을 보내지 않습니다.
func NewService(schedules []config.ScheduleConfig, runner Runner, n notification.Notifier) *Scheduler {
	if runner == nil {
		panic("Runner는 필수입니다")
	}
	if n == nil {
		n = notification.Noop{}
	}

	return &Scheduler{
		schedules: schedules,
		runner:    runner,
		notifier:  n,
	}
}

// Start 스케줄을 Cron 엔진에 등록하고 시작합니다. serviceStopCtx가 취소되면 Stop을 호출합니다.
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("Scheduler 서비스 시작중...")

	if s.runner == nil {
		serviceStopWG.Done()
		return ErrRunnerNotInitialized
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 시작됨!!!")
		return nil
	}

	logger := cron.VerbosePrintfLogger(applog.StandardLogger())
	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(logger),
		cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		),
	)

	runCtx, cancelRun := context.WithCancel(context.WithoutCancel(serviceStopCtx))
	s.cancelRun = cancelRun

	s.registerSchedules(serviceStopCtx, runCtx)

	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"registered_schedules": len(s.cron.Entries()),
		"total_schedules":      len(s.schedules),
	}).Info("Scheduler 서비스 시작됨")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 새 예약 실행을 막고, 진행 중인 실행을 취소한 뒤 정리가 끝날 때까지 기다립니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("Scheduler 서비스 중지중...")

	stopped := s.cron.Stop()
	s.cancelRun()
	<-stopped.Done()

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 중지됨")
}

// registerSchedules 스케줄마다 Cron 엔트리를 등록합니다. Cron 표현식이 잘못된 스케줄은 건너뜁니다.
func (s *Scheduler) registerSchedules(ctx, runCtx context.Context) {
	for _, sc := range s.schedules {
		if _, err := s.cron.AddFunc(sc.TimeSpec, func() { s.runSchedule(runCtx, sc) }); err != nil {
			err = newErrInvalidCronSpec(sc.ID, sc.TimeSpec, err)

			applog.WithComponentAndFields(component, applog.Fields{
				"schedule_id": sc.ID,
				"error":       err,
			}).Error("스케줄 등록에 실패하여 건너뜁니다")

			if sc.Notify {
				s.notify(ctx, sc.ID, formatFailure(sc.ID, err))
			}
		}
	}
}

// runSchedule 스케줄에 정의된 작업을 실행하고 결과를 기록합니다.
func (s *Scheduler) runSchedule(ctx context.Context, sc config.ScheduleConfig) {
	sources := make([]job.Source, len(sc.Jobs))
	for i, j := range sc.Jobs {
		sources[i] = job.Definition{Type: j.Type, Args: j.Args}
	}

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"schedule_id": sc.ID,
		"jobs":        len(sources),
	})
	logger.Debug("예약 실행 시작")

	results, err := s.runner.RunJobs(ctx, sources)
	if err != nil {
		logger.WithField("error", err).Error("예약 실행에 실패했습니다")

		if sc.Notify {
			s.notify(ctx, sc.ID, formatFailure(sc.ID, err))
		}
		return
	}

	succeeded, failed := countResults(results)
	logger.WithFields(applog.Fields{
		"succeeded": succeeded,
		"failed":    failed,
	}).Info("예약 실행 완료")

	if sc.Notify {
		s.notify(ctx, sc.ID, formatSummary(sc, results))
	}
}

// notify 알림 전송 실패는 예약 실행의 결과에 영향을 주지 않으므로 로그만 남긴다.
func (s *Scheduler) notify(ctx context.Context, scheduleID, message string) {
	if err := s.notifier.Notify(context.WithoutCancel(ctx), message); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"schedule_id": scheduleID,
			"error":       err,
		}).Warn("예약 실행 결과 알림 전송에 실패했습니다")
	}
}
