package scheduler

import (
	"context"
	"time"

	"github.com/ikkim/camping-backend/internal/app/service"
	"github.com/ikkim/camping-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const gradeLockKey = "jobs:promote-weekly"

// JobLocker 여러 인스턴스 중 하나만 배치를 실행하도록 막는다 (pkg/redis.Store)
type JobLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(context.Context) error, ok bool, err error)
}

// GradeScheduler 회원 등급 주간 갱신 스케줄러
type GradeScheduler struct {
	cron         *cron.Cron
	spec         string
	gradeService service.GradeService
	locker       JobLocker
	lockTTL      time.Duration
}

// NewGradeScheduler locker가 nil이면 락 없이 실행한다 (단일 인스턴스)
func NewGradeScheduler(spec string, gradeService service.GradeService, locker JobLocker, lockTTL time.Duration) *GradeScheduler {
	return &GradeScheduler{
		cron:         cron.New(cron.WithLocation(time.UTC)),
		spec:         spec,
		gradeService: gradeService,
		locker:       locker,
		lockTTL:      lockTTL,
	}
}

// Start 스케줄러 시작
func (s *GradeScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			logger.Error("Failed to promote member grades from scheduler", err)
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for grade promotion", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Grade scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// RunOnce 락을 잡고 한 번 실행한다. 다른 인스턴스가 실행 중이면 ran=false.
func (s *GradeScheduler) RunOnce(ctx context.Context) (ran bool, err error) {
	if s.locker != nil {
		unlock, ok, err := s.locker.TryLock(ctx, gradeLockKey, s.lockTTL)
		if err != nil {
			return false, err
		}
		if !ok {
			logger.Info("Grade promotion already running elsewhere, skipping", nil)
			return false, nil
		}
		defer func() {
			if err := unlock(context.Background()); err != nil {
				logger.Warn("Failed to release grade promotion lock", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}()
	}

	logger.Info("Starting scheduled grade promotion", nil)
	changed, err := s.gradeService.PromoteWeekly(ctx)
	if err != nil {
		return true, err
	}

	logger.Info("Scheduled grade promotion finished", map[string]interface{}{
		"changed": changed,
	})
	return true, nil
}

// Stop 스케줄러 중지. 실행 중인 작업이 끝날 때까지 기다린다.
func (s *GradeScheduler) Stop() {
	logger.Info("Stopping grade scheduler...", nil)
	<-s.cron.Stop().Done()
	logger.Info("Grade scheduler stopped", nil)
}
