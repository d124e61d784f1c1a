// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"

	churnapp "github.com/hearth-labs/hearth/internal/application/churn/usecases"
	retentionapp "github.com/hearth-labs/hearth/internal/application/retention/usecases"
	"github.com/hearth-labs/hearth/internal/shared/biztime"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// Job state for the overlap guard.
const (
	stateIdle int32 = iota
	stateRunning
)

// RescoreRunner runs one full re-scoring sweep.
type RescoreRunner interface {
	RescoreAll(ctx context.Context) (churnapp.RescoreSummary, error)
}

// CampaignRunner runs one scheduled retention campaign sweep.
type CampaignRunner interface {
	RunCampaignSweep(ctx context.Context) (retentionapp.CampaignSummary, error)
}

// SweepLocker keeps a named sweep single-flight across instances.
// A nil SweepLocker disables cross-instance locking.
type SweepLocker interface {
	TryLock(ctx context.Context, job string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, job string) error
}

// SchedulerManager manages the churn and retention sweeps using gocron v2.
// Each job carries an atomic state guard: a tick that arrives while the
// previous run is still executing is dropped, never queued.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	rescoreState  atomic.Int32
	campaignState atomic.Int32

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a manager with gocron initialized in the
// business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterRetentionJobs registers the two sweeps:
//   - rescore: every rescoreInterval, recompute all active risk scores
//   - campaign: every campaignInterval, run the high-risk campaign
func (m *SchedulerManager) RegisterRetentionJobs(
	rescorer RescoreRunner,
	campaigner CampaignRunner,
	lock SweepLocker,
	rescoreInterval time.Duration,
	campaignInterval time.Duration,
) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(rescoreInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), rescoreInterval)
			defer cancel()
			m.runRescore(ctx, rescorer, lock, rescoreInterval)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("churn", "rescore"),
		gocron.WithName("churn-rescore"),
	)
	if err != nil {
		return err
	}

	_, err = m.scheduler.NewJob(
		gocron.DurationJob(campaignInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
			defer cancel()
			m.runCampaign(ctx, campaigner, lock, campaignInterval)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("retention", "campaign"),
		gocron.WithName("retention-campaign"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered retention jobs",
		"rescore_interval", rescoreInterval,
		"campaign_interval", campaignInterval,
	)
	return nil
}

func (m *SchedulerManager) runRescore(ctx context.Context, rescorer RescoreRunner, lock SweepLocker, ttl time.Duration) {
	if !m.rescoreState.CompareAndSwap(stateIdle, stateRunning) {
		m.logger.Warnw("rescore sweep still running, skipping tick")
		return
	}
	defer m.rescoreState.Store(stateIdle)

	if !m.acquireSweep(ctx, lock, "rescore", ttl) {
		return
	}
	defer m.releaseSweep(lock, "rescore")

	start := biztime.NowUTC()
	summary, err := rescorer.RescoreAll(ctx)
	if err != nil {
		m.logger.Errorw("rescore sweep failed",
			"error", err,
			"duration", time.Since(start),
		)
		return
	}

	m.logger.Infow("rescore sweep finished",
		"updated", summary.Updated,
		"failed", summary.Failed,
		"total", summary.Total,
		"duration", time.Since(start),
	)
}

func (m *SchedulerManager) runCampaign(ctx context.Context, campaigner CampaignRunner, lock SweepLocker, ttl time.Duration) {
	if !m.campaignState.CompareAndSwap(stateIdle, stateRunning) {
		m.logger.Warnw("retention campaign still running, skipping tick")
		return
	}
	defer m.campaignState.Store(stateIdle)

	if !m.acquireSweep(ctx, lock, "campaign", ttl) {
		return
	}
	defer m.releaseSweep(lock, "campaign")

	start := biztime.NowUTC()
	summary, err := campaigner.RunCampaignSweep(ctx)
	if err != nil {
		m.logger.Errorw("retention campaign failed",
			"error", err,
			"duration", time.Since(start),
		)
		return
	}

	m.logger.Infow("retention campaign finished",
		"critical_processed", summary.Critical.Processed,
		"critical_failed", summary.Critical.Failed,
		"high_processed", summary.High.Processed,
		"high_failed", summary.High.Failed,
		"skipped", summary.Skipped,
		"duration", time.Since(start),
	)
}

// acquireSweep claims the cross-instance lock. A lock backend failure is
// logged and treated as acquired so a cache outage cannot stop sweeps.
func (m *SchedulerManager) acquireSweep(ctx context.Context, lock SweepLocker, job string, ttl time.Duration) bool {
	if lock == nil {
		return true
	}
	acquired, err := lock.TryLock(ctx, job, ttl)
	if err != nil {
		m.logger.Warnw("sweep lock check failed, proceeding", "job", job, "error", err)
		return true
	}
	if !acquired {
		m.logger.Debugw("sweep running on another instance, skipping", "job", job)
	}
	return acquired
}

func (m *SchedulerManager) releaseSweep(lock SweepLocker, job string) {
	if lock == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := lock.Unlock(ctx, job); err != nil {
		m.logger.Warnw("failed to release sweep lock", "job", job, "error", err)
	}
}

// Start begins job execution. Idempotent.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop shuts the scheduler down and waits for running jobs.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted reports whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns the registered jobs.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
