package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/templui/goalpace/internal/service"
)

const reviewJobName = "adaptive_review"

// Reviewer runs one batch review.
type Reviewer interface {
	Run(ctx context.Context) (*service.ReviewReport, error)
}

// Manager owns the background jobs of the worker process.
type Manager struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
	review    gocron.Job
}

func NewManager(opts ...gocron.SchedulerOption) (*Manager, error) {
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		scheduler: s,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// RegisterReview schedules the adaptive review on a cron expression. Runs
// never overlap; a run due while the previous one is busy is rescheduled.
func (m *Manager) RegisterReview(schedule string, reviewer Reviewer) error {
	job, err := m.scheduler.NewJob(
		gocron.CronJob(schedule, false),
		gocron.NewTask(m.runReview, reviewer),
		gocron.WithName(reviewJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", reviewJobName, err)
	}

	m.review = job
	slog.Info("job registered", "job", reviewJobName, "schedule", schedule)
	return nil
}

// RunReviewNow triggers the review outside its schedule.
func (m *Manager) RunReviewNow() error {
	if m.review == nil {
		return fmt.Errorf("job %s is not registered", reviewJobName)
	}
	return m.review.RunNow()
}

// NextReview returns the next scheduled run.
func (m *Manager) NextReview() (time.Time, error) {
	if m.review == nil {
		return time.Time{}, fmt.Errorf("job %s is not registered", reviewJobName)
	}
	return m.review.NextRun()
}

func (m *Manager) Start() {
	m.scheduler.Start()
	slog.Info("scheduler started", "jobs", len(m.scheduler.Jobs()))
}

// Stop cancels running jobs and waits for them to return.
func (m *Manager) Stop() error {
	m.cancel()
	err := m.scheduler.Shutdown()
	if err != nil {
		return fmt.Errorf("failed to shutdown scheduler: %w", err)
	}
	slog.Info("scheduler stopped")
	return nil
}

func (m *Manager) runReview(reviewer Reviewer) {
	slog.Info("review started", "job", reviewJobName)

	_, err := reviewer.Run(m.ctx)
	if err != nil {
		slog.Error("review aborted", "error", err, "job", reviewJobName)
	}
}
