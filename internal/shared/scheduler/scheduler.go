package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/samber/oops"
)

// Task is a unit of periodic work
type Task func(ctx context.Context) error

// Scheduler runs named tasks on fixed intervals
type Scheduler struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *slog.Logger
}

// New creates a stopped scheduler
func New(logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, oops.With("context", "failed to create scheduler").Wrap(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: s,
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger.With("component", "scheduler"),
	}, nil
}

// Every schedules task to run every interval. Runs never overlap; a run that
// is still going when the next is due pushes that one back.
func (s *Scheduler) Every(name string, interval time.Duration, task Task) error {
	if interval <= 0 {
		return oops.With("task_name", name, "interval", interval).Errorf("interval must be positive")
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			start := time.Now()
			s.logger.Debug("Running scheduled task", "task_name", name)
			if err := task(s.ctx); err != nil {
				s.logger.Error("Scheduled task failed", "task_name", name, "error", err)
			}
			s.logger.Debug("Finished scheduled task", "task_name", name, "duration", time.Since(start))
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return oops.With("task_name", name, "interval", interval, "context", "failed to schedule task").Wrap(err)
	}

	s.logger.Info("Scheduled task", "task_name", name, "interval", interval)
	return nil
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Shutdown cancels running tasks and waits for them to return
func (s *Scheduler) Shutdown() error {
	s.cancel()
	if err := s.scheduler.Shutdown(); err != nil {
		return oops.With("context", "failed to stop scheduler").Wrap(err)
	}
	return nil
}
