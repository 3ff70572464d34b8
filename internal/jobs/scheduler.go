package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/adhocore/gronx"
	"github.com/adhocore/gronx/pkg/tasker"
	"github.com/cockroachdb/errors"

	"meeting-service/internal/utils"
)

const stopTimeout = 30 * time.Second

type Task func(ctx context.Context) error

type entry struct {
	name string
	expr string
	task Task
}

// Scheduler runs registered tasks on cron expressions. Tasks are registered
// before Start; a task never runs concurrently with itself.
type Scheduler struct {
	logger   *slog.Logger
	timezone string
	entries  []entry

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(logger *slog.Logger, timezone string) *Scheduler {
	return &Scheduler{logger: logger, timezone: timezone}
}

func (s *Scheduler) Register(name, expr string, task Task) error {
	if !gronx.New().IsValid(expr) {
		return errors.Newf("job %s: invalid cron expression %q", name, expr)
	}
	for _, e := range s.entries {
		if e.name == name {
			return errors.Newf("job %s already registered", name)
		}
	}
	s.entries = append(s.entries, entry{name: name, expr: expr, task: task})
	return nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return errors.New("scheduler already started")
	}

	ctx, cancel := context.WithCancel(utils.StoreLoggerInContext(ctx, s.logger))
	taskr := tasker.New(tasker.Option{Tz: s.timezone}).WithContext(ctx)

	notConcurrent := false
	for _, e := range s.entries {
		taskr.Task(e.expr, func(ctx context.Context) (int, error) {
			err := s.run(ctx, e)
			return errToReturnCode(err), err
		}, notConcurrent)
	}

	s.cancel = cancel
	s.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		taskr.Run()
	}(s.done)

	s.logger.InfoContext(ctx, "scheduler started", "jobs", len(s.entries), "timezone", s.timezone)
	return nil
}

// Stop cancels the scheduler context and waits for running tasks, up to a bound.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}

	cancel()
	select {
	case <-done:
		s.logger.Info("scheduler stopped")
	case <-time.After(stopTimeout):
		s.logger.Warn("scheduler did not stop in time")
	}
}

// RunNow runs the named task synchronously, outside of its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	for _, e := range s.entries {
		if e.name == name {
			return s.run(utils.StoreLoggerInContext(ctx, s.logger), e)
		}
	}
	return errors.Newf("unknown job %s", name)
}

func (s *Scheduler) run(ctx context.Context, e entry) error {
	logger := utils.LoggerFromContext(ctx).With("job", e.name)
	ctx = utils.StoreLoggerInContext(ctx, logger)

	start := time.Now()
	err := e.task(ctx)
	if err != nil {
		utils.MetricJobRuns.WithLabelValues(e.name, "error").Inc()
		logger.ErrorContext(ctx, "job failed", "error", err.Error(), "duration", time.Since(start))
		return errors.Wrapf(err, "error executing job %s", e.name)
	}
	utils.MetricJobRuns.WithLabelValues(e.name, "ok").Inc()
	logger.DebugContext(ctx, "job done", "duration", time.Since(start))
	return nil
}

func errToReturnCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
