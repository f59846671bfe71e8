package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bft-labs/bananascale/internal/domain"
	"github.com/bft-labs/bananascale/internal/ports"
)

// Runner performs one invocation. *Bot satisfies it.
type Runner interface {
	RunOnce(ctx context.Context) (domain.RunReport, error)
}

// Scheduler runs a Runner on a cron schedule inside a long-lived process.
// Ticks never overlap: a tick that fires while the previous run is still
// in progress is skipped.
type Scheduler struct {
	mu       sync.RWMutex
	runner   Runner
	schedule cron.Schedule
	location *time.Location
	logger   ports.Logger

	// job is the runner wrapped with the skip-if-running chain.
	job cron.Job
	ctx context.Context
}

// NewScheduler parses spec (standard five-field cron or a descriptor such as
// "@hourly") and returns a Scheduler for runner.
func NewScheduler(spec string, location *time.Location, runner Runner, logger ports.Logger) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	if location == nil {
		location = time.UTC
	}

	s := &Scheduler{
		runner:   runner,
		schedule: schedule,
		location: location,
		logger:   logger,
		ctx:      context.Background(),
	}
	s.job = cron.NewChain(cron.SkipIfStillRunning(cronLogger{logger})).Then(cron.FuncJob(s.tick))
	return s, nil
}

// SetRunner swaps the runner used from the next tick on.
func (s *Scheduler) SetRunner(r Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runner = r
}

// Next returns the first activation after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.location))
}

// Run executes one run immediately, then one per schedule activation,
// until ctx is cancelled. It waits for an in-flight run before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	c := cron.New(
		cron.WithLocation(s.location),
		cron.WithLogger(cronLogger{s.logger}),
	)
	c.Schedule(s.schedule, s.job)

	s.job.Run()

	c.Start()
	s.logger.Info("scheduler started", ports.Time("next", s.Next(time.Now())))

	<-ctx.Done()
	s.logger.Info("scheduler stopping")
	<-c.Stop().Done()
	return nil
}

func (s *Scheduler) tick() {
	s.mu.RLock()
	runner := s.runner
	ctx := s.ctx
	s.mu.RUnlock()

	if ctx.Err() != nil {
		return
	}
	// RunOnce logs its own summary; errors are not fatal to the loop.
	_, _ = runner.RunOnce(ctx)
}

// cronLogger adapts ports.Logger to cron.Logger.
type cronLogger struct {
	logger ports.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, kvFields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(kvFields(keysAndValues), ports.Err(err))...)
}

func kvFields(keysAndValues []interface{}) []ports.Field {
	fields := make([]ports.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields = append(fields, ports.Any(key, keysAndValues[i+1]))
	}
	return fields
}
