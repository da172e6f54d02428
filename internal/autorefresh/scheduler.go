// Package autorefresh runs a refresh task on a fixed interval.
//
// Ticks never overlap: a tick that fires while the previous one is still running
// is skipped. After Stop returns no further tick starts.
package autorefresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultInterval is the auto-refresh period.
const DefaultInterval = 30 * time.Second

// Task is invoked on every tick.
type Task func()

// Scheduler owns one cron runner with a single job.
type Scheduler struct {
	mu       sync.Mutex
	schedule cron.Schedule
	interval string
	name     string
	task     Task
	logger   *slog.Logger
	runner   *cron.Cron
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for tick and skip events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithName labels the scheduler's log events. The default is "auto-refresh".
func WithName(name string) Option {
	return func(s *Scheduler) { s.name = name }
}

// WithSchedule replaces the interval schedule. Tests use it for sub-second ticks.
func WithSchedule(sched cron.Schedule) Option {
	return func(s *Scheduler) {
		s.schedule = sched
		s.interval = fmt.Sprintf("%T", sched)
	}
}

// New creates a stopped scheduler that calls task every interval.
// Intervals under one second round up to one second. A non-positive interval uses DefaultInterval.
func New(interval time.Duration, task Task, opts ...Option) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Scheduler{
		schedule: cron.Every(interval),
		interval: "@every " + interval.String(),
		name:     "auto-refresh",
		task:     task,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins ticking. It reports false if the scheduler was already running.
func (s *Scheduler) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runner != nil {
		return false
	}

	cl := cronLogger{s.logger}
	runner := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	runner.Schedule(s.schedule, cron.FuncJob(s.task))
	runner.Start()
	s.runner = runner

	s.logger.Debug("scheduler started", slog.String("scheduler", s.name), slog.String("schedule", s.interval))
	return true
}

// Stop halts ticking and waits for a tick in progress to return.
func (s *Scheduler) Stop() {
	<-s.StopAsync().Done()
}

// StopAsync halts ticking without waiting. The returned context is done once a
// tick in progress has returned. No new tick starts after StopAsync returns.
func (s *Scheduler) StopAsync() context.Context {
	s.mu.Lock()
	runner := s.runner
	s.runner = nil
	s.mu.Unlock()

	if runner == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	s.logger.Debug("scheduler stopped", slog.String("scheduler", s.name))
	return runner.Stop()
}

// Running reports whether the scheduler is ticking.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner != nil
}

// cronLogger adapts slog to cron.Logger. cron's info events are per-tick, so they go to debug.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}
