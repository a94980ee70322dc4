package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"gb_market/pkg/contextx"
	"gb_market/pkg/logx"
	"gb_market/pkg/metrics"
)

const defaultResolution = 250 * time.Millisecond

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Job receives the scheduled fire time, which may lag behind the wall clock
// when missed intervals are caught up.
type Job func(ctx context.Context, now time.Time)

// Scheduler is the single tick source shared by all mounted widgets. Jobs are
// dispatched one at a time in fire time order.
type Scheduler struct {
	clock      clock.Clock
	resolution time.Duration

	mu   sync.Mutex
	subs map[uint64]*Subscription
	seq  uint64

	dispatchMu sync.Mutex

	// Control fields
	ctlMu      sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewScheduler(clk clock.Clock) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}

	return &Scheduler{
		clock:      clk,
		resolution: defaultResolution,
		subs:       make(map[uint64]*Subscription),
	}
}

func (s *Scheduler) WithResolution(d time.Duration) *Scheduler {
	if d > 0 {
		s.resolution = d
	}

	return s
}

func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Every runs job at a fixed interval, first fire one interval from now.
func (s *Scheduler) Every(name string, interval time.Duration, job Job) *Subscription {
	return s.subscribe(name, func() time.Duration { return interval }, job)
}

// Jittered runs job with the delay before every fire drawn from next.
func (s *Scheduler) Jittered(name string, next func() time.Duration, job Job) *Subscription {
	return s.subscribe(name, next, job)
}

func (s *Scheduler) subscribe(name string, interval func() time.Duration, job Job) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++

	sub := &Subscription{
		id:        s.seq,
		name:      name,
		interval:  interval,
		job:       job,
		scheduler: s,
	}
	sub.next = s.clock.Now().Add(sub.delay(s.resolution))

	s.subs[sub.id] = sub

	return sub
}

// Advance dispatches every job due at or before now and returns how many
// dispatches happened.
func (s *Scheduler) Advance(ctx context.Context, now time.Time) int {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	var fired int

	for {
		s.mu.Lock()

		sub := s.nextDue(now)
		if sub == nil {
			s.mu.Unlock()
			break
		}

		at := sub.next
		sub.next = at.Add(sub.delay(s.resolution))

		s.mu.Unlock()

		sub.job(ctx, at)
		fired++
	}

	if fired > 0 {
		metrics.SchedulerDispatches.Add(float64(fired))
	}

	return fired
}

// nextDue must be called with s.mu held.
func (s *Scheduler) nextDue(now time.Time) *Subscription {
	var due *Subscription

	for _, sub := range s.subs {
		if sub.next.After(now) {
			continue
		}

		if due == nil || sub.next.Before(due.next) || (sub.next.Equal(due.next) && sub.id < due.id) {
			due = sub
		}
	}

	return due
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.ctlMu.Lock()
	defer s.ctlMu.Unlock()

	if s.isRunning {
		return errors.New("scheduler is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.isRunning = true

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer func() {
			s.ctlMu.Lock()
			s.isRunning = false
			s.cancelFunc = nil
			s.ctlMu.Unlock()
		}()

		if err := s.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(ctx).Error("scheduler stopped with error", logx.Error(err))
		}
	}()

	return nil
}

func (s *Scheduler) Stop() {
	s.ctlMu.Lock()

	if !s.isRunning {
		s.ctlMu.Unlock()
		return
	}

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.ctlMu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) IsRunning() bool {
	s.ctlMu.Lock()
	defer s.ctlMu.Unlock()

	return s.isRunning
}

// Run drives the scheduler from the clock until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := s.clock.Ticker(s.resolution)
	defer ticker.Stop()

	logger(ctx).Info("scheduler started", slog.Duration("resolution", s.resolution))

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("scheduler stopped")
			return ctx.Err()
		case now := <-ticker.C:
			s.Advance(ctx, now)
		}
	}
}
