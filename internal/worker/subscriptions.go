package worker

import (
	"cmp"
	"slices"
	"time"
)

type Subscription struct {
	id        uint64
	name      string
	next      time.Time
	interval  func() time.Duration
	job       Job
	scheduler *Scheduler
}

func (sub *Subscription) Name() string {
	return sub.name
}

// Cancel removes the subscription. It is safe to call more than once and from
// inside a running job.
func (sub *Subscription) Cancel() {
	if sub == nil {
		return
	}

	s := sub.scheduler

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subs, sub.id)
}

// Active reports whether the subscription is still registered.
func (sub *Subscription) Active() bool {
	if sub == nil {
		return false
	}

	s := sub.scheduler

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.subs[sub.id]

	return ok
}

// delay never returns less than the scheduler resolution so a broken interval
// func cannot spin Advance.
func (sub *Subscription) delay(resolution time.Duration) time.Duration {
	return max(sub.interval(), resolution)
}

// Len returns the number of registered subscriptions.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.subs)
}

// Names returns the registered subscription names in registration order.
func (s *Scheduler) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := make([]*Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}

	slices.SortFunc(subs, func(a, b *Subscription) int {
		return cmp.Compare(a.id, b.id)
	})

	names := make([]string, len(subs))
	for i, sub := range subs {
		names[i] = sub.name
	}

	return names
}

// CancelAll drops every subscription.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.subs)
}

// TickSource is the part of the scheduler widgets subscribe to.
type TickSource interface {
	Now() time.Time
	Every(name string, interval time.Duration, job Job) *Subscription
	Jittered(name string, next func() time.Duration, job Job) *Subscription
}

var _ TickSource = (*Scheduler)(nil)
