package effect

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled callback. Stop cancels it and reports whether it was
// still pending; stopping a fired or stopped timer is a no-op.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d on some goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules with time.AfterFunc.
type RealScheduler struct{}

// AfterFunc implements Scheduler.
func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Pending holds at most one outstanding timer. Scheduling a new callback
// cancels the previous one.
type Pending struct {
	mu    sync.Mutex
	sched Scheduler
	timer Timer
}

// NewPending returns a Pending backed by sched, or RealScheduler when nil.
func NewPending(sched Scheduler) *Pending {
	if sched == nil {
		sched = RealScheduler{}
	}
	return &Pending{sched: sched}
}

// Schedule cancels any outstanding timer and arms a new one.
func (p *Pending) Schedule(d time.Duration, f func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = p.sched.AfterFunc(d, f)
}

// Cancel stops the outstanding timer and reports whether one was pending.
func (p *Pending) Cancel() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer == nil {
		return false
	}
	stopped := p.timer.Stop()
	p.timer = nil
	return stopped
}

// ManualScheduler is a Scheduler whose clock only moves when Advance is
// called. Callbacks run synchronously inside Advance, in deadline order.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	s        *ManualScheduler
	deadline time.Time
	seq      int
	f        func()
	done     bool
}

// NewManualScheduler returns a ManualScheduler starting at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the scheduler's clock.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, deadline: s.now.Add(d), seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// PendingCount returns how many timers are armed.
func (s *ManualScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d and fires every due timer.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	var due []*manualTimer
	var rest []*manualTimer
	for _, t := range s.timers {
		switch {
		case t.done:
		case !t.deadline.After(s.now):
			t.done = true
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.timers = rest
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, t := range due {
		t.f()
	}
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}
