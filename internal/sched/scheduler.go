// Package sched provides the repeating-schedule primitive behind the tick engine.
//
// A Scheduler runs an action once after an initial delay and then once per
// period until the schedule is cancelled. Cancel is synchronous: when it
// returns, the schedule's goroutine has exited and the action will not run
// again. A cancelled scheduler can be reused for new schedules.
package sched

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrClosed is returned by ScheduleRepeating after Close.
	ErrClosed = errors.New("sched: scheduler closed")

	// ErrInvalidPeriod is returned for a non-positive period.
	ErrInvalidPeriod = errors.New("sched: period must be positive")
)

// Action is invoked on every tick with the tick time.
type Action func(now time.Time)

// Handle identifies a scheduled repeating action.
type Handle uint64

// Scheduler schedules and cancels repeating actions.
type Scheduler interface {
	// ScheduleRepeating runs action after delay, then every period.
	ScheduleRepeating(delay, period time.Duration, action Action) (Handle, error)

	// Cancel stops the schedule. It must not be called from inside the
	// schedule's own action. Unknown handles are ignored.
	Cancel(h Handle) error
}

// TickerScheduler implements Scheduler with one goroutine and one time.Ticker
// per schedule. Ticks are anchored to the schedule start, so a slow action
// does not shift later beats; missed ticks are dropped, not queued.
type TickerScheduler struct {
	mu     sync.Mutex
	next   Handle
	jobs   map[Handle]*job
	closed bool
}

type job struct {
	stop chan struct{}
	done chan struct{}
}

// NewTickerScheduler creates an empty scheduler.
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{
		jobs: make(map[Handle]*job),
	}
}

// ScheduleRepeating implements Scheduler. A negative delay is treated as zero.
func (s *TickerScheduler) ScheduleRepeating(delay, period time.Duration, action Action) (Handle, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrClosed
	}
	s.next++
	h := s.next
	j := &job{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	s.jobs[h] = j
	s.mu.Unlock()

	go j.run(delay, period, action)
	return h, nil
}

// Cancel implements Scheduler.
func (s *TickerScheduler) Cancel(h Handle) error {
	s.mu.Lock()
	j, ok := s.jobs[h]
	delete(s.jobs, h)
	s.mu.Unlock()

	if !ok {
		return nil
	}
	j.cancel()
	return nil
}

// Active returns the number of live schedules.
func (s *TickerScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Close cancels every schedule and refuses new ones.
func (s *TickerScheduler) Close() error {
	s.mu.Lock()
	s.closed = true
	jobs := make([]*job, 0, len(s.jobs))
	for h, j := range s.jobs {
		jobs = append(jobs, j)
		delete(s.jobs, h)
	}
	s.mu.Unlock()

	for _, j := range jobs {
		j.cancel()
	}
	return nil
}

func (j *job) cancel() {
	close(j.stop)
	<-j.done
}

func (j *job) run(delay, period time.Duration, action Action) {
	defer close(j.done)

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-j.stop:
			timer.Stop()
			return
		}
	}

	// Created before the first action so the beat grid starts now.
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	if !j.fire(action, time.Now()) {
		return
	}
	for {
		select {
		case <-j.stop:
			return
		case now := <-ticker.C:
			if !j.fire(action, now) {
				return
			}
		}
	}
}

// fire runs action unless a stop is already pending. select picks randomly
// among ready cases, so the tick branch can win against a closed stop channel.
func (j *job) fire(action Action, now time.Time) bool {
	select {
	case <-j.stop:
		return false
	default:
	}
	action(now)
	return true
}
