// Package engine implements the tick engine: a repeating schedule that emits
// one pulse per beat at a period derived from a BPM value.
//
// Start and Stop are the only mutators. Stop is synchronous with respect to
// the schedule: once it returns no further pulse from the stopped run fires.
// Emission failures are logged and counted, never propagated, so a busy
// audio device cannot break the beat train.
package engine

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/michaelssim/soundbuddy/internal/pulse"
	"github.com/michaelssim/soundbuddy/internal/sched"
	"github.com/michaelssim/soundbuddy/internal/tempo"
)

const defaultEventBuffer = 16

// Options configures an Engine. The zero value is usable.
type Options struct {
	Bounds      tempo.Bounds // Accepted BPM range (default 40..208)
	Logger      *log.Logger  // Defaults to a discarding logger
	Recorder    Recorder     // Optional practice log
	EventBuffer int          // Capacity of the Events channel (default 16)
	Now         func() time.Time
}

// Engine owns one schedule handle and its run state.
type Engine struct {
	scheduler sched.Scheduler
	emitter   pulse.Emitter
	bounds    tempo.Bounds
	logger    *log.Logger
	recorder  Recorder
	now       func() time.Time
	events    chan PulseEvent

	mu     sync.Mutex
	state  State
	handle sched.Handle
	cur    *run
	closed bool
}

// run is the state of one Start..Stop interval. Counters are written by the
// schedule goroutine and read by Status.
type run struct {
	bpm       int
	period    time.Duration
	startedAt time.Time
	ctx       context.Context
	cancel    context.CancelFunc

	pulses atomic.Int64
	missed atomic.Int64
	last   atomic.Int64 // UnixNano of the latest pulse
}

// New creates an idle engine.
func New(s sched.Scheduler, e pulse.Emitter, opts Options) *Engine {
	if opts.Bounds == (tempo.Bounds{}) {
		opts.Bounds = tempo.DefaultBounds()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = defaultEventBuffer
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Engine{
		scheduler: s,
		emitter:   e,
		bounds:    opts.Bounds,
		logger:    opts.Logger,
		recorder:  opts.Recorder,
		now:       opts.Now,
		events:    make(chan PulseEvent, opts.EventBuffer),
	}
}

// Bounds returns the accepted BPM range.
func (e *Engine) Bounds() tempo.Bounds {
	return e.bounds
}

// Start begins emitting pulses at bpm: one immediately, then one per period.
// A Start while Running restarts cleanly at the new tempo. An invalid bpm
// returns tempo.ErrInvalidTempo and leaves the engine as it was.
func (e *Engine) Start(bpm int) error {
	if err := e.bounds.Validate(bpm); err != nil {
		e.logger.Warn("rejected tempo", "bpm", bpm, "error", err)
		return err
	}
	period, err := tempo.Period(bpm)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return fmt.Errorf("%w: engine closed", ErrSchedulerExhausted)
	}

	var prev *SessionRecord
	var stopErr error
	if e.state == StateRunning {
		prev, stopErr = e.stopLocked()
	}
	e.discardEventsLocked()

	ctx, cancel := context.WithCancel(context.Background())
	r := &run{
		bpm:       bpm,
		period:    period,
		startedAt: e.now(),
		ctx:       ctx,
		cancel:    cancel,
	}

	h, err := e.scheduler.ScheduleRepeating(0, period, func(now time.Time) {
		e.fire(r, now)
	})
	if err != nil {
		cancel()
		e.mu.Unlock()
		e.record(prev)
		e.logger.Error("cannot schedule beats", "bpm", bpm, "error", err)
		return fmt.Errorf("%w: %v", ErrSchedulerExhausted, err)
	}

	e.handle = h
	e.cur = r
	e.state = StateRunning
	e.mu.Unlock()

	e.record(prev)
	if stopErr != nil {
		e.logger.Warn("previous schedule did not cancel cleanly", "error", stopErr)
	}
	e.logger.Info("metronome started", "bpm", bpm, "period", period, "tempo", tempo.Classify(bpm))
	return nil
}

// Stop cancels the schedule and returns to Idle. It is safe to call in any
// state; an in-flight emission is cancelled through its context.
func (e *Engine) Stop() error {
	e.mu.Lock()
	rec, err := e.stopLocked()
	e.mu.Unlock()

	e.record(rec)
	if rec != nil {
		e.logger.Info("metronome stopped", "bpm", rec.BPM, "pulses", rec.Pulses, "missed", rec.Missed)
	}
	return err
}

// stopLocked must be called with e.mu held.
func (e *Engine) stopLocked() (*SessionRecord, error) {
	if e.state != StateRunning {
		return nil, nil
	}
	r := e.cur
	r.cancel()
	cancelErr := e.scheduler.Cancel(e.handle)

	e.state = StateIdle
	e.handle = 0
	e.cur = nil

	rec := &SessionRecord{
		BPM:       r.bpm,
		Period:    r.period,
		StartedAt: r.startedAt,
		EndedAt:   e.now(),
		Pulses:    r.pulses.Load(),
		Missed:    r.missed.Load(),
	}
	if cancelErr != nil {
		return rec, fmt.Errorf("%w: cancel: %v", ErrSchedulerExhausted, cancelErr)
	}
	return rec, nil
}

// Status returns a snapshot of the engine.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cur == nil {
		return Status{State: e.state}
	}
	st := Status{
		State:     e.state,
		BPM:       e.cur.bpm,
		Period:    e.cur.period,
		Pulses:    e.cur.pulses.Load(),
		Missed:    e.cur.missed.Load(),
		StartedAt: e.cur.startedAt,
	}
	if ns := e.cur.last.Load(); ns != 0 {
		st.LastPulse = time.Unix(0, ns)
	}
	return st
}

// Events delivers one PulseEvent per beat. Events are dropped when the
// channel is full, and unread events of a finished run are discarded by the
// next Start. The channel is closed by Close.
func (e *Engine) Events() <-chan PulseEvent {
	return e.events
}

// Close stops the engine and closes the Events channel. Later Starts fail
// with ErrSchedulerExhausted.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	rec, err := e.stopLocked()
	close(e.events)
	e.mu.Unlock()

	e.record(rec)
	return err
}

// discardEventsLocked drops events still buffered from earlier runs. The old
// schedule has already exited, so nothing refills the channel meanwhile.
func (e *Engine) discardEventsLocked() {
	for {
		select {
		case <-e.events:
		default:
			return
		}
	}
}

// fire runs on the schedule goroutine.
func (e *Engine) fire(r *run, now time.Time) {
	ctx, cancel := context.WithTimeout(r.ctx, r.period)
	err := e.emitter.Emit(ctx)
	cancel()

	seq := r.pulses.Add(1)
	r.last.Store(now.UnixNano())
	if err != nil {
		r.missed.Add(1)
		e.logger.Warn("pulse emission failed", "bpm", r.bpm, "seq", seq, "error", err)
	}

	select {
	case e.events <- PulseEvent{Seq: seq, At: now, BPM: r.bpm, Err: err}:
	default:
	}
}

func (e *Engine) record(rec *SessionRecord) {
	if rec == nil || e.recorder == nil {
		return
	}
	if err := e.recorder.RecordSession(*rec); err != nil {
		e.logger.Warn("cannot record session", "bpm", rec.BPM, "error", err)
	}
}
