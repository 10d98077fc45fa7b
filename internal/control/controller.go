// Package control holds the presentation-side rules for driving the engine:
// one toggle button, a BPM value that restarts a running engine when it
// changes, and the glyph shown on the toggle.
package control

import (
	"sync"

	"github.com/michaelssim/soundbuddy/internal/engine"
	"github.com/michaelssim/soundbuddy/internal/tempo"
)

// Toggle glyphs.
const (
	LabelStart = "▶"
	LabelStop  = "■"
)

// Metronome is the engine surface the controller needs.
type Metronome interface {
	Start(bpm int) error
	Stop() error
	Status() engine.Status
}

// Controller tracks the displayed BPM and whether the user asked the engine
// to run. It is safe for concurrent use, but the UI is expected to call it
// from one event loop.
type Controller struct {
	mu      sync.Mutex
	m       Metronome
	bounds  tempo.Bounds
	bpm     int
	running bool
	lastErr error
}

// New creates an idle controller at the given BPM, clamped to bounds.
func New(m Metronome, bounds tempo.Bounds, initial int) *Controller {
	return &Controller{
		m:      m,
		bounds: bounds,
		bpm:    bounds.Clamp(initial),
	}
}

// Toggle stops a running engine or starts an idle one at the current BPM.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		c.running = false
		return c.keep(c.m.Stop())
	}
	return c.startLocked()
}

// SetBPM changes the tempo. A running engine is restarted at the new value;
// an idle one stays idle. Values outside the bounds are clamped.
func (c *Controller) SetBPM(bpm int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bpm = c.bounds.Clamp(bpm)
	if bpm == c.bpm {
		return nil
	}
	c.bpm = bpm
	return c.restartLocked()
}

// Nudge moves the tempo by delta, the way the -/+ buttons do: a step that
// would leave the bounds is ignored rather than clamped.
func (c *Controller) Nudge(delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.bpm + delta
	if !c.bounds.Contains(next) {
		return nil
	}
	c.bpm = next
	return c.restartLocked()
}

// Stop stops the engine regardless of state.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.running = false
	return c.keep(c.m.Stop())
}

// BPM returns the displayed tempo.
func (c *Controller) BPM() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bpm
}

// Running reports whether the engine was asked to run and accepted.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Label returns the toggle glyph for the current state.
func (c *Controller) Label() string {
	if c.Running() {
		return LabelStop
	}
	return LabelStart
}

// Tempo returns the marking for the displayed BPM.
func (c *Controller) Tempo() tempo.Label {
	return tempo.Classify(c.BPM())
}

// Err returns the most recent engine error, or nil after a clean operation.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Status forwards to the engine.
func (c *Controller) Status() engine.Status {
	return c.m.Status()
}

func (c *Controller) restartLocked() error {
	if !c.running {
		return nil
	}
	if err := c.m.Stop(); err != nil {
		c.running = false
		return c.keep(err)
	}
	return c.startLocked()
}

// startLocked falls back to idle when the engine refuses to start.
func (c *Controller) startLocked() error {
	if err := c.m.Start(c.bpm); err != nil {
		c.running = false
		//nolint:errcheck // Reset to a known stopped engine
		c.m.Stop()
		return c.keep(err)
	}
	c.running = true
	return c.keep(nil)
}

func (c *Controller) keep(err error) error {
	c.lastErr = err
	return err
}
