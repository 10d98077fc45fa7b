package control

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/michaelssim/soundbuddy/internal/engine"
	"github.com/michaelssim/soundbuddy/internal/tempo"
)

// fakeMetronome records calls as "start:N" and "stop".
type fakeMetronome struct {
	calls    []string
	running  bool
	bpm      int
	startErr error
}

func (f *fakeMetronome) Start(bpm int) error {
	f.calls = append(f.calls, "start:"+strconv.Itoa(bpm))
	if f.startErr != nil {
		return f.startErr
	}
	f.running = true
	f.bpm = bpm
	return nil
}

func (f *fakeMetronome) Stop() error {
	f.calls = append(f.calls, "stop")
	f.running = false
	return nil
}

func (f *fakeMetronome) Status() engine.Status {
	if !f.running {
		return engine.Status{State: engine.StateIdle}
	}
	return engine.Status{State: engine.StateRunning, BPM: f.bpm}
}

func (f *fakeMetronome) history() string {
	return strings.Join(f.calls, ",")
}

func TestToggleStartsAndStops(t *testing.T) {
	m := &fakeMetronome{}
	c := New(m, tempo.DefaultBounds(), 92)

	if c.Label() != LabelStart {
		t.Errorf("Initial label = %q, expected %q", c.Label(), LabelStart)
	}

	if err := c.Toggle(); err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if !c.Running() || c.Label() != LabelStop {
		t.Errorf("Expected running with %q label", LabelStop)
	}

	if err := c.Toggle(); err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if c.Running() || c.Label() != LabelStart {
		t.Error("Expected idle after second toggle")
	}

	if got := m.history(); got != "start:92,stop" {
		t.Errorf("Calls = %s", got)
	}
}

func TestSetBPMWhileRunningRestarts(t *testing.T) {
	m := &fakeMetronome{}
	c := New(m, tempo.DefaultBounds(), 100)
	c.Toggle()

	if err := c.SetBPM(140); err != nil {
		t.Fatalf("SetBPM() failed: %v", err)
	}
	if got := m.history(); got != "start:100,stop,start:140" {
		t.Errorf("Calls = %s", got)
	}
	if m.bpm != 140 {
		t.Errorf("Engine at %d bpm, expected 140", m.bpm)
	}
}

func TestSetBPMWhileIdleDoesNotStart(t *testing.T) {
	m := &fakeMetronome{}
	c := New(m, tempo.DefaultBounds(), 100)

	if err := c.SetBPM(150); err != nil {
		t.Fatalf("SetBPM() failed: %v", err)
	}
	if len(m.calls) != 0 {
		t.Errorf("Idle SetBPM touched the engine: %s", m.history())
	}
	if c.BPM() != 150 {
		t.Errorf("BPM = %d, expected 150", c.BPM())
	}
}

func TestSetBPMClamps(t *testing.T) {
	c := New(&fakeMetronome{}, tempo.DefaultBounds(), 100)

	c.SetBPM(500)
	if c.BPM() != tempo.MaxBPM {
		t.Errorf("BPM = %d, expected %d", c.BPM(), tempo.MaxBPM)
	}
	c.SetBPM(-3)
	if c.BPM() != tempo.MinBPM {
		t.Errorf("BPM = %d, expected %d", c.BPM(), tempo.MinBPM)
	}
}

func TestNudgeRespectsBounds(t *testing.T) {
	tests := []struct {
		name     string
		initial  int
		delta    int
		expected int
	}{
		{"increment", 100, 1, 101},
		{"decrement", 100, -1, 99},
		{"at max", 208, 1, 208},
		{"at min", 40, -1, 40},
		{"step would overshoot", 205, 10, 205},
		{"one above min", 41, -1, 40},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(&fakeMetronome{}, tempo.DefaultBounds(), tc.initial)
			c.Nudge(tc.delta)
			if c.BPM() != tc.expected {
				t.Errorf("BPM = %d, expected %d", c.BPM(), tc.expected)
			}
		})
	}
}

func TestNudgeWhileRunningRestarts(t *testing.T) {
	m := &fakeMetronome{}
	c := New(m, tempo.DefaultBounds(), 120)
	c.Toggle()
	c.Nudge(-1)

	if got := m.history(); got != "start:120,stop,start:119" {
		t.Errorf("Calls = %s", got)
	}
}

func TestStartFailureResetsToIdle(t *testing.T) {
	m := &fakeMetronome{startErr: engine.ErrSchedulerExhausted}
	c := New(m, tempo.DefaultBounds(), 120)

	err := c.Toggle()
	if !errors.Is(err, engine.ErrSchedulerExhausted) {
		t.Fatalf("Toggle() = %v, expected ErrSchedulerExhausted", err)
	}
	if c.Running() || c.Label() != LabelStart {
		t.Error("Controller should fall back to idle")
	}
	if !errors.Is(c.Err(), engine.ErrSchedulerExhausted) {
		t.Errorf("Err() = %v", c.Err())
	}

	m.startErr = nil
	if err := c.Toggle(); err != nil {
		t.Fatalf("Toggle() after recovery failed: %v", err)
	}
	if c.Err() != nil {
		t.Errorf("Err() not cleared: %v", c.Err())
	}
}

func TestInitialBPMClamped(t *testing.T) {
	c := New(&fakeMetronome{}, tempo.DefaultBounds(), 10)
	if c.BPM() != tempo.MinBPM {
		t.Errorf("BPM = %d, expected %d", c.BPM(), tempo.MinBPM)
	}
	if c.Tempo() != tempo.Largo {
		t.Errorf("Tempo() = %q, expected Largo", c.Tempo())
	}
}
