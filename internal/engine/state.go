package engine

import "time"

// State is the engine's run state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

// Status is a snapshot of the engine. Counters are zero while Idle.
type Status struct {
	State     State
	BPM       int
	Period    time.Duration
	Pulses    int64 // Beats fired since Start
	Missed    int64 // Beats whose emission failed
	StartedAt time.Time
	LastPulse time.Time
}

// Running is shorthand for State == StateRunning.
func (s Status) Running() bool {
	return s.State == StateRunning
}

// PulseEvent describes one fired beat.
type PulseEvent struct {
	Seq int64 // 1-based beat number within the current run
	At  time.Time
	BPM int
	Err error // Emission failure, if any
}

// SessionRecord summarizes one Running period, from Start to Stop.
type SessionRecord struct {
	BPM       int
	Period    time.Duration
	StartedAt time.Time
	EndedAt   time.Time
	Pulses    int64
	Missed    int64
}

// Recorder receives a SessionRecord whenever the engine leaves Running.
type Recorder interface {
	RecordSession(rec SessionRecord) error
}
