// Package tempo holds the pure tempo arithmetic shared by the engine and the
// presentation layer: BPM bounds, the beat period and the traditional tempo names.
package tempo

import (
	"errors"
	"fmt"
	"time"
)

// Supported tempo range, matching the mechanical metronome scale.
const (
	MinBPM     = 40
	MaxBPM     = 208
	DefaultBPM = 92
)

// ErrInvalidTempo is returned for a BPM that cannot drive a beat train.
var ErrInvalidTempo = errors.New("invalid tempo")

// Bounds is an inclusive BPM range.
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds returns the 40..208 range.
func DefaultBounds() Bounds {
	return Bounds{Min: MinBPM, Max: MaxBPM}
}

// Contains reports whether bpm lies within the bounds.
func (b Bounds) Contains(bpm int) bool {
	return bpm >= b.Min && bpm <= b.Max
}

// Clamp forces bpm into the bounds.
func (b Bounds) Clamp(bpm int) int {
	if bpm < b.Min {
		return b.Min
	}
	if bpm > b.Max {
		return b.Max
	}
	return bpm
}

// Validate checks bpm against the bounds. Non-positive values are always
// rejected, whatever the bounds say.
func (b Bounds) Validate(bpm int) error {
	if bpm <= 0 {
		return fmt.Errorf("%w: %d bpm is not positive", ErrInvalidTempo, bpm)
	}
	if !b.Contains(bpm) {
		return fmt.Errorf("%w: %d bpm outside %d..%d", ErrInvalidTempo, bpm, b.Min, b.Max)
	}
	return nil
}

// Period returns the time between beats for bpm, truncated to whole
// milliseconds: 60000/bpm using integer division.
func Period(bpm int) (time.Duration, error) {
	if bpm <= 0 {
		return 0, fmt.Errorf("%w: %d bpm is not positive", ErrInvalidTempo, bpm)
	}
	return time.Duration(60000/bpm) * time.Millisecond, nil
}

// PeriodMillis is Period in integer milliseconds.
func PeriodMillis(bpm int) (int64, error) {
	p, err := Period(bpm)
	if err != nil {
		return 0, err
	}
	return p.Milliseconds(), nil
}
