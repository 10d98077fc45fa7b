// Package pulse produces the audible beat: a short fixed-pitch tone rendered
// once into a sample buffer and played through an Emitter on every beat.
package pulse

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/generators"
)

// Tone describes the fixed beat sound.
type Tone struct {
	Frequency  int           // Hz
	Duration   time.Duration // Length of one pulse
	Volume     float64       // Linear gain, 0..1
	SampleRate int           // Samples per second
}

// DefaultTone returns a short 880 Hz beep, close to a proportional UI beep.
func DefaultTone() Tone {
	return Tone{
		Frequency:  880,
		Duration:   30 * time.Millisecond,
		Volume:     0.8,
		SampleRate: 44100,
	}
}

// Validate checks that the tone can be synthesized.
func (t Tone) Validate() error {
	switch {
	case t.SampleRate <= 0:
		return fmt.Errorf("pulse: sample rate must be positive, got %d", t.SampleRate)
	case t.Frequency <= 0 || t.Frequency >= t.SampleRate/2:
		return fmt.Errorf("pulse: frequency %d Hz outside (0, %d)", t.Frequency, t.SampleRate/2)
	case t.Duration <= 0:
		return fmt.Errorf("pulse: duration must be positive, got %v", t.Duration)
	case t.Volume < 0 || t.Volume > 1:
		return fmt.Errorf("pulse: volume %.2f outside 0..1", t.Volume)
	}
	return nil
}

// Samples renders the tone as mono float32 samples with a linear decay, so
// each pulse sounds like a tick instead of a held note.
func (t Tone) Samples() ([]float32, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	sr := beep.SampleRate(t.SampleRate)
	sine, err := generators.SinTone(sr, t.Frequency)
	if err != nil {
		return nil, fmt.Errorf("pulse: cannot create sine tone: %w", err)
	}

	n := sr.N(t.Duration)
	streamer := &effects.Volume{
		Streamer: beep.Take(n, sine),
		Base:     2,
		Volume:   math.Log2(math.Max(t.Volume, 1e-6)),
		Silent:   t.Volume == 0,
	}

	out := make([]float32, 0, n)
	buf := make([][2]float64, 512)
	for {
		k, ok := streamer.Stream(buf)
		for i := 0; i < k; i++ {
			out = append(out, float32(buf[i][0]))
		}
		if !ok || k == 0 {
			break
		}
	}

	for i := range out {
		out[i] *= float32(1 - float64(i)/float64(len(out)))
	}
	return out, nil
}
