//go:build !nosound

package pulse

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PortAudioEmitter plays the tone through the default output device.
// PortAudio is initialized, the stream opened, written and closed, and the
// library terminated on every pulse, so no device handle is held between
// beats. A suspended process therefore never pins the audio device.
type PortAudioEmitter struct {
	mu         sync.Mutex
	samples    []float32
	sampleRate float64
}

// NewPortAudioEmitter renders the tone once and returns an emitter for it.
func NewPortAudioEmitter(t Tone) (*PortAudioEmitter, error) {
	samples, err := t.Samples()
	if err != nil {
		return nil, err
	}
	return &PortAudioEmitter{
		samples:    samples,
		sampleRate: float64(t.SampleRate),
	}, nil
}

// Emit implements Emitter. Device errors are wrapped in ErrAudioUnavailable.
func (e *PortAudioEmitter) Emit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: initialize: %v", ErrAudioUnavailable, err)
	}
	//nolint:errcheck // Terminate failure leaves nothing to clean up
	defer portaudio.Terminate()

	buf := make([]float32, len(e.samples))
	copy(buf, e.samples)

	stream, err := portaudio.OpenDefaultStream(0, 1, e.sampleRate, len(buf), buf)
	if err != nil {
		return fmt.Errorf("%w: open stream: %v", ErrAudioUnavailable, err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("%w: start stream: %v", ErrAudioUnavailable, err)
	}
	if err := stream.Write(); err != nil {
		//nolint:errcheck // Best-effort stop, the write error is what matters
		stream.Stop()
		return fmt.Errorf("%w: write: %v", ErrAudioUnavailable, err)
	}
	if err := stream.Stop(); err != nil {
		return fmt.Errorf("%w: stop stream: %v", ErrAudioUnavailable, err)
	}
	return nil
}
