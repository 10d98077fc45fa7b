package pulse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrAudioUnavailable wraps failures to reach an audio output device.
var ErrAudioUnavailable = errors.New("pulse: audio output unavailable")

// Emitter produces one audible pulse. Emit is called once per beat from the
// engine's schedule goroutine and should return within one beat period.
type Emitter interface {
	Emit(ctx context.Context) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context) error

// Emit implements Emitter.
func (f EmitterFunc) Emit(ctx context.Context) error {
	return f(ctx)
}

// Silent is an Emitter that does nothing.
type Silent struct{}

// Emit implements Emitter.
func (Silent) Emit(context.Context) error {
	return nil
}

// Bell rings the terminal bell on every pulse. It is the fallback for hosts
// without an audio device and the emitter used for SSH sessions.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Emit implements Emitter.
func (b *Bell) Emit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.w.Write([]byte{'\a'}); err != nil {
		return fmt.Errorf("pulse: bell write failed: %w", err)
	}
	return nil
}
