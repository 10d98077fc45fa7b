//go:build nosound

package pulse

import "context"

// PortAudioEmitter is unavailable in nosound builds.
type PortAudioEmitter struct{}

// NewPortAudioEmitter always fails in nosound builds.
func NewPortAudioEmitter(t Tone) (*PortAudioEmitter, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return nil, ErrAudioUnavailable
}

// Emit implements Emitter.
func (*PortAudioEmitter) Emit(context.Context) error {
	return ErrAudioUnavailable
}
