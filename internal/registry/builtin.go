package registry

import (
	"io"
	"os"

	"github.com/michaelssim/soundbuddy/internal/pulse"
)

func init() {
	Register("tone", "sine beep on the default audio device (PortAudio)", func(env Env) (pulse.Emitter, error) {
		return pulse.NewPortAudioEmitter(env.Tone)
	})
	Register("bell", "terminal bell", func(env Env) (pulse.Emitter, error) {
		var w io.Writer = os.Stdout
		if env.Out != nil {
			w = env.Out
		}
		return pulse.NewBell(w), nil
	})
	Register("silent", "no sound (visual beat only)", func(Env) (pulse.Emitter, error) {
		return pulse.Silent{}, nil
	})
}
