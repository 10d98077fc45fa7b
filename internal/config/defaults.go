package config

import (
	_ "embed"
)

//go:embed defaults/soundbuddy.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. It mirrors
// defaults/soundbuddy.yaml and is used if the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Tempo: TempoConfig{
			Initial: 92,
			Min:     40,
			Max:     208,
			Step:    10,
		},
		Tone: ToneConfig{
			Frequency:  880,
			DurationMS: 30,
			Volume:     0.8,
			SampleRate: 44100,
		},
		Emitter: "tone",
		Log: LogConfig{
			Level: "info",
			File:  "~/.soundbuddy/soundbuddy.log",
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.soundbuddy/practice.db",
		},
		SSH: SSHConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
	}
}
