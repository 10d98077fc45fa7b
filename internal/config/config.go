// Package config provides YAML-based configuration loading for soundbuddy.
// Configuration is read-only: nothing in the program writes it back.
package config

import (
	"fmt"
	"time"

	"github.com/michaelssim/soundbuddy/internal/pulse"
	"github.com/michaelssim/soundbuddy/internal/tempo"
)

// Config contains all configuration for soundbuddy.
type Config struct {
	Tempo   TempoConfig   `yaml:"tempo"`
	Tone    ToneConfig    `yaml:"tone"`
	Emitter string        `yaml:"emitter"` // Emitter backend name: tone, bell, silent
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// TempoConfig defines the tempo range and the starting value.
type TempoConfig struct {
	Initial int `yaml:"initial"`
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	Step    int `yaml:"step"` // Coarse adjustment (up/down keys)
}

// ToneConfig defines the pulse sound.
type ToneConfig struct {
	Frequency  int     `yaml:"frequency"`
	DurationMS int     `yaml:"duration_ms"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Used while the TUI owns the terminal
}

// StorageConfig defines the practice log database.
type StorageConfig struct {
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

// SSHConfig defines the SSH server.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// Bounds returns the configured tempo range.
func (c Config) Bounds() tempo.Bounds {
	return tempo.Bounds{Min: c.Tempo.Min, Max: c.Tempo.Max}
}

// PulseTone converts the tone section to a pulse.Tone.
func (c Config) PulseTone() pulse.Tone {
	return pulse.Tone{
		Frequency:  c.Tone.Frequency,
		Duration:   time.Duration(c.Tone.DurationMS) * time.Millisecond,
		Volume:     c.Tone.Volume,
		SampleRate: c.Tone.SampleRate,
	}
}

// IdleTimeout returns the SSH idle timeout.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.SSH.IdleTimeoutMinutes) * time.Minute
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	t := c.Tempo
	switch {
	case t.Min <= 0:
		return fmt.Errorf("config: tempo.min must be positive, got %d", t.Min)
	case t.Min > t.Max:
		return fmt.Errorf("config: tempo.min %d above tempo.max %d", t.Min, t.Max)
	case t.Initial < t.Min || t.Initial > t.Max:
		return fmt.Errorf("config: tempo.initial %d outside %d..%d", t.Initial, t.Min, t.Max)
	case t.Step <= 0:
		return fmt.Errorf("config: tempo.step must be positive, got %d", t.Step)
	}
	if err := c.PulseTone().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.SSH.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: ssh.idle_timeout_minutes must not be negative")
	}
	return nil
}
