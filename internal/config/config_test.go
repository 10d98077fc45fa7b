package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	if got, want := embedded(), Default(); got != want {
		t.Errorf("embedded YAML and Default() differ:\n%+v\n%+v", got, want)
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadCustomPathLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "tempo:\n  initial: 120\nemitter: bell\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Tempo.Initial != 120 {
		t.Errorf("tempo.initial = %d, expected 120", cfg.Tempo.Initial)
	}
	if cfg.Emitter != "bell" {
		t.Errorf("emitter = %q, expected bell", cfg.Emitter)
	}
	// Untouched keys keep their defaults
	if cfg.Tempo.Max != 208 || cfg.Tone.Frequency != 880 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("tempo: [oops"), 0o600)
	if _, err := Load(bad); err == nil {
		t.Error("Expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("tempo:\n  min: 0\n"), 0o600)
	if _, err := Load(invalid); err == nil || !strings.Contains(err.Error(), "tempo.min") {
		t.Errorf("Expected tempo.min validation error, got %v", err)
	}
}

func TestLoadRejectsFractionalFrequency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.yaml")
	if err := os.WriteFile(path, []byte("tone:\n  frequency: 440.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for a fractional tone.frequency")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"min not positive", func(c *Config) { c.Tempo.Min = 0 }},
		{"min above max", func(c *Config) { c.Tempo.Min = 210 }},
		{"initial below range", func(c *Config) { c.Tempo.Initial = 20 }},
		{"initial above range", func(c *Config) { c.Tempo.Initial = 300 }},
		{"zero step", func(c *Config) { c.Tempo.Step = 0 }},
		{"bad tone", func(c *Config) { c.Tone.DurationMS = 0 }},
		{"negative idle", func(c *Config) { c.SSH.IdleTimeoutMinutes = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()

	if b := cfg.Bounds(); b.Min != 40 || b.Max != 208 {
		t.Errorf("Bounds() = %+v", b)
	}
	if tone := cfg.PulseTone(); tone.Duration != 30*time.Millisecond || tone.SampleRate != 44100 {
		t.Errorf("PulseTone() = %+v", tone)
	}
	if cfg.IdleTimeout() != 30*time.Minute {
		t.Errorf("IdleTimeout() = %v", cfg.IdleTimeout())
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/y"); got != filepath.Join(home, "x/y") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome() changed absolute path: %q", got)
	}
}
