package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/michaelssim/soundbuddy/internal/config"
	"github.com/michaelssim/soundbuddy/internal/engine"
	"github.com/michaelssim/soundbuddy/internal/pulse"
	"github.com/michaelssim/soundbuddy/internal/registry"
	"github.com/michaelssim/soundbuddy/internal/storage"
)

// loadConfig loads the config and applies the global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("Error: %v", err)
	}
	if flagEmitter != "" {
		cfg.Emitter = flagEmitter
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
		cfg.Storage.Enabled = true
	}
	return cfg
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer, cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "soundbuddy",
	})
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else if cfg.Log.Level != "" {
		logger.Warn("unknown log level, using info", "level", cfg.Log.Level)
	}
	return logger
}

// openLogFile opens the log file used while the TUI owns the terminal.
// The caller closes it.
func openLogFile(cfg config.Config) (*os.File, error) {
	path := config.ExpandHome(cfg.Log.File)
	if path == "" {
		return nil, fmt.Errorf("no log file configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// openStore opens the practice log. A store that cannot be opened is logged
// and skipped; the metronome works without it.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	if !cfg.Storage.Enabled {
		return nil
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open practice log", "path", cfg.Storage.Path, "error", err)
		return nil
	}
	return store
}

// recorder avoids handing the engine a typed nil.
func recorder(store *storage.Store) engine.Recorder {
	if store == nil {
		return nil
	}
	return store
}

// newEmitter creates the configured pulse backend.
func newEmitter(cfg config.Config, out io.Writer) pulse.Emitter {
	if !registry.Exists(cfg.Emitter) {
		fmt.Fprintf(os.Stderr, "Error: unknown emitter %q\n", cfg.Emitter)
		fmt.Fprintln(os.Stderr, "Available emitters:")
		for _, b := range registry.List() {
			fmt.Fprintf(os.Stderr, "  %-8s %s\n", b.Name, b.Description)
		}
		os.Exit(1)
	}

	emitter, err := registry.Create(cfg.Emitter, registry.Env{Tone: cfg.PulseTone(), Out: out})
	if err != nil {
		fatalf("Error creating emitter: %v", err)
	}
	return emitter
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
