package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/michaelssim/soundbuddy/internal/config"
	"github.com/michaelssim/soundbuddy/internal/control"
	"github.com/michaelssim/soundbuddy/internal/engine"
	"github.com/michaelssim/soundbuddy/internal/platform/tui"
	"github.com/michaelssim/soundbuddy/internal/sched"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the metronome",
	Long: `Open the interactive metronome.

Controls:
  Space/Enter  - Start/stop
  Left/Right   - Tempo -1/+1 (also - and +)
  Down/Up      - Tempo -step/+step
  ?            - More keys
  Q/Esc        - Quit

Changing the tempo while the metronome runs restarts it at the new tempo.
Changing it while stopped does not start it.

Examples:
  soundbuddy run
  soundbuddy run --emitter bell`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func runRun(cmd *cobra.Command, args []string) {
	if err := runTUI(loadConfig()); err != nil {
		fatalf("Error running metronome: %v", err)
	}
}

func runTUI(cfg config.Config) error {
	// The screen belongs to the TUI, so logs go to the log file.
	logFile, err := openLogFile(cfg)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	scheduler := sched.NewTickerScheduler()
	defer scheduler.Close()

	eng := engine.New(scheduler, newEmitter(cfg, os.Stdout), engine.Options{
		Bounds:   cfg.Bounds(),
		Logger:   logger,
		Recorder: recorder(store),
	})
	ctrl := control.New(eng, eng.Bounds(), cfg.Tempo.Initial)

	runErr := tui.Run(ctrl, eng.Events(), tui.ModelConfig{
		Width:  width,
		Height: height,
		Step:   cfg.Tempo.Step,
	})

	// Close stops a running engine, which records the session.
	if closeErr := eng.Close(); closeErr != nil {
		logger.Warn("engine close failed", "error", closeErr)
	}
	if runErr != nil {
		logger.Error("tui failed", "error", runErr)
	}
	return runErr
}
