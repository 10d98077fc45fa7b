package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/michaelssim/soundbuddy/internal/config"
	"github.com/michaelssim/soundbuddy/internal/engine"
	"github.com/michaelssim/soundbuddy/internal/sched"
	"github.com/michaelssim/soundbuddy/internal/tempo"
)

var (
	flagClickBPM int
	flagClickFor time.Duration
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Headless metronome that prints each beat",
	Long: `Run the metronome without the TUI. Each beat is played through the
configured emitter and printed as a line. Stops after --for, or on Ctrl+C
when --for is 0.

Examples:
  soundbuddy click --bpm 120 --for 10s
  soundbuddy click --bpm 60 --emitter bell`,
	Args: cobra.NoArgs,
	Run:  runClick,
}

func init() {
	clickCmd.Flags().IntVar(&flagClickBPM, "bpm", 0, "Beats per minute (default: config initial tempo)")
	clickCmd.Flags().DurationVar(&flagClickFor, "for", 0, "How long to run (0 = until interrupted)")
}

func runClick(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	bpm := clickTempo(cmd, cfg)

	if err := click(cfg, bpm, flagClickFor); err != nil {
		if errors.Is(err, tempo.ErrInvalidTempo) {
			fatalf("Error: %v (accepted range %d-%d)", err, cfg.Tempo.Min, cfg.Tempo.Max)
		}
		fatalf("Error: %v", err)
	}
}

// clickTempo returns --bpm when given, even 0, so bad values reach the
// engine's tempo check. Otherwise it returns the configured initial tempo.
func clickTempo(cmd *cobra.Command, cfg config.Config) int {
	if cmd.Flags().Changed("bpm") {
		return flagClickBPM
	}
	return cfg.Tempo.Initial
}

func click(cfg config.Config, bpm int, d time.Duration) error {
	logger := newLogger(os.Stderr, cfg)

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	if err := eng.Start(bpm); err != nil {
		//nolint:errcheck // Nothing started
		eng.Close()
		return err
	}
	st := eng.Status()
	fmt.Printf("%d bpm · %s · %dms\n", st.BPM, tempo.Classify(st.BPM), st.Period.Milliseconds())

	events := eng.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			line := fmt.Sprintf("beat %-5d %s", ev.Seq, ev.At.Format("15:04:05.000"))
			if ev.Err != nil {
				line += "  (silent: " + ev.Err.Error() + ")"
			}
			fmt.Println(line)

		case <-ctx.Done():
			st := eng.Status()
			if err := eng.Close(); err != nil {
				return err
			}
			fmt.Printf("stopped after %d beats (%d silent)\n", st.Pulses, st.Missed)
			return nil
		}
	}
}
