// soundbuddy is a terminal metronome.
//
// Usage:
//
//	soundbuddy               - Open the metronome (same as "run")
//	soundbuddy run           - Open the metronome
//	soundbuddy click         - Headless metronome that prints each beat
//	soundbuddy tempo [bpm]   - Show the tempo marking for a BPM
//	soundbuddy serve         - Serve the metronome over SSH
//	soundbuddy history       - Show recent practice sessions
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.soundbuddy, ./configs)
//	--emitter <name>    - Pulse backend: tone, bell, silent
//	--log-level <lvl>   - debug, info, warn, error
//	--db <path>         - Practice log database
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagEmitter  string
	flagLogLevel string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "soundbuddy",
	Short: "soundbuddy - a metronome in your terminal",
	Long: `soundbuddy is a terminal metronome. One button starts and stops the
beat, the arrow keys change the tempo, and the screen shows the classical
tempo marking for the current BPM.

Available commands:
  run      - Open the metronome (default)
  click    - Headless metronome that prints each beat
  tempo    - Show tempo markings
  serve    - Serve the metronome over SSH
  history  - Show recent practice sessions

Examples:
  soundbuddy
  soundbuddy click --bpm 120 --for 10s
  soundbuddy tempo 96
  soundbuddy serve --ssh :2222
  soundbuddy history`,
	Run: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagEmitter, "emitter", "", "Pulse backend (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to practice log database (overrides config)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(clickCmd)
	rootCmd.AddCommand(tempoCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}
