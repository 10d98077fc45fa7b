package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/michaelssim/soundbuddy/internal/tempo"
)

var tempoCmd = &cobra.Command{
	Use:   "tempo [bpm]",
	Short: "Show tempo markings",
	Long: `Show the tempo marking and beat period for a BPM, or the whole
marking table when no BPM is given.

Examples:
  soundbuddy tempo
  soundbuddy tempo 96`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTempo,
}

func runTempo(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		printMarkings()
		return
	}

	bpm, err := strconv.Atoi(args[0])
	if err != nil {
		fatalf("Error: %q is not a number", args[0])
	}

	period, err := tempo.Period(bpm)
	if err != nil {
		fatalf("Error: %v", err)
	}

	fmt.Printf("%d bpm\n", bpm)
	fmt.Printf("  Marking: %s\n", tempo.Classify(bpm))
	fmt.Printf("  Period:  %dms\n", period.Milliseconds())
}

func printMarkings() {
	fmt.Println("Tempo markings")
	fmt.Println()
	fmt.Printf("  %-12s  %s\n", "Marking", "BPM")
	fmt.Printf("  %-12s  %s\n", "-------", "---")
	for _, m := range tempo.Markings() {
		fmt.Printf("  %-12s  %d-%d\n", m.Label, m.Lo, m.Hi)
	}
}
