package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/michaelssim/soundbuddy/internal/platform/tui"
	"github.com/michaelssim/soundbuddy/internal/storage"
	"github.com/michaelssim/soundbuddy/internal/tempo"
)

var (
	flagHistoryLimit  int
	flagHistoryClear  bool
	flagHistoryBrowse bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent practice sessions",
	Long: `Display recent practice sessions and the total time spent at each tempo.

Examples:
  soundbuddy history
  soundbuddy history --limit 20
  soundbuddy history --browse
  soundbuddy history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded sessions")
	historyCmd.Flags().BoolVar(&flagHistoryBrowse, "browse", false, "Browse the log in an interactive table")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fatalf("Error opening practice log: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.Clear(); err != nil {
			fatalf("Error clearing practice log: %v", err)
		}
		fmt.Println("Practice log cleared.")
		return
	}

	if flagHistoryBrowse {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fatalf("Error running history: %v", err)
		}
		return
	}

	sessions, err := store.RecentSessions(flagHistoryLimit)
	if err != nil {
		fatalf("Error retrieving sessions: %v", err)
	}

	fmt.Println("Recent Practice")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'soundbuddy' and press space to start practicing!")
		return
	}

	fmt.Printf("  %-16s  %-4s  %-12s  %-9s  %s\n", "Date", "BPM", "Marking", "Duration", "Beats")
	fmt.Printf("  %-16s  %-4s  %-12s  %-9s  %s\n", "----", "---", "-------", "--------", "-----")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-4d  %-12s  %-9s  %d\n",
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.BPM,
			tempo.Classify(s.BPM),
			s.Duration().Round(time.Second),
			s.Pulses,
		)
	}

	stats, err := store.TempoStats()
	if err != nil {
		fatalf("Error retrieving tempo totals: %v", err)
	}

	fmt.Println()
	fmt.Println("By Tempo")
	fmt.Println()
	for _, st := range stats {
		fmt.Printf("  %-4d  %-12s  %-9s  %d sessions\n",
			st.BPM, tempo.Classify(st.BPM), st.Total.Round(time.Second), st.Sessions)
	}

	if total, err := store.TotalPractice(); err == nil {
		fmt.Println()
		fmt.Printf("Total: %s\n", total.Round(time.Second))
	}
}
