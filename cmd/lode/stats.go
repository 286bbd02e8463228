package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagStatsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show finished stages",
	Long: `Display per-level attempts and the most recent stage outcomes of a slot.

Examples:
  lode stats
  lode stats --limit 5
  lode stats --slot LodeRunner/alice`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagSlot, "slot", "", "Save slot (default from config)")
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of recent outcomes to show")
}

func runStats(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	slot := slotName(cfg.Storage.Slot)

	stats, err := store.LevelStats(slot)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Stages - %s\n", slot)
	fmt.Println()

	if len(stats) == 0 {
		fmt.Println("No stages finished yet.")
		fmt.Println()
		fmt.Println("Play 'lode play' to finish the first one!")
		return
	}

	fmt.Printf("  %-5s  %-8s  %-6s  %s\n", "Level", "Attempts", "Solved", "Last played")
	fmt.Printf("  %-5s  %-8s  %-6s  %s\n", "-----", "--------", "------", "-----------")
	for _, ls := range stats {
		fmt.Printf("  %03d    %-8d  %-6d  %s\n",
			ls.Level+1, ls.Attempts, ls.Completed, ls.LastPlayed.Format("2006-01-02 15:04"))
	}

	recent, err := store.RecentOutcomes(slot, flagStatsLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving outcomes: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Recent:")
	for _, o := range recent {
		result := "lost a life"
		if o.Completed {
			result = "solved"
		}
		fmt.Printf("  %s  level %03d  %-11s  lives %d\n",
			o.CreatedAt.Format("2006-01-02 15:04"), o.Level+1, result, o.Lives)
	}
}
