package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lode/internal/progress"
	"github.com/vovakirdan/tui-lode/internal/storage"
)

var flagStatusAll bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved game",
	Long: `Display the level, lives and solved levels of a saved game.

Examples:
  lode status
  lode status --slot practice
  lode status --all`,
	Run: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&flagSlot, "slot", "", "Save slot (default from config)")
	statusCmd.Flags().BoolVar(&flagStatusAll, "all", false, "List every saved slot")
}

func runStatus(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	if flagStatusAll {
		listSlots(store)
		return
	}

	slot := slotName(cfg.Storage.Slot)
	data, err := store.LoadSlot(slot)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("No saved game in slot %q.\n", slot)
		return
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error reading slot: %v\n", err)
		os.Exit(1)
	}

	rec, err := progress.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (showing a fresh game)\n", err)
	}

	fmt.Printf("Slot %s\n", slot)
	fmt.Println()
	fmt.Printf("  Chapter  %s\n", progress.ChapterName(rec.Chapter()))
	fmt.Printf("  Level    %03d\n", rec.Level+1)
	fmt.Printf("  Lives    %d\n", rec.Lives)
	fmt.Printf("  Solved   %d/%d\n", rec.Solved(), progress.MaxLevels)
}

func listSlots(store *storage.Store) {
	slots, err := store.Slots()
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error listing slots: %v\n", err)
		os.Exit(1)
	}
	if len(slots) == 0 {
		fmt.Println("No saved games.")
		return
	}

	fmt.Printf("  %-24s  %-5s  %-5s  %-6s  %s\n", "Slot", "Level", "Lives", "Solved", "Saved")
	fmt.Printf("  %-24s  %-5s  %-5s  %-6s  %s\n", "----", "-----", "-----", "------", "-----")
	for _, sl := range slots {
		rec, err := progress.Decode(sl.Record)
		if err != nil {
			fmt.Printf("  %-24s  (unreadable: %v)\n", sl.Name, err)
			continue
		}
		fmt.Printf("  %-24s  %03d    %-5d  %-6d  %s\n",
			sl.Name, rec.Level+1, rec.Lives, rec.Solved(), sl.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

// slotName returns the --slot flag or the configured slot.
func slotName(configured string) string {
	if flagSlot != "" {
		return flagSlot
	}
	return configured
}
