package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lode/internal/progress"
)

var flagResetAll bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear solved levels or wipe a saved game",
	Long: `Mark every level of a saved game as not solved, keeping the current
level and lives. With --all the slot and its stage history are deleted.

Examples:
  lode reset
  lode reset --all
  lode reset --slot practice`,
	Run: runReset,
}

func init() {
	resetCmd.Flags().StringVar(&flagSlot, "slot", "", "Save slot (default from config)")
	resetCmd.Flags().BoolVar(&flagResetAll, "all", false, "Delete the slot and its history")
}

func runReset(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	slot := slotName(cfg.Storage.Slot)

	if flagResetAll {
		if err := store.DeleteSlot(slot); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error deleting slot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted slot %q.\n", slot)
		return
	}

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
		fmt.Fprintf(os.Stderr, "Warning: %v (resetting to a fresh game)\n", err)
	}
	for i := range rec.Flags {
		rec.Flags[i] = progress.StatusNotDone
	}

	if err := store.SaveSlot(slot, progress.Encode(rec)); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error saving slot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cleared solved levels in slot %q.\n", slot)
}
