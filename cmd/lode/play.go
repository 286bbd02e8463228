package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lode/internal/platform/tui"
	"github.com/vovakirdan/tui-lode/internal/registry"
)

var flagSlot string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. The game opens paused on the saved level.

Controls (default key table):
  Arrows/hjkl/2468  - Run and climb
  Z/1, X/3          - Dig left, dig right
  Enter/Space/5     - Dig facing side; play when paused
  Esc/P/0           - Pause
  Paused:
    digits          - Type a level number
    F1              - Next unsolved level
    F2              - Give up the stage
    *               - Clear solved levels
    #/Q             - Exit
  Ctrl+C            - Quit

Logs go to the configured log file (~/.lode/lode.log).

Examples:
  lode play
  lode play --slot practice
  lode play --config ./my-lode.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSlot, "slot", "", "Save slot (default from config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'lode list' to see available games.")
		os.Exit(1)
	}

	cfg := loadConfig()

	logger, logFile, err := newLogger(cfg, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(cfg)

	// Get terminal size; the program corrects it on the first resize
	rc := cfg.CoreConfig()
	width, height := rc.ScreenW, rc.ScreenH
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt, err := tui.NewRuntime(tui.RuntimeOptions{
		Config: cfg,
		GameID: gameID,
		Store:  store,
		Slot:   flagSlot,
		Width:  width,
		Height: height,
		Logger: logger,
	})
	if err != nil {
		store.Close()
		logFile.Close()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(rt)

	// Close store before potential exit
	store.Close()
	logFile.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
