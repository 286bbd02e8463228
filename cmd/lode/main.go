// lode is a Lode Runner for the terminal, playable locally or over SSH.
//
// Usage:
//
//	lode play [game]   - Play (default: lode)
//	lode serve         - Start SSH server for remote play
//	lode status        - Show the saved game
//	lode reset         - Clear solved levels or wipe a saved game
//	lode stats         - Show finished stages
//	lode list          - List available games
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.lode/config.yaml, ./configs/lode.yaml)
//	--db <path>      - Database path (default from config: ~/.lode/lode.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-lode/internal/games/lode"
)

// defaultGame is played when no game is named.
const defaultGame = "lode"

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lode",
	Short: "Lode Runner in your terminal",
	Long: `Collect every chest, dig holes to trap the enemies and do not get caught.
Progress is saved after every stage and whenever the game pauses.

Available commands:
  play     - Play a game
  serve    - Start SSH server for remote play
  status   - Show the saved game
  reset    - Clear solved levels or wipe a saved game
  stats    - Show finished stages
  list     - Show all available games

Examples:
  lode play
  lode serve
  lode status
  lode reset --all`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to save database (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(listCmd)
}
