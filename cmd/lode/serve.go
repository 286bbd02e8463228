package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lode/internal/platform/tui"
	"github.com/vovakirdan/tui-lode/internal/registry"
)

var (
	flagServeGame   string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection runs its own game. Every user's progress is saved in
its own slot, named <slot>/<user>.

Address and host key come from the ssh section of the config
(default 0.0.0.0:2323, .ssh/lode_ed25519, generated when missing).
Logs go to stderr.

Examples:
  lode serve
  lode serve --idle-timeout 10
  LODE_SSH_PORT=2222 lode serve

Users can connect with:
  ssh localhost -p 2323`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeGame, "game", defaultGame, "Game every connection plays")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if !registry.Exists(flagServeGame) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", flagServeGame)
		os.Exit(1)
	}

	cfg := loadConfig()

	logger, _, err := newLogger(cfg, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(cfg)
	defer store.Close()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Config:      cfg,
		GameID:      flagServeGame,
		Store:       store,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting lode SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
