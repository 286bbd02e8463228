package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lode/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the games this build can play",
	Long:  `Shows the registered games. The one marked * is played when no game is named.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("This build has no games registered.")
		return
	}

	width := 0
	for _, g := range games {
		width = max(width, len(g.ID))
	}

	for _, g := range games {
		mark := " "
		if g.ID == defaultGame {
			mark = "*"
		}
		fmt.Printf("%s %-*s  %s\n", mark, width, g.ID, g.Title)
	}
}
