package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cuboid/internal/games/cuboid"
	"github.com/vovakirdan/cuboid/internal/platform/tui"
	"github.com/vovakirdan/cuboid/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode. This is also what running cuboid
without a command does.

Use arrow keys or j/k to navigate, Enter to select.
After a game, Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  cuboid menu
  cuboid menu --fps 30
  cuboid menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	hooks, closeHooks := openHooks()
	defer closeHooks()

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, cuboid.LevelNames())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(hooks.Store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		// 0 falls back to the configured start level
		cuboid.SetStartLevel(menuResult.Level)

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		back, err := tui.Run(game, cfg, hooks)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if g, ok := game.(*cuboid.Game); ok && g.Err() != nil {
			logger.Warn("game could not load", "error", g.Err())
		}
		if !back {
			break // Quit from inside the game
		}
	}
}
