package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cuboid/internal/audio"
	"github.com/vovakirdan/cuboid/internal/config"
	"github.com/vovakirdan/cuboid/internal/core"
	"github.com/vovakirdan/cuboid/internal/games/cuboid"
	"github.com/vovakirdan/cuboid/internal/platform/tui"
	"github.com/vovakirdan/cuboid/internal/registry"
	"github.com/vovakirdan/cuboid/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play the campaign or the demo",
	Long: `Start playing directly, without the menu.

Games:
  cuboid       - The campaign (default)
  cuboid_demo  - Two cubes on an open board, no tile rules

Controls:
  Arrows/WASD/HJKL  - Tip the block
  Space/Tab         - Switch block when split
  V                 - Cycle camera view
  P                 - Pause
  R                 - Restart from level 1
  Esc/B             - Back
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a screenshot

Examples:
  cuboid play
  cuboid play --level 3
  cuboid play cuboid_demo
  cuboid play --speed fast --config ./my-cuboid.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level, 1-indexed (0 = configured start level)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "cuboid"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Games:")
		for _, info := range registry.List() {
			fmt.Fprintf(os.Stderr, "  %-12s %s\n", info.ID, info.Title)
		}
		os.Exit(1)
	}

	cuboid.SetStartLevel(flagLevel)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	hooks, closeHooks := openHooks()
	_, runErr := tui.Run(game, runtimeConfig(), hooks)

	// Close hooks before potential exit
	closeHooks()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if g, ok := game.(*cuboid.Game); ok && g.Err() != nil {
		logger.Warn("game could not load", "error", g.Err())
	}
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

// openStore opens the scores database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		return nil
	}
	return store
}

// openHooks opens storage and the speaker for a local session. The
// returned func releases both.
func openHooks() (tui.Hooks, func()) {
	hooks := tui.Hooks{Store: openStore()}

	player := startAudio()
	if player != nil {
		hooks.Audio = player
	}

	return hooks, func() {
		if player != nil {
			player.Close()
		}
		if hooks.Store != nil {
			hooks.Store.Close()
		}
	}
}

// startAudio starts the cue player when both the flag and the config allow
// sound. It returns nil when sound is off or the speaker is unavailable.
func startAudio() *audio.Player {
	if !flagSound {
		return nil
	}
	cfg, err := config.LoadCuboid(flagConfig)
	if err != nil {
		cfg = config.DefaultCuboidConfig()
	}
	if !cfg.Audio.Enabled {
		return nil
	}

	player := audio.NewPlayer(cfg.Audio.Volume)
	if err := player.Start(); err != nil {
		logger.Warn("sound disabled", "error", err)
		return nil
	}
	return player
}
