// cuboid is a terminal block-tipping puzzle: roll a pair of cuboids across
// a 10x10 board, split and merge them, and drop them into the goal.
//
// Usage:
//
//	cuboid                   - Start the menu
//	cuboid play [game]       - Play the campaign (or cuboid_demo)
//	cuboid levels            - List campaign levels and their records
//	cuboid scores [game]     - Show high scores
//	cuboid replays           - List recorded playthroughs
//	cuboid replay <id>       - Re-run a playthrough and verify its result
//	cuboid serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--db <path>       - Set database path (default: ~/.cuboid/scores.db)
//	--config <path>   - Use a custom config YAML
//	--speed <preset>  - Tip speed: slow, normal, fast, instant
//	--levels <dir>    - Load levels from a directory
//	--sound           - Play sound cues (default: true)
//	--theme <name>    - Colour theme: default, monochrome
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cuboid/internal/config"
	"github.com/vovakirdan/cuboid/internal/games/cuboid"
	"github.com/vovakirdan/cuboid/internal/platform/tui"
)

var (
	// Global flags
	flagFPS    int
	flagDBPath string
	flagConfig string
	flagSpeed  string
	flagLevels string
	flagSound  bool
	flagTheme  string
)

// logger reports warnings the CLI can carry on after.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "cuboid"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cuboid",
	Short: "Cuboid - a block-tipping puzzle for your terminal",
	Long: `Cuboid is a terminal puzzle: tip a pair of blocks across a 10x10 board,
split them on cross tiles, merge them again and drop them into the goal.

Available commands:
  play     - Play the campaign or the demo directly
  menu     - Interactive menu (also the default)
  levels   - List campaign levels
  scores   - View high scores
  replays  - List recorded playthroughs
  replay   - Re-run a recorded playthrough
  serve    - Start SSH server for remote play

Examples:
  cuboid
  cuboid play --level 2
  cuboid play cuboid_demo
  cuboid play --speed instant --levels ./my-levels
  cuboid serve --ssh :2222 --metrics :9090`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyGlobalFlags,
	Run:               runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cuboid/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Tip speed preset: slow, normal, fast, instant")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files to play instead of the built-in campaign")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", true, "Play sound cues")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Colour theme: default, monochrome")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyGlobalFlags hands the global flags to the game and the UI before
// any command runs.
func applyGlobalFlags(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	var preset config.SpeedPreset
	if flagSpeed != "" {
		p, err := config.ParseSpeedPreset(flagSpeed)
		if err != nil {
			return err
		}
		preset = p
	}

	if err := tui.SetTheme(flagTheme); err != nil {
		return err
	}

	cuboid.SetConfigPath(flagConfig)
	cuboid.SetSpeedPreset(preset)
	cuboid.SetLevelsDir(flagLevels)
	return nil
}
