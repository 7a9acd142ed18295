package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cuboid/internal/games/cuboid"
	"github.com/vovakirdan/cuboid/internal/games/cuboid/replay"
	"github.com/vovakirdan/cuboid/internal/games/cuboid/sim"
	"github.com/vovakirdan/cuboid/internal/storage"
)

var (
	flagReplayLimit int
	flagReplayTrace bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded playthroughs",
	Long: `List the most recent recorded playthroughs. Every game is recorded
when it ends or when you leave it.

Examples:
  cuboid replays
  cuboid replays --limit 50`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a recorded playthrough and verify it",
	Long: `Re-run a recorded playthrough without a terminal UI, print the final
board and check that the simulation ends in the recorded state.

The ID may be any unique prefix shown by 'cuboid replays'. Campaign replays
are run against the levels a new game would load (see --levels).

Examples:
  cuboid replay 5d1f0c2a
  cuboid replay 5d1f0c2a --trace`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Number of replays to list")
	replayCmd.Flags().BoolVar(&flagReplayTrace, "trace", false, "Print every level clear and fall")
}

func runReplays(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.RecentReplays(flagReplayLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No replays recorded yet.")
		return
	}

	fmt.Printf("  %-36s  %-12s  %-5s  %-8s  %-8s  %s\n", "ID", "Game", "Start", "Score", "Ticks", "Date")
	fmt.Printf("  %-36s  %-12s  %-5s  %-8s  %-8s  %s\n", "--", "----", "-----", "-----", "-----", "----")
	for _, e := range entries {
		fmt.Printf("  %-36s  %-12s  %-5d  %-8d  %-8d  %s\n",
			e.ID, e.GameID, e.StartLevel, e.Score, e.Ticks, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'cuboid replay <id>' to re-run one.")
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	entry, err := store.ReplayByID(args[0])
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pt, err := replay.Unmarshal(entry.Data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var lvls []sim.Level
	if !pt.Sandbox {
		lvls, err = cuboid.LoadLevels()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	res, err := replay.Run(pt, lvls, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Replay %s (%s, %d ticks at %d/s, %d inputs)\n",
		pt.ID, pt.GameID, pt.Ticks, pt.Params.TicksPerSecond, len(pt.Frames))
	fmt.Println()

	if flagReplayTrace {
		for _, ev := range res.Events {
			fmt.Println(describeEvent(ev, lvls))
		}
		if len(res.Events) > 0 {
			fmt.Println()
		}
	}

	fmt.Print(sim.RenderASCII(res.Final))
	fmt.Println()

	digest := fmt.Sprintf("%016x", res.Digest)
	if entry.Digest != "" && entry.Digest != digest {
		fmt.Fprintf(os.Stderr, "Error: replay diverged: recorded digest %s, got %s\n", entry.Digest, digest)
		fmt.Fprintln(os.Stderr, "The levels or the simulation changed since it was recorded.")
		os.Exit(1)
	}
	fmt.Printf("Digest %s verified\n", digest)
}

// describeEvent formats a session event for the trace.
func describeEvent(ev sim.Event, lvls []sim.Level) string {
	name := fmt.Sprintf("%d", ev.Level+1)
	if ev.Level >= 0 && ev.Level < len(lvls) {
		name = lvls[ev.Level].ID
	}
	switch ev.Kind {
	case sim.EventLevelCleared:
		return fmt.Sprintf("level %s cleared in %d moves, %ds: +%d (total %d)", name, ev.Moves, ev.Seconds, ev.Gained, ev.Score)
	case sim.EventRetry:
		return fmt.Sprintf("fell on level %s after %d moves", name, ev.Moves)
	case sim.EventGameOver:
		return fmt.Sprintf("campaign complete, score %d", ev.Score)
	default:
		return fmt.Sprintf("event %d on level %s", ev.Kind, name)
	}
}
