package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagReplayLimit int

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse journaled rounds",
	Long: `Browse the rounds journaled with 'snake play --record'.

Without a subcommand an interactive table opens; Enter re-simulates the
selected round and shows its final board.

Examples:
  snake replays
  snake replays list --limit 5
  snake replays show 3
  snake replays stats
  snake replays clear`,
	Args: cobra.NoArgs,
	Run:  runReplaysBrowse,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled rounds",
	Args:  cobra.NoArgs,
	Run:   runReplaysList,
}

var replaysShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Re-simulate a round and print its final board",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysShow,
}

var replaysStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the journal",
	Args:  cobra.NoArgs,
	Run:   runReplaysStats,
}

var replaysClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every journaled round",
	Args:  cobra.NoArgs,
	Run:   runReplaysClear,
}

func init() {
	replaysListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of rounds to list")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysShowCmd)
	replaysCmd.AddCommand(replaysStatsCmd)
	replaysCmd.AddCommand(replaysClearCmd)
}

// openJournal opens the configured round journal or exits.
func openJournal() (*storage.Store, config.SnakeConfig) {
	settings, _, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening round journal: %v\n", err)
		os.Exit(1)
	}
	return store, settings
}

func runReplaysBrowse(_ *cobra.Command, _ []string) {
	store, settings := openJournal()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	err := tui.RunReplays(store, tui.NewPalette(settings.Colors), width, height)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReplaysList(_ *cobra.Command, _ []string) {
	store, _ := openJournal()
	rounds, err := store.Rounds(flagReplayLimit)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		os.Exit(1)
	}

	if len(rounds) == 0 {
		fmt.Println("No rounds journaled yet.")
		fmt.Println()
		fmt.Println("Play 'snake play --record' to journal rounds.")
		return
	}

	fmt.Printf("  %-5s  %-5s  %-7s  %-6s  %-6s  %-10s  %s\n", "ID", "Round", "Ticks", "Length", "Inputs", "Ended", "Date")
	fmt.Printf("  %-5s  %-5s  %-7s  %-6s  %-6s  %-10s  %s\n", "--", "-----", "-----", "------", "------", "-----", "----")
	for _, r := range rounds {
		fmt.Printf("  %-5d  %-5d  %-7d  %-6d  %-6d  %-10s  %s\n",
			r.ID, r.Number, r.Ticks, r.Length, r.InputCount, r.Reason,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runReplaysShow(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid round id %q\n", args[0])
		os.Exit(1)
	}

	store, _ := openJournal()
	round, entry, err := store.Round(id)
	store.Close()
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no round with id %d\n", id)
		fmt.Fprintln(os.Stderr, "Run 'snake replays list' to see journaled rounds.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading round: %v\n", err)
		os.Exit(1)
	}

	result := snake.Replay(round)
	fmt.Printf("Round %d (id %d), seed %d, %dx%d board\n",
		round.Number, entry.ID, round.Seed, round.Grid.Length, round.Grid.Length)
	fmt.Printf("Replayed %d of %d ticks, last tick %s, length %d (journaled %d)\n",
		result.Ticks, round.Ticks, result.Outcome, result.State.Len(), round.Length)
	fmt.Println()
	fmt.Println(tui.RenderReplay(round, nil))
}

func runReplaysStats(_ *cobra.Command, _ []string) {
	store, _ := openJournal()
	stats, err := store.Stats()
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rounds:      %d\n", stats.Rounds)
	fmt.Printf("Total ticks: %d\n", stats.TotalTicks)
	fmt.Printf("Best length: %d\n", stats.MaxLength)

	if len(stats.ByReason) == 0 {
		return
	}
	reasons := make([]string, 0, len(stats.ByReason))
	for r := range stats.ByReason {
		reasons = append(reasons, string(r))
	}
	sort.Strings(reasons)

	fmt.Println()
	fmt.Println("Ended by:")
	for _, r := range reasons {
		fmt.Printf("  %-10s  %d\n", r, stats.ByReason[snake.EndReason(r)])
	}
}

func runReplaysClear(_ *cobra.Command, _ []string) {
	store, _ := openJournal()
	err := store.ClearRounds()
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing rounds: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Round journal cleared.")
}
