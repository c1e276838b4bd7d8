// snake plays Snake on a wrapping square board in the terminal, in a window
// or over SSH.
//
// Usage:
//
//	snake play                - Play in the terminal (Bubble Tea)
//	snake play --frontend gui - Play in a window (needs -tags ebiten)
//	snake list                - List available frontends
//	snake serve               - Start SSH server for remote play
//	snake replays             - Browse journaled rounds
//	snake config              - Print the effective configuration
//
// Global flags:
//
//	--config <path>   - Configuration file
//	--seed <value>    - RNG seed for reproducible gameplay (0 = time based)
//	--grid <n>        - Cells per side of the board
//	--cell-size <px>  - Pixels per cell in the window frontend
//	--tick <ms>       - Delay between two moves
//	--log-level <l>   - debug, info, warn or error
//	--db <path>       - Round journal database
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"

	// Import frontends to register them
	_ "github.com/vovakirdan/tui-snake/internal/platform/gui"
	_ "github.com/vovakirdan/tui-snake/internal/platform/term"
	_ "github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagGrid     int
	flagCellSize int
	flagTick     int
	flagLogLevel string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake on a wrapping board",
	Long: `Snake moves one cell per tick on a square board whose edges wrap.
Eating food grows the snake; running into its own body starts a new round.

Available commands:
  play     - Play in the terminal or in a window
  list     - Show all available frontends
  serve    - Start SSH server for remote play
  replays  - Browse and re-simulate journaled rounds
  config   - Print the effective configuration

Examples:
  snake play
  snake play --frontend tcell --tick 80
  snake play --record --seed 42
  snake serve --ssh :2222
  snake replays show 3`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagGrid, "grid", 0, "Cells per side of the board (0 = from config)")
	rootCmd.PersistentFlags().IntVar(&flagCellSize, "cell-size", 0, "Pixels per cell in the window (0 = from config)")
	rootCmd.PersistentFlags().IntVar(&flagTick, "tick", 0, "Milliseconds between moves (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to round journal database (default from config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings reads the configuration and applies command line overrides.
func loadSettings() (config.SnakeConfig, config.Source, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, source, err
	}

	if flagGrid != 0 {
		cfg.Grid.Length = flagGrid
	}
	if flagCellSize != 0 {
		cfg.Grid.CellSize = flagCellSize
	}
	if flagTick != 0 {
		cfg.Timing.TickMillis = flagTick
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	return cfg, source, cfg.Validate()
}

// sessionSeed returns the seed flag, or a time based seed when it is zero.
func sessionSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens ~/.snake/snake.log for appending. Full-screen frontends
// own the terminal, so their logs go there.
func openLogFile() (*os.File, error) {
	dir := config.DataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "snake.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
