package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagFrontend string
	flagSound    bool
	flagRecord   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing Snake.

Controls:
  Arrows/WASD/HJKL - Turn
  P/Esc            - Pause
  R                - Start a new round
  Ctrl+S           - Save a screenshot (tui)
  Ctrl+Y           - Copy the board to the clipboard (tui)
  Q/Ctrl+C         - Quit

Frontends:
  tui    - Bubble Tea in the terminal (default)
  tcell  - Raw terminal through tcell
  gui    - Desktop window (binary built with -tags ebiten)

Examples:
  snake play
  snake play --frontend tcell
  snake play --sound --record
  snake play --seed 42 --grid 15 --tick 150`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFrontend, "frontend", "tui", "Frontend to play in (see 'snake list')")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues (overrides config)")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Journal finished rounds for replay (overrides config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := play(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// play runs one session; deferred cleanup runs before runPlay exits.
func play(cmd *cobra.Command) error {
	frontend, err := registry.Get(flagFrontend)
	if err != nil {
		return fmt.Errorf("%w (run 'snake list' to see available frontends)", err)
	}

	settings, _, err := loadSettings()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("sound") {
		settings.Sound.Enabled = flagSound
	}
	if cmd.Flags().Changed("record") {
		settings.Storage.Record = flagRecord
	}

	// The frontend owns the terminal, so logs go to a file
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "snake")
	if err != nil {
		return err
	}

	// Get terminal size for the runtime config
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	env := registry.Env{
		Runtime:  settings.Runtime(sessionSeed()),
		Settings: settings,
		Logger:   logger,
	}
	env.Runtime.ScreenW = width
	env.Runtime.ScreenH = height

	if settings.Storage.Record {
		store, err := storage.Open(settings.Storage.Path)
		if err != nil {
			// Continue without the journal - the game still works
			fmt.Fprintf(os.Stderr, "Warning: could not open round journal: %v\n", err)
		} else {
			defer store.Close()
			env.Recorder = storage.NewJournal(store, logger)
		}
	}

	if settings.Sound.Enabled {
		player := audio.NewPlayer(settings.Sound.Volume, logger)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer player.Close()
			env.Cues = player
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("game started",
		"frontend", frontend.ID(),
		"seed", env.Runtime.Seed,
		"grid", env.Runtime.GridLength,
		"tick", env.Runtime.TickInterval,
	)
	defer logger.Info("game ended", "frontend", frontend.ID())

	if err := frontend.Run(ctx, env); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
