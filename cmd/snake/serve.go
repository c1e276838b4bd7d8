package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeRecord bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own independently seeded game sized to the
connecting terminal.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses the config's server.host_key_path (generated if missing)

Examples:
  snake serve                           # Listen on :23234
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --host-key ./my_host_key  # Use specific host key
  snake serve --record                  # Journal every session's rounds

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (0 = from config)")
	serveCmd.Flags().BoolVar(&flagServeRecord, "record", false, "Journal finished rounds of every session")
}

func runServe(cmd *cobra.Command, _ []string) {
	if err := serve(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command) error {
	settings, _, err := loadSettings()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagSSHAddr != "" {
		settings.Server.Addr = flagSSHAddr
	}
	if flagHostKey != "" {
		settings.Server.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout != 0 {
		settings.Server.IdleMinutes = flagIdleTimeout
	}
	if cmd.Flags().Changed("record") {
		settings.Storage.Record = flagServeRecord
	}

	logger, err := newLogger(os.Stderr, "snake-ssh")
	if err != nil {
		return err
	}

	env := registry.Env{
		Runtime:  settings.Runtime(0), // Sessions pick their own seed
		Settings: settings,
		Logger:   logger,
	}

	if settings.Storage.Record {
		store, err := storage.Open(settings.Storage.Path)
		if err != nil {
			return fmt.Errorf("opening round journal: %w", err)
		}
		defer store.Close()
		env.Recorder = storage.NewJournal(store, logger)
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfigFrom(settings), env)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting snake SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx)
}
