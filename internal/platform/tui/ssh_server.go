package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snake/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// SSHServerConfigFrom reads the server section of the snake configuration.
func SSHServerConfigFrom(cfg config.SnakeConfig) SSHServerConfig {
	return SSHServerConfig{
		Address:     cfg.Server.Addr,
		HostKeyPath: config.ExpandHome(cfg.Server.HostKeyPath),
		IdleTimeout: cfg.IdleTimeout(),
	}
}

// SSHServer wraps a Wish SSH server that runs one game per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	env    registry.Env
	logger *log.Logger

	mu    sync.Mutex
	games map[string]*snake.Game // Running games by session ID
}

// NewSSHServer creates a new SSH server. Every session gets a fresh game
// built from env; the session's PTY decides the screen size and each session
// is seeded independently.
func NewSSHServer(cfg SSHServerConfig, env registry.Env) (*SSHServer, error) {
	logger := env.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake-ssh",
		})
		env.Logger = logger
	}
	// Sessions run on a remote terminal; the server's speaker is not theirs.
	env.Cues = nil

	srv := &SSHServer{
		config: cfg,
		env:    env,
		logger: logger,
		games:  make(map[string]*snake.Game),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = filepath.Join(config.DataDir(), "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if err := os.MkdirAll(hostKeyDir, 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.finishMiddleware,
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	env := s.env
	env.Runtime.ScreenW = pty.Window.Width
	env.Runtime.ScreenH = pty.Window.Height
	env.Runtime.Seed = time.Now().UnixNano()
	env.Logger = s.logger.With("user", sshSession.User())

	game, err := env.NewGame()
	if err != nil {
		s.logger.Error("cannot start game", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	s.track(sshSession.Context().SessionID(), game)

	model := NewModel(game, env)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// finishMiddleware ends the session's round once its program has stopped,
// whether the player quit or the connection dropped.
func (s *SSHServer) finishMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		next(sshSession)
		s.finishSession(sshSession.Context().SessionID())
	}
}

// track registers the game played by a session.
func (s *SSHServer) track(sessionID string, game *snake.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[sessionID] = game
}

// finishSession finishes and forgets the game of a session. Rounds already
// finished by a quit key are not reported twice.
func (s *SSHServer) finishSession(sessionID string) {
	s.mu.Lock()
	game, ok := s.games[sessionID]
	delete(s.games, sessionID)
	s.mu.Unlock()

	if ok {
		game.Finish()
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
