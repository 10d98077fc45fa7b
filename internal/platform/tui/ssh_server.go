package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/michaelssim/soundbuddy/internal/config"
	"github.com/michaelssim/soundbuddy/internal/control"
	"github.com/michaelssim/soundbuddy/internal/engine"
	"github.com/michaelssim/soundbuddy/internal/pulse"
	"github.com/michaelssim/soundbuddy/internal/sched"
	"github.com/michaelssim/soundbuddy/internal/tempo"
)

// ErrSessionBusy is reported to a client that connects while another
// session owns the metronome.
var ErrSessionBusy = errors.New("another metronome session is running")

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.soundbuddy/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	Bounds  tempo.Bounds
	Initial int
	Step    int

	// Recorder receives one record per finished run. Optional.
	Recorder engine.Recorder

	// Logger defaults to a stderr logger with an "soundbuddy-ssh" prefix.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
		Bounds:      tempo.DefaultBounds(),
		Initial:     tempo.DefaultBPM,
		Step:        DefaultStep,
	}
}

// SSHServer serves the metronome screen over SSH. Beats are rung as the
// terminal bell on the client, and at most one session runs at a time.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
	busy   atomic.Bool
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "soundbuddy-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	hostKeyPath := config.ExpandHome(cfg.HostKeyPath)
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".soundbuddy", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	srv.config.HostKeyPath = hostKeyPath

	// The last middleware runs first: log, then admit, then the program.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.singleSessionMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler builds a dedicated engine for the session. The engine is torn
// down when the session context ends.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	scheduler := sched.NewTickerScheduler()
	eng := engine.New(scheduler, pulse.NewBell(sshSession), engine.Options{
		Bounds:   s.config.Bounds,
		Logger:   s.logger.With("user", sshSession.User()),
		Recorder: s.config.Recorder,
	})
	ctrl := control.New(eng, eng.Bounds(), s.config.Initial)

	go func() {
		<-sshSession.Context().Done()
		if err := eng.Close(); err != nil {
			s.logger.Warn("engine close failed", "error", err)
		}
		//nolint:errcheck // Already stopped by eng.Close
		scheduler.Close()
	}()

	model := NewModel(ctrl, eng.Events(), ModelConfig{
		Width:  pty.Window.Width,
		Height: pty.Window.Height,
		Step:   s.config.Step,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// singleSessionMiddleware refuses a session while another one is active.
func (s *SSHServer) singleSessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		if !s.busy.CompareAndSwap(false, true) {
			s.logger.Warn("session refused", "user", sshSession.User(), "reason", ErrSessionBusy)
			wish.Fatalln(sshSession, "soundbuddy: "+ErrSessionBusy.Error())
			return
		}
		defer s.busy.Store(false)
		next(sshSession)
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

// Busy reports whether a session currently owns the metronome.
func (s *SSHServer) Busy() bool {
	return s.busy.Load()
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// HostKeyPath returns the resolved host key path.
func (s *SSHServer) HostKeyPath() string {
	return s.config.HostKeyPath
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
