package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/ascii-engine/internal/config"
	"github.com/vovakirdan/ascii-engine/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2323").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.ascii-engine/host_key.
	HostKeyPath string

	// DBPath is the path to the sketch library.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Engine supplies canvas and animation settings for every session.
	Engine config.EngineConfig

	// Level is the minimum log level of the server logger.
	Level log.Level
}

// SSHServerConfigFrom builds the server config from the engine configuration.
func SSHServerConfigFrom(cfg config.EngineConfig) SSHServerConfig {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return SSHServerConfig{
		Address:     cfg.Server.Address,
		HostKeyPath: config.ExpandHome(cfg.Server.HostKey),
		DBPath:      cfg.Storage.DBPath,
		IdleTimeout: time.Duration(cfg.Server.IdleTimeoutMin) * time.Minute,
		Engine:      cfg,
		Level:       level,
	}
}

// SSHServer wraps a Wish SSH server that previews sketches.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ascii-ssh",
		Level:           cfg.Level,
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open sketch library", "error", err)
		// Continue with built-in sketches only
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".ascii-engine", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
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

	renderer := bubbletea.MakeRenderer(sshSession)
	theme := NewTheme(renderer)

	cfg := PreviewConfigFrom(s.config.Engine, 0, renderer.ColorProfile())
	cfg.Width = pty.Window.Width
	cfg.Height = pty.Window.Height
	cfg.Logger = s.logger.With("user", sshSession.User())
	cfg.Theme = &theme
	cfg.Context = sshSession.Context()
	// Remote users must not write files on the server.
	cfg.ScreenshotDir = ""

	model := NewSessionModel(s.store, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
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

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
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

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the view a session currently shows.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenPreview
	screenHistory
)

// SessionModel manages the full session flow: menu -> preview -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	config   PreviewConfig
	theme    Theme
	screen   sessionScreen
	menu     MenuModel
	preview  *PreviewModel
	history  *HistoryModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg PreviewConfig) SessionModel {
	theme := DefaultTheme()
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		config: cfg,
		theme:  theme,
		menu:   NewMenuModel(store, theme, cfg.Width, cfg.Height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.Width = wsm.Width
		m.config.Height = wsm.Height
	}

	switch m.screen {
	case screenPreview:
		return m.updatePreview(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Selection and history requests end the menu with tea.Quit, which
	// must not end the session.
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.menu.keys.Confirm, m.menu.keys.History) {
		return m.menuChoice(km)
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}
	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// menuChoice acts on a menu key that selects a sketch or opens the history.
func (m SessionModel) menuChoice(km tea.KeyMsg) (tea.Model, tea.Cmd) {
	newMenu, _ := m.menu.Update(km)
	menuModel, ok := newMenu.(MenuModel)
	if !ok {
		return m, nil
	}
	m.menu = menuModel

	if m.menu.WantsHistory() {
		history := NewHistoryModel(m.store, m.theme, m.config.Width, m.config.Height)
		m.history = &history
		m.screen = screenHistory
		m.menu = NewMenuModel(m.store, m.theme, m.config.Width, m.config.Height)
		return m, m.history.Init()
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, nil
	}

	m.menu = NewMenuModel(m.store, m.theme, m.config.Width, m.config.Height)
	sketch, err := LoadSketch(m.store, selected.ID)
	if err != nil {
		m.config.Logger.Warn("could not load sketch", "sketch", selected.ID, "error", err)
		return m, nil
	}
	preview, err := NewPreviewModel(sketch, m.store, m.config)
	if err != nil {
		m.config.Logger.Warn("could not start sketch", "sketch", selected.ID, "error", err)
		return m, nil
	}
	m.preview = &preview
	m.screen = screenPreview
	return m, m.preview.Init()
}

// updatePreview handles updates when a sketch is playing.
func (m SessionModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.preview.Update(msg)
	if preview, ok := newModel.(PreviewModel); ok {
		m.preview = &preview
	}

	if m.preview.BackToMenu() {
		m.preview = nil
		m.screen = screenMenu
		m.menu = NewMenuModel(m.store, m.theme, m.config.Width, m.config.Height)
		return m, m.menu.Init()
	}

	if m.preview.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateHistory handles updates when the run history is shown.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if history, ok := newModel.(HistoryModel); ok {
		m.history = &history
	}

	if m.history.IsGoingBack() {
		m.history = nil
		m.screen = screenMenu
		m.menu = NewMenuModel(m.store, m.theme, m.config.Width, m.config.Height)
		return m, m.menu.Init()
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPreview:
		return m.preview.View()
	case screenHistory:
		return m.history.View()
	}
	return m.menu.View()
}

// Wait stops a playing sketch and blocks until its run has been recorded.
func (m SessionModel) Wait(timeout time.Duration) {
	if m.preview != nil {
		m.preview.Wait(timeout)
	}
}

// RunSession runs the menu, preview and history screens in one program.
func RunSession(store *storage.Store, cfg PreviewConfig) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if m, ok := finalModel.(SessionModel); ok {
		m.Wait(cfg.FrameTimeout + time.Second)
	}
	return err
}
