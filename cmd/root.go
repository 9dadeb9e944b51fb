package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tsystem/trackdesk/internal/api"
	"github.com/tsystem/trackdesk/internal/config"
	"github.com/tsystem/trackdesk/internal/controller"
	"github.com/tsystem/trackdesk/internal/nav"
	"github.com/tsystem/trackdesk/internal/session"
	"github.com/tsystem/trackdesk/internal/tui"
	"github.com/tsystem/trackdesk/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "trackdesk",
	Short: "Terminal client for the trackdesk ticket tracker",
	RunE:  runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// sessionTokens breaks the constructor cycle between the gateway
// (needs a token source) and the session store (needs the auth client,
// which needs the gateway). The field is set once during wiring.
type sessionTokens struct {
	store *session.Store
}

func (t *sessionTokens) Token() string {
	if t.store == nil {
		return ""
	}
	return t.store.Token()
}

// app bundles everything the commands need after wiring.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	session *session.Store
	deps    tui.Deps

	closers []io.Closer
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

// buildApp loads config and wires the full client stack: credential
// store, gateway, entity clients, session store, guard, controllers.
func buildApp(logTo io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.NewWriter(logTo, cfg.LogLevel)

	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		return nil, fmt.Errorf("state dir: %w", err)
	}
	creds, err := session.OpenBadger(filepath.Join(cfg.StateDir, "credstore"))
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}

	tokens := &sessionTokens{}
	gw := api.NewGateway(cfg.APIBaseURL, tokens, cfg.HTTPTimeout, log)
	auth := api.NewAuthClient(gw)
	store := session.NewStore(auth, creds, log)
	tokens.store = store

	a := &app{
		cfg:     cfg,
		log:     log,
		session: store,
		deps: tui.Deps{
			Session:  store,
			Guard:    nav.NewGuard(store),
			Auth:     auth,
			Projects: controller.NewProjects(api.NewProjectsClient(gw)),
			Tickets:  controller.NewTickets(api.NewTicketsClient(gw)),
			Comments: controller.NewComments(api.NewCommentsClient(gw), api.NewHistoryClient(gw)),
			Users:    controller.NewUsers(api.NewUsersClient(gw)),
			Log:      log,
		},
	}
	a.closers = append(a.closers, creds)
	return a, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal, so logs go to a file (or nowhere).
	logTo := io.Discard
	var logFile *os.File
	cfg, _ := config.Load()
	if cfg != nil && cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		logFile = f
		logTo = f
	}
	if logFile != nil {
		defer logFile.Close()
	}

	a, err := buildApp(logTo)
	if err != nil {
		return err
	}
	defer a.Close()

	program := tea.NewProgram(tui.NewApp(a.deps), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
