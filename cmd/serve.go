package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsystem/trackdesk/internal/config"
	"github.com/tsystem/trackdesk/internal/model"
	"github.com/tsystem/trackdesk/internal/stubserver"
	"github.com/tsystem/trackdesk/pkg/logger"
)

var serveSeedAdmin string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the in-memory stub API for development and demos",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveSeedAdmin, "seed-admin", "",
		"seed an admin account, format email:password")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	app, err := stubserver.NewApp(cfg, log)
	if err != nil {
		return err
	}

	if serveSeedAdmin != "" {
		email, password, ok := splitSeed(serveSeedAdmin)
		if !ok {
			return fmt.Errorf("serve: --seed-admin wants email:password, got %q", serveSeedAdmin)
		}
		if _, err := app.Server().SeedUser(email, password, model.RoleAdmin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		log.Info().Str("email", email).Msg("seeded admin account")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}

func splitSeed(s string) (email, password string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:], s[:i] != "" && s[i+1:] != ""
		}
	}
	return "", "", false
}
