package stubserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tsystem/trackdesk/internal/config"
)

// App runs the stub server standalone (trackdesk serve).
type App struct {
	cfg     *config.Config
	srv     *Server
	httpSrv *http.Server
	log     zerolog.Logger
}

func NewApp(cfg *config.Config, log zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	srv := New(Options{
		JWTSecret: cfg.Serve.JWTSecret,
		TokenTTL:  cfg.Serve.TokenTTL,
		Logger:    log,
	})
	return &App{
		cfg: cfg,
		srv: srv,
		httpSrv: &http.Server{
			Addr:              cfg.ServeAddr(),
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		log: log.With().Str("component", "serve").Logger(),
	}, nil
}

// Server exposes the underlying stub for seeding accounts.
func (a *App) Server() *Server { return a.srv }

// Run blocks until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.log.Info().Str("addr", a.httpSrv.Addr).Msg("stub API listening")
	a.log.Info().Msgf("  Health: http://%s/health", a.httpSrv.Addr)
	a.log.Info().Msgf("  API:    http://%s/api/", a.httpSrv.Addr)

	errc := make(chan error, 1)
	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
