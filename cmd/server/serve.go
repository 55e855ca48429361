package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"hrops-gateway/internal/auth"
	"hrops-gateway/internal/config"
	"hrops-gateway/internal/logging"
	"hrops-gateway/internal/routes"
)

func cmdServe(configPath *string) *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the HTTP gateway",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				slog.Error("failed to load config", "error", err)
				return err
			}
			log := logging.New(os.Stderr, cfg.LogLevel)
			if err := run(ctx, cfg, log); err != nil {
				log.Error("server failed", "error", err)
				return err
			}
			return nil
		},
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	log.Info("starting hrops gateway", "config", cfg)
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, err := auth.NewSessions(cfg.Admin.SessionSecret, cfg.Admin.SessionTTL)
	if err != nil {
		return goerr.Wrap(err, "failed to set up admin sessions")
	}

	ginRoutes := routes.SetupRoutes(routes.Deps{
		Config:   cfg,
		Log:      log,
		Sessions: sessions,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           ginRoutes,
		ReadHeaderTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- goerr.Wrap(err, "failed to start server", goerr.V("addr", cfg.HTTP.Address))
		}
	}()

	log.Info("gateway is running", "address", cfg.HTTP.Address,
		"endpoints", "GET /health, GET /ws, GET|POST /api/gs, GET|POST /api/calendar, GET /api/board, GET /api/dp/snapshot")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Debug("shutting down hrops gateway")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return goerr.Wrap(err, "failed to shutdown server gracefully")
	}
	return nil
}
