package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"hrops-gateway/internal/config"
	"hrops-gateway/internal/logging"
	"hrops-gateway/internal/models"
	"hrops-gateway/internal/upstream"
)

// cmdCheck lists the store once with the configured URL and secret and prints the envelope.
func cmdCheck(configPath *string) *cli.Command {
	var calendar bool

	return &cli.Command{
		Name:  "check",
		Usage: "List records once through the store and print the normalized envelope",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "calendar",
				Usage:       "List calendar events instead of tasks",
				Destination: &calendar,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := logging.New(os.Stderr, cfg.LogLevel)

			env := models.Fail(models.ErrCodeMissingEnv, "GS_WEBAPP_URL/GS_WEBAPP_KEY not configured")
			if cfg.StoreConfigured() {
				vocab := upstream.TaskVocabulary(cfg.Store.SupportsDelete)
				if calendar {
					vocab = upstream.CalendarVocabulary(cfg.Store.SupportsDelete)
				}
				env, err = listOnce(ctx, cfg, vocab, log)
				if err != nil {
					return err
				}
			}

			out, err := json.MarshalIndent(env, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to encode envelope")
			}
			fmt.Fprintln(os.Stdout, string(out))

			if !env.OK {
				return goerr.New("store check failed", goerr.V("error", env.Error))
			}
			return nil
		},
	}
}

func listOnce(ctx context.Context, cfg config.Config, vocab upstream.Vocabulary, log *slog.Logger) (models.Envelope, error) {
	out, err := upstream.NewBuilder(cfg.Store.URL, cfg.Store.Key, vocab).Build(upstream.Inbound{Method: "GET"})
	if err != nil {
		return models.Envelope{}, goerr.Wrap(err, "failed to build list request")
	}
	client := upstream.NewClient(upstream.NewHTTPClient(cfg.Store.Timeout), upstream.NewNormalizer(cfg.Store.DiagnosticLimit), log)
	return client.Call(ctx, out), nil
}
