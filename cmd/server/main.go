package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	var configPath string

	app := &cli.Command{
		Name:  "hrops-gateway",
		Usage: "HR operations gateway in front of the spreadsheet record store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "YAML configuration file; environment variables override it",
				Value:       "config.yaml",
				Sources:     cli.EnvVars("HROPS_CONFIG"),
				Destination: &configPath,
			},
		},
		Commands: []*cli.Command{
			cmdServe(&configPath),
			cmdCheck(&configPath),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
