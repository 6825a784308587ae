// Package main provides the Submission API server implementation.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/smerajiapply/submission/pkg/cmd"
	"github.com/smerajiapply/submission/pkg/config"
	"github.com/smerajiapply/submission/pkg/log"
)

const defaultPort = 9091

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "submission-api",
		Usage:                 "Run portal checks over REST",
		EnableShellCompletion: true,
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
		}, engineFlags()...),
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Submission API")

			engine, cleanup := cmd.NewEngine(cmd.EngineOptions{
				ConfigDir:    command.String("config-dir"),
				OutputDir:    command.String("output-dir"),
				EventBus:     command.String("event-bus"),
				Headless:     command.Bool("headless"),
				GeminiAPIKey: command.String("gemini-api-key"),
				GeminiModel:  command.String("gemini-model"),
			}, logger)
			defer cleanup()

			profiles := config.NewDirSource(command.String("config-dir"))

			api := NewAPI(logger, engine, profiles)

			err := api.Start(command.Int("port"))
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return err
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
