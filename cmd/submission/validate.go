package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/smerajiapply/submission/pkg/config"
	"github.com/smerajiapply/submission/pkg/log"
)

func NewValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate every portal profile in the config directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "Directory containing portal profile YAML files",
				Value:   "./configs",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("validate")

			source := config.NewDirSource(command.String("config-dir"))

			names, err := source.Portals()
			if err != nil {
				return err
			}

			if len(names) == 0 {
				return fmt.Errorf("no profiles found in %s", command.String("config-dir"))
			}

			var failed int

			for _, name := range names {
				if _, err := source.Profile(name); err != nil {
					logger.Error("Profile invalid", "portal", name, "error", err)
					failed++

					continue
				}

				logger.Info("Profile valid", "portal", name)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d profiles failed validation", failed, len(names))
			}

			fmt.Printf("All %d profiles are valid\n", len(names))

			return nil
		},
	}
}
