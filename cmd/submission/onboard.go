package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/smerajiapply/submission/pkg/config"
	"github.com/smerajiapply/submission/pkg/log"
)

func NewOnboardCommand() *cli.Command {
	return &cli.Command{
		Name:    "onboard",
		Aliases: []string{"o"},
		Usage:   "Create a starter profile for a new portal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "Directory containing portal profile YAML files",
				Value:   "./configs",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:     "portal",
				Usage:    "Portal name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "portal-url",
				Usage:    "Portal login URL",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("onboard")

			path, err := config.WriteTemplate(
				command.String("config-dir"),
				command.String("portal"),
				command.String("portal-url"),
			)
			if err != nil {
				return err
			}

			logger.Info("Created profile template", "path", path)
			fmt.Printf("Created profile template: %s\n", path)
			fmt.Println("Customize the login, navigation, and download steps before running a check.")

			return nil
		},
	}
}
