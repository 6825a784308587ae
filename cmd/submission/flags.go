package main

import (
	cli "github.com/urfave/cli/v3"

	"github.com/smerajiapply/submission/pkg/cmd"
	"github.com/smerajiapply/submission/pkg/models"
)

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config-dir",
			Usage:   "Directory containing portal profile YAML files",
			Value:   "./configs",
			Sources: cli.EnvVars("CONFIG_DIR"),
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Usage:   "Directory for downloaded offers, metadata, and screenshots",
			Value:   "./output",
			Sources: cli.EnvVars("OUTPUT_DIR"),
		},
		&cli.StringFlag{
			Name:    "event-bus",
			Usage:   "Event bus type (none, gochannel, kafka)",
			Value:   "none",
			Sources: cli.EnvVars("EVENT_BUS_TYPE"),
		},
		&cli.BoolFlag{
			Name:    "headless",
			Usage:   "Run the browser without a visible window",
			Value:   true,
			Sources: cli.EnvVars("HEADLESS"),
		},
		&cli.StringFlag{
			Name:    "gemini-api-key",
			Usage:   "Gemini API key for the vision status fallback",
			Sources: cli.EnvVars("GEMINI_API_KEY"),
		},
		&cli.StringFlag{
			Name:    "gemini-model",
			Usage:   "Gemini model used for vision analysis",
			Sources: cli.EnvVars("GEMINI_MODEL"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
	}
}

func requestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "portal",
			Usage:    "Portal name, matching a profile in the config directory",
			Required: true,
			Sources:  cli.EnvVars("PORTAL"),
		},
		&cli.StringFlag{
			Name:     "username",
			Usage:    "Portal account username",
			Required: true,
			Sources:  cli.EnvVars("PORTAL_USERNAME"),
		},
		&cli.StringFlag{
			Name:     "password",
			Usage:    "Portal account password",
			Required: true,
			Sources:  cli.EnvVars("PORTAL_PASSWORD"),
		},
		&cli.StringFlag{
			Name:    "application-id",
			Usage:   "Application identifier on the portal",
			Sources: cli.EnvVars("APPLICATION_ID"),
		},
		&cli.StringFlag{
			Name:    "student-name",
			Usage:   "Student name, used to locate the application",
			Sources: cli.EnvVars("STUDENT_NAME"),
		},
		&cli.StringFlag{
			Name:    "student-email",
			Usage:   "Student email, used to locate the application",
			Sources: cli.EnvVars("STUDENT_EMAIL"),
		},
	}
}

func engineOptions(command *cli.Command) cmd.EngineOptions {
	return cmd.EngineOptions{
		ConfigDir:    command.String("config-dir"),
		OutputDir:    command.String("output-dir"),
		EventBus:     command.String("event-bus"),
		Headless:     command.Bool("headless"),
		GeminiAPIKey: command.String("gemini-api-key"),
		GeminiModel:  command.String("gemini-model"),
	}
}

func checkRequest(command *cli.Command) models.CheckRequest {
	return models.CheckRequest{
		Portal:        command.String("portal"),
		Username:      command.String("username"),
		Password:      command.String("password"),
		ApplicationID: command.String("application-id"),
		StudentName:   command.String("student-name"),
		StudentEmail:  command.String("student-email"),
	}
}
