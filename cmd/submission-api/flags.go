package main

import (
	cli "github.com/urfave/cli/v3"
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
