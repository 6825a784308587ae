package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/smerajiapply/submission/pkg/cmd"
	"github.com/smerajiapply/submission/pkg/log"
)

func NewCheckCommand() *cli.Command {
	return &cli.Command{
		Name:    "check",
		Aliases: []string{"c"},
		Usage:   "Run a single application check against a portal",
		Flags:   append(engineFlags(), requestFlags()...),
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("check")

			engine, cleanup := cmd.NewEngine(engineOptions(command), logger)
			defer cleanup()

			outcome := engine.Run(ctx, checkRequest(command))

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")

			if err := encoder.Encode(outcome); err != nil {
				return err
			}

			if !outcome.Success {
				return fmt.Errorf("check failed: %s", outcome.Message)
			}

			return nil
		},
	}
}
