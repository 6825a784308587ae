package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "submission",
		EnableShellCompletion: true,
		Usage:                 "Check application status on third party portals and download offer letters",
		Commands: []*cli.Command{
			NewCheckCommand(),
			NewWatchCommand(),
			NewOnboardCommand(),
			NewValidateCommand(),
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
