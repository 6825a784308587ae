package main

import (
	"context"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/smerajiapply/submission/pkg/cmd"
	"github.com/smerajiapply/submission/pkg/log"
	"github.com/smerajiapply/submission/pkg/models"
	"github.com/smerajiapply/submission/pkg/statestore"
	"github.com/smerajiapply/submission/pkg/watcher"
)

func NewWatchCommand() *cli.Command {
	flags := append(engineFlags(), requestFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:    "schedule",
			Usage:   "Cron schedule for repeated checks",
			Value:   "@every 30m",
			Sources: cli.EnvVars("WATCH_SCHEDULE"),
		},
		&cli.StringFlag{
			Name:    "redis-addr",
			Usage:   "Redis address for persisting last seen status (in-memory when empty)",
			Sources: cli.EnvVars("REDIS_ADDR"),
		},
		&cli.StringFlag{
			Name:    "redis-password",
			Sources: cli.EnvVars("REDIS_PASSWORD"),
		},
	)

	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Check an application on a schedule and report status changes",
		Flags:   flags,
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("watch")

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			engine, cleanup := cmd.NewEngine(engineOptions(command), logger)
			defer cleanup()

			var store watcher.StatusStore
			if addr := command.String("redis-addr"); addr != "" {
				redisStore := statestore.New(addr, command.String("redis-password"), 0)
				defer redisStore.Close()

				store = redisStore
			}

			onChange := func(portal, applicationID string, from, to models.ApplicationStatus) {
				logger.Info("Application status changed",
					"portal", portal,
					"application_id", applicationID,
					"from", from,
					"to", to)
			}

			w := watcher.New(engine, store, onChange, logger)

			return w.Start(ctx, command.String("schedule"), checkRequest(command))
		},
	}
}
