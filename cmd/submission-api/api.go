package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/smerajiapply/submission/pkg/config"
	"github.com/smerajiapply/submission/pkg/orchestrator"
	"github.com/smerajiapply/submission/pkg/web"
)

type API struct {
	logger   *slog.Logger
	engine   *orchestrator.Engine
	profiles config.Source
	validate *validator.Validate
}

func NewAPI(logger *slog.Logger, engine *orchestrator.Engine, profiles config.Source) *API {
	return &API{
		logger:   logger,
		engine:   engine,
		profiles: profiles,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.engine, a.profiles, a.validate, a.logger)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Submission API")
	})

	app.Post("/checks", handlers.RunCheck)

	p := app.Group("/portals")
	p.Get("/", handlers.GetPortals)
	p.Get("/:name", handlers.GetPortal)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
