// Package web provides HTTP handlers for running portal checks over REST.
package web

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/smerajiapply/submission/pkg/config"
	"github.com/smerajiapply/submission/pkg/models"
	"github.com/smerajiapply/submission/pkg/orchestrator"
)

type APIHandlers struct {
	engine    *orchestrator.Engine
	profiles  config.Source
	validator *validator.Validate
	logger    *slog.Logger
}

func NewAPIHandlers(
	engine *orchestrator.Engine,
	profiles config.Source,
	validator *validator.Validate,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		engine:    engine,
		profiles:  profiles,
		validator: validator,
		logger:    logger,
	}
}

// RunCheck executes a full portal check synchronously and returns its
// outcome. Browser runs take tens of seconds, so callers should set their
// request timeouts accordingly.
func (h *APIHandlers) RunCheck(c fiber.Ctx) error {
	var req models.CheckRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, "Invalid check request: "+err.Error())
	}

	if _, err := h.profiles.Profile(req.Portal); err != nil {
		return notFound(c, "Unknown portal: "+req.Portal)
	}

	outcome := h.engine.Run(c.Context(), req)

	return c.JSON(outcome)
}

// GetPortals lists the portals with a profile on this server.
func (h *APIHandlers) GetPortals(c fiber.Ctx) error {
	names, err := h.profiles.Portals()
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"portals": names})
}

// GetPortal returns one portal's profile so operators can inspect what a
// check will do.
func (h *APIHandlers) GetPortal(c fiber.Ctx) error {
	profile, err := h.profiles.Profile(c.Params("name"))
	if err != nil {
		return notFound(c, "Unknown portal: "+c.Params("name"))
	}

	return c.JSON(profile)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	_, err := h.profiles.Portals()

	status := "healthy"
	httpStatus := http.StatusOK

	if err != nil {
		status = "unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status": status,
	})
}
