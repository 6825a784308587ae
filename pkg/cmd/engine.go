package cmd

import (
	"log/slog"

	"github.com/smerajiapply/submission/pkg/browser"
	"github.com/smerajiapply/submission/pkg/config"
	"github.com/smerajiapply/submission/pkg/orchestrator"
	"github.com/smerajiapply/submission/pkg/storage"
	"github.com/smerajiapply/submission/pkg/vision"
)

// EngineOptions carries everything an entrypoint needs to build an engine.
type EngineOptions struct {
	ConfigDir    string
	OutputDir    string
	EventBus     string
	Headless     bool
	GeminiAPIKey string
	GeminiModel  string
}

// NewEngine wires a check engine from command line options. The returned
// cleanup closes the event bus.
func NewEngine(opts EngineOptions, logger *slog.Logger) (*orchestrator.Engine, func()) {
	profiles := config.NewDirSource(opts.ConfigDir)
	store := storage.NewFileStore(opts.OutputDir)

	var oracle vision.Oracle
	if opts.GeminiAPIKey != "" {
		oracle = vision.NewGeminiOracle(vision.GeminiConfig{
			APIKey: opts.GeminiAPIKey,
			Model:  opts.GeminiModel,
		})
	} else {
		logger.Warn("No Gemini API key configured, vision status fallback disabled")
	}

	bus := NewEventBus(opts.EventBus, logger)

	drivers := func() (browser.Driver, error) {
		return browser.NewPlaywrightDriver(browser.Options{Headless: opts.Headless}, logger)
	}

	engine := orchestrator.NewEngine(profiles, store, oracle, bus, drivers, logger)

	cleanup := func() {
		if err := bus.Close(); err != nil {
			logger.Error("Failed to close event bus", "error", err)
		}
	}

	return engine, cleanup
}
