// Package orchestrator drives a complete portal check through its state
// machine: init, login, find application, check status, download, complete.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smerajiapply/submission/pkg/agents"
	"github.com/smerajiapply/submission/pkg/browser"
	"github.com/smerajiapply/submission/pkg/eventbus"
	"github.com/smerajiapply/submission/pkg/events"
	"github.com/smerajiapply/submission/pkg/executor"
	"github.com/smerajiapply/submission/pkg/models"
	"github.com/smerajiapply/submission/pkg/vision"
)

// ProfileSource resolves a portal name to its profile.
type ProfileSource interface {
	Profile(name string) (*models.PortalProfile, error)
}

// Store persists every artifact a run produces.
type Store interface {
	agents.ArtifactStore
	SaveScreenshot(data []byte, prefix string) (string, error)
}

// DriverFactory opens a fresh browser for a run. Each run gets its own
// driver so concurrent checks never share a session.
type DriverFactory func() (browser.Driver, error)

// Engine runs portal checks end to end.
type Engine struct {
	profiles ProfileSource
	store    Store
	oracle   vision.Oracle
	bus      eventbus.EventBus
	drivers  DriverFactory
	logger   *slog.Logger
}

// NewEngine wires an engine. The oracle may be nil to disable the vision
// status fallback.
func NewEngine(profiles ProfileSource, store Store, oracle vision.Oracle, bus eventbus.EventBus, drivers DriverFactory, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	if bus == nil {
		bus = eventbus.NewNoopEventBus()
	}

	return &Engine{
		profiles: profiles,
		store:    store,
		oracle:   oracle,
		bus:      bus,
		drivers:  drivers,
		logger:   logger,
	}
}

// Run executes the full check for one application and always returns exactly
// one outcome, successful or not.
func (e *Engine) Run(ctx context.Context, req models.CheckRequest) models.ApplicationOutcome {
	runID := "run-" + uuid.New().String()[:8]
	logger := e.logger.With("run_id", runID, "portal", req.Portal)
	started := time.Now()

	logger.Info("Starting check", "application_id", req.ApplicationID)
	e.publish(ctx, req.Portal, events.CheckStarted{
		BaseEvent:     events.NewBaseEvent(events.CheckStartedEvent, req.Portal, runID),
		ApplicationID: req.ApplicationID,
	})

	outcome := e.run(ctx, req, runID, logger)
	outcome.Timestamp = time.Now().UTC()

	e.publish(ctx, req.Portal, events.CheckFinished{
		BaseEvent:       events.NewBaseEvent(events.CheckFinishedEvent, req.Portal, runID),
		Success:         outcome.Success,
		Status:          outcome.Status,
		OfferDownloaded: outcome.OfferDownloaded,
		OfferPath:       outcome.OfferPath,
		DurationMs:      time.Since(started).Milliseconds(),
	})

	logger.Info("Check finished",
		"success", outcome.Success,
		"status", outcome.Status,
		"offer_downloaded", outcome.OfferDownloaded,
		"duration", time.Since(started))

	return outcome
}

func (e *Engine) run(ctx context.Context, req models.CheckRequest, runID string, logger *slog.Logger) models.ApplicationOutcome {
	state := models.StateInit
	logger.Info("State transition", "state", state)

	profile, err := e.profiles.Profile(req.Portal)
	if err != nil {
		return e.failed(fmt.Sprintf("could not load portal profile: %v", err))
	}

	driver, err := e.drivers()
	if err != nil {
		return e.failed(fmt.Sprintf("could not start browser: %v", err))
	}

	session, err := browser.NewSession(driver, logger, e.store)
	if err != nil {
		driver.Close()

		return e.failed(fmt.Sprintf("could not open browser session: %v", err))
	}
	defer session.Close()

	exec := executor.New(session, logger)
	runCtx := req.RunContext(profile.PortalName)

	loginAgent := agents.NewLoginAgent(session, exec, logger)
	navigationAgent := agents.NewNavigationAgent(session, exec, e.oracle, logger)
	downloadAgent := agents.NewDownloadAgent(session, exec, e.store, logger)

	// LOGIN
	state = models.StateLogin
	logger.Info("State transition", "state", state)

	if err := e.phase(ctx, req.Portal, runID, "login", func() error {
		return loginAgent.Login(profile, runCtx)
	}); err != nil {
		return e.failed(fmt.Sprintf("login failed: %v", err))
	}

	// FIND_APPLICATION
	state = models.StateFindApplication
	logger.Info("State transition", "state", state)

	if err := e.phase(ctx, req.Portal, runID, "navigation", func() error {
		return navigationAgent.LocateApplication(profile, runCtx)
	}); err != nil {
		return e.failed(fmt.Sprintf("navigation failed: %v", err))
	}

	// CHECK_STATUS
	state = models.StateCheckStatus
	logger.Info("State transition", "state", state)

	report, err := navigationAgent.ExtractStatus(ctx, profile)
	if err != nil {
		return e.failed(fmt.Sprintf("status extraction failed: %v", err))
	}

	logger.Info("Application status", "status", report.Status, "source", report.Source)

	// DOWNLOAD, only when a decision document should exist
	var (
		offerDownloaded bool
		offerPath       string
	)

	if report.Status == models.StatusOfferReady || report.Status == models.StatusAccepted {
		state = models.StateDownload
		logger.Info("State transition", "state", state)

		err := e.phase(ctx, req.Portal, runID, "download", func() error {
			path, err := downloadAgent.DownloadOffer(profile, runCtx)
			if err != nil {
				return err
			}

			offerPath = path

			return nil
		})
		if err != nil {
			// A missing document does not fail the whole check; the status
			// finding stands on its own.
			logger.Warn("Offer download failed", "error", err)
		} else {
			offerDownloaded = true
		}
	}

	// COMPLETE
	state = models.StateComplete
	logger.Info("State transition", "state", state)

	metadata := map[string]any{
		"portal":           profile.PortalName,
		"application_id":   req.ApplicationID,
		"student_name":     req.StudentName,
		"status":           string(report.Status),
		"status_text":      report.StatusText,
		"status_source":    report.Source,
		"offer_downloaded": offerDownloaded,
		"run_id":           runID,
	}

	if req.ApplicationID != "" {
		if _, err := e.store.SaveMetadata(profile.PortalName, req.ApplicationID, metadata); err != nil {
			logger.Warn("Could not persist run metadata", "error", err)
		}
	}

	return models.ApplicationOutcome{
		Success:         true,
		Status:          report.Status,
		StatusText:      report.StatusText,
		OfferDownloaded: offerDownloaded,
		OfferPath:       offerPath,
		Message:         fmt.Sprintf("status: %s", report.Status),
		Metadata:        metadata,
	}
}

// phase times a phase, publishes its lifecycle event, and returns its error.
func (e *Engine) phase(ctx context.Context, portal, runID, name string, fn func() error) error {
	started := time.Now()

	err := fn()
	duration := time.Since(started).Milliseconds()

	if err != nil {
		e.publish(ctx, portal, events.PhaseFailed{
			BaseEvent:  events.NewBaseEvent(events.PhaseFailedEvent, portal, runID),
			Phase:      name,
			Error:      err.Error(),
			DurationMs: duration,
		})

		return err
	}

	e.publish(ctx, portal, events.PhaseCompleted{
		BaseEvent:  events.NewBaseEvent(events.PhaseCompletedEvent, portal, runID),
		Phase:      name,
		DurationMs: duration,
	})

	return nil
}

func (e *Engine) failed(message string) models.ApplicationOutcome {
	return models.ApplicationOutcome{
		Success: false,
		Status:  models.StatusUnknown,
		Message: message,
	}
}

func (e *Engine) publish(ctx context.Context, key string, event eventbus.Event) {
	if err := e.bus.Publish(ctx, key, event); err != nil {
		e.logger.Warn("Could not publish event", "type", event.GetType(), "error", err)
	}
}
