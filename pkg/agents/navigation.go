package agents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/smerajiapply/submission/pkg/browser"
	"github.com/smerajiapply/submission/pkg/executor"
	"github.com/smerajiapply/submission/pkg/models"
	"github.com/smerajiapply/submission/pkg/vision"
)

// Status sources recorded in run metadata.
const (
	StatusSourcePatterns = "patterns"
	StatusSourceVision   = "vision"
)

// StatusReport is the outcome of reading an application's status page.
type StatusReport struct {
	Status models.ApplicationStatus
	// StatusText is the matched pattern, or the oracle's description when
	// the status came from vision.
	StatusText string
	Source     string
}

// NavigationAgent walks from the post-login page to the application's
// status page and reads the status off it.
type NavigationAgent struct {
	runner
	oracle vision.Oracle
}

// NewNavigationAgent builds a navigation agent. A nil oracle disables the
// vision fallback; unmatched pages then report an unknown status.
func NewNavigationAgent(session *browser.Session, exec *executor.Executor, oracle vision.Oracle, logger *slog.Logger) *NavigationAgent {
	return &NavigationAgent{
		runner: runner{session: session, exec: exec, logger: logger},
		oracle: oracle,
	}
}

// LocateApplication runs the navigation workflow with retries.
func (a *NavigationAgent) LocateApplication(profile *models.PortalProfile, runCtx models.RunContext) error {
	return a.withRetries(profile.Navigation, "navigation", func() error {
		_, err := a.runWorkflow(profile.Navigation, runCtx)

		return err
	})
}

// ExtractStatus classifies the current page. Configured status patterns are
// checked first in decision priority; only when none match is the vision
// oracle consulted with a screenshot of the page.
func (a *NavigationAgent) ExtractStatus(ctx context.Context, profile *models.PortalProfile) (StatusReport, error) {
	a.session.CaptureScreenshot("application_status")

	text, err := a.session.Active().VisibleText()
	if err != nil {
		return StatusReport{}, fmt.Errorf("could not read status page: %w", err)
	}

	a.logger.Info("Extracting status from page", "chars", len(text))

	if status, pattern, ok := profile.StatusDetection.Match(text); ok {
		a.logger.Info("Found status indicator", "pattern", pattern, "status", status)

		report := StatusReport{Status: status, StatusText: pattern, Source: StatusSourcePatterns}

		// The oracle's free-text description is richer than the matched
		// pattern; use it when available, but the pattern decides the status.
		if a.oracle != nil {
			if description, err := a.describePage(ctx); err == nil && description != "" {
				report.StatusText = description
			}
		}

		return report, nil
	}

	if a.oracle == nil {
		a.logger.Warn("No status pattern matched and no vision oracle configured")

		return StatusReport{Status: models.StatusUnknown, Source: StatusSourcePatterns}, nil
	}

	return a.statusFromVision(ctx)
}

func (a *NavigationAgent) describePage(ctx context.Context) (string, error) {
	shot, err := a.session.Active().Screenshot()
	if err != nil {
		return "", fmt.Errorf("could not capture page for vision: %w", err)
	}

	return a.oracle.Describe(ctx, shot, vision.StatusPrompt)
}

func (a *NavigationAgent) statusFromVision(ctx context.Context) (StatusReport, error) {
	description, err := a.describePage(ctx)
	if err != nil {
		a.logger.Warn("Vision status extraction failed", "error", err)

		return StatusReport{Status: models.StatusUnknown, Source: StatusSourceVision}, nil
	}

	status := vision.ClassifyStatus(description)
	a.logger.Info("Vision classified status", "status", status)

	return StatusReport{Status: status, StatusText: description, Source: StatusSourceVision}, nil
}
