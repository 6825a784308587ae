// Package executor maps declarative workflow steps onto resolver calls and
// browser primitives, normalizing every outcome into a StepResult.
package executor

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/smerajiapply/submission/pkg/browser"
	"github.com/smerajiapply/submission/pkg/models"
	"github.com/smerajiapply/submission/pkg/resolver"
)

// settleDelay covers client-rendered content that finishes network activity
// before finishing DOM mutation.
const settleDelay = 2 * time.Second

// Executor executes single action steps against a browser session.
type Executor struct {
	session  *browser.Session
	resolver *resolver.Resolver
	logger   *slog.Logger
	tempDir  string

	// lastSurfaceCount is the surface count observed at the previous
	// switch-tab check; switch_to_new_tab only adopts when the count grew.
	lastSurfaceCount int
}

func New(session *browser.Session, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{
		session:          session,
		resolver:         resolver.New(session, logger),
		logger:           logger,
		tempDir:          os.TempDir(),
		lastSurfaceCount: session.SurfaceCount(),
	}
}

// SetTempDir overrides where in-flight downloads are staged.
func (e *Executor) SetTempDir(dir string) { e.tempDir = dir }

// TempDir returns the staging directory for in-flight downloads.
func (e *Executor) TempDir() string { return e.tempDir }

// Execute runs one step with {param} substitution applied from the run
// context. A failed optional step is reported as success so the owning
// phase keeps advancing; the original failure message is preserved.
func (e *Executor) Execute(step models.ActionStep, runCtx models.RunContext) models.StepResult {
	e.logger.Info("Executing action", "action", step.Action, "description", step.Description)

	result := e.dispatch(step, runCtx)

	if !result.Success && step.Optional {
		e.logger.Info("Optional step failed, continuing", "action", step.Action, "error", result.Err)

		return models.StepResult{Success: true, Err: result.Err}
	}

	return result
}

func (e *Executor) dispatch(step models.ActionStep, runCtx models.RunContext) models.StepResult {
	value := runCtx.Substitute(step.Value)
	hints := runCtx.SubstituteAll(step.Hints)

	switch step.Action {
	case models.ActionFindAndClick:
		criteria := resolver.Criteria{
			Selectors:       step.Selectors,
			Hints:           hints,
			WantsNewSurface: step.OpensNewTab,
			PreferScripted:  step.UseJavascript,
			Timeout:         step.Timeout(),
		}

		if step.TriggersDownload {
			return e.clickCapturingDownload(step, criteria, runCtx)
		}

		return e.resolver.ResolveAndClick(criteria)

	case models.ActionFindAndFill:
		return e.resolver.ResolveAndFill(resolver.Criteria{
			Selectors: step.Selectors,
			Hints:     hints,
			Value:     value,
			Timeout:   step.Timeout(),
		})

	case models.ActionWaitForLoad:
		if err := e.session.Active().WaitForIdle(step.Timeout()); err != nil {
			return models.Failure("surface did not reach idle: " + err.Error())
		}

		time.Sleep(settleDelay)

		return models.OK()

	case models.ActionWaitForNavigation:
		return e.waitForNavigation(step)

	case models.ActionCaptureDownload:
		return e.captureDownload(step, runCtx)

	case models.ActionSwitchToNewTab:
		return e.switchToNewTab(step)

	case models.ActionPressKey:
		if err := e.session.Active().PressKey(value); err != nil {
			return models.Failure("key press failed: " + err.Error())
		}

		return models.OK()

	case models.ActionScroll:
		if err := e.session.Active().ScrollToBottom(); err != nil {
			return models.Failure("scroll failed: " + err.Error())
		}

		return models.OK()

	case models.ActionWait:
		// Plain waits reuse the timeout field as the wait duration.
		time.Sleep(step.Timeout())

		return models.OK()

	default:
		return models.Failure("unknown action kind: " + string(step.Action))
	}
}

// waitForNavigation blocks until quiescence, then checks page text against
// the step's success indicators. Empty indicators make quiescence alone
// sufficient.
func (e *Executor) waitForNavigation(step models.ActionStep) models.StepResult {
	surface := e.session.Active()

	if err := surface.WaitForIdle(step.Timeout()); err != nil {
		return models.Failure("navigation did not settle: " + err.Error())
	}

	time.Sleep(settleDelay)

	if len(step.SuccessIndicators) == 0 {
		return models.OK()
	}

	text, err := surface.VisibleText()
	if err != nil {
		return models.Failure("could not read page text: " + err.Error())
	}

	lower := strings.ToLower(text)
	for _, indicator := range step.SuccessIndicators {
		if strings.Contains(lower, strings.ToLower(indicator)) {
			e.logger.Info("Found success indicator", "indicator", indicator)

			return models.OK()
		}
	}

	return models.Failure("no success indicator present after navigation")
}

func (e *Executor) switchToNewTab(step models.ActionStep) models.StepResult {
	if !e.session.AdoptLatestIfNew(e.lastSurfaceCount, step.Timeout()) {
		return models.Failure("no new surface to switch to")
	}

	e.lastSurfaceCount = e.session.SurfaceCount()

	return models.OK()
}
