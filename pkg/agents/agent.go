// Package agents implements the phase agents that drive a portal check:
// login, navigation to the application, and offer download. Each agent runs
// its configured workflow with phase-level retries that restart the whole
// workflow from the first step.
package agents

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smerajiapply/submission/pkg/browser"
	"github.com/smerajiapply/submission/pkg/executor"
	"github.com/smerajiapply/submission/pkg/models"
)

var (
	ErrLoginFailed = errors.New("login verification failed")
	ErrNoDocument  = errors.New("download workflow completed without capturing a document")
)

// interStepDelay gives portals breathing room between consecutive steps.
const interStepDelay = time.Second

type runner struct {
	session *browser.Session
	exec    *executor.Executor
	logger  *slog.Logger
}

// runWorkflow executes every step in order and fails fast on the first
// required step that fails. The path of the last captured artifact, if any
// step produced one, is returned alongside.
func (r *runner) runWorkflow(workflow models.Workflow, runCtx models.RunContext) (string, error) {
	var artifact string

	for i, step := range workflow.Steps {
		r.logger.Info("Workflow step", "step", i+1, "total", len(workflow.Steps), "action", step.Action)

		result := r.exec.Execute(step, runCtx)
		if !result.Success {
			return artifact, fmt.Errorf("step %d (%s) failed: %s", i+1, step.Action, result.Err)
		}

		if result.Data != "" {
			artifact = result.Data
		}

		time.Sleep(interStepDelay)
	}

	return artifact, nil
}

// withRetries runs fn up to the workflow's configured attempt count, restarting from
// scratch after the configured delay on each failure.
func (r *runner) withRetries(workflow models.Workflow, phase string, fn func() error) error {
	retries := workflow.Retries()

	var lastErr error

	for attempt := 1; attempt <= retries; attempt++ {
		r.logger.Info("Phase attempt", "phase", phase, "attempt", attempt, "retries", retries)

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		r.logger.Error("Phase attempt failed", "phase", phase, "attempt", attempt, "error", lastErr)

		if attempt < retries {
			time.Sleep(workflow.RetryDelay())
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", phase, retries, lastErr)
}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, strings.ToLower(marker)) {
			return true
		}
	}

	return false
}
