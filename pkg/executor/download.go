package executor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/smerajiapply/submission/pkg/browser"
	"github.com/smerajiapply/submission/pkg/models"
	"github.com/smerajiapply/submission/pkg/resolver"
)

// triggerGrace gives an already-fired download trigger time to surface an
// event on the listener armed by a capture step.
const triggerGrace = 2 * time.Second

// binaryMarkers identify URLs that serve a document body directly instead
// of an HTML viewer around it.
var binaryMarkers = []string{".pdf", "binary-documents", "inline=true"}

func isBinaryURL(url string) bool {
	lower := strings.ToLower(url)
	for _, marker := range binaryMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return false
}

// fetchBytesScript re-requests the surface's own URL from inside the page,
// where the session cookies already apply, and returns the body as a byte
// array.
const fetchBytesScript = `(async function() {
	const response = await fetch(window.location.href);
	if (!response.ok) {
		throw new Error('fetch failed: ' + response.status);
	}
	const buffer = await response.arrayBuffer();
	return Array.from(new Uint8Array(buffer));
})()`

// clickCapturingDownload clicks a step that is expected to start a download,
// with a native download listener armed around the click. When no event
// arrives it falls back to the surface-based capture paths.
func (e *Executor) clickCapturingDownload(step models.ActionStep, criteria resolver.Criteria, runCtx models.RunContext) models.StepResult {
	previousCount := e.session.SurfaceCount()
	surface := e.session.Active()

	download, err := surface.ExpectDownload(func() error {
		result := e.resolver.ResolveAndClick(criteria)
		if !result.Success {
			return errors.New(result.Err)
		}

		return nil
	}, step.Timeout())
	if err != nil {
		return models.Failure("download trigger failed: " + err.Error())
	}

	if download != nil {
		return e.saveDownload(download, step, runCtx)
	}

	e.logger.Info("No download event after click, checking surfaces")

	return e.captureFromSurface(previousCount, step, runCtx)
}

// captureDownload handles an explicit capture step whose trigger already ran.
// It arms a short-lived listener first, then falls back to the surface paths.
func (e *Executor) captureDownload(step models.ActionStep, runCtx models.RunContext) models.StepResult {
	previousCount := e.session.SurfaceCount()

	download, err := e.session.Active().ExpectDownload(func() error {
		time.Sleep(triggerGrace)

		return nil
	}, step.Timeout())
	if err != nil {
		return models.Failure("download capture failed: " + err.Error())
	}

	if download != nil {
		return e.saveDownload(download, step, runCtx)
	}

	return e.captureFromSurface(previousCount, step, runCtx)
}

// captureFromSurface recovers a document from a viewer surface: a newly
// opened one when the surface count grew, otherwise the active surface when
// it serves binary content or the step expects it to be a fresh tab.
func (e *Executor) captureFromSurface(previousCount int, step models.ActionStep, runCtx models.RunContext) models.StepResult {
	var candidate browser.Surface

	surfaces := e.session.Surfaces()
	switch {
	case len(surfaces) > previousCount:
		candidate = surfaces[len(surfaces)-1]
	case isBinaryURL(e.session.Active().URL()) || step.OpensNewTab:
		candidate = e.session.Active()
	default:
		return models.Failure("no download event and no viewer surface to capture from")
	}

	if isBinaryURL(candidate.URL()) {
		return e.fetchBinary(candidate, step, runCtx)
	}

	return e.renderSurface(candidate, step, runCtx)
}

// fetchBinary pulls the document bytes through an in-page fetch so the
// request carries the authenticated session.
func (e *Executor) fetchBinary(surface browser.Surface, step models.ActionStep, runCtx models.RunContext) models.StepResult {
	e.logger.Info("Fetching document from viewer URL", "url", surface.URL())

	raw, err := surface.Evaluate(fetchBytesScript)
	if err != nil {
		return models.Failure("in-page fetch failed: " + err.Error())
	}

	content, err := toBytes(raw)
	if err != nil {
		return models.Failure("unexpected fetch result: " + err.Error())
	}

	path := filepath.Join(e.tempDir, e.stagedName(step, runCtx))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return models.Failure("could not stage document: " + err.Error())
	}

	e.closeIfExtra(surface)

	return models.StepResult{Success: true, Data: path}
}

// renderSurface prints the viewer surface itself to a document when the
// content is only reachable as a rendered page.
func (e *Executor) renderSurface(surface browser.Surface, step models.ActionStep, runCtx models.RunContext) models.StepResult {
	e.logger.Info("Rendering viewer surface to document", "url", surface.URL())

	content, err := surface.RenderPDF()
	if err != nil {
		return models.Failure("surface render failed: " + err.Error())
	}

	path := filepath.Join(e.tempDir, e.stagedName(step, runCtx))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return models.Failure("could not stage document: " + err.Error())
	}

	e.closeIfExtra(surface)

	return models.StepResult{Success: true, Data: path}
}

// saveDownload stages a native download event under the temp directory.
func (e *Executor) saveDownload(download browser.Download, step models.ActionStep, runCtx models.RunContext) models.StepResult {
	name := download.SuggestedFilename()
	if name == "" {
		name = e.stagedName(step, runCtx)
	}

	if ext := step.ExpectedExtension; ext != "" && !strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
		e.logger.Warn("Download extension differs from expected", "filename", name, "expected", ext)
	}

	path := filepath.Join(e.tempDir, name)
	if err := download.SaveTo(path); err != nil {
		return models.Failure("could not save download: " + err.Error())
	}

	e.logger.Info("Captured download", "path", path)

	return models.StepResult{Success: true, Data: path}
}

func (e *Executor) stagedName(step models.ActionStep, runCtx models.RunContext) string {
	ext := step.ExpectedExtension
	if ext == "" {
		ext = ".pdf"
	}

	id := runCtx.ApplicationID
	if id == "" {
		id = "offer"
	}

	return fmt.Sprintf("%s_%d%s", id, time.Now().Unix(), ext)
}

// closeIfExtra closes a viewer surface that is not the session's main one,
// keeping the window count bounded across retries.
func (e *Executor) closeIfExtra(surface browser.Surface) {
	if e.session.SurfaceCount() <= 1 {
		return
	}

	if err := surface.Close(); err != nil {
		e.logger.Debug("Could not close viewer surface", "error", err)
	}
}

// toBytes converts the Evaluate result of fetchBytesScript, which arrives
// as a slice of JSON numbers, into raw bytes.
func toBytes(raw any) ([]byte, error) {
	values, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array result, got %T", raw)
	}

	content := make([]byte, len(values))
	for i, v := range values {
		switch n := v.(type) {
		case float64:
			content[i] = byte(n)
		case int:
			content[i] = byte(n)
		default:
			return nil, fmt.Errorf("expected numeric byte at %d, got %T", i, v)
		}
	}

	return content, nil
}
