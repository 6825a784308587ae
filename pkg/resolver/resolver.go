// Package resolver locates and interacts with page elements through an
// ordered list of fallback strategies, from precise structural selectors
// down to broad text searches.
package resolver

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/smerajiapply/submission/pkg/browser"
	"github.com/smerajiapply/submission/pkg/models"
)

const (
	popupWaitTimeout   = 3 * time.Second
	anchorClickTimeout = 3 * time.Second
	scriptSettleDelay  = time.Second
)

// Criteria describes what to find and how to act on it. Selectors and hints
// are tried in the order given.
type Criteria struct {
	Selectors       []string
	Hints           []string
	Value           string // fill mode only
	WantsNewSurface bool
	PreferScripted  bool
	Timeout         time.Duration
}

// Resolver resolves abstract targets against the session's active surface.
type Resolver struct {
	session *browser.Session
	logger  *slog.Logger
}

func New(session *browser.Session, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{session: session, logger: logger}
}

type strategy struct {
	name string
	run  func(c Criteria, previousCount int) bool
}

// ResolveAndClick tries each click strategy in order and stops at the first
// that acts on an element. The order is fixed: structural selectors, native
// text lookup, DOM-ascent script, broad anchor fallback. The surface count
// is recorded once at entry; new-surface detection compares against that
// baseline, never against a count taken after the click.
func (r *Resolver) ResolveAndClick(c Criteria) models.StepResult {
	previousCount := r.session.SurfaceCount()

	strategies := []strategy{
		{"structural", r.clickBySelectors},
		{"text_hint", r.clickByHints},
		{"dom_ascent", r.clickByDOMAscent},
		{"anchor_fallback", r.clickByAnchor},
	}

	for _, s := range strategies {
		if s.run(c, previousCount) {
			r.logger.Info("Click resolved", "strategy", s.name)

			return models.OK()
		}
	}

	r.logger.Warn("All click strategies failed",
		"selectors", len(c.Selectors), "hints", len(c.Hints))
	r.session.CaptureScreenshot("click_failed")

	return models.Failure("no strategy located a clickable target")
}

// ResolveAndFill has a simpler two-strategy order: structural selectors,
// then hint-driven text lookup.
func (r *Resolver) ResolveAndFill(c Criteria) models.StepResult {
	surface := r.session.Active()

	for _, selector := range c.Selectors {
		if err := surface.Fill(selector, c.Value, c.Timeout); err != nil {
			r.logger.Debug("Fill selector failed", "selector", selector, "error", err)

			continue
		}

		r.logger.Info("Filled via selector", "selector", selector)

		return models.OK()
	}

	for _, hint := range c.Hints {
		if err := surface.FillByText(hint, c.Value, c.Timeout); err != nil {
			r.logger.Debug("Fill hint failed", "hint", hint, "error", err)

			continue
		}

		r.logger.Info("Filled via hint", "hint", hint)

		return models.OK()
	}

	return models.Failure("no input field matched any selector or hint")
}

func (r *Resolver) clickBySelectors(c Criteria, previousCount int) bool {
	for _, selector := range c.Selectors {
		if c.WantsNewSurface {
			if r.clickExpectingSurface(func() error {
				return r.dispatchClick(selector, c)
			}, previousCount, c.Timeout) {
				return true
			}

			continue
		}

		if err := r.dispatchClick(selector, c); err != nil {
			r.logger.Debug("Selector click failed", "selector", selector, "error", err)

			continue
		}

		if c.PreferScripted {
			time.Sleep(scriptSettleDelay)
		}

		return true
	}

	return false
}

// dispatchClick clicks by selector, through the page script context when the
// step prefers it.
func (r *Resolver) dispatchClick(selector string, c Criteria) error {
	surface := r.session.Active()

	if !c.PreferScripted {
		return surface.Click(selector, c.Timeout)
	}

	result, err := surface.Evaluate(scriptedClickScript(selector))
	if err != nil {
		return err
	}

	if !truthy(result) {
		return fmt.Errorf("scripted click found no element for %s", selector)
	}

	return nil
}

func (r *Resolver) clickByHints(c Criteria, previousCount int) bool {
	surface := r.session.Active()

	for _, hint := range c.Hints {
		if c.WantsNewSurface {
			if r.clickExpectingSurface(func() error {
				return surface.ClickText(hint, c.Timeout)
			}, previousCount, c.Timeout) {
				return true
			}

			continue
		}

		if err := surface.ClickText(hint, c.Timeout); err != nil {
			r.logger.Debug("Hint click failed", "hint", hint, "error", err)

			continue
		}

		return true
	}

	return false
}

func (r *Resolver) clickByDOMAscent(c Criteria, previousCount int) bool {
	surface := r.session.Active()

	for _, hint := range c.Hints {
		result, err := surface.Evaluate(domAscentScript(hint))
		if err != nil {
			r.logger.Debug("DOM ascent script failed", "hint", hint, "error", err)

			continue
		}

		if !truthy(result) {
			continue
		}

		r.logger.Info("Clicked via DOM ascent", "hint", hint, "result", result)
		time.Sleep(scriptSettleDelay)

		if c.WantsNewSurface {
			r.session.AdoptLatestIfNew(previousCount, c.Timeout)
		}

		return true
	}

	return false
}

func (r *Resolver) clickByAnchor(c Criteria, previousCount int) bool {
	surface := r.session.Active()

	for _, hint := range c.Hints {
		selector := fmt.Sprintf(`a:has-text(%q)`, hint)

		if err := surface.Click(selector, anchorClickTimeout); err != nil {
			r.logger.Debug("Anchor fallback failed", "hint", hint, "error", err)

			continue
		}

		if c.WantsNewSurface {
			r.session.AdoptLatestIfNew(previousCount, c.Timeout)
		}

		return true
	}

	return false
}

// clickExpectingSurface races the click against a new-surface event. When no
// popup event fires it polls the surface list once more after a fixed delay,
// which covers drivers that open windows without emitting the event.
func (r *Resolver) clickExpectingSurface(trigger func() error, previousCount int, timeout time.Duration) bool {
	surface := r.session.Active()

	popup, err := surface.ExpectPopup(trigger, popupWaitTimeout)
	if err != nil {
		r.logger.Debug("Popup wait errored", "error", err)
	}

	if popup != nil {
		r.session.Adopt(popup)

		if idleErr := popup.WaitForIdle(timeout); idleErr != nil {
			r.logger.Warn("Popup did not reach idle", "error", idleErr)
		}

		return true
	}

	return r.session.AdoptLatestIfNew(previousCount, timeout)
}

// truthy reports whether a script evaluation result indicates a click
// happened: boolean true or a non-empty marker string.
func truthy(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value != "" && value != "false"
	default:
		return false
	}
}
