// Package browsertest provides in-memory Driver and Surface fakes for
// exercising the automation core without a real browser.
package browsertest

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/smerajiapply/submission/pkg/browser"
)

var ErrNotFound = errors.New("element not found")

// Download is a fake captured file.
type Download struct {
	Filename string
	Content  []byte
}

func (d *Download) SuggestedFilename() string { return d.Filename }

func (d *Download) SaveTo(path string) error {
	return os.WriteFile(path, d.Content, 0o644)
}

// Surface is a scriptable fake page. Zero values fail every interaction;
// tests opt elements in through the Clickable/Fillable sets or the hook
// functions.
type Surface struct {
	URLValue string
	Text     string

	ClickableSelectors map[string]bool
	ClickableTexts     map[string]bool
	FillableSelectors  map[string]bool
	FillableTexts      map[string]bool

	// EvaluateFn handles scripted clicks and DOM searches. When nil every
	// evaluation returns false.
	EvaluateFn func(script string) (any, error)

	// PopupSurface, when set, is returned by ExpectPopup after the trigger.
	PopupSurface *Surface
	// DownloadItem, when set, is returned by ExpectDownload after the trigger.
	DownloadItem *Download

	PDFData []byte
	IdleErr error

	// Recorded interactions, in order. Entries look like "selector:#id",
	// "text:Sign in", "script", "fill:#id=value", "key:Enter".
	Attempts []string

	Closed bool
}

func (s *Surface) record(entry string) { s.Attempts = append(s.Attempts, entry) }

func (s *Surface) Navigate(url string) error {
	s.URLValue = url
	s.record("navigate:" + url)

	return nil
}

func (s *Surface) URL() string { return s.URLValue }

func (s *Surface) VisibleText() (string, error) { return s.Text, nil }

func (s *Surface) Click(selector string, _ time.Duration) error {
	s.record("selector:" + selector)

	if s.ClickableSelectors[selector] {
		return nil
	}

	return ErrNotFound
}

func (s *Surface) ClickText(text string, _ time.Duration) error {
	s.record("text:" + text)

	if s.ClickableTexts[text] {
		return nil
	}

	return ErrNotFound
}

func (s *Surface) Fill(selector, value string, _ time.Duration) error {
	s.record("fill:" + selector + "=" + value)

	if s.FillableSelectors[selector] {
		return nil
	}

	return ErrNotFound
}

func (s *Surface) FillByText(text, value string, _ time.Duration) error {
	s.record("filltext:" + text + "=" + value)

	if s.FillableTexts[text] {
		return nil
	}

	return ErrNotFound
}

func (s *Surface) Evaluate(script string) (any, error) {
	s.record("script")

	if s.EvaluateFn != nil {
		return s.EvaluateFn(script)
	}

	return false, nil
}

func (s *Surface) WaitForIdle(time.Duration) error { return s.IdleErr }

func (s *Surface) Screenshot() ([]byte, error) { return []byte("png"), nil }

func (s *Surface) PressKey(key string) error {
	s.record("key:" + key)

	return nil
}

func (s *Surface) ScrollToBottom() error {
	s.record("scroll")

	return nil
}

func (s *Surface) RenderPDF() ([]byte, error) {
	if s.PDFData == nil {
		return nil, errors.New("pdf rendering not available")
	}

	return s.PDFData, nil
}

func (s *Surface) ExpectPopup(trigger func() error, _ time.Duration) (browser.Surface, error) {
	err := trigger()

	if s.PopupSurface != nil {
		return s.PopupSurface, nil
	}

	if err != nil {
		return nil, nil
	}

	return nil, nil
}

func (s *Surface) ExpectDownload(trigger func() error, _ time.Duration) (browser.Download, error) {
	err := trigger()

	if s.DownloadItem != nil {
		return s.DownloadItem, nil
	}

	if err != nil {
		return nil, err
	}

	return nil, nil
}

func (s *Surface) Close() error {
	s.Closed = true

	return nil
}

func (s *Surface) IsClosed() bool { return s.Closed }

// Driver is a fake browser process whose surface list tests can grow to
// simulate windows opening.
type Driver struct {
	mu   sync.Mutex
	list []browser.Surface
}

// NewDriver returns a driver pre-seeded with the given surfaces. When empty,
// NewSurface creates blank ones on demand.
func NewDriver(surfaces ...*Surface) *Driver {
	d := &Driver{}
	for _, s := range surfaces {
		d.list = append(d.list, s)
	}

	return d
}

func (d *Driver) NewSurface() (browser.Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.list) > 0 {
		return d.list[0], nil
	}

	s := &Surface{}
	d.list = append(d.list, s)

	return s, nil
}

func (d *Driver) Surfaces() []browser.Surface {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]browser.Surface{}, d.list...)
}

// Open appends a surface, simulating a window the page opened by itself.
func (d *Driver) Open(s *Surface) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.list = append(d.list, s)
}

func (d *Driver) Close() error { return nil }
