// Package browser defines the narrow driver surface the automation core
// consumes, plus the session object that owns the active page reference.
package browser

import "time"

// Download is a captured file artifact emitted by the driver.
type Download interface {
	SuggestedFilename() string
	SaveTo(path string) error
}

// Surface is one browser window/tab/page. A run may accumulate several
// surfaces when actions open new windows; the Session tracks which one is
// active.
//
// ExpectPopup and ExpectDownload are bounded waits: they run the trigger,
// then wait up to the timeout for the event. A wait timeout is not an
// error; both return (nil, nil) when no event was observed. ExpectDownload
// propagates the trigger's own error so a failed click stays
// distinguishable from a download that never arrived.
type Surface interface {
	Navigate(url string) error
	URL() string
	VisibleText() (string, error)
	Click(selector string, timeout time.Duration) error
	ClickText(text string, timeout time.Duration) error
	Fill(selector, value string, timeout time.Duration) error
	FillByText(text, value string, timeout time.Duration) error
	Evaluate(script string) (any, error)
	WaitForIdle(timeout time.Duration) error
	Screenshot() ([]byte, error)
	PressKey(key string) error
	ScrollToBottom() error
	RenderPDF() ([]byte, error)
	ExpectPopup(trigger func() error, timeout time.Duration) (Surface, error)
	ExpectDownload(trigger func() error, timeout time.Duration) (Download, error)
	Close() error
	IsClosed() bool
}

// Driver owns the browser process and its surfaces.
type Driver interface {
	NewSurface() (Surface, error)
	Surfaces() []Surface
	Close() error
}
