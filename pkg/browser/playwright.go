package browser

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options configures the playwright driver.
type Options struct {
	Headless       bool
	DefaultTimeout time.Duration
	UserAgent      string
	InstallBrowser bool
}

// PlaywrightDriver implements Driver on top of playwright-go with a single
// chromium browser context shared by all surfaces.
type PlaywrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	logger  *slog.Logger
}

// NewPlaywrightDriver launches chromium and creates the browser context.
func NewPlaywrightDriver(opts Options, logger *slog.Logger) (*PlaywrightDriver, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if opts.InstallBrowser {
		if err := playwright.Install(); err != nil {
			return nil, fmt.Errorf("playwright install failed: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	chromium, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     []string{"--start-maximized"},
	})
	if err != nil {
		stopErr := pw.Stop()
		if stopErr != nil {
			logger.Warn("Failed to stop playwright after launch error", "error", stopErr)
		}

		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	context, err := chromium.NewContext(playwright.BrowserNewContextOptions{
		Viewport:        &playwright.Size{Width: 1920, Height: 1080},
		UserAgent:       playwright.String(userAgent),
		AcceptDownloads: playwright.Bool(true),
	})
	if err != nil {
		closeErr := chromium.Close()
		if closeErr != nil {
			logger.Warn("Failed to close browser after context error", "error", closeErr)
		}

		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	if opts.DefaultTimeout > 0 {
		context.SetDefaultTimeout(float64(opts.DefaultTimeout.Milliseconds()))
	}

	logger.Info("Browser started", "headless", opts.Headless)

	return &PlaywrightDriver{
		pw:      pw,
		browser: chromium,
		context: context,
		logger:  logger,
	}, nil
}

func (d *PlaywrightDriver) NewSurface() (Surface, error) {
	page, err := d.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &playwrightSurface{page: page, logger: d.logger}, nil
}

func (d *PlaywrightDriver) Surfaces() []Surface {
	pages := d.context.Pages()

	surfaces := make([]Surface, 0, len(pages))
	for _, page := range pages {
		surfaces = append(surfaces, &playwrightSurface{page: page, logger: d.logger})
	}

	return surfaces
}

func (d *PlaywrightDriver) Close() error {
	if err := d.context.Close(); err != nil {
		d.logger.Warn("Failed to close browser context", "error", err)
	}

	if err := d.browser.Close(); err != nil {
		d.logger.Warn("Failed to close browser", "error", err)
	}

	return d.pw.Stop()
}

type playwrightSurface struct {
	page   playwright.Page
	logger *slog.Logger
}

func (s *playwrightSurface) Navigate(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})

	return err
}

func (s *playwrightSurface) URL() string { return s.page.URL() }

func (s *playwrightSurface) VisibleText() (string, error) {
	return s.page.InnerText("body")
}

func (s *playwrightSurface) Click(selector string, timeout time.Duration) error {
	return s.page.Locator(selector).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (s *playwrightSurface) ClickText(text string, timeout time.Duration) error {
	return s.page.GetByText(text).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (s *playwrightSurface) Fill(selector, value string, timeout time.Duration) error {
	return s.page.Locator(selector).First().Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

// FillByText locates an input by its label first, then by placeholder.
func (s *playwrightSurface) FillByText(text, value string, timeout time.Duration) error {
	opts := playwright.LocatorFillOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}

	labeled := s.page.GetByLabel(text).First()
	if count, err := labeled.Count(); err == nil && count > 0 {
		return labeled.Fill(value, opts)
	}

	return s.page.GetByPlaceholder(text).First().Fill(value, opts)
}

func (s *playwrightSurface) Evaluate(script string) (any, error) {
	return s.page.Evaluate(script)
}

func (s *playwrightSurface) WaitForIdle(timeout time.Duration) error {
	return s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (s *playwrightSurface) Screenshot() ([]byte, error) {
	return s.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(false),
	})
}

func (s *playwrightSurface) PressKey(key string) error {
	return s.page.Keyboard().Press(key)
}

func (s *playwrightSurface) ScrollToBottom() error {
	_, err := s.page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")

	return err
}

// RenderPDF prints the surface to a PDF document. Chromium only.
func (s *playwrightSurface) RenderPDF() ([]byte, error) {
	return s.page.PDF(playwright.PagePdfOptions{})
}

// ExpectPopup races the trigger against a popup event. Any wait failure is
// reported as "no popup" so callers can fall through to surface polling.
func (s *playwrightSurface) ExpectPopup(trigger func() error, timeout time.Duration) (Surface, error) {
	popup, err := s.page.ExpectPopup(trigger, playwright.PageExpectPopupOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		s.logger.Debug("No popup observed", "error", err)

		return nil, nil
	}

	return &playwrightSurface{page: popup, logger: s.logger}, nil
}

// ExpectDownload races the trigger against a download event. A failure of
// the trigger itself is returned as-is so callers can tell a dead click
// from a download that never arrived; only a plain wait timeout is reported
// as (nil, nil).
func (s *playwrightSurface) ExpectDownload(trigger func() error, timeout time.Duration) (Download, error) {
	var triggerErr error

	download, err := s.page.ExpectDownload(func() error {
		triggerErr = trigger()

		return triggerErr
	}, playwright.PageExpectDownloadOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if triggerErr != nil {
		return nil, triggerErr
	}

	if err != nil {
		s.logger.Debug("No download observed", "error", err)

		return nil, nil
	}

	return &playwrightDownload{download: download}, nil
}

func (s *playwrightSurface) Close() error   { return s.page.Close() }
func (s *playwrightSurface) IsClosed() bool { return s.page.IsClosed() }

type playwrightDownload struct {
	download playwright.Download
}

func (d *playwrightDownload) SuggestedFilename() string { return d.download.SuggestedFilename() }
func (d *playwrightDownload) SaveTo(path string) error  { return d.download.SaveAs(path) }
