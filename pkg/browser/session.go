package browser

import (
	"fmt"
	"log/slog"
	"time"
)

// ScreenshotSink receives diagnostic screenshots captured during a run.
type ScreenshotSink interface {
	SaveScreenshot(data []byte, prefix string) (string, error)
}

const adoptSettleDelay = 2 * time.Second

// Session owns the driver and the single mutable "active surface" reference
// for one workflow run. Nothing reads the active surface concurrently;
// adopting a new surface is a point-in-time reassignment by the currently
// executing step.
type Session struct {
	driver    Driver
	active    Surface
	logger    *slog.Logger
	shots     ScreenshotSink
	shotCount int
}

// NewSession opens the first surface and returns a session bound to it.
func NewSession(driver Driver, logger *slog.Logger, shots ScreenshotSink) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	surface, err := driver.NewSurface()
	if err != nil {
		return nil, fmt.Errorf("failed to open initial surface: %w", err)
	}

	return &Session{
		driver: driver,
		active: surface,
		logger: logger,
		shots:  shots,
	}, nil
}

// Active returns the surface the next operation should target.
func (s *Session) Active() Surface { return s.active }

// Adopt makes surface the active one.
func (s *Session) Adopt(surface Surface) {
	s.logger.Info("Adopting new surface", "url", surface.URL())
	s.active = surface
}

// Surfaces returns every open surface known to the driver.
func (s *Session) Surfaces() []Surface { return s.driver.Surfaces() }

// SurfaceCount reports how many surfaces are currently open.
func (s *Session) SurfaceCount() int { return len(s.driver.Surfaces()) }

// AdoptLatestIfNew polls the surface list once after a short settle delay
// and adopts the most recently opened surface when the count grew past
// previousCount. Covers drivers that open windows without emitting a popup
// event. Returns true when a surface was adopted.
func (s *Session) AdoptLatestIfNew(previousCount int, idleTimeout time.Duration) bool {
	time.Sleep(adoptSettleDelay)

	surfaces := s.driver.Surfaces()
	if len(surfaces) <= previousCount {
		return false
	}

	latest := surfaces[len(surfaces)-1]
	s.Adopt(latest)

	if err := latest.WaitForIdle(idleTimeout); err != nil {
		s.logger.Warn("New surface did not reach idle", "error", err)
	}

	return true
}

// Navigate points the active surface at url.
func (s *Session) Navigate(url string) error {
	s.logger.Info("Navigating", "url", url)

	if err := s.active.Navigate(url); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}

	s.CaptureScreenshot("after_navigate")

	return nil
}

// CaptureScreenshot saves a diagnostic screenshot of the active surface when
// a sink is configured. Failures are logged and swallowed; screenshots are
// best-effort.
func (s *Session) CaptureScreenshot(prefix string) string {
	if s.shots == nil {
		return ""
	}

	data, err := s.active.Screenshot()
	if err != nil {
		s.logger.Warn("Screenshot failed", "error", err)

		return ""
	}

	s.shotCount++

	path, err := s.shots.SaveScreenshot(data, fmt.Sprintf("%s_%03d", prefix, s.shotCount))
	if err != nil {
		s.logger.Warn("Failed to save screenshot", "error", err)

		return ""
	}

	return path
}

// Close shuts the driver down.
func (s *Session) Close() error { return s.driver.Close() }
