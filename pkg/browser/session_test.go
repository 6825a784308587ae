package browser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smerajiapply/submission/pkg/browser"
	"github.com/smerajiapply/submission/pkg/browser/browsertest"
)

type recordingSink struct {
	prefixes []string
}

func (s *recordingSink) SaveScreenshot(_ []byte, prefix string) (string, error) {
	s.prefixes = append(s.prefixes, prefix)

	return "/shots/" + prefix + ".png", nil
}

func TestSession_NavigateTargetsActiveSurface(t *testing.T) {
	surface := &browsertest.Surface{}
	session, err := browser.NewSession(browsertest.NewDriver(surface), nil, nil)
	require.NoError(t, err)

	require.NoError(t, session.Navigate("https://portal.example.com"))

	assert.Equal(t, "https://portal.example.com", session.Active().URL())
	assert.Contains(t, surface.Attempts, "navigate:https://portal.example.com")
}

func TestSession_Adopt(t *testing.T) {
	first := &browsertest.Surface{URLValue: "https://portal.example.com/main"}
	second := &browsertest.Surface{URLValue: "https://portal.example.com/viewer"}

	session, err := browser.NewSession(browsertest.NewDriver(first), nil, nil)
	require.NoError(t, err)
	assert.Same(t, browser.Surface(first), session.Active())

	session.Adopt(second)
	assert.Same(t, browser.Surface(second), session.Active())
}

func TestSession_AdoptLatestIfNew(t *testing.T) {
	first := &browsertest.Surface{}
	driver := browsertest.NewDriver(first)

	session, err := browser.NewSession(driver, nil, nil)
	require.NoError(t, err)

	assert.False(t, session.AdoptLatestIfNew(session.SurfaceCount(), 0))

	opened := &browsertest.Surface{URLValue: "https://portal.example.com/new"}
	driver.Open(opened)

	assert.True(t, session.AdoptLatestIfNew(1, 0))
	assert.Equal(t, "https://portal.example.com/new", session.Active().URL())
}

func TestSession_CaptureScreenshot(t *testing.T) {
	sink := &recordingSink{}
	session, err := browser.NewSession(browsertest.NewDriver(&browsertest.Surface{}), nil, sink)
	require.NoError(t, err)

	path := session.CaptureScreenshot("after_login")
	assert.NotEmpty(t, path)

	session.CaptureScreenshot("after_login")

	// Shots are numbered so consecutive captures never collide.
	require.Len(t, sink.prefixes, 2)
	assert.Equal(t, "after_login_001", sink.prefixes[0])
	assert.Equal(t, "after_login_002", sink.prefixes[1])
}

func TestSession_CaptureScreenshotWithoutSink(t *testing.T) {
	session, err := browser.NewSession(browsertest.NewDriver(&browsertest.Surface{}), nil, nil)
	require.NoError(t, err)

	assert.Empty(t, session.CaptureScreenshot("anything"))
}
