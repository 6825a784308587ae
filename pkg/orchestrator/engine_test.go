package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smerajiapply/submission/pkg/browser"
	"github.com/smerajiapply/submission/pkg/browser/browsertest"
	"github.com/smerajiapply/submission/pkg/models"
	"github.com/smerajiapply/submission/pkg/storage"
)

type stubProfiles struct {
	profile *models.PortalProfile
	err     error
}

func (s *stubProfiles) Profile(string) (*models.PortalProfile, error) {
	return s.profile, s.err
}

func testProfile() *models.PortalProfile {
	return &models.PortalProfile{
		PortalName: "testportal",
		PortalURL:  "https://portal.example.com/login",
		Login: models.Workflow{
			Steps: []models.ActionStep{
				{Action: models.ActionFindAndFill, Selectors: []string{"#username"}, Value: "{username}"},
			},
		},
		Navigation: models.Workflow{
			Steps: []models.ActionStep{
				{Action: models.ActionFindAndClick, Hints: []string{"{application_id}"}},
			},
		},
		Download: models.Workflow{
			Steps: []models.ActionStep{
				{
					Action:           models.ActionFindAndClick,
					Hints:            []string{"Download Offer"},
					TriggersDownload: true,
					TimeoutSeconds:   1,
				},
			},
		},
		StatusDetection: models.StatusPatterns{
			OfferReady: []string{"offer of admission"},
			Pending:    []string{"under review"},
		},
	}
}

func newTestEngine(t *testing.T, surface *browsertest.Surface, profiles ProfileSource) (*Engine, *storage.FileStore) {
	t.Helper()

	store := storage.NewFileStore(t.TempDir())
	drivers := func() (browser.Driver, error) {
		return browsertest.NewDriver(surface), nil
	}

	return NewEngine(profiles, store, nil, nil, drivers, nil), store
}

func checkRequest() models.CheckRequest {
	return models.CheckRequest{
		Portal:        "testportal",
		Username:      "student@example.com",
		Password:      "secret",
		ApplicationID: "APP-1",
		StudentName:   "Sam Student",
	}
}

func TestRun_OfferReadyDownloadsDocument(t *testing.T) {
	surface := &browsertest.Surface{
		Text:              "Welcome to your Dashboard. Your Offer of Admission is ready.",
		FillableSelectors: map[string]bool{"#username": true},
		ClickableTexts:    map[string]bool{"APP-1": true, "Download Offer": true},
		DownloadItem:      &browsertest.Download{Filename: "offer.pdf", Content: []byte("%PDF")},
	}

	engine, store := newTestEngine(t, surface, &stubProfiles{profile: testProfile()})

	outcome := engine.Run(context.Background(), checkRequest())

	require.True(t, outcome.Success, outcome.Message)
	assert.Equal(t, models.StatusOfferReady, outcome.Status)
	assert.Equal(t, "offer of admission", outcome.StatusText)
	assert.True(t, outcome.OfferDownloaded)
	require.NotEmpty(t, outcome.OfferPath)
	assert.False(t, outcome.Timestamp.IsZero())

	content, err := os.ReadFile(outcome.OfferPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), content)

	// Metadata lands next to the offer.
	entries, err := filepath.Glob(filepath.Join(store.Root(), "offers", "testportal", "*.json"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	metadata, err := os.ReadFile(entries[0])
	require.NoError(t, err)
	assert.Contains(t, string(metadata), `"status": "offer_ready"`)
	assert.Contains(t, string(metadata), `"offer_downloaded": true`)
}

func TestRun_PendingSkipsDownload(t *testing.T) {
	surface := &browsertest.Surface{
		Text:              "Welcome to your Dashboard. Your application is under review.",
		FillableSelectors: map[string]bool{"#username": true},
		ClickableTexts:    map[string]bool{"APP-1": true},
	}

	engine, _ := newTestEngine(t, surface, &stubProfiles{profile: testProfile()})

	outcome := engine.Run(context.Background(), checkRequest())

	require.True(t, outcome.Success, outcome.Message)
	assert.Equal(t, models.StatusPending, outcome.Status)
	assert.False(t, outcome.OfferDownloaded)
	assert.Empty(t, outcome.OfferPath)
}

func TestRun_LoginRecoversOnRetry(t *testing.T) {
	// The login button only responds from the second workflow attempt on.
	evaluations := 0
	surface := &browsertest.Surface{
		Text:              "Welcome to your Dashboard. Your application is under review.",
		FillableSelectors: map[string]bool{"#username": true},
		ClickableTexts:    map[string]bool{"APP-1": true},
		EvaluateFn: func(string) (any, error) {
			evaluations++
			if evaluations < 2 {
				return false, nil
			}

			return "clicked_parent", nil
		},
	}

	profile := testProfile()
	profile.Login.Steps = append(profile.Login.Steps, models.ActionStep{
		Action: models.ActionFindAndClick,
		Hints:  []string{"Continue"},
	})
	profile.Login.MaxRetries = 2
	profile.Login.RetryDelaySecs = 1

	engine, _ := newTestEngine(t, surface, &stubProfiles{profile: profile})

	outcome := engine.Run(context.Background(), checkRequest())

	require.True(t, outcome.Success, outcome.Message)
	assert.Equal(t, models.StatusPending, outcome.Status)
	assert.Equal(t, 2, evaluations)
}

func TestRun_DownloadFailureDoesNotFailCheck(t *testing.T) {
	// Offer is ready but nothing on the page yields a document.
	surface := &browsertest.Surface{
		Text:              "Welcome to your Dashboard. Your Offer of Admission is ready.",
		FillableSelectors: map[string]bool{"#username": true},
		ClickableTexts:    map[string]bool{"APP-1": true},
	}

	engine, _ := newTestEngine(t, surface, &stubProfiles{profile: testProfile()})

	outcome := engine.Run(context.Background(), checkRequest())

	require.True(t, outcome.Success, outcome.Message)
	assert.Equal(t, models.StatusOfferReady, outcome.Status)
	assert.False(t, outcome.OfferDownloaded)
}

func TestRun_LoginFailure(t *testing.T) {
	surface := &browsertest.Surface{
		Text:              "Sign in with your username and password",
		FillableSelectors: map[string]bool{"#username": true},
	}

	engine, _ := newTestEngine(t, surface, &stubProfiles{profile: testProfile()})

	outcome := engine.Run(context.Background(), checkRequest())

	assert.False(t, outcome.Success)
	assert.Equal(t, models.StatusUnknown, outcome.Status)
	assert.Contains(t, outcome.Message, "login failed")
}

func TestRun_ProfileLoadFailure(t *testing.T) {
	engine, _ := newTestEngine(t, &browsertest.Surface{}, &stubProfiles{err: fmt.Errorf("no such portal")})

	outcome := engine.Run(context.Background(), checkRequest())

	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Message, "could not load portal profile")
}
