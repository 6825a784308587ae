package watcher

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smerajiapply/submission/pkg/browser"
	"github.com/smerajiapply/submission/pkg/browser/browsertest"
	"github.com/smerajiapply/submission/pkg/models"
	"github.com/smerajiapply/submission/pkg/orchestrator"
	"github.com/smerajiapply/submission/pkg/storage"
)

type stubProfiles struct {
	profile *models.PortalProfile
}

func (s *stubProfiles) Profile(string) (*models.PortalProfile, error) {
	return s.profile, nil
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	status, err := store.LastStatus(ctx, "uni_portal", "APP-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnknown, status)

	require.NoError(t, store.SetLastStatus(ctx, "uni_portal", "APP-1", models.StatusPending))

	status, err = store.LastStatus(ctx, "uni_portal", "APP-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, status)

	// Other applications are unaffected.
	status, err = store.LastStatus(ctx, "uni_portal", "APP-2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnknown, status)
}

func TestRunOnce_ReportsStatusChange(t *testing.T) {
	surface := &browsertest.Surface{
		Text:              "Welcome to your Dashboard. Your application is under review.",
		FillableSelectors: map[string]bool{"#username": true},
		ClickableTexts:    map[string]bool{"APP-1": true},
	}

	profile := &models.PortalProfile{
		PortalName: "uni_portal",
		PortalURL:  "https://portal.example.com",
		Login: models.Workflow{Steps: []models.ActionStep{
			{Action: models.ActionFindAndFill, Selectors: []string{"#username"}, Value: "{username}"},
		}},
		Navigation: models.Workflow{Steps: []models.ActionStep{
			{Action: models.ActionFindAndClick, Hints: []string{"{application_id}"}},
		}},
		Download: models.Workflow{Steps: []models.ActionStep{
			{Action: models.ActionWait, TimeoutSeconds: 1},
		}},
		StatusDetection: models.StatusPatterns{Pending: []string{"under review"}},
	}

	engine := orchestrator.NewEngine(
		&stubProfiles{profile: profile},
		storage.NewFileStore(t.TempDir()),
		nil,
		nil,
		func() (browser.Driver, error) { return browsertest.NewDriver(surface), nil },
		nil,
	)

	var (
		changes int
		from    models.ApplicationStatus
		to      models.ApplicationStatus
	)

	w := New(engine, nil, func(_, _ string, f, t models.ApplicationStatus) {
		changes++
		from = f
		to = t
	}, slog.Default())

	req := models.CheckRequest{
		Portal:        "uni_portal",
		Username:      "u",
		Password:      "p",
		ApplicationID: "APP-1",
	}

	w.RunOnce(context.Background(), req)

	require.Equal(t, 1, changes)
	assert.Equal(t, models.StatusUnknown, from)
	assert.Equal(t, models.StatusPending, to)

	// A second run with the same status does not fire the handler again.
	w.RunOnce(context.Background(), req)
	assert.Equal(t, 1, changes)
}
