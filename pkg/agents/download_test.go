package agents

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smerajiapply/submission/pkg/browser/browsertest"
	"github.com/smerajiapply/submission/pkg/models"
)

type stubStore struct {
	portal    string
	appID     string
	content   []byte
	extension string
	savedPath string
}

func (s *stubStore) SaveOffer(portal, applicationID string, content []byte, extension string) (string, error) {
	s.portal = portal
	s.appID = applicationID
	s.content = content
	s.extension = extension
	s.savedPath = "/stored/offer" + extension

	return s.savedPath, nil
}

func (s *stubStore) SaveMetadata(string, string, map[string]any) (string, error) {
	return "", nil
}

func downloadProfile() *models.PortalProfile {
	return &models.PortalProfile{
		PortalName: "testportal",
		PortalURL:  "https://portal.example.com",
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
	}
}

func TestDownloadOffer_StoresCapturedDocument(t *testing.T) {
	surface := &browsertest.Surface{
		ClickableTexts: map[string]bool{"Download Offer": true},
		DownloadItem:   &browsertest.Download{Filename: "offer.pdf", Content: []byte("%PDF-1.4 body")},
	}

	session, exec := newTestRunner(t, surface)
	store := &stubStore{}
	agent := NewDownloadAgent(session, exec, store, slog.Default())

	path, err := agent.DownloadOffer(downloadProfile(), models.RunContext{ApplicationID: "APP-9"})

	require.NoError(t, err)
	assert.Equal(t, store.savedPath, path)
	assert.Equal(t, "testportal", store.portal)
	assert.Equal(t, "APP-9", store.appID)
	assert.Equal(t, ".pdf", store.extension)
	assert.Equal(t, []byte("%PDF-1.4 body"), store.content)
}

func TestDownloadOffer_RemovesStagedCopy(t *testing.T) {
	surface := &browsertest.Surface{
		ClickableTexts: map[string]bool{"Download Offer": true},
		DownloadItem:   &browsertest.Download{Filename: "offer.pdf", Content: []byte("x")},
	}

	session, exec := newTestRunner(t, surface)
	agent := NewDownloadAgent(session, exec, &stubStore{}, slog.Default())

	_, err := agent.DownloadOffer(downloadProfile(), models.RunContext{})
	require.NoError(t, err)

	dir := exec.TempDir()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownloadOffer_NoDocumentCaptured(t *testing.T) {
	// The workflow succeeds but nothing produces an artifact.
	surface := &browsertest.Surface{
		Text: "ok",
	}

	session, exec := newTestRunner(t, surface)
	agent := NewDownloadAgent(session, exec, &stubStore{}, slog.Default())

	profile := downloadProfile()
	profile.Download.Steps = []models.ActionStep{
		{Action: models.ActionWait, TimeoutSeconds: 1},
	}

	_, err := agent.DownloadOffer(profile, models.RunContext{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoDocument))
}
