package agents

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/smerajiapply/submission/pkg/browser"
	"github.com/smerajiapply/submission/pkg/executor"
	"github.com/smerajiapply/submission/pkg/models"
)

// ArtifactStore receives captured offer documents and run metadata.
type ArtifactStore interface {
	SaveOffer(portal, applicationID string, content []byte, extension string) (string, error)
	SaveMetadata(portal, applicationID string, metadata map[string]any) (string, error)
}

// DownloadAgent runs the download workflow and moves the captured document
// into the artifact store.
type DownloadAgent struct {
	runner
	store ArtifactStore
}

func NewDownloadAgent(session *browser.Session, exec *executor.Executor, store ArtifactStore, logger *slog.Logger) *DownloadAgent {
	return &DownloadAgent{
		runner: runner{session: session, exec: exec, logger: logger},
		store:  store,
	}
}

// DownloadOffer runs the download workflow with retries and returns the
// stored document's path. A workflow that completes without producing a
// document counts as a failed attempt.
func (a *DownloadAgent) DownloadOffer(profile *models.PortalProfile, runCtx models.RunContext) (string, error) {
	var saved string

	err := a.withRetries(profile.Download, "download", func() error {
		artifact, err := a.runWorkflow(profile.Download, runCtx)
		if err != nil {
			return err
		}

		if artifact == "" {
			return ErrNoDocument
		}

		content, err := os.ReadFile(artifact)
		if err != nil {
			return fmt.Errorf("could not read captured document: %w", err)
		}

		a.logger.Info("Captured offer document", "path", artifact, "bytes", len(content))

		path, err := a.store.SaveOffer(profile.PortalName, runCtx.ApplicationID, content, filepath.Ext(artifact))
		if err != nil {
			return fmt.Errorf("could not store offer: %w", err)
		}

		// Staged copy is no longer needed once stored.
		if err := os.Remove(artifact); err != nil {
			a.logger.Debug("Could not remove staged document", "path", artifact, "error", err)
		}

		a.logger.Info("Offer saved", "path", path)
		saved = path

		return nil
	})

	return saved, err
}
