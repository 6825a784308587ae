// Package watcher runs portal checks on a schedule and reports status
// changes between consecutive runs.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/smerajiapply/submission/pkg/models"
	"github.com/smerajiapply/submission/pkg/orchestrator"
)

// StatusStore remembers the last status seen per application.
type StatusStore interface {
	LastStatus(ctx context.Context, portal, applicationID string) (models.ApplicationStatus, error)
	SetLastStatus(ctx context.Context, portal, applicationID string, status models.ApplicationStatus) error
}

// ChangeHandler is called when a run observes a different status than the
// previous one.
type ChangeHandler func(portal, applicationID string, from, to models.ApplicationStatus)

type Watcher struct {
	engine   *orchestrator.Engine
	store    StatusStore
	logger   *slog.Logger
	onChange ChangeHandler
	cron     *cron.Cron
}

func New(engine *orchestrator.Engine, store StatusStore, onChange ChangeHandler, logger *slog.Logger) *Watcher {
	if store == nil {
		store = NewMemoryStore()
	}

	return &Watcher{
		engine:   engine,
		store:    store,
		logger:   logger,
		onChange: onChange,
		cron:     cron.New(),
	}
}

// Start runs one check immediately, then repeats on the cron schedule until
// the context is cancelled.
func (w *Watcher) Start(ctx context.Context, spec string, req models.CheckRequest) error {
	w.RunOnce(ctx, req)

	_, err := w.cron.AddFunc(spec, func() {
		w.RunOnce(ctx, req)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	w.logger.Info("Watching application", "portal", req.Portal, "schedule", spec)
	w.cron.Start()

	<-ctx.Done()

	stop := w.cron.Stop()
	<-stop.Done()

	return nil
}

// RunOnce executes one check and records a status change if any.
func (w *Watcher) RunOnce(ctx context.Context, req models.CheckRequest) {
	outcome := w.engine.Run(ctx, req)
	if !outcome.Success {
		w.logger.Warn("Scheduled check failed", "portal", req.Portal, "message", outcome.Message)

		return
	}

	last, err := w.store.LastStatus(ctx, req.Portal, req.ApplicationID)
	if err != nil {
		w.logger.Warn("Could not read last status", "error", err)

		return
	}

	if last == outcome.Status {
		w.logger.Info("Status unchanged", "portal", req.Portal, "status", outcome.Status)

		return
	}

	w.logger.Info("Status changed",
		"portal", req.Portal,
		"application_id", req.ApplicationID,
		"from", last,
		"to", outcome.Status)

	if w.onChange != nil {
		w.onChange(req.Portal, req.ApplicationID, last, outcome.Status)
	}

	if err := w.store.SetLastStatus(ctx, req.Portal, req.ApplicationID, outcome.Status); err != nil {
		w.logger.Warn("Could not record status", "error", err)
	}
}

// memoryStore keeps statuses in process memory for runs without Redis.
type memoryStore struct {
	mu       sync.Mutex
	statuses map[string]models.ApplicationStatus
}

func NewMemoryStore() StatusStore {
	return &memoryStore{statuses: make(map[string]models.ApplicationStatus)}
}

func (m *memoryStore) LastStatus(_ context.Context, portal, applicationID string) (models.ApplicationStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status, ok := m.statuses[portal+"/"+applicationID]
	if !ok {
		return models.StatusUnknown, nil
	}

	return status, nil
}

func (m *memoryStore) SetLastStatus(_ context.Context, portal, applicationID string, status models.ApplicationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.statuses[portal+"/"+applicationID] = status

	return nil
}
