package eventbus

import (
	"context"

	"github.com/google/uuid"

	"github.com/smerajiapply/submission/pkg/events"
)

// NoopEventBus discards every event. It backs runs where no observer cares
// about lifecycle notifications.
type NoopEventBus struct{}

func NewNoopEventBus() EventBus {
	return &NoopEventBus{}
}

func (eb *NoopEventBus) GenerateID() string {
	return uuid.New().String()
}

func (eb *NoopEventBus) Publish(_ context.Context, _ string, _ Event) error {
	return nil
}

func (eb *NoopEventBus) Subscribe(_ context.Context) error {
	return nil
}

func (eb *NoopEventBus) Handle(_ events.EventType, _ EventHandler) error {
	return nil
}

func (eb *NoopEventBus) Close() error {
	return nil
}
