package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smerajiapply/submission/pkg/channels/gochannel"
	"github.com/smerajiapply/submission/pkg/events"
	"github.com/smerajiapply/submission/pkg/models"
)

func newTestBus(t *testing.T) EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	t.Cleanup(func() { _ = bus.Close() })

	return bus
}

func TestWatermillEventBus_PublishAndHandle(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *events.CheckFinished, 1)

	err := bus.Handle(events.CheckFinishedEvent, func(_ context.Context, event interface{}) error {
		finished, ok := event.(*events.CheckFinished)
		require.True(t, ok)
		received <- finished

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(ctx))

	sent := events.CheckFinished{
		BaseEvent:       events.NewBaseEvent(events.CheckFinishedEvent, "uni_portal", "run-12345678"),
		Success:         true,
		Status:          models.StatusOfferReady,
		OfferDownloaded: true,
		OfferPath:       "/output/offers/uni_portal/APP-1.pdf",
		DurationMs:      1234,
	}
	require.NoError(t, bus.Publish(ctx, "uni_portal", sent))

	select {
	case got := <-received:
		assert.Equal(t, sent.RunID, got.RunID)
		assert.Equal(t, "uni_portal", got.Portal)
		assert.Equal(t, models.StatusOfferReady, got.Status)
		assert.True(t, got.OfferDownloaded)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_UnhandledTypeIsIgnored(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan struct{}, 1)

	err := bus.Handle(events.CheckFinishedEvent, func(context.Context, interface{}) error {
		received <- struct{}{}

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(ctx))

	started := events.CheckStarted{
		BaseEvent:     events.NewBaseEvent(events.CheckStartedEvent, "uni_portal", "run-12345678"),
		ApplicationID: "APP-1",
	}
	require.NoError(t, bus.Publish(ctx, "uni_portal", started))

	select {
	case <-received:
		t.Fatal("handler should not fire for other event types")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	bus := newTestBus(t)

	assert.NotEmpty(t, bus.GenerateID())
	assert.NotEqual(t, bus.GenerateID(), bus.GenerateID())
}

func TestNoopEventBus(t *testing.T) {
	bus := NewNoopEventBus()

	assert.NoError(t, bus.Publish(context.Background(), "k", events.CheckStarted{}))
	assert.NoError(t, bus.Subscribe(context.Background()))
	assert.NotEmpty(t, bus.GenerateID())
	assert.NoError(t, bus.Close())
}
