// Package events defines event types and structures for check run lifecycle notifications.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/smerajiapply/submission/pkg/models"
)

type EventType string

// Kafka topic for check run events.
const Topic = "submission.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	CheckStartedEvent   EventType = "check.started"
	PhaseCompletedEvent EventType = "check.phase.completed"
	PhaseFailedEvent    EventType = "check.phase.failed"
	CheckFinishedEvent  EventType = "check.finished"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Portal    string         `json:"portal"`
	RunID     string         `json:"run_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type CheckStarted struct {
	BaseEvent

	ApplicationID string `json:"application_id,omitempty"`
}

func (c CheckStarted) GetType() EventType {
	return CheckStartedEvent
}

type PhaseCompleted struct {
	BaseEvent

	Phase      string `json:"phase"`
	DurationMs int64  `json:"duration_ms"`
}

func (p PhaseCompleted) GetType() EventType {
	return PhaseCompletedEvent
}

type PhaseFailed struct {
	BaseEvent

	Phase      string `json:"phase"`
	Error      string `json:"error"`
	DurationMs int64  `json:"duration_ms"`
}

func (p PhaseFailed) GetType() EventType {
	return PhaseFailedEvent
}

type CheckFinished struct {
	BaseEvent

	Success         bool                     `json:"success"`
	Status          models.ApplicationStatus `json:"status"`
	OfferDownloaded bool                     `json:"offer_downloaded"`
	OfferPath       string                   `json:"offer_path,omitempty"`
	DurationMs      int64                    `json:"duration_ms"`
}

func (c CheckFinished) GetType() EventType {
	return CheckFinishedEvent
}

func NewBaseEvent(eventType EventType, portal, runID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Portal:    portal,
		RunID:     runID,
		Metadata:  make(map[string]any),
	}
}
