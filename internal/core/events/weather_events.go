package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeOverrideCreated   = "weather.override_created"
	EventTypeOverrideReverted  = "weather.override_reverted"
	EventTypeLocationRefreshed = "weather.location_refreshed"
	EventTypeSnapshotRefreshed = "session.snapshot_refreshed"
)

type OverrideCreatedEvent struct {
	BaseEvent
	LocationID int64  `json:"location_id"`
	Field      string `json:"field"`
	UserID     int64  `json:"user_id"`
	Reason     string `json:"reason"`
}

func NewOverrideCreatedEvent(locationID int64, field string, userID int64, reason string) *OverrideCreatedEvent {
	return &OverrideCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOverrideCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"location_id": locationID,
				"field":       field,
				"user_id":     userID,
				"reason":      reason,
			},
		},
		LocationID: locationID,
		Field:      field,
		UserID:     userID,
		Reason:     reason,
	}
}

type OverrideRevertedEvent struct {
	BaseEvent
	LocationID int64  `json:"location_id"`
	Field      string `json:"field"`
	UserID     int64  `json:"user_id"`
}

func NewOverrideRevertedEvent(locationID int64, field string, userID int64) *OverrideRevertedEvent {
	return &OverrideRevertedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOverrideReverted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"location_id": locationID,
				"field":       field,
				"user_id":     userID,
			},
		},
		LocationID: locationID,
		Field:      field,
		UserID:     userID,
	}
}

type LocationRefreshedEvent struct {
	BaseEvent
	LocationID int64  `json:"location_id"`
	ProviderID string `json:"provider_id"`
}

func NewLocationRefreshedEvent(locationID int64, providerID string) *LocationRefreshedEvent {
	return &LocationRefreshedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLocationRefreshed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"location_id": locationID,
				"provider_id": providerID,
			},
		},
		LocationID: locationID,
		ProviderID: providerID,
	}
}

type SnapshotRefreshedEvent struct {
	BaseEvent
	UserID int64  `json:"user_id"`
	State  string `json:"state"`
}

func NewSnapshotRefreshedEvent(userID int64, state string) *SnapshotRefreshedEvent {
	return &SnapshotRefreshedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeSnapshotRefreshed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
				"state":   state,
			},
		},
		UserID: userID,
		State:  state,
	}
}
