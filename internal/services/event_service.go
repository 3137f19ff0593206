package services

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lmercadier/devfeed-be/internal/models"
	"github.com/lmercadier/devfeed-be/internal/store"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	Record(eventType, level, message string, themeID *int64) error
	Recent(limit int) ([]models.Event, error)
}

// Broadcaster fans recorded events out to connected clients. Implemented by
// the websocket hub.
type Broadcaster interface {
	BroadcastGlobal(message []byte)
	BroadcastTheme(themeID int64, message []byte)
}

// EventService records activity events and pushes them to live listeners.
type EventService struct {
	events      *store.EventStore
	broadcaster Broadcaster
}

// NewEventService creates a new EventService. The broadcaster may be nil.
func NewEventService(events *store.EventStore, broadcaster Broadcaster) *EventService {
	return &EventService{events: events, broadcaster: broadcaster}
}

// Record logs a new event and broadcasts it.
func (s *EventService) Record(eventType, level, message string, themeID *int64) error {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
		ThemeID: themeID,
	}

	if err := s.events.Insert(event); err != nil {
		return err
	}

	if s.broadcaster != nil {
		payload, err := json.Marshal(map[string]any{"action": "event", "payload": event})
		if err != nil {
			log.Error().Err(err).Str("type", eventType).Msg("Failed to encode event for broadcast")
			return nil
		}
		s.broadcaster.BroadcastGlobal(payload)
		if themeID != nil {
			s.broadcaster.BroadcastTheme(*themeID, payload)
		}
	}
	return nil
}

// Recent retrieves the most recent events.
func (s *EventService) Recent(limit int) ([]models.Event, error) {
	return s.events.Recent(limit)
}
