package store

import (
	"database/sql"

	"github.com/lmercadier/devfeed-be/internal/models"
)

// EventStore persists activity log entries.
type EventStore struct {
	db *sql.DB
}

// NewEventStore creates a new EventStore.
func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

// Insert persists a new event.
func (s *EventStore) Insert(event models.Event) error {
	stmt, err := s.db.Prepare("INSERT INTO events (id, type, level, message, theme_id) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Type, event.Level, event.Message, event.ThemeID)
	return err
}

// Recent retrieves the most recent events.
func (s *EventStore) Recent(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, theme_id, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.ThemeID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
