package models

import "time"

// Event is an activity log entry.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	ThemeID   *int64    `json:"themeId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
