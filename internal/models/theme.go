package models

// Theme is a subject articles are published under. Themes are seeded at
// startup and never mutated through the API.
type Theme struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
