package models

import "time"

// User represents a registered account.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"` // Never expose this to the client
	FollowedThemes []Theme   `json:"followedThemes"`
	CreatedAt      time.Time `json:"createdAt"`
}
