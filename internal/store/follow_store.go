package store

import (
	"database/sql"

	"github.com/lmercadier/devfeed-be/internal/models"
)

// FollowStore manages the user/theme subscription join table. Membership is
// changed with single atomic statements, so two concurrent calls for the same
// user cannot overwrite each other's change.
type FollowStore struct {
	db *sql.DB
}

// NewFollowStore creates a new FollowStore.
func NewFollowStore(db *sql.DB) *FollowStore {
	return &FollowStore{db: db}
}

// Add records that a user follows a theme. Adding an existing membership is
// a no-op.
func (s *FollowStore) Add(userID, themeID int64) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO follows (user_id, theme_id) VALUES (?, ?)", userID, themeID)
	return err
}

// Remove drops a membership. Removing an absent membership is a no-op.
func (s *FollowStore) Remove(userID, themeID int64) error {
	_, err := s.db.Exec("DELETE FROM follows WHERE user_id = ? AND theme_id = ?", userID, themeID)
	return err
}

// ThemesFor returns the themes a user follows, ordered by theme id so the
// iteration order is stable.
func (s *FollowStore) ThemesFor(userID int64) ([]models.Theme, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.description
		FROM follows f
		JOIN themes t ON t.id = f.theme_id
		WHERE f.user_id = ?
		ORDER BY t.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	themes := []models.Theme{}
	for rows.Next() {
		var theme models.Theme
		if err := rows.Scan(&theme.ID, &theme.Name, &theme.Description); err != nil {
			return nil, err
		}
		themes = append(themes, theme)
	}
	return themes, rows.Err()
}

// Count returns the total number of follow memberships.
func (s *FollowStore) Count() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(1) FROM follows").Scan(&n)
	return n, err
}
