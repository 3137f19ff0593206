package store

import (
	"database/sql"

	"github.com/lmercadier/devfeed-be/internal/models"
)

// ThemeStore reads the theme catalog. Themes are seeded at startup; there is
// no mutation path through the API.
type ThemeStore struct {
	db *sql.DB
}

// NewThemeStore creates a new ThemeStore.
func NewThemeStore(db *sql.DB) *ThemeStore {
	return &ThemeStore{db: db}
}

// GetByID retrieves a theme by id.
func (s *ThemeStore) GetByID(id int64) (models.Theme, error) {
	var theme models.Theme
	row := s.db.QueryRow("SELECT id, name, description FROM themes WHERE id = ?", id)
	if err := row.Scan(&theme.ID, &theme.Name, &theme.Description); err != nil {
		return models.Theme{}, err
	}
	return theme, nil
}

// List returns every theme ordered by name.
func (s *ThemeStore) List() ([]models.Theme, error) {
	rows, err := s.db.Query("SELECT id, name, description FROM themes ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var themes []models.Theme
	for rows.Next() {
		var theme models.Theme
		if err := rows.Scan(&theme.ID, &theme.Name, &theme.Description); err != nil {
			return nil, err
		}
		themes = append(themes, theme)
	}
	return themes, rows.Err()
}

// Insert adds a theme. Used by seeding and tests.
func (s *ThemeStore) Insert(name, description string) (models.Theme, error) {
	res, err := s.db.Exec("INSERT INTO themes (name, description) VALUES (?, ?)", name, description)
	if err != nil {
		return models.Theme{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Theme{}, err
	}
	return models.Theme{ID: id, Name: name, Description: description}, nil
}
