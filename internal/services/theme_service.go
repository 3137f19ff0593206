package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lmercadier/devfeed-be/internal/models"
	"github.com/lmercadier/devfeed-be/internal/store"
)

// ThemeServiceProvider defines the interface for theme services.
type ThemeServiceProvider interface {
	ListThemes() ([]models.Theme, error)
	GetTheme(id int64) (models.Theme, error)
}

// ThemeService exposes the read-only theme catalog.
type ThemeService struct {
	themes *store.ThemeStore
}

// NewThemeService creates a new ThemeService.
func NewThemeService(themes *store.ThemeStore) *ThemeService {
	return &ThemeService{themes: themes}
}

// ListThemes returns every theme.
func (s *ThemeService) ListThemes() ([]models.Theme, error) {
	return s.themes.List()
}

// GetTheme retrieves a theme by id.
func (s *ThemeService) GetTheme(id int64) (models.Theme, error) {
	theme, err := s.themes.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Theme{}, fmt.Errorf("%w: theme %d", ErrNotFound, id)
		}
		return models.Theme{}, err
	}
	return theme, nil
}
