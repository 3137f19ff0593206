package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/lmercadier/devfeed-be/internal/auth"
	"github.com/lmercadier/devfeed-be/internal/models"
	"github.com/lmercadier/devfeed-be/internal/services"
)

// ThemeHandler handles the theme catalog and follow/unfollow actions.
type ThemeHandler struct {
	themes   services.ThemeServiceProvider
	identity services.IdentityServiceProvider
}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler(themes services.ThemeServiceProvider, identity services.IdentityServiceProvider) *ThemeHandler {
	return &ThemeHandler{themes: themes, identity: identity}
}

// List handles retrieving the theme catalog.
func (h *ThemeHandler) List(w http.ResponseWriter, r *http.Request) {
	themes, err := h.themes.ListThemes()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list themes")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themes)
}

// Get handles retrieving a single theme.
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid theme id", http.StatusBadRequest)
		return
	}
	theme, err := h.themes.GetTheme(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

// Follow subscribes the caller to a theme and returns the updated user.
func (h *ThemeHandler) Follow(w http.ResponseWriter, r *http.Request) {
	h.changeSubscription(w, r, h.identity.FollowTheme)
}

// Unfollow removes the caller's subscription and returns the updated user.
func (h *ThemeHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.changeSubscription(w, r, h.identity.UnfollowTheme)
}

func (h *ThemeHandler) changeSubscription(w http.ResponseWriter, r *http.Request, change func(auth.Principal, int64) (models.User, error)) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid theme id", http.StatusBadRequest)
		return
	}

	user, err := change(principal, id)
	if err != nil {
		log.Warn().Err(err).Int64("theme_id", id).Msg("Failed to change theme subscription")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
