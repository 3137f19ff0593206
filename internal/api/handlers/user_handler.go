package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/lmercadier/devfeed-be/internal/auth"
	"github.com/lmercadier/devfeed-be/internal/models"
	"github.com/lmercadier/devfeed-be/internal/services"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	identity services.IdentityServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(identity services.IdentityServiceProvider) *UserHandler {
	return &UserHandler{identity: identity}
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.identity.GetUser(id)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", id).Msg("Failed to get user")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Update handles updating the caller's own profile. An empty password field
// leaves the secret unchanged.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	target := models.User{
		ID:       id,
		Name:     payload.Name,
		Email:    payload.Email,
		Username: payload.Username,
	}
	user, err := h.identity.UpdateProfile(principal, target, payload.Password)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", id).Msg("Failed to update user")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Delete handles the permanent deletion of the caller's own account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.identity.DeleteUser(principal, id); err != nil {
		log.Warn().Err(err).Int64("user_id", id).Msg("Failed to delete user")
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
