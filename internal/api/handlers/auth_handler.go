package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lmercadier/devfeed-be/internal/auth"
	"github.com/lmercadier/devfeed-be/internal/services"
)

// AuthHandler handles registration, login and the current-user lookup.
type AuthHandler struct {
	identity services.IdentityServiceProvider
	tokens   *auth.Tokens
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(identity services.IdentityServiceProvider, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{identity: identity, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginPayload defines the structure for login requests. Identifier accepts
// an email or a username.
type LoginPayload struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Register handles new user registration. Registration itself issues no
// token; the boundary issues one explicitly afterwards so the client is
// logged in right away.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.identity.Register(payload.Name, payload.Email, payload.Username, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue token after registration")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Login handles credential verification and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.identity.Login(payload.Identifier, payload.Password)
	if err != nil {
		log.Warn().Err(err).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// GetMe retrieves the account behind the authenticated principal.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	user, err := h.identity.CurrentUser(principal.Email)
	if err != nil {
		log.Warn().Err(err).Str("email", principal.Email).Msg("Account from token no longer exists")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
