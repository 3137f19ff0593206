package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lmercadier/devfeed-be/internal/auth"
	"github.com/lmercadier/devfeed-be/internal/models"
	"github.com/lmercadier/devfeed-be/internal/store"
)

// IdentityServiceProvider defines the interface for identity services.
type IdentityServiceProvider interface {
	Register(name, email, username, password string) (models.User, error)
	Login(identifier, password string) (models.User, string, error)
	CurrentUser(subjectEmail string) (models.User, error)
	GetUser(id int64) (models.User, error)
	UpdateProfile(principal auth.Principal, target models.User, newPassword string) (models.User, error)
	DeleteUser(principal auth.Principal, id int64) error
	FollowTheme(principal auth.Principal, themeID int64) (models.User, error)
	UnfollowTheme(principal auth.Principal, themeID int64) (models.User, error)
}

// IdentityService implements registration, credential verification, profile
// updates and theme subscriptions.
type IdentityService struct {
	users   *store.UserStore
	themes  *store.ThemeStore
	follows *store.FollowStore
	tokens  *auth.Tokens
	events  EventServiceProvider
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(users *store.UserStore, themes *store.ThemeStore, follows *store.FollowStore, tokens *auth.Tokens, events EventServiceProvider) *IdentityService {
	return &IdentityService{users: users, themes: themes, follows: follows, tokens: tokens, events: events}
}

// Register creates a new account with a hashed secret and an empty followed
// set. Only the email is probed for duplication up front; a username clash
// still surfaces through the storage uniqueness constraint. No token is
// issued here.
func (s *IdentityService) Register(name, email, username, password string) (models.User, error) {
	if email == "" || username == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: email, username and password are required", ErrValidation)
	}

	if _, err := s.users.GetByEmail(email); err == nil {
		return models.User{}, fmt.Errorf("%w: email already in use", ErrDuplicateIdentity)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Insert(models.User{
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%w: username already in use", ErrDuplicateIdentity)
		}
		return models.User{}, err
	}

	if err := s.events.Record("user.registered", "info", fmt.Sprintf("%q joined", user.Username), nil); err != nil {
		log.Error().Err(err).Msg("Failed to record registration event")
	}

	return s.sanitize(user)
}

// Login resolves the identifier (email when it contains "@", username
// otherwise), verifies the secret and issues a bearer token whose subject is
// the user's email. Every failure collapses into ErrInvalidCredentials.
func (s *IdentityService) Login(identifier, password string) (models.User, string, error) {
	var (
		user models.User
		err  error
	)
	switch id := auth.ParseIdentifier(identifier); id.Kind {
	case auth.IdentifierEmail:
		user, err = s.users.GetByEmail(id.Value)
	default:
		user, err = s.users.GetByUsername(id.Value)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	user, err = s.sanitize(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// CurrentUser resolves a verified subject claim to its account. A valid
// token whose account has since been deleted yields ErrNotFound.
func (s *IdentityService) CurrentUser(subjectEmail string) (models.User, error) {
	user, err := s.users.GetByEmail(subjectEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%w: no account for subject", ErrNotFound)
		}
		return models.User{}, err
	}
	return s.sanitize(user)
}

// GetUser retrieves a user by id.
func (s *IdentityService) GetUser(id int64) (models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return models.User{}, err
	}
	return s.sanitize(user)
}

// UpdateProfile updates the caller's own record. An empty newPassword means
// "leave the secret unchanged"; a non-empty one is re-hashed.
func (s *IdentityService) UpdateProfile(principal auth.Principal, target models.User, newPassword string) (models.User, error) {
	if principal.ID != target.ID {
		return models.User{}, fmt.Errorf("%w: cannot update another user's profile", ErrForbidden)
	}
	if target.Email == "" || target.Username == "" {
		return models.User{}, fmt.Errorf("%w: email and username are required", ErrValidation)
	}

	current, err := s.users.GetByID(target.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%w: user %d", ErrNotFound, target.ID)
		}
		return models.User{}, err
	}

	target.PasswordHash = current.PasswordHash
	if newPassword != "" {
		hash, err := auth.HashPassword(newPassword)
		if err != nil {
			return models.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		target.PasswordHash = hash
	}

	if err := s.users.Update(target); err != nil {
		if store.IsUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%w: email or username already in use", ErrDuplicateIdentity)
		}
		return models.User{}, err
	}
	return s.GetUser(target.ID)
}

// DeleteUser removes the caller's own account. The storage layer cascades
// follows, articles and comments.
func (s *IdentityService) DeleteUser(principal auth.Principal, id int64) error {
	if principal.ID != id {
		return fmt.Errorf("%w: cannot delete another user's account", ErrForbidden)
	}
	exists, err := s.users.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return s.users.Delete(id)
}

// FollowTheme subscribes the caller to a theme. Following an already
// followed theme is a safe no-op.
func (s *IdentityService) FollowTheme(principal auth.Principal, themeID int64) (models.User, error) {
	theme, err := s.resolveTheme(themeID)
	if err != nil {
		return models.User{}, err
	}
	if err := s.follows.Add(principal.ID, themeID); err != nil {
		return models.User{}, err
	}
	if err := s.events.Record("theme.followed", "info", fmt.Sprintf("%q follows %q", principal.Username, theme.Name), &theme.ID); err != nil {
		log.Error().Err(err).Msg("Failed to record follow event")
	}
	return s.GetUser(principal.ID)
}

// UnfollowTheme removes a subscription. Unfollowing a theme that was never
// followed is a safe no-op.
func (s *IdentityService) UnfollowTheme(principal auth.Principal, themeID int64) (models.User, error) {
	if _, err := s.resolveTheme(themeID); err != nil {
		return models.User{}, err
	}
	if err := s.follows.Remove(principal.ID, themeID); err != nil {
		return models.User{}, err
	}
	return s.GetUser(principal.ID)
}

func (s *IdentityService) resolveTheme(themeID int64) (models.Theme, error) {
	theme, err := s.themes.GetByID(themeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Theme{}, fmt.Errorf("%w: theme %d", ErrNotFound, themeID)
		}
		return models.Theme{}, err
	}
	return theme, nil
}

// sanitize strips the password hash and attaches the followed-theme set.
func (s *IdentityService) sanitize(user models.User) (models.User, error) {
	user.PasswordHash = ""
	themes, err := s.follows.ThemesFor(user.ID)
	if err != nil {
		return models.User{}, err
	}
	user.FollowedThemes = themes
	return user, nil
}
