package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lmercadier/devfeed-be/internal/auth"
	"github.com/lmercadier/devfeed-be/internal/database"
	"github.com/lmercadier/devfeed-be/internal/models"
	"github.com/lmercadier/devfeed-be/internal/store"
)

// testEnv wires every service against a fresh in-memory database.
type testEnv struct {
	users    *store.UserStore
	themes   *store.ThemeStore
	follows  *store.FollowStore
	articles *store.ArticleStore
	comments *store.CommentStore

	tokens   *auth.Tokens
	identity *IdentityService
	content  *ContentService
	comment  *CommentService
	theme    *ThemeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	env := &testEnv{
		users:    store.NewUserStore(db),
		themes:   store.NewThemeStore(db),
		follows:  store.NewFollowStore(db),
		articles: store.NewArticleStore(db),
		comments: store.NewCommentStore(db),
		tokens:   auth.NewTokens([]byte("test-secret"), time.Hour),
	}
	events := NewEventService(store.NewEventStore(db), nil)
	env.identity = NewIdentityService(env.users, env.themes, env.follows, env.tokens, events)
	env.content = NewContentService(env.articles, env.themes, env.follows, events)
	env.comment = NewCommentService(env.comments, env.articles)
	env.theme = NewThemeService(env.themes)
	return env
}

func (e *testEnv) mustRegister(t *testing.T, name, email, username, password string) models.User {
	t.Helper()
	user, err := e.identity.Register(name, email, username, password)
	require.NoError(t, err)
	return user
}

func (e *testEnv) mustTheme(t *testing.T, name string) models.Theme {
	t.Helper()
	theme, err := e.themes.Insert(name, name+" articles")
	require.NoError(t, err)
	return theme
}

func principalFor(user models.User) auth.Principal {
	return auth.Principal{ID: user.ID, Name: user.Name, Email: user.Email, Username: user.Username}
}
