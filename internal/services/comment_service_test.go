package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	env := newTestEnv(t)
	alice := env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")
	bob := env.mustRegister(t, "Bob", "b@x.com", "bob", "pw123456")
	tech := env.mustTheme(t, "Tech")

	article, err := env.content.CreateArticle(principalFor(alice), tech.ID, "T1", "body")
	require.NoError(t, err)

	comment, err := env.comment.CreateComment(principalFor(bob), article.ID, "great read")
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.Equal(t, bob.ID, comment.AuthorID)

	comments, err := env.comment.ListByArticle(article.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "great read", comments[0].Content)
	assert.Equal(t, "Bob", comments[0].AuthorName)
}

func TestCreateComment_MissingArticle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")

	_, err := env.comment.CreateComment(principalFor(alice), 9999, "hello?")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateComment_EmptyContent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")
	tech := env.mustTheme(t, "Tech")

	article, err := env.content.CreateArticle(principalFor(alice), tech.ID, "T1", "body")
	require.NoError(t, err)

	_, err = env.comment.CreateComment(principalFor(alice), article.ID, "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestListByArticle_MissingArticle(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.comment.ListByArticle(9999)
	require.ErrorIs(t, err, ErrNotFound)
}
