package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_StripsSecretAndStartsUnsubscribed(t *testing.T) {
	env := newTestEnv(t)

	user := env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")

	assert.NotZero(t, user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.Empty(t, user.FollowedThemes)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")

	_, err := env.identity.Register("Mallory", "a@x.com", "mallory", "pw123456")
	require.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")

	// Only the email is probed up front; the username clash still surfaces
	// through the storage uniqueness constraint.
	_, err := env.identity.Register("Mallory", "m@x.com", "alice", "pw123456")
	require.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestRegister_EmptyFields(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.identity.Register("Alice", "", "alice", "pw123456")
	require.ErrorIs(t, err, ErrValidation)
	_, err = env.identity.Register("Alice", "a@x.com", "alice", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestLogin_ByEmail(t *testing.T) {
	env := newTestEnv(t)
	env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")

	user, token, err := env.identity.Login("a@x.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	subject, err := env.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestLogin_ByUsername(t *testing.T) {
	env := newTestEnv(t)
	env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")

	user, token, err := env.identity.Login("alice", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// The subject claim is always the email, whichever identifier was used.
	subject, err := env.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestLogin_FailuresAreIndistinct(t *testing.T) {
	env := newTestEnv(t)
	env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")

	_, _, wrongPassword := env.identity.Login("alice", "nope")
	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)

	_, _, unknownUser := env.identity.Login("bob", "pw123456")
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)

	// The two failures must be indistinguishable.
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestCurrentUser_DeletedAccount(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")

	require.NoError(t, env.identity.DeleteUser(principalFor(user), user.ID))

	_, err := env.identity.CurrentUser("a@x.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile_OwnRecordOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")
	bob := env.mustRegister(t, "Bob", "b@x.com", "bob", "pw123456")

	target := bob
	target.Name = "Hijacked"
	_, err := env.identity.UpdateProfile(principalFor(alice), target, "")
	require.ErrorIs(t, err, ErrForbidden)

	unchanged, err := env.identity.GetUser(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", unchanged.Name)
}

func TestUpdateProfile_EmptyPasswordLeavesSecretUnchanged(t *testing.T) {
	env := newTestEnv(t)
	alice := env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")

	target := alice
	target.Name = "Alice Cooper"
	updated, err := env.identity.UpdateProfile(principalFor(alice), target, "")
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)

	// The old password still works.
	_, _, err = env.identity.Login("a@x.com", "pw123456")
	require.NoError(t, err)
}

func TestUpdateProfile_NewPasswordIsRehashed(t *testing.T) {
	env := newTestEnv(t)
	alice := env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")

	_, err := env.identity.UpdateProfile(principalFor(alice), alice, "brand-new-pw")
	require.NoError(t, err)

	_, _, err = env.identity.Login("a@x.com", "pw123456")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = env.identity.Login("a@x.com", "brand-new-pw")
	require.NoError(t, err)
}

func TestFollowTheme_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")
	tech := env.mustTheme(t, "Tech")

	user, err := env.identity.FollowTheme(principalFor(alice), tech.ID)
	require.NoError(t, err)
	require.Len(t, user.FollowedThemes, 1)

	// Following twice yields the same followed-set size.
	user, err = env.identity.FollowTheme(principalFor(alice), tech.ID)
	require.NoError(t, err)
	assert.Len(t, user.FollowedThemes, 1)
}

func TestFollowTheme_MissingTheme(t *testing.T) {
	env := newTestEnv(t)
	alice := env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")

	_, err := env.identity.FollowTheme(principalFor(alice), 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUnfollowTheme_NeverFollowedIsNoop(t *testing.T) {
	env := newTestEnv(t)
	alice := env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")
	tech := env.mustTheme(t, "Tech")
	go_ := env.mustTheme(t, "Go")

	_, err := env.identity.FollowTheme(principalFor(alice), tech.ID)
	require.NoError(t, err)

	user, err := env.identity.UnfollowTheme(principalFor(alice), go_.ID)
	require.NoError(t, err)
	require.Len(t, user.FollowedThemes, 1)
	assert.Equal(t, tech.ID, user.FollowedThemes[0].ID)
}

func TestDeleteUser_SelfOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.mustRegister(t, "Alice", "a@x.com", "alice", "pw123456")
	bob := env.mustRegister(t, "Bob", "b@x.com", "bob", "pw123456")

	err := env.identity.DeleteUser(principalFor(alice), bob.ID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, env.identity.DeleteUser(principalFor(alice), alice.ID))
	_, err = env.identity.GetUser(alice.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
