package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret", 24*time.Hour)

	signed, err := svc.Issue(42, "alice@example.com", RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	identity, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.UserID)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.Equal(t, RoleManager, identity.Role)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewService("test-secret", 24*time.Hour)

	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	signed, err := svc.Issue(1, "bob@example.com", RoleUser)
	require.NoError(t, err)

	// Jump past the 24h lifetime. The signature is still valid; only the
	// expiry check fails, and the caller sees the same generic error as for
	// any other failure.
	svc.now = func() time.Time { return issuedAt.Add(25 * time.Hour) }

	identity, err := svc.Verify(signed)
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewService("secret-one", time.Hour)
	verifier := NewService("secret-two", time.Hour)

	signed, err := issuer.Issue(1, "carol@example.com", RoleAdmin)
	require.NoError(t, err)

	identity, err := verifier.Verify(signed)
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		identity, err := svc.Verify(tokenString)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyUnknownRole(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	signed, err := svc.Issue(7, "dave@example.com", Role("superuser"))
	require.NoError(t, err)

	identity, err := svc.Verify(signed)
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("Admin").Valid())
}
