package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, CheckPassword(hash, "secret1"))
	assert.ErrorIs(t, CheckPassword(hash, "secret2"), ErrInvalidCredentials)
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	err := CheckPassword("not-a-bcrypt-hash", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestNewTokenManagerValidatesConfig(t *testing.T) {
	_, err := NewTokenManager("", time.Hour, nil)
	assert.Error(t, err)

	_, err = NewTokenManager("secret", 0, nil)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	m, err := NewTokenManager("secret", time.Hour, func() time.Time { return now })
	require.NoError(t, err)

	token, expires, err := m.Issue(Claims{StudentID: "stu-1", Email: "riya@nita.ac.in"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expires)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, Claims{StudentID: "stu-1", Email: "riya@nita.ac.in"}, claims)
}

func TestTokenExpires(t *testing.T) {
	now := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	m, err := NewTokenManager("secret", time.Hour, func() time.Time { return now })
	require.NoError(t, err)

	token, _, err := m.Issue(Claims{StudentID: "stu-1"})
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	issuer, err := NewTokenManager("secret-a", time.Hour, nil)
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-b", time.Hour, nil)
	require.NoError(t, err)

	token, _, err := issuer.Issue(Claims{StudentID: "stu-1"})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestTokenWithoutSubjectIsRejected(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour, nil)
	require.NoError(t, err)

	token, _, err := m.Issue(Claims{})
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorContains(t, err, "no subject")
}

func TestContextClaims(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithClaims(context.Background(), Claims{StudentID: "stu-1"})
	c, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "stu-1", c.StudentID)
}
