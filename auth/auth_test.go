package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	svc := NewService("secret", bcrypt.MinCost)

	hash, err := svc.HashPassword("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, svc.CheckPassword(hash, "hunter22"))
	assert.False(t, svc.CheckPassword(hash, "hunter23"))
	assert.False(t, svc.CheckPassword("", "hunter22"))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("secret", bcrypt.MinCost)

	token, err := svc.IssueToken("abc123", "Jane Doe", "https://www.gravatar.com/avatar/x")
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims.ID)
	assert.Equal(t, "Jane Doe", claims.Name)
	assert.Equal(t, "https://www.gravatar.com/avatar/x", claims.Avatar)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService("secret-a", bcrypt.MinCost)
	verifier := NewService("secret-b", bcrypt.MinCost)

	token, err := issuer.IssueToken("abc123", "Jane", "avatar")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc := NewService("secret", bcrypt.MinCost)

	_, err := svc.ParseToken("not.a.token")
	assert.Error(t, err)

	_, err = svc.ParseToken("")
	assert.Error(t, err)
}

func TestGravatarURL(t *testing.T) {
	// Known md5 of the normalized address
	assert.Equal(t,
		"https://www.gravatar.com/avatar/357a20e8c56e69d6f9734d23ef9517e8?s=200&r=pg&d=mm",
		GravatarURL("a@b.com"))

	// Case and surrounding whitespace never change the avatar
	assert.Equal(t, GravatarURL("tester@example.com"), GravatarURL("  Tester@Example.COM "))
}
