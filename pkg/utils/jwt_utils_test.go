package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := NewTokenManager("", TokenTTL)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m, err := NewTokenManager("test-secret", 0)
	require.NoError(t, err)

	token, err := m.Generate("user-1")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, tokenIssuer, claims.Issuer)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, TokenTTL, ttl)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m, err := NewTokenManager("test-secret", -time.Hour)
	require.NoError(t, err)

	token, err := m.Generate("user-1")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	issuer, _ := NewTokenManager("secret-a", TokenTTL)
	verifier, _ := NewTokenManager("secret-b", TokenTTL)

	token, err := issuer.Generate("user-1")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	m, _ := NewTokenManager("test-secret", TokenTTL)

	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    tokenIssuer,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	m, _ := NewTokenManager("test-secret", TokenTTL)
	_, err := m.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
