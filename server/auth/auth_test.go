package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/Daskott/contactbook/server/auth/key"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func testKeyPair(t *testing.T) *key.KeyPair {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.Nil(t, err)

	keyPair, err := key.NewKeyPair(privateKey)
	assert.Nil(t, err)

	return keyPair
}

func TestEncodeDecodeJWT(t *testing.T) {
	keyPair := testKeyPair(t)

	claims := NewTokenClaims(7, 3, "jane", "smith", time.Hour)
	token, err := EncodeJWT(claims, keyPair)
	assert.Nil(t, err)

	decoded, err := DecodeJWT(token, keyPair)
	assert.Nil(t, err)
	assert.Equal(t, uint(3), decoded.AccountID)
	assert.Equal(t, "jane", decoded.FirstName)

	userID, err := decoded.UserID()
	assert.Nil(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestDecodeJWTRejectsBadTokens(t *testing.T) {
	keyPair := testKeyPair(t)
	otherKeyPair := testKeyPair(t)

	expired := NewTokenClaims(1, 1, "jane", "smith", time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Minute).Unix()
	expiredToken, err := EncodeJWT(expired, keyPair)
	assert.Nil(t, err)

	foreignToken, err := EncodeJWT(NewTokenClaims(1, 1, "jane", "smith", time.Hour), otherKeyPair)
	assert.Nil(t, err)

	noAccountToken, err := EncodeJWT(NewTokenClaims(1, 0, "jane", "smith", time.Hour), keyPair)
	assert.Nil(t, err)

	hmacToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, NewTokenClaims(1, 1, "jane", "smith", time.Hour)).
		SignedString([]byte("secret"))
	assert.Nil(t, err)

	testCases := []struct {
		desc  string
		token string
	}{
		{"expired token", expiredToken},
		{"token signed by another key", foreignToken},
		{"token without account", noAccountToken},
		{"token with another signing method", hmacToken},
		{"garbage", "not.a.jwt"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := DecodeJWT(tc.token, keyPair)
			assert.NotNil(t, err)
		})
	}
}

func TestHashPassword(t *testing.T) {
	PasswordHashCost = bcrypt.MinCost

	hash, err := HashPassword("very-secure")
	assert.Nil(t, err)
	assert.NotEqual(t, "very-secure", hash)

	assert.True(t, CheckPasswordHash("very-secure", hash))
	assert.False(t, CheckPasswordHash("not-it", hash))
}
