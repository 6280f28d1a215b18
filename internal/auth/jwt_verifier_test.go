package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"folio/internal/domain"
	"folio/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKID = "test-key"

func newTestVerifier(t *testing.T) (*SupabaseJWTVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	b64 := base64.RawURLEncoding.EncodeToString
	jwks, err := json.Marshal(map[string]interface{}{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": testKID,
			"alg": "RS256",
			"use": "sig",
			"n":   b64(key.N.Bytes()),
			"e":   b64(big.NewInt(int64(key.E)).Bytes()),
		}},
	})
	require.NoError(t, err)

	kf, err := keyfunc.NewJWKSetJSON(jwks)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewJWTVerifierWithKeyfunc(kf, logger), key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims *models.SupabaseClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKID
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func validClaims() *models.SupabaseClaims {
	return &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "user@example.com",
		Role:  "authenticated",
	}
}

func TestVerifyToken(t *testing.T) {
	verifier, key := newTestVerifier(t)

	t.Run("valid", func(t *testing.T) {
		claims, err := verifier.VerifyToken(signToken(t, key, validClaims()))
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.GetUserID())
	})

	tests := []struct {
		name   string
		mutate func(c *models.SupabaseClaims)
	}{
		{"expired", func(c *models.SupabaseClaims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		}},
		{"anonymous role", func(c *models.SupabaseClaims) { c.Role = "anon" }},
		{"missing subject", func(c *models.SupabaseClaims) { c.Subject = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			tt.mutate(claims)
			_, err := verifier.VerifyToken(signToken(t, key, claims))
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.VerifyToken("not.a.token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestSessionUser(t *testing.T) {
	uid, err := NewSessionUser(9).UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(9), uid)

	_, err = NewSessionUser(0).UserID()
	assert.Error(t, err)
}
