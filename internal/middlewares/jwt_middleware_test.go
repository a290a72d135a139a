package middlewares_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listloop-server/internal/middlewares"
)

func generateKeyPair(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemBytes)
}

func signToken(t *testing.T, key *ecdsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func runMiddleware(publicKeyPEM, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := middlewares.JWTMiddleware(publicKeyPEM)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	return rec, c
}

func TestJWTMiddleware(t *testing.T) {
	key, publicPEM := generateKeyPair(t)

	t.Run("valid token passes and exposes the user id", func(t *testing.T) {
		token := signToken(t, key, jwt.MapClaims{
			"sub":  "US0A1B2C3D4E5",
			"name": "alice",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		rec, c := runMiddleware(publicPEM, "Bearer "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		userID, err := middlewares.GetUserIDFromContext(c)
		assert.NoError(t, err)
		assert.Equal(t, "US0A1B2C3D4E5", userID)
		assert.Equal(t, "alice", middlewares.GetUsernameFromContext(c))
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		rec, _ := runMiddleware(publicPEM, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		rec, _ := runMiddleware(publicPEM, "Token abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed by another key is rejected", func(t *testing.T) {
		otherKey, _ := generateKeyPair(t)
		token := signToken(t, otherKey, jwt.MapClaims{
			"sub": "US0A1B2C3D4E5",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		rec, _ := runMiddleware(publicPEM, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signToken(t, key, jwt.MapClaims{
			"sub": "US0A1B2C3D4E5",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		rec, _ := runMiddleware(publicPEM, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without sub is rejected", func(t *testing.T) {
		token := signToken(t, key, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		rec, _ := runMiddleware(publicPEM, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetSocketIDFromRequest(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(middlewares.SocketIDHeader, "sock-42")
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, "sock-42", middlewares.GetSocketIDFromRequest(c))
}
