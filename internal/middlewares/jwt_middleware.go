package middlewares

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "listloop-server/pkg/errors"
)

const userIDKey = "user_id"
const usernameKey = "user_name"

// JWTMiddleware extracts the Bearer token from the Authorization header,
// verifies it against the identity provider's ES256 public key, and stores
// the sub claim (user ID) in the request context.
func JWTMiddleware(publicKeyPEM string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header format"})
			}
			tokenStr := parts[1]

			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return parsePublicKey(publicKeyPEM)
			})
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "sub claim not found in token"})
			}
			c.Set(userIDKey, sub)
			if name, ok := claims["name"].(string); ok {
				c.Set(usernameKey, name)
			}

			return next(c)
		}
	}
}

func parsePublicKey(publicKeyPEM string) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing public key")
	}
	pubKeyInterface, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	pubKey, ok := pubKeyInterface.(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an ECDSA public key")
	}
	return pubKey, nil
}

// GetUserIDFromContext extracts the authenticated user ID stored by the
// middleware.
func GetUserIDFromContext(c echo.Context) (string, error) {
	userID, ok := c.Get(userIDKey).(string)
	if !ok || userID == "" {
		return "", apperrors.Unauthenticated("no authenticated user in request context")
	}
	return userID, nil
}

// GetUsernameFromContext extracts the display name claim, if present.
func GetUsernameFromContext(c echo.Context) string {
	if name, ok := c.Get(usernameKey).(string); ok {
		return name
	}
	return ""
}
