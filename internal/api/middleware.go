package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// ctxOwnerID is the context key under which the authenticated user's
// identifier is stored.
const ctxOwnerID = "ownerID"

// Authenticator validates bearer tokens and resolves the owning user.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an authenticator for HS256 tokens signed with
// secret.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Middleware rejects requests without a valid owner identity before any
// handler runs. No completion provider or store call happens for an
// unauthenticated request.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		owner, err := a.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ctxOwnerID, owner)
		c.Next()
	}
}

// VerifyToken parses and validates a token string and returns the user
// identifier from its subject claim.
func (a *Authenticator) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return subject, nil
}

// ownerID returns the authenticated user id set by the middleware.
func ownerID(c *gin.Context) string {
	return c.GetString(ctxOwnerID)
}
