package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dauletnazarr/donation-project/internal/domain/access"
	"github.com/Dauletnazarr/donation-project/internal/infra/tokens"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// AuthMiddleware rejects requests without a valid access token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}
		if !authenticate(c, authHeader) {
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves the caller when a token is sent and lets anonymous
// requests through. A bad token is still rejected.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if !authenticate(c, authHeader) {
				return
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, authHeader string) bool {
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token malformed"})
		return false
	}

	claims, err := tokens.Parse(strings.TrimSpace(tokenString), tokens.Access)
	if err != nil {
		if errors.Is(err, tokens.ErrNoSecret) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "JWT secret not configured"})
			return false
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return false
	}

	c.Set(userIDKey, claims.UserID)
	c.Set("username", claims.Username)
	return true
}

// CurrentIdentity returns the caller set by the auth middlewares, anonymous
// when none ran or no token was sent.
func CurrentIdentity(c *gin.Context) access.Identity {
	return access.Identity{UserID: c.GetUint(userIDKey)}
}
