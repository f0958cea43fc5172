package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// actorKey is the gin context key carrying the authenticated operator identity
const actorKey = "auth.actor"

// AdminAuthMiddleware validates a Bearer JWT and admits only callers holding
// the admin role. Unauthorized callers are rejected before any request body
// handling occurs.
func AdminAuthMiddleware(secret string) gin.HandlerFunc {
	if secret == "" {
		// Return a middleware that always returns 500 if misconfigured
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "server misconfigured: auth secret not set",
			})
		}
	}
	secretBytes := []byte(secret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secretBytes, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if role, _ := claims["role"].(string); role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}

		actor, _ := claims["sub"].(string)
		if actor == "" {
			actor = "unknown"
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// Actor returns the authenticated operator identity set by the auth gate
func Actor(c *gin.Context) string {
	if actor, ok := c.Get(actorKey); ok {
		if s, ok := actor.(string); ok {
			return s
		}
	}
	return "unknown"
}
