package middleware

import (
	"net/http"
	"strings"

	"eventmart/internal/guard"
	"eventmart/internal/identity"

	"github.com/gin-gonic/gin"
)

func extractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// Auth resolves the request's principal from its token, if any. Missing
// or invalid tokens just leave the request anonymous; route guards decide
// what anonymous is allowed to reach.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := identity.ParseJWT(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		c.Set(guard.CtxIdentityKey, &identity.Identity{
			ID:          claims.UserID,
			Email:       claims.Email,
			Role:        identity.Role(claims.Role),
			DisplayName: claims.DisplayName,
		})

		c.Next()
	}
}
