package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/kpaforms/domain"
)

// CurrentUserKey is the gin context key holding the authenticated *domain.User
const CurrentUserKey = "current_user"

// AuthMiddleware resolves the bearer token into the current user. Requests
// without a usable token are rejected with 401 before any handler runs.
func AuthMiddleware(resolver domain.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "Authorization header required")
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
			abortUnauthenticated(c, "Invalid authorization header format")
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), strings.TrimSpace(tokenParts[1]))
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthenticated) {
				log.Printf("IDENTITY_RESOLVE_FAILED: path=%s error=%v", c.Request.URL.Path, err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal_error"})
				return
			}
			abortUnauthenticated(c, "Could not validate credentials")
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

func abortUnauthenticated(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "code": "unauthenticated"})
}
