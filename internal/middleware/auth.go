package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ryotashiba/project-management-api/internal/auth"
	"github.com/ryotashiba/project-management-api/internal/constants"
	apierrors "github.com/ryotashiba/project-management-api/internal/errors"
)

// RequireAuth verifies the Authorization bearer token and stores the
// authenticated user id in the request context. Every protected route sits
// behind this middleware; unauthenticated requests stop here.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		userID, err := tokens.Parse(token)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}
