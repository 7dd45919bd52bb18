package middleware

import (
	"net/http"

	userRepo "meetblock/database/repository/user"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware resolves the calling user from the X-User-ID header and
// stores the id in the request context. Authentication itself is handled by
// the upstream account gateway; by the time a request reaches this service
// the header is trusted, and this middleware only verifies the id resolves
// to a real user.
func IdentityMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing X-User-ID header",
			})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to resolve user",
			})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unknown user",
			})
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}

// CallerID returns the resolved calling user's id.
func CallerID(c *gin.Context) string {
	return c.GetString("userID")
}
