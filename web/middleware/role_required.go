package middleware

import (
	"net/http"

	"github.com/kruzhok/knowledge-hub/database/model"

	"github.com/gin-gonic/gin"
)

// RoleRequired rejects the request with 403 unless the current user holds
// one of the given roles. Missing identity is a hard authorization failure
// here, not a redirect to login.
func RoleRequired(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil || !allowed[user.Role] {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// GetCurrentUser returns the request-scoped user loaded by CurrentUser,
// or nil for anonymous requests.
func GetCurrentUser(c *gin.Context) *model.User {
	if value, exists := c.Get(currentUserKey); exists {
		if user, ok := value.(*model.User); ok {
			return user
		}
	}
	return nil
}
