package middleware

import (
	"github.com/kruzhok/knowledge-hub/web/service"
	"github.com/kruzhok/knowledge-hub/web/session"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// CurrentUser loads the User row for the session's user id before any
// handler runs. A stale or forged id that no longer resolves to a row
// leaves the request anonymous.
func CurrentUser(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userId := session.GetUserId(c); userId > 0 {
			if user, err := userService.GetUser(userId); err == nil {
				c.Set(currentUserKey, user)
			}
		}
		c.Next()
	}
}
