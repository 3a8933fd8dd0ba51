// Package controller provides the HTTP handlers of the knowledge hub:
// article feed and moderation, contact reviews, local and OAuth login.
package controller

import (
	"net/http"
	"net/url"

	"github.com/kruzhok/knowledge-hub/web/middleware"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authentication gate shared by all controllers.
type BaseController struct{}

// checkLogin redirects anonymous requests to the login page, preserving the
// originally requested URL as the post-login target.
func (a *BaseController) checkLogin(c *gin.Context) {
	if middleware.GetCurrentUser(c) == nil {
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.RequestURI))
		c.Abort()
	} else {
		c.Next()
	}
}
