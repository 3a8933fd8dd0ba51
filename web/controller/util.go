package controller

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kruzhok/knowledge-hub/config"
	"github.com/kruzhok/knowledge-hub/web/middleware"
	"github.com/kruzhok/knowledge-hub/web/session"

	"github.com/gin-gonic/gin"
)

// defaultLandingURL is where sanitized redirects fall back to.
const defaultLandingURL = "/"

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// html renders a template with the request-scoped user, queued flash
// messages and version added to the data.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["currentUser"] = middleware.GetCurrentUser(c)
	data["flashes"] = session.TakeFlashes(c)
	data["curVer"] = config.GetVersion()
	c.HTML(http.StatusOK, name, data)
}

// safeNextURL validates a user-supplied redirect target. Only same-origin
// absolute URLs and bare relative paths pass; anything else falls back to
// the landing page, which closes the open-redirect hole in `next`.
func safeNextURL(c *gin.Context, raw string) string {
	if raw == "" {
		return defaultLandingURL
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return defaultLandingURL
	}

	if parsed.Scheme != "" || parsed.Host != "" {
		if parsed.Host != c.Request.Host {
			return defaultLandingURL
		}
		if uri := parsed.RequestURI(); strings.HasPrefix(uri, "/") {
			return uri
		}
		return defaultLandingURL
	}

	// Protocol-relative URLs ("//evil.example/x") parse with an empty
	// scheme but a non-empty host, so they are already rejected above.
	if strings.HasPrefix(parsed.Path, "/") {
		return parsed.String()
	}
	return defaultLandingURL
}

// pathId parses the numeric :id path parameter, returning false after
// aborting with 404 on garbage.
func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.AbortWithStatus(http.StatusNotFound)
		return 0, false
	}
	return id, true
}
