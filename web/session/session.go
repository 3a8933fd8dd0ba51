// Package session wraps gin-contrib/sessions with typed accessors for the
// authenticated identity, the transient OAuth state and flash messages.
//
// The session stores only the user id and an advisory role copy; the User
// row is reloaded from the database on every request, so a forged or stale
// id degrades to anonymous instead of erroring.
package session

import (
	"github.com/kruzhok/knowledge-hub/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	keyUserId     = "user_id"
	keyRole       = "role"
	keyLoggedIn   = "logged_in"
	keyOauthState = "oauth_state"
	keyNextURL    = "next_url"
)

// SetLoginUser records the authenticated identity in the session.
func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(keyUserId, user.Id)
	s.Set(keyRole, user.Role)
	s.Set(keyLoggedIn, true)
	return s.Save()
}

// GetUserId returns the stored user id, or 0 for anonymous sessions.
func GetUserId(c *gin.Context) int {
	s := sessions.Default(c)
	if id, ok := s.Get(keyUserId).(int); ok {
		return id
	}
	return 0
}

// SetOauthState stores the one-time state token and the sanitized post-login
// redirect target for an in-flight OAuth attempt.
func SetOauthState(c *gin.Context, state string, nextURL string) error {
	s := sessions.Default(c)
	s.Set(keyOauthState, state)
	s.Set(keyNextURL, nextURL)
	return s.Save()
}

// GetOauthState returns the stored state token, or "" when none is pending.
func GetOauthState(c *gin.Context) string {
	s := sessions.Default(c)
	if state, ok := s.Get(keyOauthState).(string); ok {
		return state
	}
	return ""
}

// TakeNextURL returns the stored redirect target and clears the OAuth state,
// consuming the one-time values.
func TakeNextURL(c *gin.Context) string {
	s := sessions.Default(c)
	nextURL, _ := s.Get(keyNextURL).(string)
	s.Delete(keyOauthState)
	s.Delete(keyNextURL)
	_ = s.Save()
	return nextURL
}

// ClearSession drops the identity and any in-flight OAuth state.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}

// Flash queues a message to show on the next rendered page.
func Flash(c *gin.Context, msg string) {
	s := sessions.Default(c)
	s.AddFlash(msg)
	_ = s.Save()
}

// TakeFlashes returns and clears the queued flash messages.
func TakeFlashes(c *gin.Context) []string {
	s := sessions.Default(c)
	flashes := s.Flashes()
	if len(flashes) > 0 {
		_ = s.Save()
	}
	msgs := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
