package service

import (
	"strings"

	"github.com/kruzhok/knowledge-hub/config"
	"github.com/kruzhok/knowledge-hub/database/model"
)

// IdentityService derives a role from the configured allow-lists.
type IdentityService struct{}

// ResolveRole maps an email and/or telegram username to a role. Precedence
// is fixed: admin emails, moderator emails, admin usernames, moderator
// usernames; the first match wins, no match means plain user.
func (s *IdentityService) ResolveRole(email string, username string) string {
	email = strings.ToLower(email)
	username = strings.ToLower(strings.TrimPrefix(username, "@"))

	if email != "" && contains(config.GetAdminEmails(), email) {
		return model.RoleAdmin
	}
	if email != "" && contains(config.GetModeratorEmails(), email) {
		return model.RoleModerator
	}
	if username != "" && contains(config.GetAdminTelegrams(), username) {
		return model.RoleAdmin
	}
	if username != "" && contains(config.GetModeratorTelegrams(), username) {
		return model.RoleModerator
	}
	return model.RoleUser
}

func contains(list []string, value string) bool {
	for _, entry := range list {
		if entry == value {
			return true
		}
	}
	return false
}
