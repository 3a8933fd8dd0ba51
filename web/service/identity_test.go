package service

import (
	"testing"

	"github.com/kruzhok/knowledge-hub/database/model"

	"github.com/stretchr/testify/assert"
)

func TestResolveRolePrecedence(t *testing.T) {
	t.Setenv("KHUB_ADMIN_EMAILS", "boss@example.com")
	t.Setenv("KHUB_MODERATOR_EMAILS", "boss@example.com, mod@example.com")
	t.Setenv("KHUB_ADMIN_TELEGRAMS", "rootdude")
	t.Setenv("KHUB_MODERATOR_TELEGRAMS", "rootdude, helper")

	service := IdentityService{}

	// Admin-email list wins over the moderator-email list.
	assert.Equal(t, model.RoleAdmin, service.ResolveRole("boss@example.com", ""))
	assert.Equal(t, model.RoleModerator, service.ResolveRole("mod@example.com", ""))

	// Email lists are checked before username lists.
	assert.Equal(t, model.RoleModerator, service.ResolveRole("mod@example.com", "rootdude"))
	assert.Equal(t, model.RoleAdmin, service.ResolveRole("", "rootdude"))
	assert.Equal(t, model.RoleModerator, service.ResolveRole("", "helper"))

	assert.Equal(t, model.RoleUser, service.ResolveRole("nobody@example.com", "stranger"))
	assert.Equal(t, model.RoleUser, service.ResolveRole("", ""))
}

func TestResolveRoleNormalization(t *testing.T) {
	t.Setenv("KHUB_ADMIN_EMAILS", "boss@example.com")
	t.Setenv("KHUB_MODERATOR_TELEGRAMS", "helper")

	service := IdentityService{}

	assert.Equal(t, model.RoleAdmin, service.ResolveRole("BOSS@Example.COM", ""))
	assert.Equal(t, model.RoleModerator, service.ResolveRole("", "@Helper"))
}
