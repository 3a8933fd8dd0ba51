package service

import (
	"testing"

	"github.com/kruzhok/knowledge-hub/database"
	"github.com/kruzhok/knowledge-hub/database/model"
	"github.com/kruzhok/knowledge-hub/util/crypto"

	"github.com/stretchr/testify/assert"
)

func TestUpsertExternalCreatesAndUpdates(t *testing.T) {
	setup(t)
	t.Setenv("KHUB_MODERATOR_EMAILS", "a@b.com")

	service := UserService{}

	// First-time login creates a row with the resolved role.
	user, err := service.UpsertExternal(model.ProviderGoogle, "g-123", "a@b.com", "Анна")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleModerator, user.Role)
	assert.Equal(t, "a@b.com", user.Email)

	// Logging in again with an unchanged profile must not create a second row.
	again, err := service.UpsertExternal(model.ProviderGoogle, "g-123", "a@b.com", "Анна")
	assert.NoError(t, err)
	assert.Equal(t, user.Id, again.Id)

	var count int64
	database.GetDB().Model(model.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpsertExternalRefreshesRole(t *testing.T) {
	setup(t)

	service := UserService{}

	user, err := service.UpsertExternal(model.ProviderGoogle, "g-1", "x@y.com", "X")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)

	// The allow-list change takes effect on the next login.
	t.Setenv("KHUB_ADMIN_EMAILS", "x@y.com")
	user, err = service.UpsertExternal(model.ProviderGoogle, "g-1", "x@y.com", "X")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestUpsertExternalMergesByEmail(t *testing.T) {
	setup(t)

	registered, err := (&UserService{}).RegisterLocal("vasya", "Вася", "secret12", "secret12")
	assert.NoError(t, err)

	db := database.GetDB()
	registered.Email = "vasya@example.com"
	assert.NoError(t, db.Save(registered).Error)

	// An OAuth login with the same email takes over the local account
	// instead of creating a duplicate.
	service := UserService{}
	user, err := service.UpsertExternal(model.ProviderYandex, "ya-77", "vasya@example.com", "Василий")
	assert.NoError(t, err)
	assert.Equal(t, registered.Id, user.Id)
	assert.Equal(t, model.ProviderYandex, user.Provider)
	assert.Equal(t, "ya-77", user.ExternalId)

	var count int64
	db.Model(model.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCheckLocalUser(t *testing.T) {
	setup(t)
	t.Setenv("KHUB_ADMIN_USERNAME", "root")
	t.Setenv("KHUB_ADMIN_PASSWORD", "bootstrap-pass")

	service := UserService{}

	// The bootstrap pair works on an empty database and yields an admin.
	user := service.CheckLocalUser("root", "bootstrap-pass")
	assert.NotNil(t, user)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.True(t, crypto.CheckPasswordHash(user.PasswordHash, "bootstrap-pass"))

	// The stored hash now authenticates the same pair without re-promotion.
	again := service.CheckLocalUser("root", "bootstrap-pass")
	assert.NotNil(t, again)
	assert.Equal(t, user.Id, again.Id)

	assert.Nil(t, service.CheckLocalUser("root", "wrong"))
	assert.Nil(t, service.CheckLocalUser("ghost", "bootstrap-pass"))
}

func TestCheckLocalUserPromotesExisting(t *testing.T) {
	setup(t)
	t.Setenv("KHUB_ADMIN_USERNAME", "vasya")
	t.Setenv("KHUB_ADMIN_PASSWORD", "bootstrap-pass")

	service := UserService{}
	registered, err := service.RegisterLocal("vasya", "Вася", "secret12", "secret12")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, registered.Role)

	user := service.CheckLocalUser("vasya", "bootstrap-pass")
	assert.NotNil(t, user)
	assert.Equal(t, registered.Id, user.Id)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestRegisterLocalValidation(t *testing.T) {
	setup(t)

	service := UserService{}

	_, err := service.RegisterLocal("", "", "pass", "pass")
	assert.Equal(t, ErrEmptyCredentials, err)

	_, err = service.RegisterLocal("petya", "", "pass", "other")
	assert.Equal(t, ErrPasswordMismatch, err)

	user, err := service.RegisterLocal("petya", "", "pass", "pass")
	assert.NoError(t, err)
	assert.Equal(t, "petya", user.Name)
	assert.Equal(t, model.ProviderLocal, user.Provider)

	_, err = service.RegisterLocal("petya", "Пётр", "pass", "pass")
	assert.Equal(t, ErrUserExists, err)
}

func TestGetUserMiss(t *testing.T) {
	setup(t)

	service := UserService{}
	_, err := service.GetUser(42)
	assert.True(t, database.IsNotFound(err))
}
