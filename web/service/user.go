package service

import (
	"strings"

	"github.com/kruzhok/knowledge-hub/config"
	"github.com/kruzhok/knowledge-hub/database"
	"github.com/kruzhok/knowledge-hub/database/model"
	"github.com/kruzhok/knowledge-hub/logger"
	"github.com/kruzhok/knowledge-hub/util/common"
	"github.com/kruzhok/knowledge-hub/util/crypto"
)

var (
	ErrEmptyCredentials = common.NewError("username and password are required")
	ErrPasswordMismatch = common.NewError("passwords do not match")
	ErrUserExists       = common.NewError("user already exists")
)

type UserService struct {
	identityService IdentityService
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckLocalUser verifies a username/password pair against local accounts.
// When the pair matches the configured admin bootstrap credentials, the
// account is created or promoted to admin with a fresh password hash. The
// bootstrap path works on an empty database, so the panel can never be
// locked out.
func (s *UserService) CheckLocalUser(username string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("provider = ? AND external_id = ?", model.ProviderLocal, username).
		First(user).
		Error
	if err != nil && !database.IsNotFound(err) {
		logger.Warning("check local user err:", err)
		return nil
	}
	found := err == nil

	if found && user.PasswordHash != "" && crypto.CheckPasswordHash(user.PasswordHash, password) {
		return user
	}

	if username == config.GetAdminUsername() && password == config.GetAdminPassword() {
		hash, err := crypto.HashPasswordAsBcrypt(password)
		if err != nil {
			logger.Warning("hash bootstrap password err:", err)
			return nil
		}
		if !found {
			user = &model.User{
				Name:         username,
				Provider:     model.ProviderLocal,
				ExternalId:   username,
				Role:         model.RoleAdmin,
				PasswordHash: hash,
			}
			if err := db.Create(user).Error; err != nil {
				logger.Warning("create bootstrap admin err:", err)
				return nil
			}
		} else {
			user.Role = model.RoleAdmin
			user.PasswordHash = hash
			if err := db.Save(user).Error; err != nil {
				logger.Warning("promote bootstrap admin err:", err)
				return nil
			}
		}
		return user
	}

	return nil
}

// RegisterLocal creates a new local account after validating the form.
func (s *UserService) RegisterLocal(username, name, password, confirm string) (*model.User, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if name == "" {
		name = username
	}

	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	db := database.GetDB()

	var count int64
	err := db.Model(model.User{}).
		Where("provider = ? AND external_id = ?", model.ProviderLocal, username).
		Count(&count).
		Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Provider:     model.ProviderLocal,
		ExternalId:   username,
		Role:         model.RoleUser,
		PasswordHash: hash,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpsertExternal reconciles an OAuth profile with the user table. Lookup
// order: (provider, external id), then email, then create. Email, name,
// provider and external id are overwritten on every login, and the role is
// re-resolved from the allow-lists so configuration changes take effect on
// the next login.
func (s *UserService) UpsertExternal(provider, externalId, email, name string) (*model.User, error) {
	db := database.GetDB()
	email = strings.ToLower(email)

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("provider = ? AND external_id = ?", provider, externalId).
		First(user).
		Error
	if database.IsNotFound(err) && email != "" {
		err = db.Model(model.User{}).
			Where("email = ?", email).
			First(user).
			Error
	}
	if err != nil && !database.IsNotFound(err) {
		return nil, err
	}

	user.Email = email
	user.Name = name
	user.Provider = provider
	user.ExternalId = externalId
	user.Role = s.identityService.ResolveRole(email, user.TelegramUsername)

	if database.IsNotFound(err) {
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		logger.Infof("created user %d via %s", user.Id, provider)
		return user, nil
	}

	if err := db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
