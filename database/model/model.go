// Package model defines the persistent entities of the knowledge hub:
// users, articles, comments and contact reviews.
package model

import "time"

// Roles ordered by privilege. Role is re-resolved from the allow-lists on
// every external login and is never sticky.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Authentication providers. (provider, external_id) is the lookup key for
// returning users; for local accounts external_id holds the username.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
	ProviderYandex = "yandex"
)

// Moderation states of a content item. The transition is one-directional:
// pending items can be published, published items never go back.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
)

type User struct {
	Id               int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Email            string `json:"email" gorm:"size:255"`
	Name             string `json:"name" gorm:"size:200"`
	Role             string `json:"role" gorm:"size:20;default:user"`
	Provider         string `json:"provider" gorm:"size:50;index:idx_users_provider_external"`
	ExternalId       string `json:"externalId" gorm:"size:255;index:idx_users_provider_external"`
	TelegramUsername string `json:"telegramUsername" gorm:"size:200"`
	PasswordHash     string `json:"-" gorm:"size:255"`
}

// CanModerate reports whether the user may see pending content and perform
// publish transitions.
func (u *User) CanModerate() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

type Article struct {
	Id      int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title   string `json:"title" form:"title" gorm:"size:200;not null"`
	Content string `json:"content" form:"content" gorm:"not null"`
	Status  string `json:"status" gorm:"size:20;default:pending"`
	// Denormalized on purpose: keeps the author name as it was at the time
	// of posting, even if the user later renames.
	AuthorName string `json:"authorName" gorm:"size:200"`
}

type Comment struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ArticleId  int       `json:"articleId" gorm:"index;not null"`
	AuthorName string    `json:"authorName" gorm:"size:200"`
	Content    string    `json:"content" form:"content" gorm:"not null"`
	Status     string    `json:"status" gorm:"size:20;default:pending"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Review is attached to a contact by slug only. Contacts are static
// configuration, not rows, so there is no referential integrity here.
type Review struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ContactSlug string    `json:"contactSlug" gorm:"size:100;index;not null"`
	AuthorName  string    `json:"authorName" gorm:"size:200"`
	Content     string    `json:"content" form:"content" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:20;default:pending"`
	CreatedAt   time.Time `json:"createdAt"`
}
