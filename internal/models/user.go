package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Platforms a user handle can belong to. Handle uniqueness is scoped per
// platform, not globally.
const (
	PlatformTwitter  = "twitter"
	PlatformTelegram = "telegram"
	PlatformEmail    = "email"
	PlatformOther    = "other"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Handle    string    `json:"handle" gorm:"uniqueIndex:idx_users_platform_handle"`
	Platform  string    `json:"platform" gorm:"uniqueIndex:idx_users_platform_handle"`
	Slug      string    `json:"slug" gorm:"uniqueIndex"`                 // platform-handle, used in collection URLs
	TwitterID *string   `json:"twitter_id,omitempty" gorm:"uniqueIndex"` // external identity id, set for OAuth-created users
	AvatarURL string    `json:"avatar_url,omitempty" gorm:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// AfterFind fills the derived avatar URL on every read.
func (u *User) AfterFind(tx *gorm.DB) error {
	u.AvatarURL = AvatarURL(u.Platform, u.Handle)
	return nil
}

// GenerateSlug derives the unique user slug from a platform and handle.
func GenerateSlug(platform, handle string) string {
	return platform + "-" + handle
}

// AvatarURL builds an unavatar.io URL for the given platform and handle.
func AvatarURL(platform, handle string) string {
	switch platform {
	case PlatformTwitter:
		return "https://unavatar.io/x/" + handle
	case PlatformTelegram:
		return "https://unavatar.io/telegram/" + handle
	default:
		return "https://unavatar.io/" + handle
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Handle   string `json:"handle" validate:"required,min=1,max=100"`
	Platform string `json:"platform" validate:"required,oneof=twitter telegram email other"`
}

// SessionClaims are custom claims extending standard jwt.RegisteredClaims
type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Slug   string `json:"slug"`
	jwt.RegisteredClaims
}
