package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// HackerRole controls access to admin-only mutations.
type HackerRole string

const (
	RoleHacker HackerRole = "HACKER"
	RoleAdmin  HackerRole = "ADMIN"
)

// Hacker is a club member profile. Identity (login, sessions) lives in
// the external identity provider; DescopeID ties the two together.
type Hacker struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	DescopeID string     `json:"-" db:"descope_id" gorm:"type:text;not null;uniqueIndex"`
	Name      string     `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string     `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Role      HackerRole `json:"role" db:"role" gorm:"type:text;not null;default:'HACKER'"`
	Bio       *string    `json:"bio,omitempty" db:"bio" gorm:"type:text"`

	// Object-storage key of the avatar image.
	AvatarKey *string `json:"avatar_key,omitempty" db:"avatar_key" gorm:"type:text"`

	// External profile links (github, linkedin, ...), free-form.
	Links datatypes.JSON `json:"links,omitempty" db:"links" gorm:"type:jsonb"`

	Subscribed bool      `json:"subscribed" db:"subscribed" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// IsAdmin reports whether the hacker may perform admin-only mutations.
func (h Hacker) IsAdmin() bool {
	return h.Role == RoleAdmin
}
