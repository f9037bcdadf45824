package models

import (
	"time"

	"github.com/google/uuid"
)

// Like records that a hacker liked a project. The unique index makes
// like/unlike idempotent per (hacker, project) pair.
type Like struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	HackerID  uuid.UUID `json:"hacker_id" db:"hacker_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_unique"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_unique;index"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
