package models

import (
	"time"

	"github.com/google/uuid"
)

// Newsletter is a generated weekly digest. Drafts are kept until an
// admin sends them; SentAt stays nil for drafts.
type Newsletter struct {
	ID      uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	WeekID  uuid.UUID `json:"week_id" db:"week_id" gorm:"type:uuid;not null;index"`
	Subject string    `json:"subject" db:"subject" gorm:"type:text;not null"`
	HTML    string    `json:"html" db:"html" gorm:"type:text;not null"`

	SentAt    *time.Time `json:"sent_at,omitempty" db:"sent_at" gorm:"type:timestamp"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Week *Week `json:"week,omitempty" gorm:"foreignKey:WeekID;references:ID"`
}
