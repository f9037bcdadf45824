package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProjectStatus is the review state of a project.
type ProjectStatus string

const (
	ProjectPending  ProjectStatus = "PENDING"
	ProjectApproved ProjectStatus = "APPROVED"
	ProjectRejected ProjectStatus = "REJECTED"
)

// Project is a hackathon project built by club members.
type Project struct {
	ID          uuid.UUID     `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string        `json:"title" db:"title" gorm:"type:text;not null"`
	Preview     string        `json:"preview" db:"preview" gorm:"type:text;not null"`
	Description string        `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Status      ProjectStatus `json:"status" db:"status" gorm:"type:text;not null;default:'PENDING';index"`
	IsBroken    bool          `json:"is_broken" db:"is_broken" gorm:"not null;default:false"`
	IsStarred   bool          `json:"is_starred" db:"is_starred" gorm:"not null;default:false"`

	// Object-storage key of the thumbnail, not a full URL. The API hands
	// out presigned URLs derived from this key.
	ThumbnailKey *string `json:"thumbnail_key,omitempty" db:"thumbnail_key" gorm:"type:text"`

	GithubURL *string        `json:"github_url,omitempty" db:"github_url" gorm:"type:text"`
	DemoURL   *string        `json:"demo_url,omitempty" db:"demo_url" gorm:"type:text"`
	BlogURL   *string        `json:"blog_url,omitempty" db:"blog_url" gorm:"type:text"`
	Links     datatypes.JSON `json:"links,omitempty" db:"links" gorm:"type:jsonb"`

	LaunchLeadID uuid.UUID `json:"launch_lead_id" db:"launch_lead_id" gorm:"type:uuid;not null;index"`
	LaunchLead   *Hacker   `json:"launch_lead,omitempty" gorm:"foreignKey:LaunchLeadID;references:ID"`

	StartDate *time.Time `json:"start_date,omitempty" db:"start_date" gorm:"type:timestamp;index"`
	EndDate   *time.Time `json:"end_date,omitempty" db:"end_date" gorm:"type:timestamp"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Participants []Participant `json:"participants,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Likes        []Like        `json:"likes,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	TechTags     []TechTag     `json:"tech_tags,omitempty" gorm:"many2many:project_tech_tags;constraint:OnDelete:CASCADE"`
	DomainTags   []DomainTag   `json:"domain_tags,omitempty" gorm:"many2many:project_domain_tags;constraint:OnDelete:CASCADE"`
}

// Participant links a hacker to a project in a named role. The launch
// lead is tracked separately on the project itself.
type Participant struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_participant_unique"`
	HackerID  uuid.UUID `json:"hacker_id" db:"hacker_id" gorm:"type:uuid;not null;uniqueIndex:idx_participant_unique"`
	Role      string    `json:"role" db:"role" gorm:"type:text;not null;default:'hacker'"`

	Hacker *Hacker `json:"hacker,omitempty" gorm:"foreignKey:HackerID;references:ID"`
}
