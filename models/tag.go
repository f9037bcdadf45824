package models

import "github.com/google/uuid"

// TechTag labels a project with a technology ("React", "Postgres").
// Names are unique per tag type, compared case-insensitively at the
// repo layer before insert.
type TechTag struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`

	// Derived at query time, never stored.
	ProjectCount int `json:"project_count,omitempty" gorm:"-"`
}

// DomainTag labels a project with an application domain ("Health",
// "Education").
type DomainTag struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`

	ProjectCount int `json:"project_count,omitempty" gorm:"-"`
}
