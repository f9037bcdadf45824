package models

import (
	"time"

	"github.com/google/uuid"
)

// QueueStatus is the lifecycle state of a project inside a pitch
// event's presentation queue.
type QueueStatus string

const (
	QueueQueued   QueueStatus = "QUEUED"
	QueueApproved QueueStatus = "APPROVED"
	QueueCurrent  QueueStatus = "CURRENT"
	QueueDone     QueueStatus = "DONE"
	QueueSkipped  QueueStatus = "SKIPPED"
)

// PitchEvent is a scheduled live session where projects are presented
// in queue order.
type PitchEvent struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	StartTime   time.Time `json:"start_time" db:"start_time" gorm:"type:timestamp;not null;index"`
	EndTime     time.Time `json:"end_time" db:"end_time" gorm:"type:timestamp;not null"`
	MeetingLink *string   `json:"meeting_link,omitempty" db:"meeting_link" gorm:"type:text"`

	// When true the audience may reorder queued entries; otherwise only
	// MCs and admins can.
	AudienceReorder bool `json:"audience_reorder" db:"audience_reorder" gorm:"not null;default:false"`

	MCs   []Hacker       `json:"mcs,omitempty" gorm:"many2many:pitch_event_mcs;constraint:OnDelete:CASCADE"`
	Queue []EventProject `json:"queue,omitempty" gorm:"foreignKey:EventID;references:ID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// EventProject is one queue entry: a project at an integer position.
// Position defines presentation order; at most one entry per event is
// CURRENT at any time.
type EventProject struct {
	ID        uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	EventID   uuid.UUID   `json:"event_id" db:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_event_project_unique;index"`
	ProjectID uuid.UUID   `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_event_project_unique"`
	Position  int         `json:"position" db:"position" gorm:"not null"`
	Status    QueueStatus `json:"status" db:"status" gorm:"type:text;not null;default:'QUEUED'"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
}
