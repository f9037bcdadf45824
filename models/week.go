package models

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus is how a hacker showed up to a weekly session.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

// Week is one recurring hack session. Projects whose start date falls
// inside [StartDate, EndDate) belong to the week's digest.
type Week struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Number    int       `json:"number" db:"number" gorm:"not null;uniqueIndex"`
	Theme     *string   `json:"theme,omitempty" db:"theme" gorm:"type:text"`
	StartDate time.Time `json:"start_date" db:"start_date" gorm:"type:timestamp;not null"`
	EndDate   time.Time `json:"end_date" db:"end_date" gorm:"type:timestamp;not null"`

	Attendance []AttendanceRecord `json:"attendance,omitempty" gorm:"foreignKey:WeekID;references:ID;constraint:OnDelete:CASCADE"`
}

// AttendanceRecord is one hacker's check-in for one week.
type AttendanceRecord struct {
	ID       uuid.UUID        `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	HackerID uuid.UUID        `json:"hacker_id" db:"hacker_id" gorm:"type:uuid;not null;uniqueIndex:idx_attendance_unique"`
	WeekID   uuid.UUID        `json:"week_id" db:"week_id" gorm:"type:uuid;not null;uniqueIndex:idx_attendance_unique"`
	Status   AttendanceStatus `json:"status" db:"status" gorm:"type:text;not null;default:'PRESENT'"`
	CheckedInAt time.Time     `json:"checked_in_at" db:"checked_in_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Hacker *Hacker `json:"hacker,omitempty" gorm:"foreignKey:HackerID;references:ID"`
}
