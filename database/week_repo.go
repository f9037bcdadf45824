package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sundai-club/sundai-backend/models"
)

type WeekRepo struct {
	db *gorm.DB
}

func NewWeekRepo(db *gorm.DB) *WeekRepo {
	return &WeekRepo{db}
}

// FindAll returns all weeks, newest first.
func (r *WeekRepo) FindAll() ([]models.Week, error) {
	var weeks []models.Week
	err := r.db.Order("number DESC").Find(&weeks).Error
	return weeks, err
}

// FindByID returns a week by ID, or nil when it does not exist.
func (r *WeekRepo) FindByID(id uuid.UUID) (*models.Week, error) {
	var week models.Week
	err := r.db.First(&week, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &week, nil
}

// Current returns the week containing `now`, or nil when no week is
// running.
func (r *WeekRepo) Current(now time.Time) (*models.Week, error) {
	var week models.Week
	err := r.db.First(&week, "start_date <= ? AND end_date > ?", now, now).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &week, nil
}

// Add inserts a new week.
func (r *WeekRepo) Add(week *models.Week) error {
	return r.db.Create(week).Error
}

// UpsertAttendance records a check-in, overwriting the status if the
// hacker already checked in for the week (e.g. LATE corrected to
// PRESENT by an admin).
func (r *WeekRepo) UpsertAttendance(record *models.AttendanceRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hacker_id"}, {Name: "week_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "checked_in_at"}),
	}).Create(record).Error
}

// AttendanceForWeek lists all check-ins for a week with profiles.
func (r *WeekRepo) AttendanceForWeek(weekID uuid.UUID) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.Preload("Hacker").Where("week_id = ?", weekID).Find(&records).Error
	return records, err
}
