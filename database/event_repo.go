package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sundai-club/sundai-backend/events"
	"github.com/sundai-club/sundai-backend/models"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{db}
}

// FindAll returns all pitch events ordered by start time, soonest
// first. When `after` is non-nil, past events are excluded.
func (r *EventRepo) FindAll(after *time.Time) ([]models.PitchEvent, error) {
	var evts []models.PitchEvent
	q := r.db.Preload("MCs").Order("start_time ASC")
	if after != nil {
		q = q.Where("end_time > ?", *after)
	}
	err := q.Find(&evts).Error
	return evts, err
}

// FindByID returns an event with its MCs and full queue, or nil.
func (r *EventRepo) FindByID(id uuid.UUID) (*models.PitchEvent, error) {
	var evt models.PitchEvent
	err := r.db.
		Preload("MCs").
		Preload("Queue", func(db *gorm.DB) *gorm.DB {
			return db.Order("event_projects.position ASC")
		}).
		Preload("Queue.Project").
		Preload("Queue.Project.LaunchLead").
		First(&evt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &evt, nil
}

// Add inserts a new pitch event.
func (r *EventRepo) Add(evt *models.PitchEvent) error {
	return r.db.Create(evt).Error
}

// Update saves changes to an existing event.
func (r *EventRepo) Update(evt *models.PitchEvent) error {
	return r.db.Save(evt).Error
}

// Queue returns an event's queue entries ordered by position.
func (r *EventRepo) Queue(eventID uuid.UUID) ([]models.EventProject, error) {
	var entries []models.EventProject
	err := r.db.
		Preload("Project").
		Preload("Project.LaunchLead").
		Where("event_id = ?", eventID).
		Order("position ASC").
		Find(&entries).Error
	return entries, err
}

// AddQueueEntry appends a project to the end of an event's queue.
func (r *EventRepo) AddQueueEntry(entry *models.EventProject) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var entries []models.EventProject
		if err := tx.Where("event_id = ?", entry.EventID).Find(&entries).Error; err != nil {
			return err
		}
		entry.Position = events.NextPosition(entries)
		return tx.Create(entry).Error
	})
}

// ApplySwap exchanges the positions of the two entries named by the
// plan inside one transaction. No other row is touched.
func (r *EventRepo) ApplySwap(swap events.Swap) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.EventProject{}).
			Where("id = ?", swap.EntryA).
			Update("position", swap.PositionA).Error; err != nil {
			return err
		}
		return tx.Model(&models.EventProject{}).
			Where("id = ?", swap.EntryB).
			Update("position", swap.PositionB).Error
	})
}

// ApplyTransitions applies a status-change plan atomically, preserving
// the at-most-one-CURRENT invariant the planner guarantees.
func (r *EventRepo) ApplyTransitions(transitions []events.Transition) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, tr := range transitions {
			if err := tx.Model(&models.EventProject{}).
				Where("id = ?", tr.EntryID).
				Update("status", tr.To).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateEntryStatus sets one entry's status directly (approve, skip).
func (r *EventRepo) UpdateEntryStatus(entryID uuid.UUID, status models.QueueStatus) error {
	return r.db.Model(&models.EventProject{}).
		Where("id = ?", entryID).
		Update("status", status).Error
}
