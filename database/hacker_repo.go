package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sundai-club/sundai-backend/models"
)

type HackerRepo struct {
	db *gorm.DB
}

func NewHackerRepo(db *gorm.DB) *HackerRepo {
	return &HackerRepo{db}
}

// FindByID returns a hacker by ID, or nil when it does not exist.
func (r *HackerRepo) FindByID(id uuid.UUID) (*models.Hacker, error) {
	var hacker models.Hacker
	err := r.db.First(&hacker, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hacker, nil
}

// FindByDescopeID resolves the identity-provider subject to a local
// profile. The auth middleware calls this on every authenticated
// request.
func (r *HackerRepo) FindByDescopeID(descopeID string) (*models.Hacker, error) {
	var hacker models.Hacker
	err := r.db.First(&hacker, "descope_id = ?", descopeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hacker, nil
}

// Add inserts a new hacker profile.
func (r *HackerRepo) Add(hacker *models.Hacker) error {
	return r.db.Create(hacker).Error
}

// Update saves changes to an existing profile.
func (r *HackerRepo) Update(hacker *models.Hacker) error {
	return r.db.Save(hacker).Error
}

// FindSubscribed returns every hacker who receives the newsletter.
func (r *HackerRepo) FindSubscribed() ([]models.Hacker, error) {
	var hackers []models.Hacker
	err := r.db.Where("subscribed = ?", true).Find(&hackers).Error
	return hackers, err
}

// Unsubscribe flips the newsletter flag off for one hacker.
func (r *HackerRepo) Unsubscribe(id uuid.UUID) error {
	return r.db.Model(&models.Hacker{}).Where("id = ?", id).Update("subscribed", false).Error
}
