package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sundai-club/sundai-backend/models"
)

type NewsletterRepo struct {
	db *gorm.DB
}

func NewNewsletterRepo(db *gorm.DB) *NewsletterRepo {
	return &NewsletterRepo{db}
}

// FindAll returns all newsletters, newest first.
func (r *NewsletterRepo) FindAll() ([]models.Newsletter, error) {
	var newsletters []models.Newsletter
	err := r.db.Preload("Week").Order("created_at DESC").Find(&newsletters).Error
	return newsletters, err
}

// FindByID returns a newsletter by ID, or nil when it does not exist.
func (r *NewsletterRepo) FindByID(id uuid.UUID) (*models.Newsletter, error) {
	var newsletter models.Newsletter
	err := r.db.Preload("Week").First(&newsletter, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &newsletter, nil
}

// Add inserts a draft newsletter.
func (r *NewsletterRepo) Add(newsletter *models.Newsletter) error {
	return r.db.Create(newsletter).Error
}

// MarkSent stamps the newsletter as delivered.
func (r *NewsletterRepo) MarkSent(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.Newsletter{}).
		Where("id = ?", id).
		Update("sent_at", at).Error
}
