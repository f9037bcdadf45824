package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sundai-club/sundai-backend/models"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Add records a like. The unique (hacker, project) index plus
// ON CONFLICT DO NOTHING makes liking idempotent: a second like from
// the same hacker is a no-op, not an error.
func (r *LikeRepo) Add(hackerID, projectID uuid.UUID) error {
	like := models.Like{HackerID: hackerID, ProjectID: projectID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

// Delete removes a like; deleting an absent like is a no-op.
func (r *LikeRepo) Delete(hackerID, projectID uuid.UUID) error {
	return r.db.
		Where("hacker_id = ? AND project_id = ?", hackerID, projectID).
		Delete(&models.Like{}).Error
}

// CountForProject returns how many likes a project has.
func (r *LikeRepo) CountForProject(projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}
