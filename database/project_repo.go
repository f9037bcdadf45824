package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sundai-club/sundai-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

func (r *ProjectRepo) preloaded() *gorm.DB {
	return r.db.
		Preload("LaunchLead").
		Preload("Participants.Hacker").
		Preload("Likes").
		Preload("TechTags").
		Preload("DomainTags")
}

// FindAll returns all projects, optionally narrowed to one status.
// The discovery pipeline does its own filtering; this only narrows the
// working set the way the listing endpoint does.
func (r *ProjectRepo) FindAll(status models.ProjectStatus) ([]models.Project, error) {
	var projects []models.Project
	q := r.preloaded()
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when it does not exist.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.preloaded().First(&project, "projects.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// TopLiked returns approved projects ranked by likes received after
// `since` (all likes when since is nil). This backs the trending
// windows; one query per window.
func (r *ProjectRepo) TopLiked(since *time.Time, limit int) ([]models.Project, error) {
	var projects []models.Project

	join := "LEFT JOIN likes ON likes.project_id = projects.id"
	q := r.db.Model(&models.Project{})
	if since != nil {
		q = q.Joins(join+" AND likes.created_at >= ?", *since)
	} else {
		q = q.Joins(join)
	}

	err := q.
		Where("projects.status = ?", models.ProjectApproved).
		Group("projects.id").
		Order("COUNT(likes.id) DESC").
		Limit(limit).
		Preload("LaunchLead").
		Preload("Likes").
		Preload("TechTags").
		Preload("DomainTags").
		Find(&projects).Error
	return projects, err
}

// StartedBetween returns projects whose start date falls inside the
// half-open interval [from, to); the newsletter digest uses this to
// gather a week's projects.
func (r *ProjectRepo) StartedBetween(from, to time.Time) ([]models.Project, error) {
	var projects []models.Project
	err := r.preloaded().
		Where("start_date >= ? AND start_date < ?", from, to).
		Find(&projects).Error
	return projects, err
}

// ReplaceTechTags rewrites a project's tech tag set.
func (r *ProjectRepo) ReplaceTechTags(project *models.Project, tags []models.TechTag) error {
	return r.db.Model(project).Association("TechTags").Replace(tags)
}

// ReplaceDomainTags rewrites a project's domain tag set.
func (r *ProjectRepo) ReplaceDomainTags(project *models.Project, tags []models.DomainTag) error {
	return r.db.Model(project).Association("DomainTags").Replace(tags)
}
