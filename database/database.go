package database

import (
	"gorm.io/gorm"

	"github.com/sundai-club/sundai-backend/models"
)

type Database struct {
	projectRepo    *ProjectRepo
	hackerRepo     *HackerRepo
	likeRepo       *LikeRepo
	tagRepo        *TagRepo
	weekRepo       *WeekRepo
	eventRepo      *EventRepo
	newsletterRepo *NewsletterRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:    NewProjectRepo(db),
		hackerRepo:     NewHackerRepo(db),
		likeRepo:       NewLikeRepo(db),
		tagRepo:        NewTagRepo(db),
		weekRepo:       NewWeekRepo(db),
		eventRepo:      NewEventRepo(db),
		newsletterRepo: NewNewsletterRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) HackerRepo() *HackerRepo {
	return d.hackerRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) WeekRepo() *WeekRepo {
	return d.weekRepo
}

func (d Database) EventRepo() *EventRepo {
	return d.eventRepo
}

func (d Database) NewsletterRepo() *NewsletterRepo {
	return d.newsletterRepo
}

// AutoMigrate creates or updates the schema for every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Hacker{},
		&models.Project{},
		&models.Participant{},
		&models.Like{},
		&models.TechTag{},
		&models.DomainTag{},
		&models.Week{},
		&models.AttendanceRecord{},
		&models.PitchEvent{},
		&models.EventProject{},
		&models.Newsletter{},
	)
}
