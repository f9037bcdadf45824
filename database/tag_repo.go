package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sundai-club/sundai-backend/models"
)

// TagType selects between the two tag vocabularies.
type TagType string

const (
	TagTech   TagType = "tech"
	TagDomain TagType = "domain"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAllTech returns the tech tag vocabulary with per-tag project counts.
func (r *TagRepo) FindAllTech() ([]models.TechTag, error) {
	var tags []models.TechTag
	err := r.db.
		Model(&models.TechTag{}).
		Select("tech_tags.*, COUNT(project_tech_tags.project_id) AS project_count").
		Joins("LEFT JOIN project_tech_tags ON project_tech_tags.tech_tag_id = tech_tags.id").
		Group("tech_tags.id").
		Order("tech_tags.name ASC").
		Find(&tags).Error
	return tags, err
}

// FindAllDomain returns the domain tag vocabulary with per-tag project counts.
func (r *TagRepo) FindAllDomain() ([]models.DomainTag, error) {
	var tags []models.DomainTag
	err := r.db.
		Model(&models.DomainTag{}).
		Select("domain_tags.*, COUNT(project_domain_tags.project_id) AS project_count").
		Joins("LEFT JOIN project_domain_tags ON project_domain_tags.domain_tag_id = domain_tags.id").
		Group("domain_tags.id").
		Order("domain_tags.name ASC").
		Find(&tags).Error
	return tags, err
}

// TechByNameFold looks a tech tag up by name, case-insensitively, so
// "react" and "React" resolve to the same tag. Returns nil when absent.
func (r *TagRepo) TechByNameFold(name string) (*models.TechTag, error) {
	var tag models.TechTag
	err := r.db.First(&tag, "LOWER(name) = LOWER(?)", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// DomainByNameFold looks a domain tag up by name, case-insensitively.
func (r *TagRepo) DomainByNameFold(name string) (*models.DomainTag, error) {
	var tag models.DomainTag
	err := r.db.First(&tag, "LOWER(name) = LOWER(?)", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// AddTech inserts a new tech tag.
func (r *TagRepo) AddTech(tag *models.TechTag) error {
	return r.db.Create(tag).Error
}

// AddDomain inserts a new domain tag.
func (r *TagRepo) AddDomain(tag *models.DomainTag) error {
	return r.db.Create(tag).Error
}
