package repositories

import (
	"github.com/retodoku/backend/internal/models"
	"gorm.io/gorm"
)

// TemplateRepository defines the interface for postcard template operations
type TemplateRepository interface {
	GetActiveTemplates() ([]models.PostcardTemplate, error)
	GetTemplateByID(id uint) (*models.PostcardTemplate, error)
	GetTemplateByTemplateID(templateID string) (*models.PostcardTemplate, error)
}

// PostgresTemplateRepository implements TemplateRepository for PostgreSQL
type PostgresTemplateRepository struct {
	db *gorm.DB
}

// NewPostgresTemplateRepository creates a new PostgresTemplateRepository
func NewPostgresTemplateRepository(db *gorm.DB) *PostgresTemplateRepository {
	return &PostgresTemplateRepository{db: db}
}

// GetActiveTemplates retrieves templates available for new postcards,
// newest first. Inactive templates are never exposed.
func (r *PostgresTemplateRepository) GetActiveTemplates() ([]models.PostcardTemplate, error) {
	var templates []models.PostcardTemplate
	if err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// GetTemplateByID retrieves a template by its numeric id
func (r *PostgresTemplateRepository) GetTemplateByID(id uint) (*models.PostcardTemplate, error) {
	var template models.PostcardTemplate
	if err := r.db.First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// GetTemplateByTemplateID retrieves a template by its external string identifier
func (r *PostgresTemplateRepository) GetTemplateByTemplateID(templateID string) (*models.PostcardTemplate, error) {
	var template models.PostcardTemplate
	if err := r.db.Where("template_id = ?", templateID).First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}
