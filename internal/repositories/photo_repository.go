package repositories

import (
	"errors"

	"github.com/retodoku/backend/internal/models"
	"gorm.io/gorm"
)

// PhotoRepository defines the interface for meetup photo operations
type PhotoRepository interface {
	GetPhotosByPostcardID(postcardID uint) ([]models.MeetupPhoto, error)
	CreatePhoto(postcardID uint, photoURL string, caption *string) (*models.MeetupPhoto, error)
}

// PostgresPhotoRepository implements PhotoRepository for PostgreSQL
type PostgresPhotoRepository struct {
	db *gorm.DB
}

// NewPostgresPhotoRepository creates a new PostgresPhotoRepository
func NewPostgresPhotoRepository(db *gorm.DB) *PostgresPhotoRepository {
	return &PostgresPhotoRepository{db: db}
}

// GetPhotosByPostcardID retrieves all photos for a postcard, newest upload first
func (r *PostgresPhotoRepository) GetPhotosByPostcardID(postcardID uint) ([]models.MeetupPhoto, error) {
	var photos []models.MeetupPhoto
	if err := r.db.Where("postcard_id = ?", postcardID).Order("uploaded_at DESC").Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// CreatePhoto inserts a photo, then re-fetches it by the generated id
func (r *PostgresPhotoRepository) CreatePhoto(postcardID uint, photoURL string, caption *string) (*models.MeetupPhoto, error) {
	photo := &models.MeetupPhoto{
		PostcardID: postcardID,
		PhotoURL:   photoURL,
		Caption:    caption,
	}

	result := r.db.Create(photo)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("failed to create meetup photo")
	}

	var stored models.MeetupPhoto
	if err := r.db.First(&stored, photo.ID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
