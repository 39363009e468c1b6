package repositories

import (
	"errors"

	"github.com/retodoku/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetUsers() ([]models.User, error)
	CreateUser(name, handle, platform string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserBySlug(slug string) (*models.User, error)
	GetUserByHandle(handle, platform string) (*models.User, error)
	GetUserByTwitterID(twitterID string) (*models.User, error)
	CreateUserFromTwitter(twitterID, username, displayName string) (*models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetUsers retrieves all users, newest first
func (r *PostgresUserRepository) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser inserts a user with its derived slug, then re-fetches the stored
// row so server-side defaults (timestamps) are returned as persisted.
func (r *PostgresUserRepository) CreateUser(name, handle, platform string) (*models.User, error) {
	user := &models.User{
		Name:     name,
		Handle:   handle,
		Platform: platform,
		Slug:     models.GenerateSlug(platform, handle),
	}

	result := r.db.Create(user)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("failed to create user")
	}

	return r.GetUserByID(user.ID)
}

// GetUserByID retrieves a user by its numeric id
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserBySlug retrieves a user by its derived slug
func (r *PostgresUserRepository) GetUserBySlug(slug string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("slug = ?", slug).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByHandle retrieves a user by handle within a platform
func (r *PostgresUserRepository) GetUserByHandle(handle, platform string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("handle = ? AND platform = ?", handle, platform).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByTwitterID retrieves a user by its external Twitter identity id
func (r *PostgresUserRepository) GetUserByTwitterID(twitterID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("twitter_id = ?", twitterID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUserFromTwitter creates a local user for a freshly authenticated
// Twitter identity. First successful login wins; there is no re-linking.
func (r *PostgresUserRepository) CreateUserFromTwitter(twitterID, username, displayName string) (*models.User, error) {
	name := displayName
	if name == "" {
		name = username
	}

	user := &models.User{
		Name:      name,
		Handle:    username,
		Platform:  models.PlatformTwitter,
		Slug:      models.GenerateSlug(models.PlatformTwitter, username),
		TwitterID: &twitterID,
	}

	result := r.db.Create(user)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("failed to create user")
	}

	return r.GetUserByID(user.ID)
}
