package repositories

import (
	"errors"
	"time"

	"github.com/retodoku/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrPostcardNotFound is returned when no postcard matches the given hash or id.
	ErrPostcardNotFound = errors.New("postcard not found")
	// ErrPostcardAlreadyActivated is returned when an activation attempt loses
	// to an earlier one. The stored recipient is never overwritten.
	ErrPostcardAlreadyActivated = errors.New("postcard already activated")
)

// PostcardRepository defines the interface for NFC postcard operations
type PostcardRepository interface {
	GetPostcards() ([]models.NFCPostcard, error)
	GetPostcardByHash(hash string) (*models.NFCPostcard, error)
	GetPostcardsByRecipient(recipientID uint) ([]models.NFCPostcard, error)
	CreatePostcard(req *models.CreatePostcardRequest) (*models.NFCPostcard, error)
	ActivatePostcard(hash string, recipientID uint) error
	DeletePostcard(id uint) error
}

// PostgresPostcardRepository implements PostcardRepository for PostgreSQL
type PostgresPostcardRepository struct {
	db *gorm.DB
}

// NewPostgresPostcardRepository creates a new PostgresPostcardRepository
func NewPostgresPostcardRepository(db *gorm.DB) *PostgresPostcardRepository {
	return &PostgresPostcardRepository{db: db}
}

// Postcards are read through one flat query joining sender, recipient and
// template, and the nested objects are rebuilt from the aliased columns.
// Users are left-joined (either may be absent); the template is inner-joined,
// so a postcard with a dangling template reference is simply not returned.
const postcardSelect = `
SELECT
  np.id, np.postcard_hash, np.sender_id, np.recipient_id, np.template_id,
  np.message, np.custom_image_url, np.is_activated, np.activated_at,
  np.created_at, np.updated_at,
  s.name AS sender_name, s.handle AS sender_handle, s.platform AS sender_platform, s.slug AS sender_slug,
  r.name AS recipient_name, r.handle AS recipient_handle, r.platform AS recipient_platform, r.slug AS recipient_slug,
  pt.template_id AS template_template_id, pt.name AS template_name,
  pt.image_url AS template_image_url, pt.description AS template_description
FROM nfc_postcards np
LEFT JOIN users s ON np.sender_id = s.id
LEFT JOIN users r ON np.recipient_id = r.id
INNER JOIN postcard_templates pt ON np.template_id = pt.id`

// Variant used for a recipient's collection: the recipient is the query
// parameter, so it is not re-attached to every row.
const recipientPostcardSelect = `
SELECT
  np.id, np.postcard_hash, np.sender_id, np.recipient_id, np.template_id,
  np.message, np.custom_image_url, np.is_activated, np.activated_at,
  np.created_at, np.updated_at,
  s.name AS sender_name, s.handle AS sender_handle, s.platform AS sender_platform, s.slug AS sender_slug,
  pt.template_id AS template_template_id, pt.name AS template_name,
  pt.image_url AS template_image_url, pt.description AS template_description
FROM nfc_postcards np
LEFT JOIN users s ON np.sender_id = s.id
INNER JOIN postcard_templates pt ON np.template_id = pt.id`

// postcardRow is the flattened result of postcardSelect.
type postcardRow struct {
	ID             uint
	PostcardHash   string
	SenderID       *uint
	RecipientID    *uint
	TemplateID     uint
	Message        *string
	CustomImageURL *string
	IsActivated    bool
	ActivatedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	SenderName        *string
	SenderHandle      *string
	SenderPlatform    *string
	SenderSlug        *string
	RecipientName     *string
	RecipientHandle   *string
	RecipientPlatform *string
	RecipientSlug     *string

	TemplateTemplateID  string
	TemplateName        string
	TemplateImageURL    string
	TemplateDescription *string
}

// toPostcard rebuilds the nested postcard from a flat row. A left-joined user
// is attached only when its foreign key resolved to a row; otherwise the
// nested field stays nil and is omitted from JSON entirely.
func (row *postcardRow) toPostcard() models.NFCPostcard {
	postcard := models.NFCPostcard{
		ID:             row.ID,
		PostcardHash:   row.PostcardHash,
		SenderID:       row.SenderID,
		RecipientID:    row.RecipientID,
		TemplateID:     row.TemplateID,
		Message:        row.Message,
		CustomImageURL: row.CustomImageURL,
		IsActivated:    row.IsActivated,
		ActivatedAt:    row.ActivatedAt,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	if row.SenderID != nil && row.SenderSlug != nil {
		postcard.Sender = &models.User{
			ID:        *row.SenderID,
			Name:      *row.SenderName,
			Handle:    *row.SenderHandle,
			Platform:  *row.SenderPlatform,
			Slug:      *row.SenderSlug,
			AvatarURL: models.AvatarURL(*row.SenderPlatform, *row.SenderHandle),
		}
	}
	if row.RecipientID != nil && row.RecipientSlug != nil {
		postcard.Recipient = &models.User{
			ID:        *row.RecipientID,
			Name:      *row.RecipientName,
			Handle:    *row.RecipientHandle,
			Platform:  *row.RecipientPlatform,
			Slug:      *row.RecipientSlug,
			AvatarURL: models.AvatarURL(*row.RecipientPlatform, *row.RecipientHandle),
		}
	}
	postcard.Template = &models.PostcardTemplate{
		ID:          row.TemplateID,
		TemplateID:  row.TemplateTemplateID,
		Name:        row.TemplateName,
		ImageURL:    row.TemplateImageURL,
		Description: row.TemplateDescription,
		IsActive:    true,
	}

	return postcard
}

// GetPostcards retrieves every postcard with its joined sender, recipient and
// template, newest first
func (r *PostgresPostcardRepository) GetPostcards() ([]models.NFCPostcard, error) {
	var rows []postcardRow
	if err := r.db.Raw(postcardSelect + " ORDER BY np.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	postcards := make([]models.NFCPostcard, 0, len(rows))
	for i := range rows {
		postcards = append(postcards, rows[i].toPostcard())
	}
	return postcards, nil
}

// GetPostcardByHash retrieves one joined postcard by its NFC hash
func (r *PostgresPostcardRepository) GetPostcardByHash(hash string) (*models.NFCPostcard, error) {
	var rows []postcardRow
	if err := r.db.Raw(postcardSelect+" WHERE np.postcard_hash = ?", hash).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrPostcardNotFound
	}

	postcard := rows[0].toPostcard()
	return &postcard, nil
}

// GetPostcardsByRecipient retrieves the activated postcards in a recipient's
// collection, most recently activated first. Unactivated postcards are
// excluded even if a recipient id were somehow set on them.
func (r *PostgresPostcardRepository) GetPostcardsByRecipient(recipientID uint) ([]models.NFCPostcard, error) {
	var rows []postcardRow
	query := recipientPostcardSelect + " WHERE np.recipient_id = ? AND np.is_activated = ? ORDER BY np.activated_at DESC"
	if err := r.db.Raw(query, recipientID, true).Scan(&rows).Error; err != nil {
		return nil, err
	}

	postcards := make([]models.NFCPostcard, 0, len(rows))
	for i := range rows {
		postcards = append(postcards, rows[i].toPostcard())
	}
	return postcards, nil
}

// CreatePostcard inserts a postcard with a freshly generated hash, then
// re-fetches it by that hash to return the fully joined record
func (r *PostgresPostcardRepository) CreatePostcard(req *models.CreatePostcardRequest) (*models.NFCPostcard, error) {
	postcard := &models.NFCPostcard{
		PostcardHash:   models.GeneratePostcardHash(),
		SenderID:       req.SenderID,
		RecipientID:    req.RecipientID,
		TemplateID:     req.TemplateID,
		Message:        req.Message,
		CustomImageURL: req.CustomImageURL,
		IsActivated:    req.IsActivated,
		ActivatedAt:    req.ActivatedAt,
	}

	result := r.db.Omit(clause.Associations).Create(postcard)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("failed to create NFC postcard")
	}

	return r.GetPostcardByHash(postcard.PostcardHash)
}

// ActivatePostcard binds a recipient to an unactivated postcard. The
// activation predicate lives in the UPDATE itself, so of two concurrent
// attempts on the same hash exactly one wins; the loser affects zero rows
// and a follow-up read names which way it lost.
func (r *PostgresPostcardRepository) ActivatePostcard(hash string, recipientID uint) error {
	result := r.db.Model(&models.NFCPostcard{}).
		Where("postcard_hash = ? AND is_activated = ?", hash, false).
		Updates(map[string]interface{}{
			"recipient_id": recipientID,
			"is_activated": true,
			"activated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.Model(&models.NFCPostcard{}).Where("postcard_hash = ?", hash).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrPostcardNotFound
	}
	return ErrPostcardAlreadyActivated
}

// DeletePostcard removes a postcard and its meetup photos in one transaction
func (r *PostgresPostcardRepository) DeletePostcard(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("postcard_id = ?", id).Delete(&models.MeetupPhoto{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.NFCPostcard{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostcardNotFound
		}
		return nil
	})
}
