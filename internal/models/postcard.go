package models

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// NFCPostcard is the central entity: a physical postcard addressed by the
// opaque hash written to its NFC tag. It is created unactivated and is
// activated exactly once by binding a recipient; is_activated, recipient_id
// and activated_at change together and never revert.
type NFCPostcard struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	PostcardHash   string     `json:"postcard_hash" gorm:"uniqueIndex;size:32"`
	SenderID       *uint      `json:"sender_id,omitempty"` // nil = anonymous sender
	RecipientID    *uint      `json:"recipient_id,omitempty"`
	TemplateID     uint       `json:"template_id"`
	Message        *string    `json:"message,omitempty"`
	CustomImageURL *string    `json:"custom_image_url,omitempty"` // overrides the template image
	IsActivated    bool       `json:"is_activated"`
	ActivatedAt    *time.Time `json:"activated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Joined fields, populated by the repository's row reconstruction.
	// A left-joined user is present only when its foreign key is set.
	Sender    *User             `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Recipient *User             `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
	Template  *PostcardTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID"`

	Photos []MeetupPhoto `json:"-" gorm:"foreignKey:PostcardID;constraint:OnDelete:CASCADE"`
}

func (NFCPostcard) TableName() string {
	return "nfc_postcards"
}

// GeneratePostcardHash returns a fresh 32-character alphanumeric token for a
// postcard. The hash doubles as the bearer capability for claiming the
// postcard, so it comes from a cryptographically secure random source.
func GeneratePostcardHash() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

type CreatePostcardRequest struct {
	SenderID       *uint      `json:"sender_id"`
	RecipientID    *uint      `json:"recipient_id"`
	TemplateID     uint       `json:"template_id" validate:"required"`
	Message        *string    `json:"message"`
	CustomImageURL *string    `json:"custom_image_url" validate:"omitempty,url"`
	IsActivated    bool       `json:"is_activated"`
	ActivatedAt    *time.Time `json:"activated_at"`
}

type ActivatePostcardRequest struct {
	RecipientID uint `json:"recipientId" validate:"required"`
}
