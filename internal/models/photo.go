package models

import "time"

// MeetupPhoto is a photo attached to a postcard, typically taken when sender
// and recipient met. Owned by the postcard; deleted along with it.
type MeetupPhoto struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PostcardID uint      `json:"postcard_id" gorm:"index"`
	PhotoURL   string    `json:"photo_url"`
	Caption    *string   `json:"caption,omitempty"`
	UploadedAt time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

func (MeetupPhoto) TableName() string {
	return "meetup_photos"
}

type CreateMeetupPhotoRequest struct {
	PostcardID uint    `json:"postcard_id" validate:"required"`
	PhotoURL   string  `json:"photo_url" validate:"required,url"`
	Caption    *string `json:"caption"`
}
