package models

import "time"

// PostcardTemplate is a reusable postcard design. Only active templates are
// offered for new postcards.
type PostcardTemplate struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TemplateID  string    `json:"template_id" gorm:"uniqueIndex"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PostcardTemplate) TableName() string {
	return "postcard_templates"
}
