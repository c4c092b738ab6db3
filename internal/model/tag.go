package model

import "gorm.io/gorm"

// Tag carries the display color for a study tag.
type Tag struct {
	gorm.Model
	OwnerID string `gorm:"uuid;not null;index:idx_tags_owner_id"`
	Name    string `gorm:"not null"`
	Color   string
	Type    string
}

func (t *Tag) TableName() string {
	return "tags"
}
