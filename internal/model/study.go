package model

import (
	"strings"

	"gorm.io/gorm"
)

// Study is a single study note. The reference subsystem treats studies as
// read-only lookup targets; only title, book/chapter and tags are needed to
// render a linked card.
type Study struct {
	gorm.Model
	ID            string `gorm:"primaryKey;uuid;not null"`
	OwnerID       string `gorm:"uuid;not null;index:idx_studies_owner_id"`
	Title         string `gorm:"not null"`
	BookName      string
	ChapterNumber int
	Tags          string // comma-joined tag names
}

func (s *Study) TableName() string {
	return "studies"
}

// TagNames splits the denormalized tag column into individual names.
func (s *Study) TagNames() []string {
	if s.Tags == "" {
		return nil
	}

	parts := strings.Split(s.Tags, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}

	return names
}
