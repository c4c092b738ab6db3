package model

import "time"

const (
	// LinkKindInternal marks a link between two studies of the same owner.
	LinkKindInternal = "internal"
	// LinkKindExternal marks a link from a study to an outside URL.
	LinkKindExternal = "external"
)

// Link represents a directed reference edge attached to a study.
// An internal link always exists as a pair: the forward row created by the
// user and a mirror row on the target study pointing back. The two rows are
// created and destroyed in the same transaction and carry each other's id
// in MirrorID. External links have no mirror.
type Link struct {
	ID            string  `gorm:"primaryKey;uuid;not null"`
	OwnerID       string  `gorm:"uuid;not null;index:idx_links_owner_source;uniqueIndex:idx_links_forward_pair"`
	SourceStudyID string  `gorm:"uuid;not null;index:idx_links_owner_source;uniqueIndex:idx_links_forward_pair"`
	TargetStudyID *string `gorm:"uuid;uniqueIndex:idx_links_forward_pair"`
	LinkKind      string  `gorm:"not null;default:internal"`
	ExternalURL   string
	// IsForwardCreated is true on the row created directly by the user and
	// false on the system-generated mirror row.
	IsForwardCreated bool   `gorm:"not null;default:true;uniqueIndex:idx_links_forward_pair"`
	MirrorID         string `gorm:"uuid"`
	DisplayOrder     int    `gorm:"not null"`
	CreatedAt        time.Time
}

func (l *Link) TableName() string {
	return "links"
}

// Internal reports whether the link points at another study.
func (l *Link) Internal() bool {
	return l.LinkKind == LinkKindInternal
}

// Target returns the target study id, or "" for external links.
func (l *Link) Target() string {
	if l.TargetStudyID == nil {
		return ""
	}
	return *l.TargetStudyID
}
