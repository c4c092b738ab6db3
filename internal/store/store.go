package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/scriptura/studyref/internal/model"
)

type Store interface {
	LinkStore
	StudyStore
	TagStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type LinkStore interface {
	// CreateLinks inserts link rows. Both rows of a bidirectional pair go
	// through a single call inside a transaction.
	CreateLinks(ctx context.Context, links []*model.Link) error
	// GetLink retrieves a link by id, scoped to the owner.
	GetLink(ctx context.Context, ownerID, id uuid.UUID) (*model.Link, error)
	// ListLinksBySource retrieves the links attached to a source study,
	// ordered by display_order, then created_at.
	ListLinksBySource(ctx context.Context, ownerID, sourceID uuid.UUID) ([]*model.Link, error)
	// NextLinkOrderBySource returns the display_order for a link appended to
	// a source study's list, one past the highest order currently in use.
	// Deleted rows leave gaps, so this is not the row count.
	NextLinkOrderBySource(ctx context.Context, ownerID, sourceID uuid.UUID) (int, error)
	// ForwardLinkExists reports whether a user-created internal link for the
	// ordered pair (source, target) already exists.
	ForwardLinkExists(ctx context.Context, ownerID, sourceID, targetID uuid.UUID) (bool, error)
	// UpdateLinkOrder sets the display_order of a link.
	UpdateLinkOrder(ctx context.Context, ownerID, id uuid.UUID, order int) error
	// DeleteLinks removes link rows by id, scoped to the owner.
	DeleteLinks(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) error
	// ListDanglingMirrors returns internal links whose paired row is missing.
	ListDanglingMirrors(ctx context.Context) ([]*model.Link, error)
}

type StudyStore interface {
	// CreateStudy creates a new study.
	CreateStudy(ctx context.Context, study *model.Study) error
	// GetStudy retrieves a study by id, scoped to the owner.
	GetStudy(ctx context.Context, ownerID, id uuid.UUID) (*model.Study, error)
	// ListStudies retrieves all studies of an owner.
	ListStudies(ctx context.Context, ownerID uuid.UUID) ([]*model.Study, error)
	// ListStudiesFromIDs retrieves studies by id, scoped to the owner.
	ListStudiesFromIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]*model.Study, error)
	// ListOwners returns the distinct owner ids present in the studies table.
	ListOwners(ctx context.Context) ([]uuid.UUID, error)
}

type TagStore interface {
	// CreateTag creates a new tag.
	CreateTag(ctx context.Context, tag *model.Tag) error
	// ListTags retrieves all tags of an owner.
	ListTags(ctx context.Context, ownerID uuid.UUID) ([]*model.Tag, error)
}
