package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/scriptura/studyref/internal/model"
)

// StudyCache is a lookup cache for studies and tags. A miss is reported as
// (nil, nil) so callers fall through to the store without treating it as a
// failure.
type StudyCache interface {
	// GetStudies gets the cached study list of an owner.
	GetStudies(ctx context.Context, ownerID uuid.UUID) ([]*model.Study, error)
	// SetStudies caches the study list of an owner.
	SetStudies(ctx context.Context, ownerID uuid.UUID, studies []*model.Study) error
	// GetTags gets the cached tag list of an owner.
	GetTags(ctx context.Context, ownerID uuid.UUID) ([]*model.Tag, error)
	// SetTags caches the tag list of an owner.
	SetTags(ctx context.Context, ownerID uuid.UUID, tags []*model.Tag) error
	// Invalidate drops all cached entries of an owner.
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}
