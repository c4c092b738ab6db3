package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/scriptura/studyref/internal/model"
)

var _ StudyCache = (*Nop)(nil)

// Nop is a cache that always misses. Used when no redis address is
// configured and in tests.
type Nop struct{}

func NewNop() *Nop {
	return &Nop{}
}

func (n *Nop) GetStudies(ctx context.Context, ownerID uuid.UUID) ([]*model.Study, error) {
	return nil, nil
}

func (n *Nop) SetStudies(ctx context.Context, ownerID uuid.UUID, studies []*model.Study) error {
	return nil
}

func (n *Nop) GetTags(ctx context.Context, ownerID uuid.UUID) ([]*model.Tag, error) {
	return nil, nil
}

func (n *Nop) SetTags(ctx context.Context, ownerID uuid.UUID, tags []*model.Tag) error {
	return nil
}

func (n *Nop) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return nil
}
