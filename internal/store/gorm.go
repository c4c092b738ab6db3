package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scriptura/studyref/internal/model"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreateLinks(ctx context.Context, links []*model.Link) error {
	return g.db.WithContext(ctx).Create(links).Error
}

func (g *GormStore) GetLink(ctx context.Context, ownerID, id uuid.UUID) (*model.Link, error) {
	var link model.Link
	err := g.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID.String(), id.String()).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (g *GormStore) ListLinksBySource(ctx context.Context, ownerID, sourceID uuid.UUID) ([]*model.Link, error) {
	var links []*model.Link
	err := g.db.WithContext(ctx).
		Where("owner_id = ? AND source_study_id = ?", ownerID.String(), sourceID.String()).
		Order("display_order asc, created_at asc").
		Find(&links).Error
	return links, err
}

func (g *GormStore) NextLinkOrderBySource(ctx context.Context, ownerID, sourceID uuid.UUID) (int, error) {
	var next int
	err := g.db.WithContext(ctx).Model(&model.Link{}).
		Where("owner_id = ? AND source_study_id = ?", ownerID.String(), sourceID.String()).
		Select("COALESCE(MAX(display_order), -1) + 1").
		Scan(&next).Error
	return next, err
}

func (g *GormStore) ForwardLinkExists(ctx context.Context, ownerID, sourceID, targetID uuid.UUID) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Link{}).
		Where("owner_id = ? AND source_study_id = ? AND target_study_id = ? AND is_forward_created = ?",
			ownerID.String(), sourceID.String(), targetID.String(), true).
		Count(&count).Error
	return count > 0, err
}

func (g *GormStore) UpdateLinkOrder(ctx context.Context, ownerID, id uuid.UUID, order int) error {
	return g.db.WithContext(ctx).Model(&model.Link{}).
		Where("owner_id = ? AND id = ?", ownerID.String(), id.String()).
		Update("display_order", order).Error
}

func (g *GormStore) DeleteLinks(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, id.String())
	}

	return g.db.WithContext(ctx).
		Where("owner_id = ? AND id IN (?)", ownerID.String(), strIDs).
		Delete(&model.Link{}).Error
}

func (g *GormStore) ListDanglingMirrors(ctx context.Context) ([]*model.Link, error) {
	var links []*model.Link
	err := g.db.WithContext(ctx).
		Where("link_kind = ? AND mirror_id <> '' AND mirror_id NOT IN (SELECT id FROM links)",
			model.LinkKindInternal).
		Find(&links).Error
	return links, err
}

func (g *GormStore) CreateStudy(ctx context.Context, study *model.Study) error {
	return g.db.WithContext(ctx).Create(study).Error
}

func (g *GormStore) GetStudy(ctx context.Context, ownerID, id uuid.UUID) (*model.Study, error) {
	var study model.Study
	err := g.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID.String(), id.String()).
		First(&study).Error
	if err != nil {
		return nil, err
	}
	return &study, nil
}

func (g *GormStore) ListStudies(ctx context.Context, ownerID uuid.UUID) ([]*model.Study, error) {
	var studies []*model.Study
	err := g.db.WithContext(ctx).
		Where("owner_id = ?", ownerID.String()).
		Order("created_at asc").
		Find(&studies).Error
	return studies, err
}

func (g *GormStore) ListStudiesFromIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]*model.Study, error) {
	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, id.String())
	}

	var studies []*model.Study
	err := g.db.WithContext(ctx).
		Where("owner_id = ? AND id IN (?)", ownerID.String(), strIDs).
		Find(&studies).Error
	return studies, err
}

func (g *GormStore) ListOwners(ctx context.Context) ([]uuid.UUID, error) {
	var ids []string
	err := g.db.WithContext(ctx).Model(&model.Study{}).
		Distinct("owner_id").
		Pluck("owner_id", &ids).Error
	if err != nil {
		return nil, err
	}

	owners := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		owner, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		owners = append(owners, owner)
	}

	return owners, nil
}

func (g *GormStore) CreateTag(ctx context.Context, tag *model.Tag) error {
	return g.db.WithContext(ctx).Create(tag).Error
}

func (g *GormStore) ListTags(ctx context.Context, ownerID uuid.UUID) ([]*model.Tag, error) {
	var tags []*model.Tag
	err := g.db.WithContext(ctx).
		Where("owner_id = ?", ownerID.String()).
		Find(&tags).Error
	return tags, err
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
