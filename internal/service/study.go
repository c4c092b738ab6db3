package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scriptura/studyref/internal/cache"
	"github.com/scriptura/studyref/internal/model"
	"github.com/scriptura/studyref/internal/store"
)

// NewStudyService creates a new StudyService.
func NewStudyService(provider store.Provider, cache cache.StudyCache) *StudyService {
	return &StudyService{
		provider: provider,
		cache:    cache,
	}
}

// StudyService is the lookup collaborator of the reference subsystem: it
// serves study and tag metadata for link display and never touches link
// rows itself. Reads go through the cache; the store stays authoritative.
type StudyService struct {
	provider store.Provider
	cache    cache.StudyCache
}

// CreateStudy creates a new study and invalidates the owner's cached lists.
func (s *StudyService) CreateStudy(ctx context.Context, ownerID uuid.UUID, title, bookName string, chapter int, tags []string) (*model.Study, error) {
	st, err := s.provider.Provide(ownerID)
	if err != nil {
		return nil, err
	}

	study := &model.Study{
		ID:            uuid.New().String(),
		OwnerID:       ownerID.String(),
		Title:         title,
		BookName:      bookName,
		ChapterNumber: chapter,
		Tags:          strings.Join(tags, ","),
	}

	if err := st.CreateStudy(ctx, study); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		logrus.Errorf("error invalidating study cache: %v", err)
	}

	return study, nil
}

// CreateTag registers a tag with its display color.
func (s *StudyService) CreateTag(ctx context.Context, ownerID uuid.UUID, name, color, kind string) (*model.Tag, error) {
	st, err := s.provider.Provide(ownerID)
	if err != nil {
		return nil, err
	}

	tag := &model.Tag{
		OwnerID: ownerID.String(),
		Name:    name,
		Color:   color,
		Type:    kind,
	}

	if err := st.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		logrus.Errorf("error invalidating tag cache: %v", err)
	}

	return tag, nil
}

// GetStudiesByOwner returns all studies of an owner, cache first.
func (s *StudyService) GetStudiesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Study, error) {
	studies, err := s.cache.GetStudies(ctx, ownerID)
	if err != nil {
		logrus.Errorf("error reading study cache: %v", err)
	}
	if studies != nil {
		return studies, nil
	}

	st, err := s.provider.Provide(ownerID)
	if err != nil {
		return nil, err
	}

	studies, err = st.ListStudies(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetStudies(ctx, ownerID, studies); err != nil {
		logrus.Errorf("error writing study cache: %v", err)
	}

	return studies, nil
}

// GetTagsByOwner returns all tags of an owner, cache first.
func (s *StudyService) GetTagsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Tag, error) {
	tags, err := s.cache.GetTags(ctx, ownerID)
	if err != nil {
		logrus.Errorf("error reading tag cache: %v", err)
	}
	if tags != nil {
		return tags, nil
	}

	st, err := s.provider.Provide(ownerID)
	if err != nil {
		return nil, err
	}

	tags, err = st.ListTags(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetTags(ctx, ownerID, tags); err != nil {
		logrus.Errorf("error writing tag cache: %v", err)
	}

	return tags, nil
}
