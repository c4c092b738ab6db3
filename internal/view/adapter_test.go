package view

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/scriptura/studyref/internal/model"
	"github.com/scriptura/studyref/internal/service"
)

type stubBackend struct {
	rows    []*model.Link
	studies []*model.Study
	tags    []*model.Tag

	failListCalls int // first N ListBySource calls fail
	listCalls     int
	swapErr       error
	deleteOK      bool
}

func (s *stubBackend) ListBySource(ctx context.Context, ownerID, sourceID uuid.UUID) ([]*model.Link, error) {
	s.listCalls++
	if s.listCalls <= s.failListCalls {
		return nil, errors.New("connection reset")
	}
	return s.rows, nil
}

func (s *stubBackend) AddInternal(ctx context.Context, ownerID, sourceID, targetID uuid.UUID) (*model.Link, error) {
	return nil, service.ErrDuplicateReference
}

func (s *stubBackend) AddExternal(ctx context.Context, ownerID, sourceID uuid.UUID, rawURL string) (*model.Link, error) {
	return nil, service.ErrInvalidURL
}

func (s *stubBackend) Delete(ctx context.Context, ownerID, linkID uuid.UUID) (bool, error) {
	return s.deleteOK, nil
}

func (s *stubBackend) SwapDisplayOrder(ctx context.Context, ownerID, linkA, linkB uuid.UUID) error {
	return s.swapErr
}

func (s *stubBackend) GetStudiesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Study, error) {
	return s.studies, nil
}

func (s *stubBackend) GetTagsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Tag, error) {
	return s.tags, nil
}

func internalLink(id string, source, target uuid.UUID, forward bool, order int) *model.Link {
	targetStr := target.String()
	return &model.Link{
		ID:               id,
		OwnerID:          uuid.Nil.String(),
		SourceStudyID:    source.String(),
		TargetStudyID:    &targetStr,
		LinkKind:         model.LinkKindInternal,
		IsForwardCreated: forward,
		DisplayOrder:     order,
	}
}

func TestAdapter_Cards(t *testing.T) {
	ownerID := uuid.New()
	studyID := uuid.New()
	targetA := uuid.New()
	targetB := uuid.New()

	backend := &stubBackend{
		rows: []*model.Link{
			internalLink("l1", studyID, targetA, true, 0),
			internalLink("l2", studyID, targetB, false, 1),
			{
				ID:               "l3",
				OwnerID:          ownerID.String(),
				SourceStudyID:    studyID.String(),
				LinkKind:         model.LinkKindExternal,
				ExternalURL:      "https://example.com/path/to/article",
				IsForwardCreated: true,
				DisplayOrder:     2,
			},
		},
		studies: []*model.Study{
			{ID: targetA.String(), Title: "Exodus 2", BookName: "Exodus", ChapterNumber: 2, Tags: "law,history"},
			{ID: targetB.String(), Title: "Psalms 23", BookName: "Psalms", ChapterNumber: 23},
		},
		tags: []*model.Tag{
			{Name: "law", Color: "#aa0000"},
			{Name: "history", Color: "#00aa00"},
		},
	}

	adapter := NewAdapter(backend, backend, ownerID, studyID)
	assert.NoError(t, adapter.Refresh(context.TODO()))

	cards := adapter.Cards()
	assert.Len(t, cards, 3)

	forward := cards[0]
	assert.Equal(t, CategoryInternalForward, forward.Category)
	assert.Equal(t, "Exodus 2", forward.Title)
	assert.Equal(t, "Exodus", forward.BookName)
	assert.Equal(t, 2, forward.ChapterNumber)
	assert.Equal(t, map[string]string{"law": "#aa0000", "history": "#00aa00"}, forward.TagColors)
	assert.True(t, forward.CanDelete)
	assert.True(t, forward.CanReorder)
	assert.Empty(t, forward.Note)

	mirror := cards[1]
	assert.Equal(t, CategoryInternalReverse, mirror.Category)
	assert.Equal(t, "Psalms 23", mirror.Title)
	assert.False(t, mirror.CanDelete)
	assert.False(t, mirror.CanReorder)
	assert.Equal(t, MirrorNote, mirror.Note)

	external := cards[2]
	assert.Equal(t, CategoryExternal, external.Category)
	assert.Equal(t, "example.com", external.Hostname)
	assert.Equal(t, "https://example.com/path/to/article", external.ExternalURL)
	assert.True(t, external.CanDelete)
	assert.True(t, external.CanReorder)
}

func TestAdapter_MirrorsNeverCarryControls(t *testing.T) {
	ownerID := uuid.New()
	studyID := uuid.New()

	backend := &stubBackend{}
	for i := 0; i < 5; i++ {
		backend.rows = append(backend.rows, internalLink(uuid.New().String(), studyID, uuid.New(), false, i))
	}

	adapter := NewAdapter(backend, backend, ownerID, studyID)
	assert.NoError(t, adapter.Refresh(context.TODO()))

	for _, card := range adapter.Cards() {
		assert.Equal(t, CategoryInternalReverse, card.Category)
		assert.False(t, card.CanDelete)
		assert.False(t, card.CanReorder)
		assert.NotEmpty(t, card.Note)
	}
}

func TestAdapter_RefreshRetries(t *testing.T) {
	ownerID := uuid.New()
	studyID := uuid.New()

	// two transient failures, then success
	backend := &stubBackend{failListCalls: 2}
	adapter := NewAdapter(backend, backend, ownerID, studyID)
	assert.NoError(t, adapter.Refresh(context.TODO()))
	assert.Equal(t, 3, backend.listCalls)

	// persistent failure surfaces after three attempts
	backend = &stubBackend{failListCalls: 10}
	adapter = NewAdapter(backend, backend, ownerID, studyID)
	assert.Error(t, adapter.Refresh(context.TODO()))
	assert.Equal(t, 3, backend.listCalls)
}

func TestAdapter_ReorderRollsBackOnFailure(t *testing.T) {
	ownerID := uuid.New()
	studyID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	order := func(a *Adapter) []string {
		cards := a.Cards()
		ids := make([]string, 0, len(cards))
		for _, card := range cards {
			ids = append(ids, card.ID)
		}
		return ids
	}

	backend := &stubBackend{
		rows: []*model.Link{
			internalLink(first.String(), studyID, uuid.New(), true, 0),
			internalLink(second.String(), studyID, uuid.New(), true, 1),
		},
		swapErr: errors.New("connection reset"),
	}

	adapter := NewAdapter(backend, backend, ownerID, studyID)
	assert.NoError(t, adapter.Refresh(context.TODO()))

	// failed swap rolls the optimistic move back
	ok := adapter.ReorderReference(context.TODO(), first, service.DirectionDown)
	assert.False(t, ok)
	assert.Equal(t, []string{first.String(), second.String()}, order(adapter))

	// boundary moves do not touch the backend at all
	ok = adapter.ReorderReference(context.TODO(), first, service.DirectionUp)
	assert.False(t, ok)
	assert.Equal(t, []string{first.String(), second.String()}, order(adapter))

	// successful swap keeps the optimistic order
	backend.swapErr = nil
	ok = adapter.ReorderReference(context.TODO(), first, service.DirectionDown)
	assert.True(t, ok)
	assert.Equal(t, []string{second.String(), first.String()}, order(adapter))
}

func TestAdapter_WriteFailuresSurfaceImmediately(t *testing.T) {
	ownerID := uuid.New()
	studyID := uuid.New()

	backend := &stubBackend{}
	adapter := NewAdapter(backend, backend, ownerID, studyID)
	assert.NoError(t, adapter.Refresh(context.TODO()))
	callsAfterRefresh := backend.listCalls

	assert.False(t, adapter.AddReference(context.TODO(), uuid.New()))
	assert.False(t, adapter.AddExternalLink(context.TODO(), "nope"))
	assert.False(t, adapter.DeleteReference(context.TODO(), uuid.New()))

	// failed writes are not retried and trigger no reload
	assert.Equal(t, callsAfterRefresh, backend.listCalls)
}
