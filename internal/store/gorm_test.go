package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/scriptura/studyref/internal/model"
	"github.com/scriptura/studyref/internal/tester"
)

func newTestStore() *GormStore {
	return NewGormStore(tester.TestDB())
}

func newLink(ownerID, sourceID uuid.UUID, order int, createdAt time.Time) *model.Link {
	targetStr := uuid.New().String()
	return &model.Link{
		ID:               uuid.New().String(),
		OwnerID:          ownerID.String(),
		SourceStudyID:    sourceID.String(),
		TargetStudyID:    &targetStr,
		LinkKind:         model.LinkKindInternal,
		IsForwardCreated: true,
		DisplayOrder:     order,
		CreatedAt:        createdAt,
	}
}

func TestGormStore_ListLinksBySource_Ordering(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	s := newTestStore()
	ownerID := uuid.New()
	sourceID := uuid.New()

	now := time.Now()
	older := newLink(ownerID, sourceID, 0, now.Add(-time.Hour))
	newer := newLink(ownerID, sourceID, 0, now)
	last := newLink(ownerID, sourceID, 1, now.Add(-2*time.Hour))

	// insert out of display order on purpose
	assert.NoError(t, s.CreateLinks(context.TODO(), []*model.Link{last, newer, older}))

	links, err := s.ListLinksBySource(context.TODO(), ownerID, sourceID)
	assert.NoError(t, err)
	assert.Len(t, links, 3)

	// display_order first, created_at breaks ties
	assert.Equal(t, older.ID, links[0].ID)
	assert.Equal(t, newer.ID, links[1].ID)
	assert.Equal(t, last.ID, links[2].ID)
}

func TestGormStore_ListLinksBySource_OwnerScoped(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	s := newTestStore()
	ownerID := uuid.New()
	otherOwner := uuid.New()
	sourceID := uuid.New()

	mine := newLink(ownerID, sourceID, 0, time.Now())
	theirs := newLink(otherOwner, sourceID, 0, time.Now())
	assert.NoError(t, s.CreateLinks(context.TODO(), []*model.Link{mine, theirs}))

	links, err := s.ListLinksBySource(context.TODO(), ownerID, sourceID)
	assert.NoError(t, err)
	assert.Len(t, links, 1)
	assert.Equal(t, mine.ID, links[0].ID)

	next, err := s.NextLinkOrderBySource(context.TODO(), ownerID, sourceID)
	assert.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestGormStore_NextLinkOrderBySource(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	s := newTestStore()
	ownerID := uuid.New()
	sourceID := uuid.New()

	next, err := s.NextLinkOrderBySource(context.TODO(), ownerID, sourceID)
	assert.NoError(t, err)
	assert.Equal(t, 0, next)

	// orders with a gap after a deletion: the next order continues past the
	// highest survivor instead of refilling the gap with the row count
	assert.NoError(t, s.CreateLinks(context.TODO(), []*model.Link{
		newLink(ownerID, sourceID, 3, time.Now()),
		newLink(ownerID, sourceID, 7, time.Now()),
	}))

	next, err = s.NextLinkOrderBySource(context.TODO(), ownerID, sourceID)
	assert.NoError(t, err)
	assert.Equal(t, 8, next)
}

func TestGormStore_ForwardLinkExists(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	s := newTestStore()
	ownerID := uuid.New()
	sourceID := uuid.New()
	targetID := uuid.New()

	sourceStr := sourceID.String()
	targetStr := targetID.String()

	forward := &model.Link{
		ID:               uuid.New().String(),
		OwnerID:          ownerID.String(),
		SourceStudyID:    sourceStr,
		TargetStudyID:    &targetStr,
		LinkKind:         model.LinkKindInternal,
		IsForwardCreated: true,
	}
	mirror := &model.Link{
		ID:               uuid.New().String(),
		OwnerID:          ownerID.String(),
		SourceStudyID:    targetStr,
		TargetStudyID:    &sourceStr,
		LinkKind:         model.LinkKindInternal,
		IsForwardCreated: false,
		MirrorID:         forward.ID,
	}
	forward.MirrorID = mirror.ID
	assert.NoError(t, s.CreateLinks(context.TODO(), []*model.Link{forward, mirror}))

	exists, err := s.ForwardLinkExists(context.TODO(), ownerID, sourceID, targetID)
	assert.NoError(t, err)
	assert.True(t, exists)

	// the mirror row does not count as a forward link
	exists, err = s.ForwardLinkExists(context.TODO(), ownerID, targetID, sourceID)
	assert.NoError(t, err)
	assert.False(t, exists)

	exists, err = s.ForwardLinkExists(context.TODO(), uuid.New(), sourceID, targetID)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestGormStore_UpdateAndDeleteOwnerScoped(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	s := newTestStore()
	ownerID := uuid.New()
	sourceID := uuid.New()

	link := newLink(ownerID, sourceID, 0, time.Now())
	assert.NoError(t, s.CreateLinks(context.TODO(), []*model.Link{link}))
	linkID := uuid.MustParse(link.ID)

	// a different owner can neither move nor delete the row
	assert.NoError(t, s.UpdateLinkOrder(context.TODO(), uuid.New(), linkID, 5))
	assert.NoError(t, s.DeleteLinks(context.TODO(), uuid.New(), []uuid.UUID{linkID}))

	got, err := s.GetLink(context.TODO(), ownerID, linkID)
	assert.NoError(t, err)
	assert.Equal(t, 0, got.DisplayOrder)

	assert.NoError(t, s.UpdateLinkOrder(context.TODO(), ownerID, linkID, 5))
	got, err = s.GetLink(context.TODO(), ownerID, linkID)
	assert.NoError(t, err)
	assert.Equal(t, 5, got.DisplayOrder)

	assert.NoError(t, s.DeleteLinks(context.TODO(), ownerID, []uuid.UUID{linkID}))
	_, err = s.GetLink(context.TODO(), ownerID, linkID)
	assert.Error(t, err)
}

func TestGormStore_ListDanglingMirrors(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	s := newTestStore()
	ownerID := uuid.New()
	sourceID := uuid.New()
	targetID := uuid.New()

	sourceStr := sourceID.String()
	targetStr := targetID.String()

	forward := &model.Link{
		ID:               uuid.New().String(),
		OwnerID:          ownerID.String(),
		SourceStudyID:    sourceStr,
		TargetStudyID:    &targetStr,
		LinkKind:         model.LinkKindInternal,
		IsForwardCreated: true,
	}
	mirror := &model.Link{
		ID:               uuid.New().String(),
		OwnerID:          ownerID.String(),
		SourceStudyID:    targetStr,
		TargetStudyID:    &sourceStr,
		LinkKind:         model.LinkKindInternal,
		IsForwardCreated: false,
		MirrorID:         forward.ID,
	}
	forward.MirrorID = mirror.ID

	orphan := newLink(ownerID, sourceID, 1, time.Now())
	orphan.MirrorID = uuid.New().String()

	assert.NoError(t, s.CreateLinks(context.TODO(), []*model.Link{forward, mirror, orphan}))

	dangling, err := s.ListDanglingMirrors(context.TODO())
	assert.NoError(t, err)
	assert.Len(t, dangling, 1)
	assert.Equal(t, orphan.ID, dangling[0].ID)
}

func TestGormStore_TransactionRollsBack(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	s := newTestStore()
	ownerID := uuid.New()
	sourceID := uuid.New()

	link := newLink(ownerID, sourceID, 0, time.Now())
	err := s.Transaction(context.TODO(), func(tx Store) error {
		if err := tx.CreateLinks(context.TODO(), []*model.Link{link}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	assert.Error(t, err)

	links, err := s.ListLinksBySource(context.TODO(), ownerID, sourceID)
	assert.NoError(t, err)
	assert.Empty(t, links)
}

func TestGormStore_ListOwners(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	s := newTestStore()
	first := uuid.New()
	second := uuid.New()

	for i, ownerID := range []uuid.UUID{first, first, second} {
		assert.NoError(t, s.CreateStudy(context.TODO(), &model.Study{
			ID:      uuid.New().String(),
			OwnerID: ownerID.String(),
			Title:   "study",
			// distinct chapter keeps rows apart
			ChapterNumber: i,
		}))
	}

	owners, err := s.ListOwners(context.TODO())
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{first, second}, owners)
}
