package service

import (
	"context"
	"errors"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/scriptura/studyref/internal/model"
	"github.com/scriptura/studyref/internal/store"
)

// Direction moves a reference one position within its study's list.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// NewReferenceService creates a new ReferenceService.
func NewReferenceService(provider store.Provider) *ReferenceService {
	return &ReferenceService{
		provider: provider,
	}
}

// ReferenceService owns the per-study collection of links and the rules
// that keep bidirectional pairs consistent. Every mutation that touches a
// pair runs as a single store transaction: either both rows change or
// neither does.
type ReferenceService struct {
	provider store.Provider
}

// ListBySource returns the links attached to a source study, ordered by
// display_order and then created_at.
func (r *ReferenceService) ListBySource(ctx context.Context, ownerID, sourceID uuid.UUID) ([]*model.Link, error) {
	st, err := r.provider.Provide(ownerID)
	if err != nil {
		return nil, err
	}

	return st.ListLinksBySource(ctx, ownerID, sourceID)
}

// AddInternal creates a forward link source→target together with its mirror
// target→source. The mirror is appended at the end of the target study's
// list. Self references and duplicate forward pairs are rejected before
// anything is written.
func (r *ReferenceService) AddInternal(ctx context.Context, ownerID, sourceID, targetID uuid.UUID) (*model.Link, error) {
	if sourceID == targetID {
		return nil, ErrSelfReference
	}

	st, err := r.provider.Provide(ownerID)
	if err != nil {
		return nil, err
	}

	var forward *model.Link
	err = st.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.GetStudy(ctx, ownerID, sourceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudyNotFound
			}
			return err
		}

		if _, err := tx.GetStudy(ctx, ownerID, targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTargetNotFound
			}
			return err
		}

		// authoritative duplicate check, backed by the unique index on
		// (owner_id, source_study_id, target_study_id, is_forward_created)
		exists, err := tx.ForwardLinkExists(ctx, ownerID, sourceID, targetID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateReference
		}

		sourceOrder, err := tx.NextLinkOrderBySource(ctx, ownerID, sourceID)
		if err != nil {
			return err
		}

		targetOrder, err := tx.NextLinkOrderBySource(ctx, ownerID, targetID)
		if err != nil {
			return err
		}

		forwardID := uuid.New().String()
		mirrorID := uuid.New().String()
		targetStr := targetID.String()
		sourceStr := sourceID.String()

		forward = &model.Link{
			ID:               forwardID,
			OwnerID:          ownerID.String(),
			SourceStudyID:    sourceStr,
			TargetStudyID:    &targetStr,
			LinkKind:         model.LinkKindInternal,
			IsForwardCreated: true,
			MirrorID:         mirrorID,
			DisplayOrder:     sourceOrder,
		}
		mirror := &model.Link{
			ID:               mirrorID,
			OwnerID:          ownerID.String(),
			SourceStudyID:    targetStr,
			TargetStudyID:    &sourceStr,
			LinkKind:         model.LinkKindInternal,
			IsForwardCreated: false,
			MirrorID:         forwardID,
			DisplayOrder:     targetOrder,
		}

		return tx.CreateLinks(ctx, []*model.Link{forward, mirror})
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created reference pair %s <-> %s", forward.ID, forward.MirrorID)

	return forward, nil
}

// AddExternal creates a single non-mirrored link from a study to an outside
// URL.
func (r *ReferenceService) AddExternal(ctx context.Context, ownerID, sourceID uuid.UUID, rawURL string) (*model.Link, error) {
	if err := validateExternalURL(rawURL); err != nil {
		return nil, err
	}

	st, err := r.provider.Provide(ownerID)
	if err != nil {
		return nil, err
	}

	var link *model.Link
	err = st.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.GetStudy(ctx, ownerID, sourceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudyNotFound
			}
			return err
		}

		order, err := tx.NextLinkOrderBySource(ctx, ownerID, sourceID)
		if err != nil {
			return err
		}

		link = &model.Link{
			ID:               uuid.New().String(),
			OwnerID:          ownerID.String(),
			SourceStudyID:    sourceID.String(),
			LinkKind:         model.LinkKindExternal,
			ExternalURL:      rawURL,
			IsForwardCreated: true,
			DisplayOrder:     order,
		}

		return tx.CreateLinks(ctx, []*model.Link{link})
	})
	if err != nil {
		return nil, err
	}

	return link, nil
}

// Delete removes a reference given the id of either side of a pair. For
// internal links both rows of the pair are removed in the same transaction;
// external links remove a single row. Deleting an id that no longer exists
// is a no-op and reports false.
func (r *ReferenceService) Delete(ctx context.Context, ownerID, linkID uuid.UUID) (bool, error) {
	st, err := r.provider.Provide(ownerID)
	if err != nil {
		return false, err
	}

	deleted := false
	err = st.Transaction(ctx, func(tx store.Store) error {
		link, err := tx.GetLink(ctx, ownerID, linkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// already gone, or owned by someone else; fail closed either way
				return nil
			}
			return err
		}

		ids := []uuid.UUID{linkID}
		if link.Internal() && link.MirrorID != "" {
			mirrorID, err := uuid.Parse(link.MirrorID)
			if err != nil {
				return err
			}
			ids = append(ids, mirrorID)
		}

		if err := tx.DeleteLinks(ctx, ownerID, ids); err != nil {
			return err
		}

		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		logrus.Infof("deleted reference %s", linkID)
	}

	return deleted, nil
}

// SwapDisplayOrder atomically exchanges the display_order of two links
// attached to the same study. A transient duplicate order is visible inside
// the transaction only; the final state is unique again.
func (r *ReferenceService) SwapDisplayOrder(ctx context.Context, ownerID, linkA, linkB uuid.UUID) error {
	st, err := r.provider.Provide(ownerID)
	if err != nil {
		return err
	}

	return st.Transaction(ctx, func(tx store.Store) error {
		la, err := tx.GetLink(ctx, ownerID, linkA)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLinkNotFound
			}
			return err
		}

		lb, err := tx.GetLink(ctx, ownerID, linkB)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLinkNotFound
			}
			return err
		}

		if la.SourceStudyID != lb.SourceStudyID {
			return ErrCrossStudySwap
		}

		if err := tx.UpdateLinkOrder(ctx, ownerID, linkA, lb.DisplayOrder); err != nil {
			return err
		}

		return tx.UpdateLinkOrder(ctx, ownerID, linkB, la.DisplayOrder)
	})
}

// Reorder moves a reference one position up or down within its study's
// list by swapping display_order with its neighbor. Moving past the start
// or end of the list fails with ErrOrderBoundary and changes nothing.
func (r *ReferenceService) Reorder(ctx context.Context, ownerID, linkID uuid.UUID, direction Direction) error {
	if direction != DirectionUp && direction != DirectionDown {
		return ErrInvalidDirection
	}

	st, err := r.provider.Provide(ownerID)
	if err != nil {
		return err
	}

	link, err := st.GetLink(ctx, ownerID, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLinkNotFound
		}
		return err
	}

	sourceID, err := uuid.Parse(link.SourceStudyID)
	if err != nil {
		return err
	}

	siblings, err := st.ListLinksBySource(ctx, ownerID, sourceID)
	if err != nil {
		return err
	}

	idx := -1
	for i, sibling := range siblings {
		if sibling.ID == link.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrLinkNotFound
	}

	var other *model.Link
	switch direction {
	case DirectionUp:
		if idx == 0 {
			return ErrOrderBoundary
		}
		other = siblings[idx-1]
	case DirectionDown:
		if idx == len(siblings)-1 {
			return ErrOrderBoundary
		}
		other = siblings[idx+1]
	}

	otherID, err := uuid.Parse(other.ID)
	if err != nil {
		return err
	}

	return r.SwapDisplayOrder(ctx, ownerID, linkID, otherID)
}

func validateExternalURL(rawURL string) error {
	if err := validation.Validate(rawURL, validation.Required, is.URL); err != nil {
		return ErrInvalidURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ErrInvalidURL
	}
	if !u.IsAbs() || u.Host == "" {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}

	return nil
}
