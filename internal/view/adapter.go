package view

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scriptura/studyref/internal/model"
	"github.com/scriptura/studyref/internal/service"
)

// Category is the display category of a reference card.
type Category string

const (
	// CategoryExternal is a link to an outside URL.
	CategoryExternal Category = "external"
	// CategoryInternalForward is a link the user created from this study.
	CategoryInternalForward Category = "internal-forward"
	// CategoryInternalReverse is the system-generated mirror of a link
	// created from another study. It cannot be deleted or reordered from
	// this card.
	CategoryInternalReverse Category = "internal-reverse"
)

// MirrorNote labels mirror cards so the user understands why no delete
// control is shown.
const MirrorNote = "Linked from the other study. Remove the reference there to unlink."

const (
	readAttempts   = 3
	readRetryDelay = 200 * time.Millisecond
)

// Card is one rendered reference row.
type Card struct {
	ID            string            `json:"id"`
	Category      Category          `json:"category"`
	TargetStudyID string            `json:"target_study_id,omitempty"`
	Title         string            `json:"title,omitempty"`
	BookName      string            `json:"book_name,omitempty"`
	ChapterNumber int               `json:"chapter_number,omitempty"`
	TagColors     map[string]string `json:"tag_colors,omitempty"`
	ExternalURL   string            `json:"external_url,omitempty"`
	Hostname      string            `json:"hostname,omitempty"`
	DisplayOrder  int               `json:"display_order"`
	CanDelete     bool              `json:"can_delete"`
	CanReorder    bool              `json:"can_reorder"`
	Note          string            `json:"note,omitempty"`
}

// ReferenceCommands is the command/query surface the adapter drives.
type ReferenceCommands interface {
	ListBySource(ctx context.Context, ownerID, sourceID uuid.UUID) ([]*model.Link, error)
	AddInternal(ctx context.Context, ownerID, sourceID, targetID uuid.UUID) (*model.Link, error)
	AddExternal(ctx context.Context, ownerID, sourceID uuid.UUID, rawURL string) (*model.Link, error)
	Delete(ctx context.Context, ownerID, linkID uuid.UUID) (bool, error)
	SwapDisplayOrder(ctx context.Context, ownerID, linkA, linkB uuid.UUID) error
}

// StudyDirectory resolves study and tag metadata for card display.
type StudyDirectory interface {
	GetStudiesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Study, error)
	GetTagsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Tag, error)
}

var (
	_ ReferenceCommands = (*service.ReferenceService)(nil)
	_ StudyDirectory    = (*service.StudyService)(nil)
)

// NewAdapter creates an adapter for one study's reference list.
func NewAdapter(refs ReferenceCommands, directory StudyDirectory, ownerID, studyID uuid.UUID) *Adapter {
	return &Adapter{
		refs:      refs,
		directory: directory,
		ownerID:   ownerID,
		studyID:   studyID,
	}
}

// Adapter translates raw link rows into display cards and owns the
// optimistic-update policy for reordering. Reads are retried with
// exponential backoff; writes surface their failure immediately so the
// user never sees a false pending state.
type Adapter struct {
	refs      ReferenceCommands
	directory StudyDirectory
	ownerID   uuid.UUID
	studyID   uuid.UUID

	rows     []*model.Link
	studies  map[string]*model.Study
	tagColor map[string]string
}

// Refresh re-reads the link rows and the lookup metadata. Transient
// failures are retried up to three times with a doubling delay before the
// error is surfaced.
func (a *Adapter) Refresh(ctx context.Context) error {
	return a.withRetry(ctx, func() error {
		rows, err := a.refs.ListBySource(ctx, a.ownerID, a.studyID)
		if err != nil {
			return err
		}

		studies, err := a.directory.GetStudiesByOwner(ctx, a.ownerID)
		if err != nil {
			return err
		}

		tags, err := a.directory.GetTagsByOwner(ctx, a.ownerID)
		if err != nil {
			return err
		}

		a.rows = rows
		a.studies = make(map[string]*model.Study, len(studies))
		for _, study := range studies {
			a.studies[study.ID] = study
		}
		a.tagColor = make(map[string]string, len(tags))
		for _, tag := range tags {
			a.tagColor[tag.Name] = tag.Color
		}

		return nil
	})
}

// Cards renders the current rows into display cards.
func (a *Adapter) Cards() []Card {
	cards := make([]Card, 0, len(a.rows))
	for _, row := range a.rows {
		cards = append(cards, a.card(row))
	}
	return cards
}

func (a *Adapter) card(row *model.Link) Card {
	card := Card{
		ID:           row.ID,
		DisplayOrder: row.DisplayOrder,
	}

	if !row.Internal() {
		card.Category = CategoryExternal
		card.ExternalURL = row.ExternalURL
		card.CanDelete = true
		card.CanReorder = true
		if u, err := url.Parse(row.ExternalURL); err == nil {
			card.Hostname = u.Hostname()
		}
		return card
	}

	card.TargetStudyID = row.Target()
	if study, ok := a.studies[card.TargetStudyID]; ok {
		card.Title = study.Title
		card.BookName = study.BookName
		card.ChapterNumber = study.ChapterNumber
		card.TagColors = make(map[string]string)
		for _, name := range study.TagNames() {
			card.TagColors[name] = a.tagColor[name]
		}
	}

	if row.IsForwardCreated {
		card.Category = CategoryInternalForward
		card.CanDelete = true
		card.CanReorder = true
	} else {
		card.Category = CategoryInternalReverse
		card.Note = MirrorNote
	}

	return card
}

// AddReference creates a reference from this study to the target study and
// re-reads the list on success.
func (a *Adapter) AddReference(ctx context.Context, targetID uuid.UUID) bool {
	if _, err := a.refs.AddInternal(ctx, a.ownerID, a.studyID, targetID); err != nil {
		logrus.Errorf("add reference failed: %v", err)
		return false
	}

	a.reload(ctx)
	return true
}

// AddExternalLink attaches an outside URL to this study.
func (a *Adapter) AddExternalLink(ctx context.Context, rawURL string) bool {
	if _, err := a.refs.AddExternal(ctx, a.ownerID, a.studyID, rawURL); err != nil {
		logrus.Errorf("add external link failed: %v", err)
		return false
	}

	a.reload(ctx)
	return true
}

// DeleteReference removes a reference (and its mirror, if any).
func (a *Adapter) DeleteReference(ctx context.Context, linkID uuid.UUID) bool {
	deleted, err := a.refs.Delete(ctx, a.ownerID, linkID)
	if err != nil {
		logrus.Errorf("delete reference failed: %v", err)
		return false
	}
	if !deleted {
		return false
	}

	a.reload(ctx)
	return true
}

// ReorderReference moves a reference one position up or down. The local
// list is reordered optimistically and rolled back if the swap fails or
// the move is already at a boundary.
func (a *Adapter) ReorderReference(ctx context.Context, linkID uuid.UUID, direction service.Direction) bool {
	idx := -1
	for i, row := range a.rows {
		if row.ID == linkID.String() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	var other int
	switch direction {
	case service.DirectionUp:
		other = idx - 1
	case service.DirectionDown:
		other = idx + 1
	default:
		return false
	}
	if other < 0 || other >= len(a.rows) {
		return false
	}

	otherID, err := uuid.Parse(a.rows[other].ID)
	if err != nil {
		return false
	}

	// optimistic local swap, rolled back below on failure
	a.swapLocal(idx, other)

	if err := a.refs.SwapDisplayOrder(ctx, a.ownerID, linkID, otherID); err != nil {
		a.swapLocal(idx, other)
		logrus.Errorf("reorder reference failed: %v", err)
		return false
	}

	return true
}

func (a *Adapter) swapLocal(i, j int) {
	a.rows[i], a.rows[j] = a.rows[j], a.rows[i]
	a.rows[i].DisplayOrder, a.rows[j].DisplayOrder = a.rows[j].DisplayOrder, a.rows[i].DisplayOrder
}

// reload reconciles the local view with the store after a mutation. The
// mutation already succeeded, so a failed re-read only logs.
func (a *Adapter) reload(ctx context.Context) {
	if err := a.Refresh(ctx); err != nil {
		logrus.Errorf("error refreshing reference list: %v", err)
	}
}

func (a *Adapter) withRetry(ctx context.Context, f func() error) error {
	delay := readRetryDelay

	var err error
	for attempt := 0; attempt < readAttempts; attempt++ {
		if err = f(); err == nil {
			return nil
		}

		if attempt == readAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return err
}
