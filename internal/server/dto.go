package server

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/scriptura/studyref/internal/view"
)

type CreateStudyRequest struct {
	Title         string   `json:"title"`
	BookName      string   `json:"book_name"`
	ChapterNumber int      `json:"chapter_number"`
	Tags          []string `json:"tags"`
}

func (r CreateStudyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 512)),
		validation.Field(&r.ChapterNumber, validation.Min(0)),
	)
}

type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 128)),
	)
}

// AddReferenceRequest carries either a target study id (internal reference)
// or an external URL, never both.
type AddReferenceRequest struct {
	TargetStudyID string `json:"target_study_id,omitempty"`
	URL           string `json:"url,omitempty"`
}

func (r AddReferenceRequest) Validate() error {
	if (r.TargetStudyID == "") == (r.URL == "") {
		return validation.NewError("validation_reference_body",
			"exactly one of target_study_id and url must be set")
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.TargetStudyID, is.UUID),
	)
}

type ReorderRequest struct {
	Direction string `json:"direction"`
}

func (r ReorderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Direction, validation.Required, validation.In("up", "down")),
	)
}

type StudyResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	BookName      string   `json:"book_name,omitempty"`
	ChapterNumber int      `json:"chapter_number,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

type StudyListResponse struct {
	Studies []StudyResponse `json:"studies"`
	Total   int             `json:"total"`
}

type ReferenceListResponse struct {
	References []view.Card `json:"references"`
	Total      int         `json:"total"`
}

type MutationResponse struct {
	Success     bool   `json:"success"`
	ReferenceID string `json:"reference_id,omitempty"`
}
