package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scriptura/studyref/internal/service"
	"github.com/scriptura/studyref/internal/view"
)

func NewHandler(refs *service.ReferenceService, studies *service.StudyService) *Handler {
	return &Handler{
		refs:    refs,
		studies: studies,
	}
}

type Handler struct {
	refs    *service.ReferenceService
	studies *service.StudyService
}

func (h *Handler) ListStudies(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("missing identity"))
		return
	}

	studies, err := h.studies.GetStudiesByOwner(r.Context(), ownerID)
	if err != nil {
		h.fail(w, err)
		return
	}

	resp := StudyListResponse{Studies: make([]StudyResponse, 0, len(studies)), Total: len(studies)}
	for _, study := range studies {
		resp.Studies = append(resp.Studies, StudyResponse{
			ID:            study.ID,
			Title:         study.Title,
			BookName:      study.BookName,
			ChapterNumber: study.ChapterNumber,
			Tags:          study.TagNames(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateStudy(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("missing identity"))
		return
	}

	var req CreateStudyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("malformed request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	study, err := h.studies.CreateStudy(r.Context(), ownerID, req.Title, req.BookName, req.ChapterNumber, req.Tags)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, StudyResponse{
		ID:            study.ID,
		Title:         study.Title,
		BookName:      study.BookName,
		ChapterNumber: study.ChapterNumber,
		Tags:          study.TagNames(),
	})
}

func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("missing identity"))
		return
	}

	var req CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("malformed request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if _, err := h.studies.CreateTag(r.Context(), ownerID, req.Name, req.Color, req.Type); err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, MutationResponse{Success: true})
}

// ListReferences renders the reference cards of one study, the categorized
// view the UI consumes.
func (h *Handler) ListReferences(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("missing identity"))
		return
	}

	studyID, err := uuid.Parse(chi.URLParam(r, "studyID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid study id"))
		return
	}

	adapter := view.NewAdapter(h.refs, h.studies, ownerID, studyID)
	if err := adapter.Refresh(r.Context()); err != nil {
		h.fail(w, err)
		return
	}

	cards := adapter.Cards()
	writeJSON(w, http.StatusOK, ReferenceListResponse{References: cards, Total: len(cards)})
}

func (h *Handler) AddReference(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("missing identity"))
		return
	}

	studyID, err := uuid.Parse(chi.URLParam(r, "studyID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid study id"))
		return
	}

	var req AddReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("malformed request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if req.URL != "" {
		link, err := h.refs.AddExternal(r.Context(), ownerID, studyID, req.URL)
		if err != nil {
			h.fail(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, MutationResponse{Success: true, ReferenceID: link.ID})
		return
	}

	targetID, err := uuid.Parse(req.TargetStudyID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid target study id"))
		return
	}

	link, err := h.refs.AddInternal(r.Context(), ownerID, studyID, targetID)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, MutationResponse{Success: true, ReferenceID: link.ID})
}

func (h *Handler) DeleteReference(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("missing identity"))
		return
	}

	linkID, err := uuid.Parse(chi.URLParam(r, "referenceID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid reference id"))
		return
	}

	deleted, err := h.refs.Delete(r.Context(), ownerID, linkID)
	if err != nil {
		h.fail(w, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorBody(service.ErrLinkNotFound.Error()))
		return
	}

	writeJSON(w, http.StatusOK, MutationResponse{Success: true})
}

func (h *Handler) ReorderReference(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("missing identity"))
		return
	}

	linkID, err := uuid.Parse(chi.URLParam(r, "referenceID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid reference id"))
		return
	}

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("malformed request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if err := h.refs.Reorder(r.Context(), ownerID, linkID, service.Direction(req.Direction)); err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MutationResponse{Success: true})
}

// fail maps service errors to HTTP statuses. Unexpected errors are logged
// and reported as a generic failure.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSelfReference),
		errors.Is(err, service.ErrInvalidURL),
		errors.Is(err, service.ErrCrossStudySwap),
		errors.Is(err, service.ErrInvalidDirection):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, service.ErrDuplicateReference),
		errors.Is(err, service.ErrOrderBoundary):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, service.ErrTargetNotFound),
		errors.Is(err, service.ErrStudyNotFound),
		errors.Is(err, service.ErrLinkNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	default:
		logrus.Errorf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
