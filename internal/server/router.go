package server

import (
	"github.com/go-chi/chi/v5"

	"github.com/scriptura/studyref/internal/service"
)

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(refs *service.ReferenceService, studies *service.StudyService, resolve IdentityResolver) chi.Router {
	h := NewHandler(refs, studies)

	r := chi.NewRouter()
	r.Use(RequestTimeMiddleware)
	r.Use(OwnerMiddleware(resolve))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/studies", h.ListStudies)
		r.Post("/studies", h.CreateStudy)
		r.Post("/tags", h.CreateTag)

		r.Get("/studies/{studyID}/references", h.ListReferences)
		r.Post("/studies/{studyID}/references", h.AddReference)

		r.Delete("/references/{referenceID}", h.DeleteReference)
		r.Post("/references/{referenceID}/reorder", h.ReorderReference)
	})

	return r
}
