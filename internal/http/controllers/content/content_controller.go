// Package content contiene los controllers del contenido del sitio: lecturas
// públicas y mutaciones de editor.
package content

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/content"
	httperrors "github.com/sakhu-org/sakhu-backend/internal/http/errors"
	"github.com/sakhu-org/sakhu-backend/internal/http/helpers"
	svc "github.com/sakhu-org/sakhu-backend/internal/http/services/content"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

// Controller maneja /api/news, /api/testimonials, /api/team, /api/volunteers,
// /api/hero y /api/gallery.
type Controller struct {
	service *svc.Service
}

func NewController(service *svc.Service) *Controller {
	return &Controller{service: service}
}

func mapError(err error) *httperrors.AppError {
	switch {
	case errors.Is(err, svc.ErrNotFound):
		return httperrors.ErrNotFound
	case errors.Is(err, svc.ErrSlugTaken):
		return httperrors.ErrConflict.WithDetail("slug ya en uso")
	case errors.Is(err, svc.ErrMissingFields):
		return httperrors.ErrMissingFields
	case errors.Is(err, svc.ErrInvalidSlug):
		return httperrors.ErrBadRequest.WithDetail("slug inválido")
	case errors.Is(err, svc.ErrInvalidRating):
		return httperrors.ErrBadRequest.WithDetail("rating fuera de rango (1-5)")
	default:
		return httperrors.ErrInternalServerError.WithCause(err)
	}
}

// list serializa un listado con el sobre estándar.
func list[T any](w http.ResponseWriter, r *http.Request, op string, load func() ([]T, error)) {
	items, err := load()
	if err != nil {
		logger.From(r.Context()).Error("list failed",
			logger.Layer("controller"), logger.Op(op), logger.Err(err))
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewListResponse(items))
}

// remove ejecuta un delete por {id} de path y responde el status estándar.
func remove(w http.ResponseWriter, r *http.Request, op string, del func(string) error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter)
		return
	}
	if err := del(id); err != nil {
		logger.From(r.Context()).Error("delete failed",
			logger.Layer("controller"), logger.Op(op), logger.ID(id), logger.Err(err))
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ── Noticias ────────────────────────────────────────────────────────

// ListNews maneja GET /api/news
func (c *Controller) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list(w, r, "Content.ListNews", func() ([]core.News, error) { return c.service.ListNews(ctx) })
}

// CreateNews maneja POST /api/news
func (c *Controller) CreateNews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req dto.NewsRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	n, err := c.service.CreateNews(ctx, req)
	if err != nil {
		logger.From(ctx).Error("create news failed",
			logger.Layer("controller"), logger.Op("Content.CreateNews"), logger.Err(err))
		httperrors.WriteError(w, mapError(err))
		return
	}
	logger.From(ctx).Info("news created", logger.ID(n.ID), logger.String("slug", n.Slug))
	helpers.WriteJSON(w, http.StatusCreated, n)
}

// UpdateNews maneja PUT /api/news/{id}
func (c *Controller) UpdateNews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if id == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter)
		return
	}
	var req dto.NewsRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	n, err := c.service.UpdateNews(ctx, id, req)
	if err != nil {
		logger.From(ctx).Error("update news failed",
			logger.Layer("controller"), logger.Op("Content.UpdateNews"), logger.ID(id), logger.Err(err))
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, n)
}

// DeleteNews maneja DELETE /api/news/{id}
func (c *Controller) DeleteNews(w http.ResponseWriter, r *http.Request) {
	remove(w, r, "Content.DeleteNews", func(id string) error {
		return c.service.DeleteNews(r.Context(), id)
	})
}

// ── Testimonios ─────────────────────────────────────────────────────

// ListTestimonials maneja GET /api/testimonials
func (c *Controller) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list(w, r, "Content.ListTestimonials", func() ([]core.Testimonial, error) {
		return c.service.ListTestimonials(ctx)
	})
}

// CreateTestimonial maneja POST /api/testimonials
func (c *Controller) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req dto.TestimonialRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	t, err := c.service.CreateTestimonial(ctx, req)
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, t)
}

// UpdateTestimonial maneja PUT /api/testimonials/{id}
func (c *Controller) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if id == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter)
		return
	}
	var req dto.TestimonialRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	t, err := c.service.UpdateTestimonial(ctx, id, req)
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, t)
}

// DeleteTestimonial maneja DELETE /api/testimonials/{id}
func (c *Controller) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	remove(w, r, "Content.DeleteTestimonial", func(id string) error {
		return c.service.DeleteTestimonial(r.Context(), id)
	})
}

// ── Equipo ──────────────────────────────────────────────────────────

// ListTeam maneja GET /api/team
func (c *Controller) ListTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list(w, r, "Content.ListTeam", func() ([]core.TeamMember, error) { return c.service.ListTeam(ctx) })
}

// CreateTeamMember maneja POST /api/team
func (c *Controller) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req dto.TeamMemberRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	m, err := c.service.CreateTeamMember(ctx, req)
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, m)
}

// UpdateTeamMember maneja PUT /api/team/{id}
func (c *Controller) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if id == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter)
		return
	}
	var req dto.TeamMemberRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	m, err := c.service.UpdateTeamMember(ctx, id, req)
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, m)
}

// DeleteTeamMember maneja DELETE /api/team/{id}
func (c *Controller) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	remove(w, r, "Content.DeleteTeamMember", func(id string) error {
		return c.service.DeleteTeamMember(r.Context(), id)
	})
}

// ── Voluntarios (roster) ────────────────────────────────────────────

// ListVolunteers maneja GET /api/volunteers
func (c *Controller) ListVolunteers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list(w, r, "Content.ListVolunteers", func() ([]core.VolunteerMember, error) {
		return c.service.ListVolunteers(ctx)
	})
}

// CreateVolunteer maneja POST /api/volunteers
func (c *Controller) CreateVolunteer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req dto.VolunteerMemberRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	m, err := c.service.CreateVolunteerMember(ctx, req)
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, m)
}

// UpdateVolunteer maneja PUT /api/volunteers/{id}
func (c *Controller) UpdateVolunteer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if id == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter)
		return
	}
	var req dto.VolunteerMemberRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	m, err := c.service.UpdateVolunteerMember(ctx, id, req)
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, m)
}

// DeleteVolunteer maneja DELETE /api/volunteers/{id}
func (c *Controller) DeleteVolunteer(w http.ResponseWriter, r *http.Request) {
	remove(w, r, "Content.DeleteVolunteer", func(id string) error {
		return c.service.DeleteVolunteerMember(r.Context(), id)
	})
}
