// Package forms contiene los controllers de los formularios públicos y del
// dashboard del panel.
package forms

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/forms"
	contentdto "github.com/sakhu-org/sakhu-backend/internal/http/dto/content"
	httperrors "github.com/sakhu-org/sakhu-backend/internal/http/errors"
	"github.com/sakhu-org/sakhu-backend/internal/http/helpers"
	svc "github.com/sakhu-org/sakhu-backend/internal/http/services/forms"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

// Controller maneja /api/forms/public/* y /api/admin/forms/*.
type Controller struct {
	service *svc.Service
}

func NewController(service *svc.Service) *Controller {
	return &Controller{service: service}
}

func mapError(err error) *httperrors.AppError {
	switch {
	case errors.Is(err, svc.ErrMissingName):
		return httperrors.ErrMissingFields.WithDetail("name requerido")
	case errors.Is(err, svc.ErrInvalidEmail):
		return httperrors.ErrBadRequest.WithDetail("email inválido")
	case errors.Is(err, svc.ErrInvalidAmount):
		return httperrors.ErrBadRequest.WithDetail("monto inválido")
	case errors.Is(err, svc.ErrNotFound):
		return httperrors.ErrNotFound
	default:
		return httperrors.ErrInternalServerError.WithCause(err)
	}
}

// submit factoriza el patrón de los tres formularios públicos.
func submit[R any](w http.ResponseWriter, r *http.Request, op string, do func(R) (string, error)) {
	var req R
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	id, err := do(req)
	if err != nil {
		logger.From(r.Context()).Warn("submission rejected",
			logger.Layer("controller"), logger.Op(op), logger.Err(err))
		httperrors.WriteError(w, mapError(err))
		return
	}
	logger.From(r.Context()).Info("submission accepted", logger.Op(op), logger.ID(id))
	helpers.WriteJSON(w, http.StatusCreated, dto.SubmitResponse{ID: id})
}

// SubmitContact maneja POST /api/forms/public/contact
func (c *Controller) SubmitContact(w http.ResponseWriter, r *http.Request) {
	submit(w, r, "Forms.SubmitContact", func(req dto.ContactRequest) (string, error) {
		return c.service.SubmitContact(r.Context(), req)
	})
}

// SubmitDonation maneja POST /api/forms/public/donation
func (c *Controller) SubmitDonation(w http.ResponseWriter, r *http.Request) {
	submit(w, r, "Forms.SubmitDonation", func(req dto.DonationRequest) (string, error) {
		return c.service.SubmitDonation(r.Context(), req)
	})
}

// SubmitVolunteer maneja POST /api/forms/public/volunteer
func (c *Controller) SubmitVolunteer(w http.ResponseWriter, r *http.Request) {
	submit(w, r, "Forms.SubmitVolunteer", func(req dto.VolunteerRequest) (string, error) {
		return c.service.SubmitVolunteer(r.Context(), req)
	})
}

// ── Lado admin ──────────────────────────────────────────────────────

func adminList[T any](w http.ResponseWriter, r *http.Request, op string, load func() ([]T, error)) {
	items, err := load()
	if err != nil {
		logger.From(r.Context()).Error("list failed",
			logger.Layer("controller"), logger.Op(op), logger.Err(err))
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, contentdto.NewListResponse(items))
}

func adminDelete(w http.ResponseWriter, r *http.Request, op string, del func(string) error) {
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

// ListContacts maneja GET /api/admin/forms/contact
func (c *Controller) ListContacts(w http.ResponseWriter, r *http.Request) {
	adminList(w, r, "Forms.ListContacts", func() ([]core.ContactSubmission, error) {
		return c.service.ListContacts(r.Context())
	})
}

// ListDonations maneja GET /api/admin/forms/donation
func (c *Controller) ListDonations(w http.ResponseWriter, r *http.Request) {
	adminList(w, r, "Forms.ListDonations", func() ([]core.DonationSubmission, error) {
		return c.service.ListDonations(r.Context())
	})
}

// ListVolunteers maneja GET /api/admin/forms/volunteer
func (c *Controller) ListVolunteers(w http.ResponseWriter, r *http.Request) {
	adminList(w, r, "Forms.ListVolunteers", func() ([]core.VolunteerSubmission, error) {
		return c.service.ListVolunteers(r.Context())
	})
}

// DeleteContact maneja DELETE /api/admin/forms/contact/{id}
func (c *Controller) DeleteContact(w http.ResponseWriter, r *http.Request) {
	adminDelete(w, r, "Forms.DeleteContact", func(id string) error {
		return c.service.DeleteContact(r.Context(), id)
	})
}

// DeleteDonation maneja DELETE /api/admin/forms/donation/{id}
func (c *Controller) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	adminDelete(w, r, "Forms.DeleteDonation", func(id string) error {
		return c.service.DeleteDonation(r.Context(), id)
	})
}

// DeleteVolunteer maneja DELETE /api/admin/forms/volunteer/{id}
func (c *Controller) DeleteVolunteer(w http.ResponseWriter, r *http.Request) {
	adminDelete(w, r, "Forms.DeleteVolunteer", func(id string) error {
		return c.service.DeleteVolunteer(r.Context(), id)
	})
}

// ListNotifications maneja GET /api/admin/notifications
func (c *Controller) ListNotifications(w http.ResponseWriter, r *http.Request) {
	adminList(w, r, "Forms.ListNotifications", func() ([]core.Notification, error) {
		return c.service.ListNotifications(r.Context())
	})
}

// Metrics maneja GET /api/admin/metrics?range=N (alias legado: ?days=N).
func (c *Controller) Metrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	days := 30
	raw := r.URL.Query().Get("range")
	if raw == "" {
		raw = r.URL.Query().Get("days")
	}
	if raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("range debe ser numérico"))
			return
		}
		days = v
	}

	resp, err := c.service.Metrics(ctx, days)
	if err != nil {
		logger.From(ctx).Error("metrics failed",
			logger.Layer("controller"), logger.Op("Forms.Metrics"), logger.Err(err))
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}
