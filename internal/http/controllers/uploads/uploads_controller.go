// Package uploads contiene el controller de firmado de subidas.
package uploads

import (
	"errors"
	"net/http"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/uploads"
	httperrors "github.com/sakhu-org/sakhu-backend/internal/http/errors"
	"github.com/sakhu-org/sakhu-backend/internal/http/helpers"
	svc "github.com/sakhu-org/sakhu-backend/internal/http/services/uploads"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/storage"
)

// Controller maneja POST /api/uploads/sign.
type Controller struct {
	service *svc.Service
}

func NewController(service *svc.Service) *Controller {
	return &Controller{service: service}
}

// Sign valida y firma una subida directa al bucket.
func (c *Controller) Sign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("Uploads.Sign"),
	)

	var req dto.SignRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	resp, err := c.service.Sign(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrMissingFilename),
			errors.Is(err, storage.ErrUnknownFeature),
			errors.Is(err, storage.ErrMissingQualifier):
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		case errors.Is(err, storage.ErrContentType):
			httperrors.WriteError(w, httperrors.ErrUnsupportedMedia.WithDetail(err.Error()))
		case errors.Is(err, storage.ErrTooLarge):
			httperrors.WriteError(w, httperrors.ErrBodyTooLarge)
		case errors.Is(err, svc.ErrNotConfigured):
			httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("object storage no configurado"))
		default:
			log.Error("sign failed", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
		}
		return
	}

	log.Info("upload signed", logger.MediaKey(resp.Key))
	helpers.WriteJSON(w, http.StatusOK, resp)
}
