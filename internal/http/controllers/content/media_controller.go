package content

import (
	"net/http"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/content"
	httperrors "github.com/sakhu-org/sakhu-backend/internal/http/errors"
	"github.com/sakhu-org/sakhu-backend/internal/http/helpers"
	mw "github.com/sakhu-org/sakhu-backend/internal/http/middlewares"
	svc "github.com/sakhu-org/sakhu-backend/internal/http/services/content"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/storage"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

// MediaController maneja los assets del hero y la galería. El binario sube
// directo al bucket vía URL prefirmada; acá solo entran las referencias.
type MediaController struct {
	service   *svc.Service
	publicURL func(string) string
}

// NewMediaController arma el controller. publicURL viene del cliente de
// storage y convierte un object key en su URL pública.
func NewMediaController(service *svc.Service, publicURL func(string) string) *MediaController {
	return &MediaController{service: service, publicURL: publicURL}
}

// ListHero maneja GET /api/hero. Acepta ?breakpoint= para filtrar por
// variante responsive.
func (c *MediaController) ListHero(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	qualifier := r.URL.Query().Get("breakpoint")
	list(w, r, "Content.ListHero", func() ([]core.MediaImage, error) {
		return c.service.ListMedia(ctx, storage.FeatureHero, qualifier)
	})
}

// ListGalleryPhotos maneja GET /api/gallery/photo
func (c *MediaController) ListGalleryPhotos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list(w, r, "Content.ListGalleryPhotos", func() ([]core.MediaImage, error) {
		return c.service.ListMedia(ctx, storage.FeatureGallery, "")
	})
}

// ListGalleryVideos maneja GET /api/gallery/video
func (c *MediaController) ListGalleryVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list(w, r, "Content.ListGalleryVideos", func() ([]core.MediaImage, error) {
		return c.service.ListMedia(ctx, storage.FeatureGallery, "video")
	})
}

// Register maneja POST /api/media: guarda la referencia de un objeto ya
// subido con la URL prefirmada.
func (c *MediaController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("Content.RegisterMedia"),
	)

	var req dto.MediaRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	m, err := c.service.RegisterMedia(ctx, c.publicURL, req, mw.GetUserID(ctx))
	if err != nil {
		log.Error("register media failed", logger.Err(err))
		httperrors.WriteError(w, mapError(err))
		return
	}

	log.Info("media registered", logger.MediaKey(m.Key))
	helpers.WriteJSON(w, http.StatusCreated, m)
}

// Delete maneja DELETE /api/media/{id}: borra la fila y el objeto del bucket.
func (c *MediaController) Delete(w http.ResponseWriter, r *http.Request) {
	remove(w, r, "Content.DeleteMedia", func(id string) error {
		return c.service.DeleteMedia(r.Context(), id)
	})
}
