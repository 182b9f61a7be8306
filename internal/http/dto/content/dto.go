// Package content define los contratos wire del contenido público del sitio.
package content

import "github.com/sakhu-org/sakhu-backend/internal/store/core"

// ListResponse es el sobre estándar de los listados públicos.
type ListResponse[T any] struct {
	Items []T `json:"items"`
}

func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items}
}

type NewsRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Summary     *string `json:"summary"`
	Content     string  `json:"content"`
	HeroImage   *string `json:"heroImage"`
	IsPublished bool    `json:"isPublished"`
}

type TestimonialRequest struct {
	Name     string  `json:"name"`
	Role     *string `json:"role"`
	Quote    string  `json:"quote"`
	Rating   int     `json:"rating"`
	Avatar   *string `json:"avatar"`
	Order    int     `json:"order"`
	IsActive *bool   `json:"isActive"`
}

type TeamMemberRequest struct {
	Name        string  `json:"name"`
	Designation *string `json:"designation"`
	AvatarURL   *string `json:"avatarUrl"`
}

type VolunteerMemberRequest struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

// MediaRequest registra media ya subida (el archivo viaja directo al bucket
// vía URL prefirmada; acá solo entra la referencia).
type MediaRequest struct {
	Key       string  `json:"key"`
	Alt       *string `json:"alt"`
	Caption   *string `json:"caption"`
	Width     *int    `json:"width"`
	Height    *int    `json:"height"`
	GalleryID *string `json:"galleryId"`
}

type MediaItem = core.MediaImage
