// Package content implementa el CRUD del contenido del sitio: noticias,
// testimonios, equipo, voluntarios y media (hero + galería). Los listados
// públicos se sirven a través de un cache chico con invalidación en cada
// mutación.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/content"
	"github.com/sakhu-org/sakhu-backend/internal/cache"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/storage"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
	"github.com/sakhu-org/sakhu-backend/internal/validation"
)

var (
	ErrMissingFields = errors.New("content: missing required fields")
	ErrInvalidSlug   = errors.New("content: invalid slug")
	ErrInvalidRating = errors.New("content: rating out of range")
	ErrNotFound      = errors.New("content: not found")
	ErrSlugTaken     = errors.New("content: slug already in use")
)

const cacheTTL = 5 * time.Minute

// Remover es lo único que el servicio necesita del object store: limpiar
// objetos huérfanos tras un delete. Best-effort.
type Remover interface {
	Remove(ctx context.Context, key string) error
}

type Store interface {
	core.NewsRepository
	core.TestimonialRepository
	core.TeamRepository
	core.MediaRepository
}

type Service struct {
	store   Store
	cache   cache.Cache
	objects Remover
}

func NewService(store Store, c cache.Cache, objects Remover) *Service {
	if c == nil {
		c = cache.NewMemory(cacheTTL)
	}
	return &Service{store: store, cache: c, objects: objects}
}

// cachedList sirve un listado desde cache, o lo carga y lo deja cacheado.
func cachedList[T any](ctx context.Context, s *Service, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if b, ok := s.cache.Get(key); ok {
		var out []T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		s.cache.Delete(key)
	}
	out, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(out); err == nil {
		s.cache.Set(key, b, cacheTTL)
	}
	return out, nil
}

func (s *Service) invalidate(keys ...string) {
	for _, k := range keys {
		s.cache.Delete(k)
	}
}

// removeObject borra el objeto del bucket si la URL/key apunta a nuestro
// storage. Nunca falla la operación que lo dispara.
func (s *Service) removeObject(ctx context.Context, key string) {
	if s.objects == nil || key == "" {
		return
	}
	if err := s.objects.Remove(ctx, key); err != nil {
		logger.From(ctx).Warn("object cleanup failed", logger.Key(key), logger.Err(err))
	}
}

// ── Noticias ────────────────────────────────────────────────────────

const cacheKeyNews = "content:news"

func (s *Service) ListNews(ctx context.Context) ([]core.News, error) {
	return cachedList(ctx, s, cacheKeyNews, s.store.ListNews)
}

func (s *Service) CreateNews(ctx context.Context, req dto.NewsRequest) (*core.News, error) {
	n, err := newsFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateNews(ctx, n); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	s.invalidate(cacheKeyNews)
	return n, nil
}

func (s *Service) UpdateNews(ctx context.Context, id string, req dto.NewsRequest) (*core.News, error) {
	n, err := newsFromRequest(req)
	if err != nil {
		return nil, err
	}
	n.ID = id
	if err := s.store.UpdateNews(ctx, n); err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, core.ErrConflict):
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	s.invalidate(cacheKeyNews)
	return n, nil
}

func (s *Service) DeleteNews(ctx context.Context, id string) error {
	if err := s.store.DeleteNews(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(cacheKeyNews)
	return nil
}

func newsFromRequest(req dto.NewsRequest) (*core.News, error) {
	title := strings.TrimSpace(req.Title)
	slug := strings.TrimSpace(strings.ToLower(req.Slug))
	if title == "" || slug == "" || strings.TrimSpace(req.Content) == "" {
		return nil, ErrMissingFields
	}
	if !validation.ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}
	n := &core.News{
		Title:       title,
		Slug:        slug,
		Summary:     req.Summary,
		Content:     req.Content,
		HeroImage:   req.HeroImage,
		IsPublished: req.IsPublished,
	}
	if req.IsPublished {
		now := time.Now()
		n.PublishedAt = &now
	}
	return n, nil
}

// ── Testimonios ─────────────────────────────────────────────────────

const cacheKeyTestimonials = "content:testimonials"

func (s *Service) ListTestimonials(ctx context.Context) ([]core.Testimonial, error) {
	return cachedList(ctx, s, cacheKeyTestimonials, s.store.ListTestimonials)
}

func (s *Service) CreateTestimonial(ctx context.Context, req dto.TestimonialRequest) (*core.Testimonial, error) {
	t, err := testimonialFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateTestimonial(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(cacheKeyTestimonials)
	return t, nil
}

func (s *Service) UpdateTestimonial(ctx context.Context, id string, req dto.TestimonialRequest) (*core.Testimonial, error) {
	t, err := testimonialFromRequest(req)
	if err != nil {
		return nil, err
	}
	t.ID = id
	if err := s.store.UpdateTestimonial(ctx, t); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(cacheKeyTestimonials)
	return t, nil
}

func (s *Service) DeleteTestimonial(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteTestimonial(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(cacheKeyTestimonials)
	if deleted.Avatar != nil {
		s.removeObject(ctx, *deleted.Avatar)
	}
	return nil
}

func testimonialFromRequest(req dto.TestimonialRequest) (*core.Testimonial, error) {
	name := strings.TrimSpace(req.Name)
	quote := strings.TrimSpace(req.Quote)
	if name == "" || quote == "" {
		return nil, ErrMissingFields
	}
	rating := req.Rating
	if rating == 0 {
		rating = 5
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &core.Testimonial{
		Name:     name,
		Role:     req.Role,
		Quote:    quote,
		Rating:   rating,
		Avatar:   req.Avatar,
		Order:    req.Order,
		IsActive: active,
	}, nil
}

// ── Equipo y voluntarios ────────────────────────────────────────────

const (
	cacheKeyTeam       = "content:team"
	cacheKeyVolunteers = "content:volunteers"
)

func (s *Service) ListTeam(ctx context.Context) ([]core.TeamMember, error) {
	return cachedList(ctx, s, cacheKeyTeam, s.store.ListTeamMembers)
}

func (s *Service) CreateTeamMember(ctx context.Context, req dto.TeamMemberRequest) (*core.TeamMember, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrMissingFields
	}
	m := &core.TeamMember{Name: name, Designation: req.Designation, AvatarURL: req.AvatarURL}
	if err := s.store.CreateTeamMember(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate(cacheKeyTeam)
	return m, nil
}

func (s *Service) UpdateTeamMember(ctx context.Context, id string, req dto.TeamMemberRequest) (*core.TeamMember, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrMissingFields
	}
	m := &core.TeamMember{ID: id, Name: name, Designation: req.Designation, AvatarURL: req.AvatarURL}
	if err := s.store.UpdateTeamMember(ctx, m); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(cacheKeyTeam)
	return m, nil
}

func (s *Service) DeleteTeamMember(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteTeamMember(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(cacheKeyTeam)
	if deleted.AvatarURL != nil {
		s.removeObject(ctx, *deleted.AvatarURL)
	}
	return nil
}

func (s *Service) ListVolunteers(ctx context.Context) ([]core.VolunteerMember, error) {
	return cachedList(ctx, s, cacheKeyVolunteers, s.store.ListVolunteerMembers)
}

func (s *Service) CreateVolunteerMember(ctx context.Context, req dto.VolunteerMemberRequest) (*core.VolunteerMember, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrMissingFields
	}
	m := &core.VolunteerMember{Name: name, AvatarURL: req.AvatarURL}
	if err := s.store.CreateVolunteerMember(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate(cacheKeyVolunteers)
	return m, nil
}

func (s *Service) UpdateVolunteerMember(ctx context.Context, id string, req dto.VolunteerMemberRequest) (*core.VolunteerMember, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrMissingFields
	}
	m := &core.VolunteerMember{ID: id, Name: name, AvatarURL: req.AvatarURL}
	if err := s.store.UpdateVolunteerMember(ctx, m); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(cacheKeyVolunteers)
	return m, nil
}

func (s *Service) DeleteVolunteerMember(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteVolunteerMember(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(cacheKeyVolunteers)
	if deleted.AvatarURL != nil {
		s.removeObject(ctx, *deleted.AvatarURL)
	}
	return nil
}

// ── Media (hero y galería) ──────────────────────────────────────────

// ListMedia lista por superficie usando el prefijo del key.
func (s *Service) ListMedia(ctx context.Context, feature, qualifier string) ([]core.MediaImage, error) {
	prefix := storage.KeyPrefix(feature, qualifier)
	key := "content:media:" + prefix
	return cachedList(ctx, s, key, func(ctx context.Context) ([]core.MediaImage, error) {
		return s.store.ListMediaByKeyPrefix(ctx, prefix)
	})
}

// RegisterMedia guarda la referencia de un objeto ya subido vía presign.
func (s *Service) RegisterMedia(ctx context.Context, publicURL func(string) string, req dto.MediaRequest, createdBy string) (*core.MediaImage, error) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return nil, ErrMissingFields
	}
	m := &core.MediaImage{
		Key:       key,
		URL:       publicURL(key),
		Width:     req.Width,
		Height:    req.Height,
		Alt:       req.Alt,
		Caption:   req.Caption,
		GalleryID: req.GalleryID,
	}
	if createdBy != "" {
		m.CreatedBy = &createdBy
	}
	if err := s.store.CreateMedia(ctx, m); err != nil {
		return nil, err
	}
	s.invalidateMediaFor(key)
	return m, nil
}

func (s *Service) DeleteMedia(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteMedia(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateMediaFor(deleted.Key)
	s.removeObject(ctx, deleted.Key)
	return nil
}

// invalidateMediaFor tira las entradas de cache que cubren el key dado.
func (s *Service) invalidateMediaFor(key string) {
	for _, prefix := range []string{
		storage.KeyPrefix(storage.FeatureHero, ""),
		storage.KeyPrefix(storage.FeatureGallery, ""),
		storage.KeyPrefix(storage.FeatureGallery, "video"),
	} {
		if strings.HasPrefix(key, prefix) {
			s.invalidate("content:media:" + prefix)
		}
	}
	// Hero por breakpoint: también la entrada específica.
	if strings.HasPrefix(key, "hero/") {
		parts := strings.SplitN(key, "/", 3)
		if len(parts) >= 2 {
			s.invalidate("content:media:hero/" + parts[1] + "/")
		}
	}
}
