package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/content"
	"github.com/sakhu-org/sakhu-backend/internal/cache"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

// fakeStore implementa Store en memoria, contando lecturas para verificar el
// comportamiento del cache.
type fakeStore struct {
	news         []core.News
	testimonials []core.Testimonial
	team         []core.TeamMember
	volunteers   []core.VolunteerMember
	media        []core.MediaImage

	newsListCalls int
}

func (f *fakeStore) ListNews(ctx context.Context) ([]core.News, error) {
	f.newsListCalls++
	return append([]core.News(nil), f.news...), nil
}

func (f *fakeStore) CreateNews(ctx context.Context, n *core.News) error {
	for _, existing := range f.news {
		if existing.Slug == n.Slug {
			return core.ErrConflict
		}
	}
	n.ID = "news-1"
	f.news = append(f.news, *n)
	return nil
}

func (f *fakeStore) UpdateNews(ctx context.Context, n *core.News) error {
	for i := range f.news {
		if f.news[i].ID == n.ID {
			f.news[i] = *n
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeStore) DeleteNews(ctx context.Context, id string) error {
	for i := range f.news {
		if f.news[i].ID == id {
			f.news = append(f.news[:i], f.news[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeStore) ListTestimonials(ctx context.Context) ([]core.Testimonial, error) {
	return append([]core.Testimonial(nil), f.testimonials...), nil
}

func (f *fakeStore) CreateTestimonial(ctx context.Context, t *core.Testimonial) error {
	t.ID = "t-1"
	f.testimonials = append(f.testimonials, *t)
	return nil
}

func (f *fakeStore) UpdateTestimonial(ctx context.Context, t *core.Testimonial) error {
	for i := range f.testimonials {
		if f.testimonials[i].ID == t.ID {
			f.testimonials[i] = *t
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeStore) DeleteTestimonial(ctx context.Context, id string) (*core.Testimonial, error) {
	for i := range f.testimonials {
		if f.testimonials[i].ID == id {
			deleted := f.testimonials[i]
			f.testimonials = append(f.testimonials[:i], f.testimonials[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeStore) ListTeamMembers(ctx context.Context) ([]core.TeamMember, error) {
	return append([]core.TeamMember(nil), f.team...), nil
}

func (f *fakeStore) CreateTeamMember(ctx context.Context, m *core.TeamMember) error {
	m.ID = "tm-1"
	f.team = append(f.team, *m)
	return nil
}

func (f *fakeStore) UpdateTeamMember(ctx context.Context, m *core.TeamMember) error {
	for i := range f.team {
		if f.team[i].ID == m.ID {
			f.team[i] = *m
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeStore) DeleteTeamMember(ctx context.Context, id string) (*core.TeamMember, error) {
	for i := range f.team {
		if f.team[i].ID == id {
			deleted := f.team[i]
			f.team = append(f.team[:i], f.team[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeStore) ListVolunteerMembers(ctx context.Context) ([]core.VolunteerMember, error) {
	return append([]core.VolunteerMember(nil), f.volunteers...), nil
}

func (f *fakeStore) CreateVolunteerMember(ctx context.Context, m *core.VolunteerMember) error {
	m.ID = "vm-1"
	f.volunteers = append(f.volunteers, *m)
	return nil
}

func (f *fakeStore) UpdateVolunteerMember(ctx context.Context, m *core.VolunteerMember) error {
	for i := range f.volunteers {
		if f.volunteers[i].ID == m.ID {
			f.volunteers[i] = *m
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeStore) DeleteVolunteerMember(ctx context.Context, id string) (*core.VolunteerMember, error) {
	for i := range f.volunteers {
		if f.volunteers[i].ID == id {
			deleted := f.volunteers[i]
			f.volunteers = append(f.volunteers[:i], f.volunteers[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeStore) ListMediaByKeyPrefix(ctx context.Context, prefix string) ([]core.MediaImage, error) {
	var out []core.MediaImage
	for _, m := range f.media {
		if len(m.Key) >= len(prefix) && m.Key[:len(prefix)] == prefix {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateMedia(ctx context.Context, m *core.MediaImage) error {
	m.ID = "media-1"
	f.media = append(f.media, *m)
	return nil
}

func (f *fakeStore) UpdateMedia(ctx context.Context, m *core.MediaImage) error { return nil }

func (f *fakeStore) DeleteMedia(ctx context.Context, id string) (*core.MediaImage, error) {
	for i := range f.media {
		if f.media[i].ID == id {
			deleted := f.media[i]
			f.media = append(f.media[:i], f.media[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, core.ErrNotFound
}

type fakeRemover struct {
	removed []string
	err     error
}

func (f *fakeRemover) Remove(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	return f.err
}

func newTestService(store *fakeStore) (*Service, *fakeRemover) {
	remover := &fakeRemover{}
	return NewService(store, cache.NewMemory(time.Minute), remover), remover
}

func TestCreateNewsValidation(t *testing.T) {
	store := &fakeStore{}
	s, _ := newTestService(store)
	ctx := context.Background()

	_, err := s.CreateNews(ctx, dto.NewsRequest{Title: "Sin slug", Content: "x"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = s.CreateNews(ctx, dto.NewsRequest{Title: "T", Slug: "Mayúsculas!", Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidSlug)

	n, err := s.CreateNews(ctx, dto.NewsRequest{
		Title: "  Título  ", Slug: "titulo-valido", Content: "cuerpo", IsPublished: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Título", n.Title)
	require.NotNil(t, n.PublishedAt)

	// slug duplicado
	_, err = s.CreateNews(ctx, dto.NewsRequest{Title: "Otro", Slug: "titulo-valido", Content: "x"})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestListNewsUsesCache(t *testing.T) {
	store := &fakeStore{news: []core.News{{ID: "n1", Slug: "a", Title: "A", Content: "x"}}}
	s, _ := newTestService(store)
	ctx := context.Background()

	_, err := s.ListNews(ctx)
	require.NoError(t, err)
	_, err = s.ListNews(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.newsListCalls, "la segunda lectura debe salir del cache")

	// una mutación invalida el cache
	_, err = s.CreateNews(ctx, dto.NewsRequest{Title: "B", Slug: "b", Content: "x"})
	require.NoError(t, err)
	items, err := s.ListNews(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.newsListCalls)
	assert.Len(t, items, 2)
}

func TestTestimonialRatingRules(t *testing.T) {
	s, _ := newTestService(&fakeStore{})
	ctx := context.Background()

	_, err := s.CreateTestimonial(ctx, dto.TestimonialRequest{Name: "Ana", Quote: "q", Rating: 9})
	assert.ErrorIs(t, err, ErrInvalidRating)

	// rating 0 cae al default 5, IsActive nil cae a true
	tm, err := s.CreateTestimonial(ctx, dto.TestimonialRequest{Name: "Ana", Quote: "q"})
	require.NoError(t, err)
	assert.Equal(t, 5, tm.Rating)
	assert.True(t, tm.IsActive)
}

func TestDeleteTestimonialRemovesAvatar(t *testing.T) {
	avatar := "testimonials/home/image/20260101-x-ana.jpg"
	store := &fakeStore{testimonials: []core.Testimonial{{ID: "t-9", Name: "Ana", Quote: "q", Avatar: &avatar}}}
	s, remover := newTestService(store)

	require.NoError(t, s.DeleteTestimonial(context.Background(), "t-9"))
	assert.Equal(t, []string{avatar}, remover.removed)

	err := s.DeleteTestimonial(context.Background(), "t-9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterAndDeleteMedia(t *testing.T) {
	store := &fakeStore{}
	s, remover := newTestService(store)
	ctx := context.Background()

	publicURL := func(key string) string { return "https://cdn.example.org/" + key }
	m, err := s.RegisterMedia(ctx, publicURL, dto.MediaRequest{Key: "gallery/photos/2026/08/x.jpg"}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.org/gallery/photos/2026/08/x.jpg", m.URL)
	require.NotNil(t, m.CreatedBy)
	assert.Equal(t, "user-1", *m.CreatedBy)

	_, err = s.RegisterMedia(ctx, publicURL, dto.MediaRequest{}, "")
	assert.ErrorIs(t, err, ErrMissingFields)

	require.NoError(t, s.DeleteMedia(ctx, m.ID))
	assert.Equal(t, []string{m.Key}, remover.removed)
}

func TestRemoverFailureDoesNotFailDelete(t *testing.T) {
	avatar := "team/20260101-x-foto.jpg"
	store := &fakeStore{team: []core.TeamMember{{ID: "tm-9", Name: "Jorge", AvatarURL: &avatar}}}
	remover := &fakeRemover{err: errors.New("bucket down")}
	s := NewService(store, cache.NewMemory(time.Minute), remover)

	assert.NoError(t, s.DeleteTeamMember(context.Background(), "tm-9"))
}
