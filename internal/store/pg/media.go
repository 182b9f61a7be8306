package pg

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

const mediaCols = `id, key, url, width, height, alt, caption, gallery_id, created_by, created_at`

// ListMediaByKeyPrefix agrupa media por sección: el prefijo del key decide a
// qué superficie pertenece (hero/, gallery/photos/, ...).
func (s *Store) ListMediaByKeyPrefix(ctx context.Context, prefix string) ([]core.MediaImage, error) {
	q := `SELECT ` + mediaCols + ` FROM media_images WHERE key LIKE $1 || '%' ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, q, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.MediaImage
	for rows.Next() {
		var m core.MediaImage
		if err := rows.Scan(&m.ID, &m.Key, &m.URL, &m.Width, &m.Height,
			&m.Alt, &m.Caption, &m.GalleryID, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) CreateMedia(ctx context.Context, m *core.MediaImage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO media_images (id, key, url, width, height, alt, caption, gallery_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return s.pool.QueryRow(ctx, q, m.ID, m.Key, m.URL, m.Width, m.Height,
		m.Alt, m.Caption, m.GalleryID, m.CreatedBy).Scan(&m.CreatedAt)
}

func (s *Store) UpdateMedia(ctx context.Context, m *core.MediaImage) error {
	const q = `
		UPDATE media_images SET key = $2, url = $3, width = $4, height = $5,
			alt = $6, caption = $7, gallery_id = $8
		WHERE id = $1
		RETURNING created_at`

	err := s.pool.QueryRow(ctx, q, m.ID, m.Key, m.URL, m.Width, m.Height,
		m.Alt, m.Caption, m.GalleryID).Scan(&m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.ErrNotFound
	}
	return err
}

// DeleteMedia devuelve la fila eliminada para que el servicio pueda borrar el
// objeto correspondiente del bucket.
func (s *Store) DeleteMedia(ctx context.Context, id string) (*core.MediaImage, error) {
	q := `DELETE FROM media_images WHERE id = $1 RETURNING ` + mediaCols

	var m core.MediaImage
	err := s.pool.QueryRow(ctx, q, id).Scan(&m.ID, &m.Key, &m.URL, &m.Width, &m.Height,
		&m.Alt, &m.Caption, &m.GalleryID, &m.CreatedBy, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
