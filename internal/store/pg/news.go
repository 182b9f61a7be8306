package pg

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

func (s *Store) ListNews(ctx context.Context) ([]core.News, error) {
	const q = `
		SELECT id, title, slug, summary, content, hero_image, is_published, published_at, created_at, updated_at
		FROM news
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.News
	for rows.Next() {
		var n core.News
		if err := rows.Scan(&n.ID, &n.Title, &n.Slug, &n.Summary, &n.Content,
			&n.HeroImage, &n.IsPublished, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) CreateNews(ctx context.Context, n *core.News) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO news (id, title, slug, summary, content, hero_image, is_published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := s.pool.QueryRow(ctx, q, n.ID, n.Title, n.Slug, n.Summary, n.Content,
		n.HeroImage, n.IsPublished, n.PublishedAt).Scan(&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" { // slug único
			return core.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) UpdateNews(ctx context.Context, n *core.News) error {
	const q = `
		UPDATE news SET
			title = $2, slug = $3, summary = $4, content = $5, hero_image = $6,
			is_published = $7, published_at = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := s.pool.QueryRow(ctx, q, n.ID, n.Title, n.Slug, n.Summary, n.Content,
		n.HeroImage, n.IsPublished, n.PublishedAt).Scan(&n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.ErrNotFound
	}
	if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
		return core.ErrConflict
	}
	return err
}

func (s *Store) DeleteNews(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
