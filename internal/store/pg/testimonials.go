package pg

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

func (s *Store) ListTestimonials(ctx context.Context) ([]core.Testimonial, error) {
	const q = `
		SELECT id, name, role, quote, rating, avatar, sort_order, is_active, created_at, updated_at
		FROM testimonials
		ORDER BY sort_order ASC, created_at DESC`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Testimonial
	for rows.Next() {
		var t core.Testimonial
		if err := rows.Scan(&t.ID, &t.Name, &t.Role, &t.Quote, &t.Rating,
			&t.Avatar, &t.Order, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) CreateTestimonial(ctx context.Context, t *core.Testimonial) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO testimonials (id, name, role, quote, rating, avatar, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return s.pool.QueryRow(ctx, q, t.ID, t.Name, t.Role, t.Quote, t.Rating,
		t.Avatar, t.Order, t.IsActive).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (s *Store) UpdateTestimonial(ctx context.Context, t *core.Testimonial) error {
	const q = `
		UPDATE testimonials SET
			name = $2, role = $3, quote = $4, rating = $5, avatar = $6,
			sort_order = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := s.pool.QueryRow(ctx, q, t.ID, t.Name, t.Role, t.Quote, t.Rating,
		t.Avatar, t.Order, t.IsActive).Scan(&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.ErrNotFound
	}
	return err
}

// DeleteTestimonial devuelve la fila eliminada para poder limpiar su avatar
// del object store.
func (s *Store) DeleteTestimonial(ctx context.Context, id string) (*core.Testimonial, error) {
	const q = `
		DELETE FROM testimonials WHERE id = $1
		RETURNING id, name, role, quote, rating, avatar, sort_order, is_active, created_at, updated_at`

	var t core.Testimonial
	err := s.pool.QueryRow(ctx, q, id).Scan(&t.ID, &t.Name, &t.Role, &t.Quote, &t.Rating,
		&t.Avatar, &t.Order, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
