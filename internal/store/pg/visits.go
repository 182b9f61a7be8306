package pg

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

// CreateVisit registra una visita. Para page = "internal/keepalive" actúa como
// marcador durable de última ejecución exitosa del scheduler.
func (s *Store) CreateVisit(ctx context.Context, v *core.SiteVisit) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO site_visits (id, page, user_agent, ip)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	return s.pool.QueryRow(ctx, q, v.ID, v.Page, v.UserAgent, v.IP).Scan(&v.CreatedAt)
}

func (s *Store) LastVisitByPage(ctx context.Context, page string) (*core.SiteVisit, error) {
	const q = `
		SELECT id, page, user_agent, ip, created_at
		FROM site_visits
		WHERE page = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var v core.SiteVisit
	err := s.pool.QueryRow(ctx, q, page).Scan(&v.ID, &v.Page, &v.UserAgent, &v.IP, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) ListVisitsSince(ctx context.Context, since time.Time) ([]core.SiteVisit, error) {
	const q = `
		SELECT id, page, user_agent, ip, created_at
		FROM site_visits
		WHERE created_at >= $1
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.SiteVisit
	for rows.Next() {
		var v core.SiteVisit
		if err := rows.Scan(&v.ID, &v.Page, &v.UserAgent, &v.IP, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
