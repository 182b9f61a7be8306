package pg

import (
	"context"

	"github.com/google/uuid"

	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

func (s *Store) CreateNotification(ctx context.Context, n *core.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO notifications (id, title, body, target_type, is_sent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	return s.pool.QueryRow(ctx, q, n.ID, n.Title, n.Body, n.TargetType, n.IsSent).Scan(&n.CreatedAt)
}

func (s *Store) ListNotifications(ctx context.Context) ([]core.Notification, error) {
	const q = `
		SELECT id, title, body, target_type, is_sent, created_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT 200`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Notification
	for rows.Next() {
		var n core.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.TargetType, &n.IsSent, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
