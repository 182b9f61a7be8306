package pg

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

// ── Equipo ──────────────────────────────────────────────────────────

func (s *Store) ListTeamMembers(ctx context.Context) ([]core.TeamMember, error) {
	const q = `SELECT id, name, designation, avatar_url, created_at FROM team_members ORDER BY created_at ASC`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.TeamMember
	for rows.Next() {
		var m core.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Designation, &m.AvatarURL, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) CreateTeamMember(ctx context.Context, m *core.TeamMember) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO team_members (id, name, designation, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	return s.pool.QueryRow(ctx, q, m.ID, m.Name, m.Designation, m.AvatarURL).Scan(&m.CreatedAt)
}

func (s *Store) UpdateTeamMember(ctx context.Context, m *core.TeamMember) error {
	const q = `
		UPDATE team_members SET name = $2, designation = $3, avatar_url = $4
		WHERE id = $1
		RETURNING created_at`
	err := s.pool.QueryRow(ctx, q, m.ID, m.Name, m.Designation, m.AvatarURL).Scan(&m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.ErrNotFound
	}
	return err
}

func (s *Store) DeleteTeamMember(ctx context.Context, id string) (*core.TeamMember, error) {
	const q = `
		DELETE FROM team_members WHERE id = $1
		RETURNING id, name, designation, avatar_url, created_at`

	var m core.TeamMember
	err := s.pool.QueryRow(ctx, q, id).Scan(&m.ID, &m.Name, &m.Designation, &m.AvatarURL, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ── Voluntarios ─────────────────────────────────────────────────────

func (s *Store) ListVolunteerMembers(ctx context.Context) ([]core.VolunteerMember, error) {
	const q = `SELECT id, name, avatar_url, created_at FROM volunteer_members ORDER BY created_at ASC`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.VolunteerMember
	for rows.Next() {
		var m core.VolunteerMember
		if err := rows.Scan(&m.ID, &m.Name, &m.AvatarURL, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) CreateVolunteerMember(ctx context.Context, m *core.VolunteerMember) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO volunteer_members (id, name, avatar_url)
		VALUES ($1, $2, $3)
		RETURNING created_at`
	return s.pool.QueryRow(ctx, q, m.ID, m.Name, m.AvatarURL).Scan(&m.CreatedAt)
}

func (s *Store) UpdateVolunteerMember(ctx context.Context, m *core.VolunteerMember) error {
	const q = `
		UPDATE volunteer_members SET name = $2, avatar_url = $3
		WHERE id = $1
		RETURNING created_at`
	err := s.pool.QueryRow(ctx, q, m.ID, m.Name, m.AvatarURL).Scan(&m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.ErrNotFound
	}
	return err
}

func (s *Store) DeleteVolunteerMember(ctx context.Context, id string) (*core.VolunteerMember, error) {
	const q = `
		DELETE FROM volunteer_members WHERE id = $1
		RETURNING id, name, avatar_url, created_at`

	var m core.VolunteerMember
	err := s.pool.QueryRow(ctx, q, id).Scan(&m.ID, &m.Name, &m.AvatarURL, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
