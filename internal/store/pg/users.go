package pg

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

const userCols = `id, email, name, password_hash, role, first_name, last_name, mobile, bio,
	position, location, country, city_state, pin_code, profile_photo, created_at, updated_at`

func scanUser(row pgx.Row) (*core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.FirstName, &u.LastName, &u.Mobile, &u.Bio,
		&u.Position, &u.Location, &u.Country, &u.CityState, &u.PinCode,
		&u.ProfilePhoto, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	q := `SELECT ` + userCols + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(s.pool.QueryRow(ctx, q, email))
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	q := `SELECT ` + userCols + ` FROM users WHERE id = $1`
	return scanUser(s.pool.QueryRow(ctx, q, id))
}

func (s *Store) ListUsers(ctx context.Context) ([]core.User, error) {
	q := `SELECT ` + userCols + ` FROM users ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
			&u.FirstName, &u.LastName, &u.Mobile, &u.Bio,
			&u.Position, &u.Location, &u.Country, &u.CityState, &u.PinCode,
			&u.ProfilePhoto, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO users (id, email, name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := s.pool.QueryRow(ctx, q, u.ID, u.Email, u.Name, u.PasswordHash, u.Role).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" { // unique_violation
			return core.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) UpdateUserProfile(ctx context.Context, u *core.User) error {
	const q = `
		UPDATE users SET
			name = $2, first_name = $3, last_name = $4, mobile = $5, bio = $6,
			position = $7, location = $8, country = $9, city_state = $10,
			pin_code = $11, profile_photo = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := s.pool.QueryRow(ctx, q, u.ID, u.Name, u.FirstName, u.LastName, u.Mobile, u.Bio,
		u.Position, u.Location, u.Country, u.CityState, u.PinCode, u.ProfilePhoto).
		Scan(&u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.ErrNotFound
	}
	return err
}

func (s *Store) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	const q = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	tag, err := s.pool.Exec(ctx, q, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) CountUsersByRole(ctx context.Context, role string) (int, error) {
	const q = `SELECT COUNT(*) FROM users WHERE role = $1`
	var n int
	if err := s.pool.QueryRow(ctx, q, role).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
