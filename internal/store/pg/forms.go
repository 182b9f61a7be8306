package pg

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

// ── Contacto ────────────────────────────────────────────────────────

func (s *Store) CreateContactSubmission(ctx context.Context, c *core.ContactSubmission) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO contact_submissions (id, name, email, mobile, address, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	return s.pool.QueryRow(ctx, q, c.ID, c.Name, c.Email, c.Mobile, c.Address, c.Note).Scan(&c.CreatedAt)
}

func (s *Store) ListContactSubmissions(ctx context.Context) ([]core.ContactSubmission, error) {
	const q = `
		SELECT id, name, email, mobile, address, note, created_at
		FROM contact_submissions ORDER BY created_at DESC`
	return s.queryContacts(ctx, q)
}

func (s *Store) ListContactsSince(ctx context.Context, since time.Time) ([]core.ContactSubmission, error) {
	const q = `
		SELECT id, name, email, mobile, address, note, created_at
		FROM contact_submissions WHERE created_at >= $1 ORDER BY created_at DESC`
	return s.queryContacts(ctx, q, since)
}

func (s *Store) queryContacts(ctx context.Context, q string, args ...any) ([]core.ContactSubmission, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.ContactSubmission
	for rows.Next() {
		var c core.ContactSubmission
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Mobile, &c.Address, &c.Note, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) DeleteContactSubmission(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ── Donaciones ──────────────────────────────────────────────────────

func (s *Store) CreateDonationSubmission(ctx context.Context, d *core.DonationSubmission) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO donation_submissions
			(id, name, email, mobile, state, address, amount, adhar_card_no, pan_card_no, adhar_file_url, pan_file_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`
	return s.pool.QueryRow(ctx, q, d.ID, d.Name, d.Email, d.Mobile, d.State, d.Address,
		d.Amount, d.AdharCardNo, d.PanCardNo, d.AdharFileURL, d.PanFileURL).Scan(&d.CreatedAt)
}

func (s *Store) ListDonationSubmissions(ctx context.Context) ([]core.DonationSubmission, error) {
	const q = `
		SELECT id, name, email, mobile, state, address, amount, adhar_card_no, pan_card_no,
			adhar_file_url, pan_file_url, created_at
		FROM donation_submissions ORDER BY created_at DESC`
	return s.queryDonations(ctx, q)
}

func (s *Store) ListDonationsSince(ctx context.Context, since time.Time) ([]core.DonationSubmission, error) {
	const q = `
		SELECT id, name, email, mobile, state, address, amount, adhar_card_no, pan_card_no,
			adhar_file_url, pan_file_url, created_at
		FROM donation_submissions WHERE created_at >= $1 ORDER BY created_at DESC`
	return s.queryDonations(ctx, q, since)
}

func (s *Store) queryDonations(ctx context.Context, q string, args ...any) ([]core.DonationSubmission, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.DonationSubmission
	for rows.Next() {
		var d core.DonationSubmission
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Mobile, &d.State, &d.Address,
			&d.Amount, &d.AdharCardNo, &d.PanCardNo, &d.AdharFileURL, &d.PanFileURL, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) DeleteDonationSubmission(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM donation_submissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ── Voluntariado ────────────────────────────────────────────────────

func (s *Store) CreateVolunteerSubmission(ctx context.Context, v *core.VolunteerSubmission) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO volunteer_submissions (id, name, email, mobile, address, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	return s.pool.QueryRow(ctx, q, v.ID, v.Name, v.Email, v.Mobile, v.Address, v.Note).Scan(&v.CreatedAt)
}

func (s *Store) ListVolunteerSubmissions(ctx context.Context) ([]core.VolunteerSubmission, error) {
	const q = `
		SELECT id, name, email, mobile, address, note, created_at
		FROM volunteer_submissions ORDER BY created_at DESC`
	return s.queryVolunteers(ctx, q)
}

func (s *Store) ListVolunteersSince(ctx context.Context, since time.Time) ([]core.VolunteerSubmission, error) {
	const q = `
		SELECT id, name, email, mobile, address, note, created_at
		FROM volunteer_submissions WHERE created_at >= $1 ORDER BY created_at DESC`
	return s.queryVolunteers(ctx, q, since)
}

func (s *Store) queryVolunteers(ctx context.Context, q string, args ...any) ([]core.VolunteerSubmission, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.VolunteerSubmission
	for rows.Next() {
		var v core.VolunteerSubmission
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Mobile, &v.Address, &v.Note, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) DeleteVolunteerSubmission(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM volunteer_submissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
