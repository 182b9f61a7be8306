package forms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/forms"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

type fakeStore struct {
	contacts      []core.ContactSubmission
	donations     []core.DonationSubmission
	volunteers    []core.VolunteerSubmission
	visits        []core.SiteVisit
	notifications []core.Notification
}

func (f *fakeStore) CreateContactSubmission(ctx context.Context, s *core.ContactSubmission) error {
	s.ID = "c-1"
	f.contacts = append(f.contacts, *s)
	return nil
}

func (f *fakeStore) ListContactSubmissions(ctx context.Context) ([]core.ContactSubmission, error) {
	return f.contacts, nil
}

func (f *fakeStore) DeleteContactSubmission(ctx context.Context, id string) error {
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			f.contacts = append(f.contacts[:i], f.contacts[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeStore) CreateDonationSubmission(ctx context.Context, s *core.DonationSubmission) error {
	s.ID = "d-1"
	f.donations = append(f.donations, *s)
	return nil
}

func (f *fakeStore) ListDonationSubmissions(ctx context.Context) ([]core.DonationSubmission, error) {
	return f.donations, nil
}

func (f *fakeStore) DeleteDonationSubmission(ctx context.Context, id string) error { return nil }

func (f *fakeStore) CreateVolunteerSubmission(ctx context.Context, s *core.VolunteerSubmission) error {
	s.ID = "v-1"
	f.volunteers = append(f.volunteers, *s)
	return nil
}

func (f *fakeStore) ListVolunteerSubmissions(ctx context.Context) ([]core.VolunteerSubmission, error) {
	return f.volunteers, nil
}

func (f *fakeStore) DeleteVolunteerSubmission(ctx context.Context, id string) error { return nil }

func (f *fakeStore) ListDonationsSince(ctx context.Context, since time.Time) ([]core.DonationSubmission, error) {
	return f.donations, nil
}

func (f *fakeStore) ListContactsSince(ctx context.Context, since time.Time) ([]core.ContactSubmission, error) {
	return f.contacts, nil
}

func (f *fakeStore) ListVolunteersSince(ctx context.Context, since time.Time) ([]core.VolunteerSubmission, error) {
	return f.volunteers, nil
}

func (f *fakeStore) CreateVisit(ctx context.Context, v *core.SiteVisit) error { return nil }

func (f *fakeStore) LastVisitByPage(ctx context.Context, page string) (*core.SiteVisit, error) {
	return nil, core.ErrNotFound
}

func (f *fakeStore) ListVisitsSince(ctx context.Context, since time.Time) ([]core.SiteVisit, error) {
	return f.visits, nil
}

func (f *fakeStore) CreateNotification(ctx context.Context, n *core.Notification) error {
	n.ID = "n-1"
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeStore) ListNotifications(ctx context.Context) ([]core.Notification, error) {
	return f.notifications, nil
}

type fakeNotifier struct {
	subjects []string
}

func (f *fakeNotifier) Notify(ctx context.Context, subject, body string) {
	f.subjects = append(f.subjects, subject)
}

func strptr(s string) *string { return &s }

func TestSubmitContact(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	s := NewService(store, notifier)
	ctx := context.Background()

	id, err := s.SubmitContact(ctx, dto.ContactRequest{Name: "  Lucía  ", Email: strptr("lucia@example.org")})
	require.NoError(t, err)
	assert.Equal(t, "c-1", id)
	require.Len(t, store.contacts, 1)
	assert.Equal(t, "Lucía", store.contacts[0].Name)

	// la notificación interna y el aviso externo salen juntos
	require.Len(t, store.notifications, 1)
	assert.Equal(t, "contact", store.notifications[0].TargetType)
	assert.Len(t, notifier.subjects, 1)
}

func TestSubmitValidation(t *testing.T) {
	s := NewService(&fakeStore{}, nil)
	ctx := context.Background()

	_, err := s.SubmitContact(ctx, dto.ContactRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrMissingName)

	_, err = s.SubmitContact(ctx, dto.ContactRequest{Name: "Ana", Email: strptr("no-es-email")})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	// email vacío es aceptable (campo opcional)
	_, err = s.SubmitContact(ctx, dto.ContactRequest{Name: "Ana", Email: strptr("")})
	assert.NoError(t, err)

	amount := -10.0
	_, err = s.SubmitDonation(ctx, dto.DonationRequest{Name: "Ana", Amount: &amount})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSubmitDonationNotifiesAmount(t *testing.T) {
	store := &fakeStore{}
	s := NewService(store, nil)
	amount := 1500.0

	_, err := s.SubmitDonation(context.Background(), dto.DonationRequest{Name: "Ramiro", Amount: &amount})
	require.NoError(t, err)
	require.Len(t, store.notifications, 1)
	assert.Equal(t, "donation", store.notifications[0].TargetType)
	assert.Contains(t, store.notifications[0].Body, "1500.00")
}

func TestMetricsAggregation(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	a1, a2 := 100.0, 250.0
	store := &fakeStore{
		contacts: []core.ContactSubmission{
			{ID: "c1", CreatedAt: now},
			{ID: "c2", CreatedAt: yesterday},
		},
		donations: []core.DonationSubmission{
			{ID: "d1", Amount: &a1, CreatedAt: now},
			{ID: "d2", Amount: &a2, CreatedAt: now},
			{ID: "d3", CreatedAt: yesterday}, // sin monto
		},
		volunteers: []core.VolunteerSubmission{{ID: "v1", CreatedAt: now}},
		visits: []core.SiteVisit{
			{ID: "s1", Page: "home", CreatedAt: now},
			{ID: "s2", Page: "home", CreatedAt: yesterday},
			{ID: "s3", Page: "internal/keepalive", CreatedAt: now},
		},
	}
	s := NewService(store, nil)

	m, err := s.Metrics(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 7, m.RangeDays)
	assert.Equal(t, "daily", m.Granularity)
	assert.Equal(t, 2, m.Totals.Contacts)
	assert.Equal(t, 3, m.Totals.Donations)
	assert.Equal(t, 1, m.Totals.Volunteers)
	assert.Equal(t, 3, m.Totals.Visits)
	assert.InDelta(t, 350.0, m.Totals.DonationAmount, 0.001)
	assert.Equal(t, map[string]int{"home": 2, "internal/keepalive": 1}, m.VisitPages)

	// serie diaria ordenada ascendente
	require.Len(t, m.Daily, 2)
	assert.Less(t, m.Daily[0].Date, m.Daily[1].Date)
	today := m.Daily[1]
	assert.Equal(t, 2, today.Donations)
	assert.InDelta(t, 350.0, today.Amount, 0.001)
}

func TestMetricsHourlyForSingleDay(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-2 * time.Hour)
	store := &fakeStore{
		visits: []core.SiteVisit{
			{ID: "s1", Page: "home", CreatedAt: now},
			{ID: "s2", Page: "home", CreatedAt: now},
			{ID: "s3", Page: "home", CreatedAt: earlier},
		},
	}
	s := NewService(store, nil)

	m, err := s.Metrics(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "hourly", m.Granularity)
	require.Len(t, m.Daily, 2)
	assert.Equal(t, earlier.Format("2006-01-02T15:00"), m.Daily[0].Date)
	assert.Equal(t, 1, m.Daily[0].Visits)
	assert.Equal(t, 2, m.Daily[1].Visits)
}

func TestMetricsRangeClamped(t *testing.T) {
	s := NewService(&fakeStore{}, nil)

	m, err := s.Metrics(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, m.RangeDays)

	m, err = s.Metrics(context.Background(), 400)
	require.NoError(t, err)
	assert.Equal(t, 30, m.RangeDays)
}
