// Package forms recibe los envíos públicos (contacto, donación, voluntariado),
// genera la notificación interna correspondiente y arma las métricas del
// dashboard de administración.
package forms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/forms"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
	"github.com/sakhu-org/sakhu-backend/internal/validation"
)

var (
	ErrMissingName   = errors.New("forms: missing name")
	ErrInvalidEmail  = errors.New("forms: invalid email")
	ErrInvalidAmount = errors.New("forms: invalid amount")
	ErrNotFound      = errors.New("forms: not found")
)

// Notifier manda el aviso externo (slack/mail) cuando entra un envío nuevo.
// Best-effort: un fallo acá nunca tira el envío.
type Notifier interface {
	Notify(ctx context.Context, subject, body string)
}

type Store interface {
	core.SubmissionRepository
	core.NotificationRepository
	core.VisitRepository
}

type Service struct {
	store    Store
	notifier Notifier
}

func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

func validateCommon(name string, email *string) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingName
	}
	if email != nil && *email != "" && !validation.ValidEmail(*email) {
		return ErrInvalidEmail
	}
	return nil
}

// notify persiste la notificación interna y dispara el aviso externo.
func (s *Service) notify(ctx context.Context, targetType, title, body string) {
	n := &core.Notification{Title: title, Body: body, TargetType: targetType}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		logger.From(ctx).Warn("notification row failed", logger.Err(err))
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx, title, body)
	}
}

// ── Envíos públicos ─────────────────────────────────────────────────

func (s *Service) SubmitContact(ctx context.Context, req dto.ContactRequest) (string, error) {
	if err := validateCommon(req.Name, req.Email); err != nil {
		return "", err
	}
	sub := &core.ContactSubmission{
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Mobile:  req.Mobile,
		Address: req.Address,
		Note:    req.Note,
	}
	if err := s.store.CreateContactSubmission(ctx, sub); err != nil {
		return "", err
	}
	s.notify(ctx, "contact", "Nueva consulta de contacto",
		fmt.Sprintf("%s dejó una consulta de contacto.", sub.Name))
	return sub.ID, nil
}

func (s *Service) SubmitDonation(ctx context.Context, req dto.DonationRequest) (string, error) {
	if err := validateCommon(req.Name, req.Email); err != nil {
		return "", err
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return "", ErrInvalidAmount
	}
	sub := &core.DonationSubmission{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		Mobile:       req.Mobile,
		State:        req.State,
		Address:      req.Address,
		Amount:       req.Amount,
		AdharCardNo:  req.AdharCardNo,
		PanCardNo:    req.PanCardNo,
		AdharFileURL: req.AdharFileURL,
		PanFileURL:   req.PanFileURL,
	}
	if err := s.store.CreateDonationSubmission(ctx, sub); err != nil {
		return "", err
	}
	body := fmt.Sprintf("%s registró una intención de donación.", sub.Name)
	if sub.Amount != nil {
		body = fmt.Sprintf("%s registró una intención de donación por %.2f.", sub.Name, *sub.Amount)
	}
	s.notify(ctx, "donation", "Nueva donación", body)
	return sub.ID, nil
}

func (s *Service) SubmitVolunteer(ctx context.Context, req dto.VolunteerRequest) (string, error) {
	if err := validateCommon(req.Name, req.Email); err != nil {
		return "", err
	}
	sub := &core.VolunteerSubmission{
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Mobile:  req.Mobile,
		Address: req.Address,
		Note:    req.Note,
	}
	if err := s.store.CreateVolunteerSubmission(ctx, sub); err != nil {
		return "", err
	}
	s.notify(ctx, "volunteer", "Nueva inscripción de voluntariado",
		fmt.Sprintf("%s se anotó como voluntario.", sub.Name))
	return sub.ID, nil
}

// ── Lado admin ──────────────────────────────────────────────────────

func (s *Service) ListContacts(ctx context.Context) ([]core.ContactSubmission, error) {
	return s.store.ListContactSubmissions(ctx)
}

func (s *Service) ListDonations(ctx context.Context) ([]core.DonationSubmission, error) {
	return s.store.ListDonationSubmissions(ctx)
}

func (s *Service) ListVolunteers(ctx context.Context) ([]core.VolunteerSubmission, error) {
	return s.store.ListVolunteerSubmissions(ctx)
}

func (s *Service) DeleteContact(ctx context.Context, id string) error {
	return mapDelete(s.store.DeleteContactSubmission(ctx, id))
}

func (s *Service) DeleteDonation(ctx context.Context, id string) error {
	return mapDelete(s.store.DeleteDonationSubmission(ctx, id))
}

func (s *Service) DeleteVolunteer(ctx context.Context, id string) error {
	return mapDelete(s.store.DeleteVolunteerSubmission(ctx, id))
}

func mapDelete(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) ListNotifications(ctx context.Context) ([]core.Notification, error) {
	return s.store.ListNotifications(ctx)
}

// ── Métricas ────────────────────────────────────────────────────────

// Metrics agrega envíos y visitas de los últimos rangeDays días en totales y
// una serie temporal: horaria para range=1, diaria para el resto. rangeDays
// fuera de [1, 365] cae al default 30.
func (s *Service) Metrics(ctx context.Context, rangeDays int) (*dto.MetricsResponse, error) {
	if rangeDays < 1 || rangeDays > 365 {
		rangeDays = 30
	}
	granularity, layout := "daily", "2006-01-02"
	if rangeDays == 1 {
		granularity, layout = "hourly", "2006-01-02T15:00"
	}
	since := time.Now().AddDate(0, 0, -rangeDays)

	contacts, err := s.store.ListContactsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	donations, err := s.store.ListDonationsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	volunteers, err := s.store.ListVolunteersSince(ctx, since)
	if err != nil {
		return nil, err
	}
	visits, err := s.store.ListVisitsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	daily := map[string]*dto.DailyMetric{}
	bucket := func(t time.Time) *dto.DailyMetric {
		d := t.Format(layout)
		m, ok := daily[d]
		if !ok {
			m = &dto.DailyMetric{Date: d}
			daily[d] = m
		}
		return m
	}

	resp := &dto.MetricsResponse{RangeDays: rangeDays, Granularity: granularity, VisitPages: map[string]int{}}
	for _, c := range contacts {
		resp.Totals.Contacts++
		bucket(c.CreatedAt).Contacts++
	}
	for _, d := range donations {
		resp.Totals.Donations++
		m := bucket(d.CreatedAt)
		m.Donations++
		if d.Amount != nil {
			resp.Totals.DonationAmount += *d.Amount
			m.Amount += *d.Amount
		}
	}
	for _, v := range volunteers {
		resp.Totals.Volunteers++
		bucket(v.CreatedAt).Volunteers++
	}
	for _, v := range visits {
		resp.Totals.Visits++
		bucket(v.CreatedAt).Visits++
		resp.VisitPages[v.Page]++
	}

	resp.Daily = make([]dto.DailyMetric, 0, len(daily))
	for _, m := range daily {
		resp.Daily = append(resp.Daily, *m)
	}
	sort.Slice(resp.Daily, func(i, j int) bool { return resp.Daily[i].Date < resp.Daily[j].Date })
	return resp, nil
}
