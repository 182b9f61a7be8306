package core

import (
	"context"
	"time"
)

// Repository es la superficie completa de persistencia del backend.
// La implementación de referencia está en store/pg (pgxpool).
type Repository interface {
	Ping(ctx context.Context) error
	Close()

	UserRepository
	NewsRepository
	TestimonialRepository
	TeamRepository
	MediaRepository
	VisitRepository
	SubmissionRepository
	NotificationRepository
}

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, u *User) error
	UpdateUserProfile(ctx context.Context, u *User) error
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
	CountUsersByRole(ctx context.Context, role string) (int, error)
}

type NewsRepository interface {
	ListNews(ctx context.Context) ([]News, error)
	CreateNews(ctx context.Context, n *News) error
	UpdateNews(ctx context.Context, n *News) error
	DeleteNews(ctx context.Context, id string) error
}

type TestimonialRepository interface {
	ListTestimonials(ctx context.Context) ([]Testimonial, error)
	CreateTestimonial(ctx context.Context, t *Testimonial) error
	UpdateTestimonial(ctx context.Context, t *Testimonial) error
	DeleteTestimonial(ctx context.Context, id string) (*Testimonial, error)
}

// TeamRepository cubre el roster de equipo y el de voluntarios: mismo shape,
// tablas distintas.
type TeamRepository interface {
	ListTeamMembers(ctx context.Context) ([]TeamMember, error)
	CreateTeamMember(ctx context.Context, m *TeamMember) error
	UpdateTeamMember(ctx context.Context, m *TeamMember) error
	DeleteTeamMember(ctx context.Context, id string) (*TeamMember, error)

	ListVolunteerMembers(ctx context.Context) ([]VolunteerMember, error)
	CreateVolunteerMember(ctx context.Context, m *VolunteerMember) error
	UpdateVolunteerMember(ctx context.Context, m *VolunteerMember) error
	DeleteVolunteerMember(ctx context.Context, id string) (*VolunteerMember, error)
}

type MediaRepository interface {
	ListMediaByKeyPrefix(ctx context.Context, prefix string) ([]MediaImage, error)
	CreateMedia(ctx context.Context, m *MediaImage) error
	UpdateMedia(ctx context.Context, m *MediaImage) error
	DeleteMedia(ctx context.Context, id string) (*MediaImage, error)
}

// VisitRepository registra visitas. CreateVisit es el Outcome Recorder del
// keepalive; LastVisitByPage alimenta el Staleness Monitor.
type VisitRepository interface {
	CreateVisit(ctx context.Context, v *SiteVisit) error
	LastVisitByPage(ctx context.Context, page string) (*SiteVisit, error)
	ListVisitsSince(ctx context.Context, since time.Time) ([]SiteVisit, error)
}

type SubmissionRepository interface {
	CreateContactSubmission(ctx context.Context, s *ContactSubmission) error
	ListContactSubmissions(ctx context.Context) ([]ContactSubmission, error)
	DeleteContactSubmission(ctx context.Context, id string) error

	CreateDonationSubmission(ctx context.Context, s *DonationSubmission) error
	ListDonationSubmissions(ctx context.Context) ([]DonationSubmission, error)
	DeleteDonationSubmission(ctx context.Context, id string) error

	CreateVolunteerSubmission(ctx context.Context, s *VolunteerSubmission) error
	ListVolunteerSubmissions(ctx context.Context) ([]VolunteerSubmission, error)
	DeleteVolunteerSubmission(ctx context.Context, id string) error

	// Para las series del dashboard.
	ListDonationsSince(ctx context.Context, since time.Time) ([]DonationSubmission, error)
	ListContactsSince(ctx context.Context, since time.Time) ([]ContactSubmission, error)
	ListVolunteersSince(ctx context.Context, since time.Time) ([]VolunteerSubmission, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *Notification) error
	ListNotifications(ctx context.Context) ([]Notification, error)
}
