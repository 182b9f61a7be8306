package core

import "time"

// Roles válidos para User.Role.
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
	RoleUser   = "USER"
)

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         *string    `json:"name,omitempty"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	FirstName    *string    `json:"firstName,omitempty"`
	LastName     *string    `json:"lastName,omitempty"`
	Mobile       *string    `json:"mobile,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	Position     *string    `json:"position,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Country      *string    `json:"country,omitempty"`
	CityState    *string    `json:"cityState,omitempty"`
	PinCode      *string    `json:"pinCode,omitempty"`
	ProfilePhoto *string    `json:"profilePhoto,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type News struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     *string    `json:"summary,omitempty"`
	Content     string     `json:"content"`
	HeroImage   *string    `json:"heroImage,omitempty"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      *string   `json:"role,omitempty"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	Avatar    *string   `json:"avatar,omitempty"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TeamMember struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Designation *string   `json:"designation,omitempty"`
	AvatarURL   *string   `json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type VolunteerMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MediaImage es una imagen o video subido al object store.
// El agrupamiento por sección (hero, gallery, ...) se hace por prefijo de Key.
type MediaImage struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	Alt       *string   `json:"alt,omitempty"`
	Caption   *string   `json:"caption,omitempty"`
	GalleryID *string   `json:"galleryId,omitempty"`
	CreatedBy *string   `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SiteVisit registra una visita por página. El keepalive la usa como marcador
// durable de "última ejecución exitosa" (page = "internal/keepalive").
type SiteVisit struct {
	ID        string    `json:"id"`
	Page      string    `json:"page"`
	UserAgent *string   `json:"userAgent,omitempty"`
	IP        *string   `json:"ip,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Mobile    *string   `json:"mobile,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type DonationSubmission struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	Mobile       *string   `json:"mobile,omitempty"`
	State        *string   `json:"state,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Amount       *float64  `json:"amount,omitempty"`
	AdharCardNo  *string   `json:"adharCardNo,omitempty"`
	PanCardNo    *string   `json:"panCardNo,omitempty"`
	AdharFileURL *string   `json:"adharFileUrl,omitempty"`
	PanFileURL   *string   `json:"panFileUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type VolunteerSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Mobile    *string   `json:"mobile,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification es una notificación interna para el panel de administración.
type Notification struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	TargetType string    `json:"targetType"` // contact | donation | volunteer | system
	IsSent     bool      `json:"isSent"`
	CreatedAt  time.Time `json:"createdAt"`
}
