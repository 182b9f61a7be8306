// Package http arma el router, los middlewares globales y el server.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	authctl "github.com/sakhu-org/sakhu-backend/internal/http/controllers/auth"
	contentctl "github.com/sakhu-org/sakhu-backend/internal/http/controllers/content"
	formsctl "github.com/sakhu-org/sakhu-backend/internal/http/controllers/forms"
	opsctl "github.com/sakhu-org/sakhu-backend/internal/http/controllers/ops"
	uploadsctl "github.com/sakhu-org/sakhu-backend/internal/http/controllers/uploads"
	mw "github.com/sakhu-org/sakhu-backend/internal/http/middlewares"
	jwtx "github.com/sakhu-org/sakhu-backend/internal/jwt"
	"github.com/sakhu-org/sakhu-backend/internal/rate"
)

// Controllers agrupa todos los controllers del servicio.
type Controllers struct {
	Auth      *authctl.Controller
	Users     *authctl.UsersController
	Content   *contentctl.Controller
	Media     *contentctl.MediaController
	Forms     *formsctl.Controller
	Uploads   *uploadsctl.Controller
	Keepalive *opsctl.KeepaliveController
	Health    *opsctl.HealthController
}

// RouterConfig es lo que el router necesita además de los controllers.
type RouterConfig struct {
	CORSAllowedOrigins []string
	Issuer             *jwtx.Issuer
	CookieName         string

	// Limiters para superficies públicas. Nil = sin límite.
	LoginLimiter rate.Limiter
	FormsLimiter rate.Limiter

	// Handler de /metrics (RegisterMetrics). Nil = no se expone.
	Metrics http.Handler
}

// NewRouter arma el árbol de rutas completo.
func NewRouter(cfg RouterConfig, c Controllers) http.Handler {
	r := chi.NewRouter()

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	requireAuth := mw.RequireAuth(cfg.Issuer, cfg.CookieName)
	requireEditor := mw.RequireEditor()
	requireAdmin := mw.RequireAdmin()

	// ── Operacional ──
	r.Get("/healthz", c.Health.Live)
	r.Get("/readyz", c.Health.Ready)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Route("/internal/keepalive", func(r chi.Router) {
		r.Get("/", instrumented(c.Keepalive.Ping))
		r.Post("/", instrumented(c.Keepalive.Ping))
		r.Head("/", instrumented(c.Keepalive.Ping))
		r.Get("/monitor", c.Keepalive.Monitor)
		r.Post("/monitor", c.Keepalive.Monitor)
	})

	// ── API ──
	r.Route("/api", func(r chi.Router) {
		// Lecturas públicas
		r.Get("/news", c.Content.ListNews)
		r.Get("/testimonials", c.Content.ListTestimonials)
		r.Get("/team", c.Content.ListTeam)
		r.Get("/volunteers", c.Content.ListVolunteers)
		r.Get("/hero", c.Media.ListHero)
		r.Get("/gallery/photo", c.Media.ListGalleryPhotos)
		r.Get("/gallery/video", c.Media.ListGalleryVideos)

		// Formularios públicos, con rate limit por IP
		r.Group(func(r chi.Router) {
			if cfg.FormsLimiter != nil {
				r.Use(mw.WithRateLimit(cfg.FormsLimiter, mw.KeyByIP("forms")))
			}
			r.Post("/forms/public/contact", c.Forms.SubmitContact)
			r.Post("/forms/public/donation", c.Forms.SubmitDonation)
			r.Post("/forms/public/volunteer", c.Forms.SubmitVolunteer)
		})

		// Sesión
		r.Group(func(r chi.Router) {
			if cfg.LoginLimiter != nil {
				r.Use(mw.WithRateLimit(cfg.LoginLimiter, mw.KeyByIP("login")))
			}
			r.Post("/auth/login", c.Auth.Login)
		})
		r.Post("/auth/logout", c.Auth.Logout)

		// Autenticado
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/auth/me", c.Auth.Me)
			r.Put("/auth/profile", c.Auth.UpdateProfile)
			r.Post("/auth/change-password", c.Auth.ChangePassword)

			// Mutaciones de contenido: EDITOR o ADMIN
			r.Group(func(r chi.Router) {
				r.Use(requireEditor)

				r.Post("/news", c.Content.CreateNews)
				r.Put("/news/{id}", c.Content.UpdateNews)
				r.Delete("/news/{id}", c.Content.DeleteNews)

				r.Post("/testimonials", c.Content.CreateTestimonial)
				r.Put("/testimonials/{id}", c.Content.UpdateTestimonial)
				r.Delete("/testimonials/{id}", c.Content.DeleteTestimonial)

				r.Post("/team", c.Content.CreateTeamMember)
				r.Put("/team/{id}", c.Content.UpdateTeamMember)
				r.Delete("/team/{id}", c.Content.DeleteTeamMember)

				r.Post("/volunteers", c.Content.CreateVolunteer)
				r.Put("/volunteers/{id}", c.Content.UpdateVolunteer)
				r.Delete("/volunteers/{id}", c.Content.DeleteVolunteer)

				r.Post("/media", c.Media.Register)
				r.Delete("/media/{id}", c.Media.Delete)

				r.Post("/uploads/sign", c.Uploads.Sign)
			})

			// Panel: solo ADMIN
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Get("/admin/users", c.Users.List)
				r.Post("/admin/users", c.Users.Create)

				r.Get("/admin/forms/contact", c.Forms.ListContacts)
				r.Delete("/admin/forms/contact/{id}", c.Forms.DeleteContact)
				r.Get("/admin/forms/donation", c.Forms.ListDonations)
				r.Delete("/admin/forms/donation/{id}", c.Forms.DeleteDonation)
				r.Get("/admin/forms/volunteer", c.Forms.ListVolunteers)
				r.Delete("/admin/forms/volunteer/{id}", c.Forms.DeleteVolunteer)

				r.Get("/admin/notifications", c.Forms.ListNotifications)
				r.Get("/admin/metrics", c.Forms.Metrics)
			})
		})
	})

	// Middlewares globales, de afuera hacia adentro.
	return mw.Chain(r,
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithSecurityHeaders(),
		withMetricsIfRegistered(),
	)
}

func withMetricsIfRegistered() mw.Middleware {
	return func(next http.Handler) http.Handler {
		if h := WithMetrics(next); h != nil {
			return h
		}
		return next
	}
}

// instrumented cuenta las llamadas del scheduler por resultado.
func instrumented(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metricsRecorder{ResponseWriter: w}
		h(rec, r)
		switch {
		case rec.status == 0 || rec.status < 300:
			RecordKeepaliveCall("ok")
		default:
			RecordKeepaliveCall("rejected")
		}
	}
}
