// Package auth contiene los controllers de sesión y perfil.
package auth

import (
	"errors"
	"net/http"
	"time"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/auth"
	httperrors "github.com/sakhu-org/sakhu-backend/internal/http/errors"
	"github.com/sakhu-org/sakhu-backend/internal/http/helpers"
	mw "github.com/sakhu-org/sakhu-backend/internal/http/middlewares"
	svc "github.com/sakhu-org/sakhu-backend/internal/http/services/auth"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
)

// CookieName es la cookie httpOnly donde viaja el JWT de sesión del panel.
const CookieName = "auth_token"

// Controller maneja /api/auth/*.
type Controller struct {
	login     svc.LoginService
	profile   svc.ProfileService
	cookieTTL time.Duration
	secure    bool
}

func NewController(login svc.LoginService, profile svc.ProfileService, cookieTTL time.Duration, secureCookies bool) *Controller {
	if cookieTTL <= 0 {
		cookieTTL = 24 * time.Hour
	}
	return &Controller{login: login, profile: profile, cookieTTL: cookieTTL, secure: secureCookies}
}

// Login maneja POST /api/auth/login
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("Auth.Login"),
	)

	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	resp, err := c.login.Login(ctx, req)
	if err != nil {
		if errors.Is(err, svc.ErrInvalidCredentials) {
			log.Warn("login rejected", logger.ClientIP(mw.ClientIP(r)))
			httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
			return
		}
		log.Error("login failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
		return
	}

	c.setSessionCookie(w, resp.Token)
	log.Info("login ok", logger.UserID(resp.User.ID))
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Logout maneja POST /api/auth/logout
func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Me maneja GET /api/auth/me
func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mw.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	user, err := c.profile.Get(ctx, userID)
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

// UpdateProfile maneja PUT /api/auth/profile
func (c *Controller) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("Auth.UpdateProfile"),
	)

	userID := mw.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	var req dto.ProfileUpdateRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	user, err := c.profile.Update(ctx, userID, req)
	if err != nil {
		log.Error("profile update failed", logger.Err(err))
		httperrors.WriteError(w, mapError(err))
		return
	}

	log.Info("profile updated", logger.UserID(userID))
	helpers.WriteJSON(w, http.StatusOK, user)
}

// ChangePassword maneja POST /api/auth/change-password
func (c *Controller) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("Auth.ChangePassword"),
	)

	userID := mw.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	var req dto.ChangePasswordRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	if err := c.profile.ChangePassword(ctx, userID, req); err != nil {
		switch {
		case errors.Is(err, svc.ErrInvalidCredentials):
			httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
		case errors.Is(err, svc.ErrWeakPassword):
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("password demasiado corta"))
		default:
			log.Error("change password failed", logger.Err(err))
			httperrors.WriteError(w, mapError(err))
		}
		return
	}

	log.Info("password changed", logger.UserID(userID))
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *Controller) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.cookieTTL / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func mapError(err error) *httperrors.AppError {
	switch {
	case errors.Is(err, svc.ErrUserNotFound):
		return httperrors.ErrNotFound
	case errors.Is(err, svc.ErrEmailTaken):
		return httperrors.ErrConflict.WithDetail("email ya registrado")
	case errors.Is(err, svc.ErrWeakPassword):
		return httperrors.ErrBadRequest.WithDetail("password demasiado corta")
	default:
		return httperrors.ErrInternalServerError.WithCause(err)
	}
}
