package auth

import (
	"errors"
	"net/http"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/auth"
	httperrors "github.com/sakhu-org/sakhu-backend/internal/http/errors"
	"github.com/sakhu-org/sakhu-backend/internal/http/helpers"
	svc "github.com/sakhu-org/sakhu-backend/internal/http/services/auth"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
)

// UsersController maneja /api/admin/users (solo ADMIN).
type UsersController struct {
	users svc.UsersService
}

func NewUsersController(users svc.UsersService) *UsersController {
	return &UsersController{users: users}
}

// List maneja GET /api/admin/users
func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := c.users.List(ctx)
	if err != nil {
		logger.From(ctx).Error("list users failed", logger.Layer("controller"), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.UsersResponse{Items: users})
}

// Create maneja POST /api/admin/users
func (c *UsersController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("Users.Create"),
	)

	var req dto.CreateUserRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	user, err := c.users.Create(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrEmailTaken):
			httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("email ya registrado"))
		case errors.Is(err, svc.ErrWeakPassword):
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("password demasiado corta"))
		case errors.Is(err, svc.ErrInvalidRole):
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("rol inválido"))
		default:
			log.Error("create user failed", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
		}
		return
	}

	log.Info("user created", logger.UserID(user.ID), logger.Role(user.Role))
	helpers.WriteJSON(w, http.StatusCreated, user)
}
