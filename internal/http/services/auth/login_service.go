// Package auth implementa login, perfil y administración de usuarios.
package auth

import (
	"context"
	"errors"
	"strings"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/auth"
	jwtx "github.com/sakhu-org/sakhu-backend/internal/jwt"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/security/password"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
	"github.com/sakhu-org/sakhu-backend/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrWeakPassword       = errors.New("auth: password too short")
)

// LoginService autentica por email+password y emite el JWT de sesión.
type LoginService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type loginService struct {
	users  core.UserRepository
	issuer *jwtx.Issuer
}

func NewLoginService(users core.UserRepository, issuer *jwtx.Issuer) LoginService {
	return &loginService{users: users, issuer: issuer}
}

func (s *loginService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("auth.login"))

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			password.VerifyDummy(req.Password)
			return nil, ErrInvalidCredentials
		}
		log.Error("user lookup failed", logger.Err(err))
		return nil, err
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		log.Debug("password mismatch", logger.Email(util.MaskEmail(email)))
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error("token sign failed", logger.Err(err))
		return nil, err
	}

	return &dto.LoginResponse{Token: token, User: dto.FromUser(user)}, nil
}
