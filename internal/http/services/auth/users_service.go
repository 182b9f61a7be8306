package auth

import (
	"context"
	"errors"
	"strings"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/auth"
	"github.com/sakhu-org/sakhu-backend/internal/security/password"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

var ErrInvalidRole = errors.New("auth: invalid role")

// UsersService es la administración de cuentas (solo ADMIN).
type UsersService interface {
	List(ctx context.Context) ([]dto.UserDTO, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserDTO, error)
}

type usersService struct {
	users core.UserRepository
}

func NewUsersService(users core.UserRepository) UsersService {
	return &usersService{users: users}
}

func (s *usersService) List(ctx context.Context) ([]dto.UserDTO, error) {
	list, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserDTO, 0, len(list))
	for i := range list {
		out = append(out, dto.FromUser(&list[i]))
	}
	return out, nil
}

func (s *usersService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserDTO, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	switch role {
	case core.RoleAdmin, core.RoleEditor, core.RoleUser:
	case "":
		role = core.RoleUser
	default:
		return nil, ErrInvalidRole
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return nil, ErrWeakPassword
		}
		return nil, err
	}

	u := &core.User{Email: email, Role: role, PasswordHash: hash}
	if name := strings.TrimSpace(req.Name); name != "" {
		u.Name = &name
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	out := dto.FromUser(u)
	return &out, nil
}
