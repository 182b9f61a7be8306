package auth

import (
	"context"
	"errors"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/auth"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/security/password"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

// ProfileService expone el perfil del usuario autenticado.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*dto.UserDTO, error)
	Update(ctx context.Context, userID string, req dto.ProfileUpdateRequest) (*dto.UserDTO, error)
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
}

type profileService struct {
	users core.UserRepository
}

func NewProfileService(users core.UserRepository) ProfileService {
	return &profileService{users: users}
}

func (s *profileService) Get(ctx context.Context, userID string) (*dto.UserDTO, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	out := dto.FromUser(user)
	return &out, nil
}

// Update aplica solo los campos presentes en el request (PATCH semántico
// sobre PUT: un campo ausente no pisa el valor guardado).
func (s *profileService) Update(ctx context.Context, userID string, req dto.ProfileUpdateRequest) (*dto.UserDTO, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	apply := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	apply(&user.Name, req.Name)
	apply(&user.FirstName, req.FirstName)
	apply(&user.LastName, req.LastName)
	apply(&user.Mobile, req.Mobile)
	apply(&user.Bio, req.Bio)
	apply(&user.Position, req.Position)
	apply(&user.Location, req.Location)
	apply(&user.Country, req.Country)
	apply(&user.CityState, req.CityState)
	apply(&user.PinCode, req.PinCode)
	apply(&user.ProfilePhoto, req.ProfilePhoto)

	if err := s.users.UpdateUserProfile(ctx, user); err != nil {
		return nil, err
	}
	out := dto.FromUser(user)
	return &out, nil
}

func (s *profileService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("auth.profile"), logger.UserID(userID))

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !password.Verify(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return ErrWeakPassword
		}
		return err
	}
	if err := s.users.UpdateUserPassword(ctx, userID, hash); err != nil {
		log.Error("password update failed", logger.Err(err))
		return err
	}
	return nil
}
