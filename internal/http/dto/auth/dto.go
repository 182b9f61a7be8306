// Package auth define los contratos wire del dominio de autenticación.
package auth

import "github.com/sakhu-org/sakhu-backend/internal/store/core"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserDTO es la vista pública de un usuario (sin hash).
type UserDTO struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         *string `json:"name,omitempty"`
	Role         string  `json:"role"`
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Mobile       *string `json:"mobile,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	Position     *string `json:"position,omitempty"`
	Location     *string `json:"location,omitempty"`
	Country      *string `json:"country,omitempty"`
	CityState    *string `json:"cityState,omitempty"`
	PinCode      *string `json:"pinCode,omitempty"`
	ProfilePhoto *string `json:"profilePhoto,omitempty"`
}

func FromUser(u *core.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Mobile:       u.Mobile,
		Bio:          u.Bio,
		Position:     u.Position,
		Location:     u.Location,
		Country:      u.Country,
		CityState:    u.CityState,
		PinCode:      u.PinCode,
		ProfilePhoto: u.ProfilePhoto,
	}
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type ProfileUpdateRequest struct {
	Name         *string `json:"name"`
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Mobile       *string `json:"mobile"`
	Bio          *string `json:"bio"`
	Position     *string `json:"position"`
	Location     *string `json:"location"`
	Country      *string `json:"country"`
	CityState    *string `json:"cityState"`
	PinCode      *string `json:"pinCode"`
	ProfilePhoto *string `json:"profilePhoto"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UsersResponse struct {
	Items []UserDTO `json:"items"`
}
