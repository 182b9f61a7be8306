// Package bootstrap crea el primer usuario ADMIN cuando la base está vacía.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/security/password"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

// AdminConfig define las credenciales del primer admin. Vienen de env
// (ADMIN_EMAIL / ADMIN_PASSWORD) vía cmd/service.
type AdminConfig struct {
	Email    string
	Password string
}

// EnsureAdmin chequea si existe al menos un ADMIN y, si no, lo crea con las
// credenciales configuradas. Si no hay credenciales, solo avisa.
func EnsureAdmin(ctx context.Context, users core.UserRepository, cfg AdminConfig) error {
	log := logger.L().With(logger.Component("bootstrap"))

	count, err := users.CountUsersByRole(ctx, core.RoleAdmin)
	if err != nil {
		return fmt.Errorf("bootstrap: contando admins: %w", err)
	}
	if count > 0 {
		log.Debug("admin existente, bootstrap omitido", logger.Count(count))
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.Email))
	if email == "" || cfg.Password == "" {
		log.Warn("sin usuarios ADMIN y sin ADMIN_EMAIL/ADMIN_PASSWORD; el panel queda inaccesible")
		return nil
	}
	hash, err := password.Hash(cfg.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return fmt.Errorf("bootstrap: ADMIN_PASSWORD demasiado corta (mínimo %d)", password.MinLength)
		}
		return fmt.Errorf("bootstrap: hash de password: %w", err)
	}

	u := &core.User{
		Email:        email,
		PasswordHash: hash,
		Role:         core.RoleAdmin,
	}
	if err := users.CreateUser(ctx, u); err != nil {
		// Carrera con otra réplica arrancando a la vez: alguien ya lo creó.
		if errors.Is(err, core.ErrConflict) {
			log.Info("admin creado por otra instancia")
			return nil
		}
		return fmt.Errorf("bootstrap: creando admin: %w", err)
	}

	log.Info("primer admin creado", logger.UserID(u.ID), logger.Email(email))
	return nil
}
