package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dto "github.com/sakhu-org/sakhu-backend/internal/http/dto/auth"
	jwtx "github.com/sakhu-org/sakhu-backend/internal/jwt"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

// fakeUsers es un UserRepository en memoria indexado por email e id.
type fakeUsers struct {
	byEmail map[string]*core.User
	byID    map[string]*core.User
	nextID  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*core.User{}, byID: map[string]*core.User{}}
}

func (f *fakeUsers) add(email, password, role string) *core.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	f.nextID++
	u := &core.User{
		ID:           "u-" + email,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	f.byEmail[email] = u
	f.byID[u.ID] = u
	return u
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (*core.User, error) {
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeUsers) ListUsers(_ context.Context) ([]core.User, error) {
	out := make([]core.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) CreateUser(_ context.Context, u *core.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return core.ErrConflict
	}
	f.nextID++
	u.ID = "u-" + u.Email
	cp := *u
	f.byEmail[u.Email] = &cp
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) UpdateUserProfile(_ context.Context, u *core.User) error {
	stored, ok := f.byID[u.ID]
	if !ok {
		return core.ErrNotFound
	}
	cp := *u
	cp.PasswordHash = stored.PasswordHash
	f.byID[u.ID] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUsers) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUsers) CountUsersByRole(_ context.Context, role string) (int, error) {
	n := 0
	for _, u := range f.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func testIssuer(t *testing.T) *jwtx.Issuer {
	t.Helper()
	iss, err := jwtx.NewIssuer("secreto-de-test", time.Hour)
	require.NoError(t, err)
	return iss
}

func TestLogin(t *testing.T) {
	users := newFakeUsers()
	admin := users.add("admin@sakhu.org", "clave-segura", core.RoleAdmin)
	svc := NewLoginService(users, testIssuer(t))
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		resp, err := svc.Login(ctx, dto.LoginRequest{Email: "Admin@Sakhu.org ", Password: "clave-segura"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, admin.ID, resp.User.ID)
		assert.Equal(t, core.RoleAdmin, resp.User.Role)

		claims, err := testIssuer(t).Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, claims.UserID)
	})

	t.Run("password incorrecta", func(t *testing.T) {
		_, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@sakhu.org", Password: "otra-cosa"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		_, err := svc.Login(ctx, dto.LoginRequest{Email: "nadie@sakhu.org", Password: "clave-segura"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("campos vacíos", func(t *testing.T) {
		_, err := svc.Login(ctx, dto.LoginRequest{})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestProfileUpdatePartial(t *testing.T) {
	users := newFakeUsers()
	u := users.add("editor@sakhu.org", "clave-segura", core.RoleEditor)
	name := "Editora"
	u.Name = &name
	svc := NewProfileService(users)
	ctx := context.Background()

	bio := "hago contenido"
	out, err := svc.Update(ctx, u.ID, dto.ProfileUpdateRequest{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, out.Bio)
	assert.Equal(t, "hago contenido", *out.Bio)
	// un campo ausente no pisa el valor guardado
	require.NotNil(t, out.Name)
	assert.Equal(t, "Editora", *out.Name)

	_, err = svc.Update(ctx, "no-existe", dto.ProfileUpdateRequest{Bio: &bio})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	users := newFakeUsers()
	u := users.add("editor@sakhu.org", "clave-vieja", core.RoleEditor)
	svc := NewProfileService(users)
	ctx := context.Background()

	t.Run("corta", func(t *testing.T) {
		err := svc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "clave-vieja", NewPassword: "abc"})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("actual incorrecta", func(t *testing.T) {
		err := svc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "nop", NewPassword: "clave-nueva"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("ok", func(t *testing.T) {
		err := svc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "clave-vieja", NewPassword: "clave-nueva"})
		require.NoError(t, err)

		login := NewLoginService(users, testIssuer(t))
		_, err = login.Login(ctx, dto.LoginRequest{Email: "editor@sakhu.org", Password: "clave-nueva"})
		assert.NoError(t, err)
		_, err = login.Login(ctx, dto.LoginRequest{Email: "editor@sakhu.org", Password: "clave-vieja"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUsersCreate(t *testing.T) {
	users := newFakeUsers()
	users.add("admin@sakhu.org", "clave-segura", core.RoleAdmin)
	svc := NewUsersService(users)
	ctx := context.Background()

	t.Run("ok con rol default", func(t *testing.T) {
		out, err := svc.Create(ctx, dto.CreateUserRequest{Email: "Nuevo@Sakhu.org", Password: "clave-segura", Name: "Nuevo"})
		require.NoError(t, err)
		assert.Equal(t, "nuevo@sakhu.org", out.Email)
		assert.Equal(t, core.RoleUser, out.Role)
		require.NotNil(t, out.Name)
		assert.Equal(t, "Nuevo", *out.Name)
	})

	t.Run("email tomado", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateUserRequest{Email: "admin@sakhu.org", Password: "clave-segura"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("rol inválido", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateUserRequest{Email: "x@sakhu.org", Password: "clave-segura", Role: "SUPERADMIN"})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("rol normalizado", func(t *testing.T) {
		out, err := svc.Create(ctx, dto.CreateUserRequest{Email: "ed@sakhu.org", Password: "clave-segura", Role: "editor"})
		require.NoError(t, err)
		assert.Equal(t, core.RoleEditor, out.Role)
	})

	t.Run("password corta", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateUserRequest{Email: "y@sakhu.org", Password: "abc"})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
