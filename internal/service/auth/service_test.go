package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/auth"
	"github.com/workmate-hq/attendance-backend-go/internal/domain/user"
	"github.com/workmate-hq/attendance-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ListActive(_ context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) UpdateTotalLeaves(_ context.Context, _ string, _ float64) error { return nil }

func (f *fakeUserRepo) UpdateUsedLeaves(_ context.Context, _ string, _ float64) error { return nil }

func newService(t *testing.T, users ...user.User) *AuthService {
	t.Helper()

	repo := &fakeUserRepo{byEmail: make(map[string]user.User)}
	for _, u := range users {
		repo.byEmail[u.Email] = u
	}
	jwtService := jwt.NewJWTService("test-secret", "1h", "168h")
	return NewAuthService(repo, jwtService)
}

func activeUser(t *testing.T, password string) user.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hash := string(hashed)
	return user.User{
		ID:           "user-1",
		Email:        "dana@workmate.test",
		Name:         "Dana",
		Role:         user.RoleEmployee,
		PasswordHash: &hash,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc := newService(t, activeUser(t, "open sesame"))

	result, err := svc.Login(context.Background(), "dana@workmate.test", "open sesame")
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Greater(t, result.ExpiresAt, int64(0))
	assert.Equal(t, "user-1", result.UserID)
	assert.Equal(t, "employee", result.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	noHash := activeUser(t, "open sesame")
	noHash.Email = "invited@workmate.test"
	noHash.PasswordHash = nil

	inactive := activeUser(t, "open sesame")
	inactive.Email = "left@workmate.test"
	inactive.IsActive = false

	svc := newService(t, activeUser(t, "open sesame"), noHash, inactive)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@workmate.test", "open sesame"},
		{"wrong password", "dana@workmate.test", "guess"},
		{"no password set", "invited@workmate.test", "open sesame"},
		{"deactivated account", "left@workmate.test", "open sesame"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}
