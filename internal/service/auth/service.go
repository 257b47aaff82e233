package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/auth"
	"github.com/workmate-hq/attendance-backend-go/internal/domain/user"
	"github.com/workmate-hq/attendance-backend-go/internal/pkg/jwt"
)

type LoginResult struct {
	AccessToken      string `json:"access_token"`
	ExpiresAt        int64  `json:"expires_at"`
	RefreshToken     string `json:"-"`
	RefreshExpiresAt int64  `json:"-"`
	UserID           string `json:"user_id"`
	Name             string `json:"name"`
	Role             string `json:"role"`
}

type AuthService struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) *AuthService {
	return &AuthService{userRepo: userRepo, jwtService: jwtService}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		return LoginResult{}, auth.ErrInvalidCredentials
	}
	if u.PasswordHash == nil || !u.IsActive {
		return LoginResult{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, auth.ErrInvalidCredentials
	}

	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return LoginResult{}, err
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		AccessToken:      accessToken,
		ExpiresAt:        accessExpiresAt,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
		UserID:           u.ID,
		Name:             u.Name,
		Role:             string(u.Role),
	}, nil
}
