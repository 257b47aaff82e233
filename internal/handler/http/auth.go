package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/workmate-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/workmate-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/workmate-hq/attendance-backend-go/internal/pkg/validator"
	authService "github.com/workmate-hq/attendance-backend-go/internal/service/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService *authService.AuthService
}

func NewAuthHandler(jwtService jwt.Service, service *authService.AuthService) AuthHandler {
	return &AuthHandlerImpl{jwtService: jwtService, authService: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if !validator.IsValidEmail(req.Email) || validator.IsEmpty(req.Password) {
		response.ValidationError(w, map[string]string{"email": "valid email and password are required"})
		return
	}

	result, err := a.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshExpiresAt))
	response.Success(w, result)
}
