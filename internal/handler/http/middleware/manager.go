package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/auth"
	"github.com/workmate-hq/attendance-backend-go/internal/domain/user"
	"github.com/workmate-hq/attendance-backend-go/internal/handler/http/response"
)

// ManagerOnly restricts a route to users who can approve leave requests.
func ManagerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		actor := user.User{Role: user.Role(role)}
		if !ok || !actor.CanApprove() {
			response.HandleError(w, user.ErrManagerRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
