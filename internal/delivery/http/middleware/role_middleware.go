package middleware

import (
	"net/http"

	"puskesmas-frontdesk/internal/domain/entity"
	"puskesmas-frontdesk/pkg/response"
)

// RequireRole checks that the logged-in user carries one of the allowed
// roles. Runs after SessionMiddleware.Attach.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Silakan login")
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if user.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "Akses admin saja")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}
