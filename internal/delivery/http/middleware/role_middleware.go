package middleware

import (
	"net/http"

	"doctor-portal/internal/domain/entity"
	"doctor-portal/pkg/response"
)

// RequireKind creates a middleware that checks the session belongs to one of the account kinds
// Session is read from context (set by AuthMiddleware)
func RequireKind(allowed ...entity.AccountKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSessionFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			for _, kind := range allowed {
				if session.Kind == kind {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireDoctor is a convenience middleware for doctor-only endpoints
func RequireDoctor(next http.Handler) http.Handler {
	return RequireKind(entity.AccountKindDoctor)(next)
}
