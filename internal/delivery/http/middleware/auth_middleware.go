package middleware

import (
	"context"
	"errors"
	"net/http"

	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/service"
	"doctor-portal/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const SessionKey contextKey = "session"

type AuthMiddleware struct {
	sessionService service.SessionService
	log            *logrus.Logger
}

func NewAuthMiddleware(sessionService service.SessionService, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessionService: sessionService,
		log:            log,
	}
}

// Authenticate rejects requests without a live session
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.resolve(r)
		if err != nil {
			if errors.Is(err, service.ErrInvalidSession) {
				response.Unauthorized(w, "Authentication required")
				return
			}
			m.log.Warnf("Failed to resolve session: %+v", err)
			response.InternalServerError(w, "Failed to validate session", "")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// Optional attaches the session when there is one and never rejects
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.resolve(r)
		if err != nil {
			if !errors.Is(err, service.ErrInvalidSession) {
				m.log.Warnf("Failed to resolve session: %+v", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func (m *AuthMiddleware) resolve(r *http.Request) (*entity.Session, error) {
	cookie, err := r.Cookie(m.sessionService.CookieName())
	if err != nil || cookie.Value == "" {
		return nil, service.ErrInvalidSession
	}
	return m.sessionService.Resolve(r.Context(), cookie.Value)
}

func WithSession(ctx context.Context, session *entity.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSessionFromContext extracts the session set by Authenticate
func GetSessionFromContext(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*entity.Session)
	return session, ok && session != nil
}

