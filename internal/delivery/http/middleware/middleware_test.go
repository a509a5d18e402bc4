package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

type stubSessionService struct {
	service.SessionService
	sessions map[string]*entity.Session
	err      error
}

func (s *stubSessionService) CookieName() string { return "portal_session" }

func (s *stubSessionService) Resolve(ctx context.Context, token string) (*entity.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	session, ok := s.sessions[token]
	if !ok {
		return nil, service.ErrInvalidSession
	}
	return session, nil
}

func newStubMiddleware(err error) *AuthMiddleware {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewAuthMiddleware(&stubSessionService{
		sessions: map[string]*entity.Session{
			"doctor-token":  {AccountID: 5, Kind: entity.AccountKindDoctor},
			"patient-token": {AccountID: 7, Kind: entity.AccountKindPatient},
		},
		err: err,
	}, log)
}

func requestWithCookie(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "portal_session", Value: token})
	}
	return req
}

func sessionEcho(w http.ResponseWriter, r *http.Request) {
	if session, ok := GetSessionFromContext(r.Context()); ok {
		w.Header().Set("X-Account", string(session.Kind))
	}
	w.WriteHeader(http.StatusNoContent)
}

func TestAuthenticate(t *testing.T) {
	m := newStubMiddleware(nil)
	handler := m.Authenticate(http.HandlerFunc(sessionEcho))

	tests := []struct {
		name    string
		token   string
		status  int
		account string
	}{
		{"no cookie", "", http.StatusUnauthorized, ""},
		{"unknown token", "forged", http.StatusUnauthorized, ""},
		{"doctor", "doctor-token", http.StatusNoContent, "doctor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWithCookie(tt.token))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.account, rec.Header().Get("X-Account"))
		})
	}
}

func TestAuthenticateStoreFailure(t *testing.T) {
	m := newStubMiddleware(errors.New("redis down"))
	rec := httptest.NewRecorder()
	m.Authenticate(http.HandlerFunc(sessionEcho)).ServeHTTP(rec, requestWithCookie("doctor-token"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestOptionalNeverRejects(t *testing.T) {
	m := newStubMiddleware(nil)
	handler := m.Optional(http.HandlerFunc(sessionEcho))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithCookie("forged"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Account"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithCookie("patient-token"))
	assert.Equal(t, "patient", rec.Header().Get("X-Account"))
}

func TestRequireDoctor(t *testing.T) {
	m := newStubMiddleware(nil)
	handler := m.Authenticate(RequireDoctor(http.HandlerFunc(sessionEcho)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithCookie("patient-token"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithCookie("doctor-token"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// without Authenticate in front there is no session at all
	rec = httptest.NewRecorder()
	RequireDoctor(http.HandlerFunc(sessionEcho)).ServeHTTP(rec, requestWithCookie("doctor-token"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func resolvedIP(trustProxy bool, req *http.Request) string {
	var got string
	RealIP(trustProxy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ClientIP(r)
	})).ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestClientIPIgnoresForwardingHeadersByDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:5555"
	assert.Equal(t, "10.0.0.9", ClientIP(req))
	assert.Equal(t, "10.0.0.9", resolvedIP(false, req))

	req.Header.Set("X-Real-IP", "172.16.0.2")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, "10.0.0.9", resolvedIP(false, req))
	assert.Equal(t, "10.0.0.9", ClientIP(req))
}

func TestClientIPBehindTrustedProxy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	req.Header.Set("X-Forwarded-For", "198.51.100.1, 203.0.113.7")
	assert.Equal(t, "203.0.113.7", resolvedIP(true, req))

	req.Header.Set("X-Real-IP", "172.16.0.2")
	assert.Equal(t, "172.16.0.2", resolvedIP(true, req))

	req.Header.Set("X-Real-IP", "<script>")
	req.Header.Set("X-Forwarded-For", "not-an-ip")
	assert.Equal(t, "10.0.0.1", resolvedIP(true, req))
}

func TestRateLimitIgnoresSpoofedForwardingHeaders(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := NewIPRateLimiter(ctx, rate.Limit(0.001), 1)
	handler := RealIP(false)(limiter.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	codes := make([]int, 0, 2)
	for _, spoofed := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		req.Header.Set("X-Forwarded-For", spoofed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestIPRateLimiterIsPerClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := NewIPRateLimiter(ctx, rate.Limit(0.001), 2)
	assert.True(t, limiter.Allow("1.1.1.1"))
	assert.True(t, limiter.Allow("1.1.1.1"))
	assert.False(t, limiter.Allow("1.1.1.1"))
	assert.True(t, limiter.Allow("2.2.2.2"))
}

func TestRateLimitHandle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := NewIPRateLimiter(ctx, rate.Limit(0.001), 1).Handle(http.HandlerFunc(sessionEcho))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestCORSOnlyReflectsAllowedOrigin(t *testing.T) {
	handler := NewCORSMiddleware("http://localhost:3000").Handle(http.HandlerFunc(sessionEcho))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
