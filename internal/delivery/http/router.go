package http

import (
	"net/http"

	"doctor-portal/internal/delivery/http/handler"
	"doctor-portal/internal/delivery/http/middleware"
	"doctor-portal/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router                 *mux.Router
	authHandler            *handler.AuthHandler
	profileSettingsHandler *handler.ProfileSettingsHandler
	authMiddleware         *middleware.AuthMiddleware
	corsMiddleware         *middleware.CORSMiddleware
	rateLimiter            *middleware.IPRateLimiter
	trustProxy             bool
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileSettingsHandler *handler.ProfileSettingsHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimiter *middleware.IPRateLimiter,
	trustProxy bool,
) *Router {
	return &Router{
		router:                 mux.NewRouter(),
		authHandler:            authHandler,
		profileSettingsHandler: profileSettingsHandler,
		authMiddleware:         authMiddleware,
		corsMiddleware:         corsMiddleware,
		rateLimiter:            rateLimiter,
		trustProxy:             trustProxy,
	}
}

// Setup registers every route. CORS wraps the whole router so preflight
// requests are answered even for routes that only accept POST.
func (r *Router) Setup() http.Handler {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public, rate limited per client IP)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Handle("/register", r.rateLimiter.Handle(http.HandlerFunc(r.authHandler.Register))).Methods(http.MethodPost)
	auth.Handle("/login", r.rateLimiter.Handle(http.HandlerFunc(r.authHandler.Login))).Methods(http.MethodPost)

	// Logout works with or without a live session
	auth.Handle("/logout", r.authMiddleware.Optional(http.HandlerFunc(r.authHandler.Logout))).Methods(http.MethodPost)

	// Auth routes (protected). Kept on the same subrouter so a wrong method
	// on any /auth path still resolves to 405.
	auth.Handle("/me", r.authMiddleware.Authenticate(http.HandlerFunc(r.authHandler.CurrentAccount))).Methods(http.MethodGet)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/profile-settings", r.profileSettingsHandler.GetSettings).Methods(http.MethodGet)
	doctor.HandleFunc("/profile-settings", r.profileSettingsHandler.SaveSettings).Methods(http.MethodPost)

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.MethodNotAllowed(w)
	})

	return r.corsMiddleware.Handle(middleware.RealIP(r.trustProxy)(r.router))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
