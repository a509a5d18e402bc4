package handler

import (
	"errors"
	"net/http"

	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/delivery/http/middleware"
	"doctor-portal/internal/service"
	"doctor-portal/internal/usecase"
	"doctor-portal/pkg/response"
)

type AuthHandler struct {
	authUsecase    usecase.AuthUsecase
	sessionService service.SessionService
	production     bool
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, sessionService service.SessionService, production bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:    authUsecase,
		sessionService: sessionService,
		production:     production,
	}
}

func clientMeta(r *http.Request) service.ClientMeta {
	return service.ClientMeta{
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

// Register handles account registration
// @Summary Register a patient, doctor or healthcare account
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	var req dto.RegisterRequest
	if err := decodeForm(&req, form); err != nil {
		if !writeValidationError(w, err) {
			response.BadRequest(w, "Invalid request body")
		}
		return
	}

	result, issued, err := h.authUsecase.Register(r.Context(), &req, clientMeta(r))
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		if message, ok := conflictMessage(err); ok {
			response.Conflict(w, message)
			return
		}
		switch {
		case errors.Is(err, usecase.ErrInvalidUserType):
			response.BadRequest(w, "Invalid user type")
		default:
			writeServerError(w, h.production, "Registration failed. Please try again later.", err)
		}
		return
	}

	if issued != nil {
		http.SetCookie(w, h.sessionService.Cookie(issued))
	}
	response.Success(w, http.StatusCreated, "Registration successful!", result)
}

// Login handles credential login
// @Summary Login with email and password
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	var req dto.LoginRequest
	if err := decodeForm(&req, form); err != nil {
		if !writeValidationError(w, err) {
			response.BadRequest(w, "Invalid request body")
		}
		return
	}

	result, issued, err := h.authUsecase.Login(r.Context(), &req, clientMeta(r))
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.Error(w, http.StatusUnauthorized, "Invalid email or password", nil)
		case errors.Is(err, usecase.ErrInvalidUserType):
			response.BadRequest(w, "Invalid user type")
		default:
			writeServerError(w, h.production, "Login failed. Please try again later.", err)
		}
		return
	}

	http.SetCookie(w, h.sessionService.Cookie(issued))
	response.Success(w, http.StatusOK, "Login successful!", result)
}

// Logout ends the current session, if any
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	if err := h.authUsecase.Logout(r.Context(), session); err != nil {
		writeServerError(w, h.production, "Logout failed", err)
		return
	}

	http.SetCookie(w, h.sessionService.ExpiredCookie())
	response.Success(w, http.StatusOK, "Logged out successfully", dto.LogoutResponse{Redirect: "/login"})
}

// CurrentAccount returns the signed-in account
// @Summary Get current account
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) CurrentAccount(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	result, err := h.authUsecase.CurrentAccount(r.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAccountNotFound):
			response.Unauthorized(w, "Authentication required")
		default:
			writeServerError(w, h.production, "Failed to get current account", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Authenticated", result)
}
