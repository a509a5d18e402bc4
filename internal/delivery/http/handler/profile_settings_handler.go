package handler

import (
	"errors"
	"net/http"

	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/delivery/http/middleware"
	"doctor-portal/internal/usecase"
	"doctor-portal/pkg/response"
)

type ProfileSettingsHandler struct {
	settingsUsecase usecase.ProfileSettingsUsecase
	maxUploadSize   int64
	production      bool
}

func NewProfileSettingsHandler(settingsUsecase usecase.ProfileSettingsUsecase, maxUploadSize int64, production bool) *ProfileSettingsHandler {
	return &ProfileSettingsHandler{
		settingsUsecase: settingsUsecase,
		maxUploadSize:   maxUploadSize,
		production:      production,
	}
}

// GetSettings returns everything the settings page shows
// @Summary Get doctor profile settings
// @Tags Doctor
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /doctor/profile-settings [get]
func (h *ProfileSettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	result, err := h.settingsUsecase.Get(r.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		default:
			writeServerError(w, h.production, "Failed to load profile settings", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile settings retrieved successfully", result)
}

// SaveSettings saves one section of the settings form
// @Summary Save a profile settings section
// @Tags Doctor
// @Accept multipart/form-data
// @Produce json
// @Param section formData string true "all, basic, experience, education, awards, insurance, clinics or business_hours"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /doctor/profile-settings [post]
func (h *ProfileSettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	form, err := parseForm(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req, err := dto.NewSettingsRequest(form.Get("section"))
	if err != nil {
		response.BadRequest(w, "Invalid section specified")
		return
	}

	if err := decodeForm(req, form); err != nil {
		if !writeValidationError(w, err) {
			response.BadRequest(w, "Invalid request body")
		}
		return
	}
	dto.AttachWeeklyHours(req, form)

	for field, slot := range dto.UploadSlots(req) {
		upload, err := readUpload(r, field, h.maxUploadSize)
		if err != nil {
			response.BadRequest(w, "Failed to read uploaded file "+field)
			return
		}
		*slot = upload
	}

	result, err := h.settingsUsecase.Save(r.Context(), session, req)
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		if message, ok := conflictMessage(err); ok {
			response.Conflict(w, message)
			return
		}
		switch {
		case errors.Is(err, dto.ErrInvalidSection):
			response.BadRequest(w, "Invalid section specified")
		case errors.Is(err, usecase.ErrClinicNotFound):
			response.BadRequest(w, "Clinic not found")
		default:
			writeServerError(w, h.production, "Failed to save profile settings. Please try again.", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile settings updated successfully!", result)
}
