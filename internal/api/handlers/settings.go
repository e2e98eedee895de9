package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lazycharm/Careerpilot-sub001/internal/api/dto"
	"github.com/Lazycharm/Careerpilot-sub001/internal/api/middleware"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/setting"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/utils"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/validator"
)

// SettingsHandler handles the admin settings routes
type SettingsHandler struct {
	settings  setting.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings setting.Service, log *logger.Logger, val *validator.Validator) *SettingsHandler {
	return &SettingsHandler{
		settings:  settings,
		logger:    log,
		validator: val,
	}
}

// List returns all stored settings
// @Summary List settings
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SettingDTO
// @Failure 403 {object} utils.ErrorResponse
// @Router /admin/settings [get]
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.List(r.Context())
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	out := make([]dto.SettingDTO, 0, len(settings))
	for _, s := range settings {
		out = append(out, settingDTO(s))
	}

	utils.WriteSuccess(w, http.StatusOK, out)
}

// Update upserts one setting by key
// @Summary Update a setting
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Param request body dto.UpdateSettingRequest true "New value"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /admin/settings/{key} [put]
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		utils.WriteError(w, errors.BadRequest("Missing setting key"))
		return
	}

	var req dto.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	adminID, _ := middleware.GetUserID(r)

	if err := h.settings.Set(r.Context(), key, req.Value, req.Description, adminID); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Setting updated", nil)
}

// InitializeDefaults resets every shipped default setting
// @Summary Reset settings to shipped defaults
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /admin/settings/initialize [post]
func (h *SettingsHandler) InitializeDefaults(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.GetUserID(r)

	if err := h.settings.InitializeDefaults(r.Context(), adminID); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"admin_id": adminID,
	}).Info("Settings reset to defaults")

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Settings reset to defaults", nil)
}

func settingDTO(s *setting.Setting) dto.SettingDTO {
	return dto.SettingDTO{
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
		UpdatedBy:   s.UpdatedBy,
		UpdatedAt:   s.UpdatedAt,
	}
}
