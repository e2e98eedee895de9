package handlers

import (
	"net/http"

	"github.com/Lazycharm/Careerpilot-sub001/internal/api/middleware"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/usage"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/utils"
)

// UsageHandler handles usage summary and admin reset routes
type UsageHandler struct {
	usage  usage.Service
	logger *logger.Logger
}

// NewUsageHandler creates a new usage handler
func NewUsageHandler(u usage.Service, log *logger.Logger) *UsageHandler {
	return &UsageHandler{usage: u, logger: log}
}

// Summary returns the authenticated user's current-month usage
// @Summary Current month AI usage
// @Tags Usage
// @Produce json
// @Security BearerAuth
// @Success 200 {object} usage.Summary
// @Failure 401 {object} utils.ErrorResponse
// @Router /usage [get]
func (h *UsageHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	summary, err := h.usage.Summary(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, summary)
}

// Reset zeroes a user's counters for the current month
// @Summary Reset a user's current-month usage
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /admin/usage/{id}/reset [post]
func (h *UsageHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "id")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid user ID"))
		return
	}

	if err := h.usage.ResetCurrentMonth(r.Context(), userID); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	adminID, _ := middleware.GetUserID(r)
	h.logger.WithFields(map[string]interface{}{
		"admin_id": adminID,
		"user_id":  userID,
	}).Info("Usage reset by admin")

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Usage reset", nil)
}

// NearLimit lists users close to their monthly quota
// @Summary Users near their AI quota
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} usage.Summary
// @Failure 403 {object} utils.ErrorResponse
// @Router /admin/usage/near-limit [get]
func (h *UsageHandler) NearLimit(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.usage.NearLimit(r.Context())
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if summaries == nil {
		summaries = []*usage.Summary{}
	}

	utils.WriteSuccess(w, http.StatusOK, summaries)
}
