package handlers

import (
	"net/http"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/api/dto"
	"github.com/Lazycharm/Careerpilot-sub001/internal/api/middleware"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/setting"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/subscription"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/utils"
)

// BillingHandler exposes the read side of billing: plan tiers with live
// prices from settings, and the user's own subscription history. Payment
// capture happens out of band.
type BillingHandler struct {
	settings setting.Service
	subs     subscription.Repository
	logger   *logger.Logger
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(settings setting.Service, subs subscription.Repository, log *logger.Logger) *BillingHandler {
	return &BillingHandler{
		settings: settings,
		subs:     subs,
		logger:   log,
	}
}

// Plans lists every plan tier with its quota and current price
// @Summary List plan tiers
// @Tags Billing
// @Produce json
// @Success 200 {object} dto.PlansResponse
// @Router /billing/plans [get]
func (h *BillingHandler) Plans(w http.ResponseWriter, r *http.Request) {
	priceKeys := map[plan.Type]string{
		plan.Pro:            setting.KeyPriceProMonthly,
		plan.Business:       setting.KeyPriceBusinessMonthly,
		plan.PayPerDownload: setting.KeyPricePayPerDownload,
	}
	intervals := map[plan.Type]string{
		plan.Pro:            "monthly",
		plan.Business:       "monthly",
		plan.PayPerDownload: "per_download",
	}

	plans := make([]dto.PlanDTO, 0, len(plan.Types))
	for _, t := range plan.Types {
		quota := t.Quota()

		p := dto.PlanDTO{
			Type:         string(t),
			Resumes:      quota.Resumes,
			CoverLetters: quota.CoverLetters,
			Interviews:   quota.Interviews,
		}

		if key, ok := priceKeys[t]; ok {
			price, err := h.settings.GetNumber(r.Context(), key)
			if err != nil {
				utils.WriteAppError(w, err)
				return
			}
			p.PriceAED = price
			p.BillingInterval = intervals[t]
		}

		plans = append(plans, p)
	}

	utils.WriteSuccess(w, http.StatusOK, dto.PlansResponse{Plans: plans})
}

// Subscriptions lists the authenticated user's subscription history
// @Summary Subscription history
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SubscriptionDTO
// @Failure 401 {object} utils.ErrorResponse
// @Router /billing/subscriptions [get]
func (h *BillingHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	subs, err := h.subs.ListByUser(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	out := make([]dto.SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		d := dto.SubscriptionDTO{
			ID:        sub.ID,
			PlanType:  string(sub.PlanType),
			Status:    sub.Status,
			StartDate: sub.StartDate.Format(time.RFC3339),
		}
		if sub.EndDate != nil {
			end := sub.EndDate.Format(time.RFC3339)
			d.EndDate = &end
		}
		out = append(out, d)
	}

	utils.WriteSuccess(w, http.StatusOK, out)
}
