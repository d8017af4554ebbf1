package controllers

import (
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// CancellationPolicyRequest is the request body for creating or updating an
// event's cancellation policy.
type CancellationPolicyRequest struct {
	FullRefundDeadlineDays    int      `json:"full_refund_deadline_days"`
	PartialRefundDeadlineDays int      `json:"partial_refund_deadline_days"`
	PartialRefundPercentage   int      `json:"partial_refund_percentage"`
	NoRefundAfterDays         int      `json:"no_refund_after_days"`
	CancellationFee           *float64 `json:"cancellation_fee"`
}

// Validate implements Validator.
func (p CancellationPolicyRequest) Validate() []string {
	var errs []string
	if p.FullRefundDeadlineDays < 0 || p.PartialRefundDeadlineDays < 0 || p.NoRefundAfterDays < 0 {
		errs = append(errs, "deadline days must not be negative")
	}
	if p.PartialRefundPercentage < 0 || p.PartialRefundPercentage > 100 {
		errs = append(errs, "partial_refund_percentage must be between 0 and 100")
	}
	if p.CancellationFee != nil && *p.CancellationFee < 0 {
		errs = append(errs, "cancellation_fee must not be negative")
	}
	return errs
}

func (p CancellationPolicyRequest) toDomain(eventID string) *domain.CancellationPolicy {
	return &domain.CancellationPolicy{
		EventID:                   eventID,
		FullRefundDeadlineDays:    p.FullRefundDeadlineDays,
		PartialRefundDeadlineDays: p.PartialRefundDeadlineDays,
		PartialRefundPercentage:   p.PartialRefundPercentage,
		NoRefundAfterDays:         p.NoRefundAfterDays,
		CancellationFee:           p.CancellationFee,
	}
}

// CancellationPolicySuccessResponse is the success envelope carrying a policy.
type CancellationPolicySuccessResponse struct {
	Data  *domain.CancellationPolicy `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

type CancellationPolicyController struct {
	Logger  *slog.Logger
	Service domain.CancellationPolicyService
}

func NewCancellationPolicyController(logger *slog.Logger, svc domain.CancellationPolicyService) *CancellationPolicyController {
	return &CancellationPolicyController{
		Logger:  logger,
		Service: svc,
	}
}

// CreatePolicy godoc
// @Summary Create the cancellation policy for an event
// @Description Creates the event's refund policy. Without a policy, cancellations refund the full amount.
// @Tags cancellation-policy
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param policy body CancellationPolicyRequest true "Policy data"
// @Success 201 {object} controllers.CancellationPolicySuccessResponse "data contains the created policy"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/cancellation-policy [post]
func (c *CancellationPolicyController) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req CancellationPolicyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	policy := req.toDomain(eventID)
	if err := c.Service.CreatePolicy(r.Context(), policy); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, policy)
}

// GetPolicy godoc
// @Summary Get the cancellation policy for an event
// @Tags cancellation-policy
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.CancellationPolicySuccessResponse "data contains the policy"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/cancellation-policy [get]
func (c *CancellationPolicyController) GetPolicy(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	policy, err := c.Service.GetPolicy(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, policy)
}

// UpdatePolicy godoc
// @Summary Update the cancellation policy for an event
// @Tags cancellation-policy
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param policy body CancellationPolicyRequest true "Policy data"
// @Success 200 {object} controllers.CancellationPolicySuccessResponse "data contains the updated policy"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/cancellation-policy [put]
func (c *CancellationPolicyController) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req CancellationPolicyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	updated, err := c.Service.UpdatePolicy(r.Context(), req.toDomain(eventID))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}
