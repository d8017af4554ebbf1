package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// DiscountCodeRequest is the request body for creating or updating a discount code.
type DiscountCodeRequest struct {
	Code                    string    `json:"code"`
	DiscountType            string    `json:"discount_type"`
	DiscountValue           float64   `json:"discount_value"`
	MaxUses                 *int      `json:"max_uses"`
	ValidFrom               time.Time `json:"valid_from"`
	ValidUntil              time.Time `json:"valid_until"`
	ApplicableTicketTypeIDs []string  `json:"applicable_ticket_type_ids"`
	Status                  string    `json:"status"`
}

// Validate implements Validator.
func (d DiscountCodeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(d.Code) == "" {
		errs = append(errs, "code is required")
	}
	if !domain.DiscountType(d.DiscountType).Valid() {
		errs = append(errs, "discount_type must be Percentage or FixedAmount")
	}
	if d.DiscountValue < 0 {
		errs = append(errs, "discount_value must not be negative")
	}
	if d.MaxUses != nil && *d.MaxUses <= 0 {
		errs = append(errs, "max_uses must be positive when set")
	}
	if d.ValidFrom.IsZero() || d.ValidUntil.IsZero() {
		errs = append(errs, "valid_from and valid_until are required")
	} else if !d.ValidUntil.After(d.ValidFrom) {
		errs = append(errs, "valid_until must be after valid_from")
	}
	for _, id := range d.ApplicableTicketTypeIDs {
		if !uuidRegex.MatchString(id) {
			errs = append(errs, "applicable_ticket_type_ids must be UUIDs")
			break
		}
	}
	return errs
}

func (d DiscountCodeRequest) toDomain(eventID, id string) *domain.DiscountCode {
	status := domain.DiscountStatus(d.Status)
	if d.Status == "" {
		status = domain.DiscountStatusActive
	}
	return &domain.DiscountCode{
		ID:                      id,
		EventID:                 eventID,
		Code:                    d.Code,
		DiscountType:            domain.DiscountType(d.DiscountType),
		DiscountValue:           d.DiscountValue,
		MaxUses:                 d.MaxUses,
		ValidFrom:               d.ValidFrom,
		ValidUntil:              d.ValidUntil,
		ApplicableTicketTypeIDs: d.ApplicableTicketTypeIDs,
		Status:                  status,
	}
}

// ValidateDiscountRequest is the request body for the standalone validate operation.
type ValidateDiscountRequest struct {
	TicketTypeID string `json:"ticket_type_id"`
}

// Validate implements Validator.
func (v ValidateDiscountRequest) Validate() []string {
	if !uuidRegex.MatchString(v.TicketTypeID) {
		return []string{"ticket_type_id must be a UUID"}
	}
	return nil
}

// DiscountCodeSuccessResponse is the success envelope carrying one discount code.
type DiscountCodeSuccessResponse struct {
	Data  *domain.DiscountCode `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// DiscountCodeListSuccessResponse is the success envelope carrying a list of discount codes.
type DiscountCodeListSuccessResponse struct {
	Data  []*domain.DiscountCode `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// DiscountValidationSuccessResponse is the success envelope carrying a validation outcome.
type DiscountValidationSuccessResponse struct {
	Data  *domain.DiscountValidation `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

type DiscountController struct {
	Logger  *slog.Logger
	Service domain.DiscountService
}

func NewDiscountController(logger *slog.Logger, svc domain.DiscountService) *DiscountController {
	return &DiscountController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateDiscountCode godoc
// @Summary Create a discount code for an event
// @Description Creates a discount code. Codes are unique per event, compared case-insensitively.
// @Tags discount-codes
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param discountCode body DiscountCodeRequest true "Discount code data"
// @Success 201 {object} controllers.DiscountCodeSuccessResponse "data contains the created code"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or conflict"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/discount-codes [post]
func (c *DiscountController) CreateDiscountCode(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req DiscountCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	code := req.toDomain(eventID, "")
	if err := c.Service.CreateDiscountCode(r.Context(), code); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, code)
}

// ListDiscountCodes godoc
// @Summary List discount codes for an event
// @Tags discount-codes
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.DiscountCodeListSuccessResponse "data contains the discount codes"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/discount-codes [get]
func (c *DiscountController) ListDiscountCodes(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	codes, err := c.Service.ListDiscountCodes(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, codes)
}

// GetDiscountCode godoc
// @Summary Get a discount code by its code string
// @Description Looks the code up case-insensitively across events.
// @Tags discount-codes
// @Produce json
// @Param code path string true "Discount code string"
// @Success 200 {object} controllers.DiscountCodeSuccessResponse "data contains the discount code"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /discount-codes/{code} [get]
func (c *DiscountController) GetDiscountCode(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing code")
		return
	}
	dc, err := c.Service.GetDiscountCodeByCode(r.Context(), code)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dc)
}

// UpdateDiscountCode godoc
// @Summary Update a discount code
// @Description Replaces the code's fields. The owning event and usage counter are preserved.
// @Tags discount-codes
// @Accept json
// @Produce json
// @Param codeID path string true "Discount code ID (UUID)"
// @Param discountCode body DiscountCodeRequest true "Discount code data"
// @Success 200 {object} controllers.DiscountCodeSuccessResponse "data contains the updated code"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or conflict"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /discount-codes/{codeID} [put]
func (c *DiscountController) UpdateDiscountCode(w http.ResponseWriter, r *http.Request) {
	codeID, ok := pathUUID(w, r, "codeID")
	if !ok {
		return
	}
	var req DiscountCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	updated, err := c.Service.UpdateDiscountCode(r.Context(), req.toDomain("", codeID))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteDiscountCode godoc
// @Summary Delete a discount code
// @Description Deletes the code. Fails once the code has been applied to any registration.
// @Tags discount-codes
// @Produce json
// @Param codeID path string true "Discount code ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: conflict"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /discount-codes/{codeID} [delete]
func (c *DiscountController) DeleteDiscountCode(w http.ResponseWriter, r *http.Request) {
	codeID, ok := pathUUID(w, r, "codeID")
	if !ok {
		return
	}
	if err := c.Service.DeleteDiscountCode(r.Context(), codeID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "discount code deleted"})
}

// ValidateDiscountCode godoc
// @Summary Validate a discount code against a ticket type
// @Description Runs the use-time checks and reports the discount amount. A failed validation is a 200 response with valid=false, not an error.
// @Tags discount-codes
// @Accept json
// @Produce json
// @Param code path string true "Discount code string"
// @Param request body ValidateDiscountRequest true "Ticket type to validate against"
// @Success 200 {object} controllers.DiscountValidationSuccessResponse "data contains the validation outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /discount-codes/{code}/validate [post]
func (c *DiscountController) ValidateDiscountCode(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing code")
		return
	}
	var req ValidateDiscountRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.ValidateDiscountCode(r.Context(), code, req.TicketTypeID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
