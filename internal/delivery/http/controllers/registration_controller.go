package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// RegisterRequest is the request body for registering an attendee.
type RegisterRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	TicketTypeID string `json:"ticket_type_id"`
	DiscountCode string `json:"discount_code"`
}

// Validate implements Validator. The service re-validates; these checks catch
// the obvious failures before a transaction is opened.
func (r RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.FirstName) == "" {
		errs = append(errs, "first_name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	if !emailRegex.MatchString(r.Email) {
		errs = append(errs, "email must be a valid email address")
	}
	if !uuidRegex.MatchString(r.TicketTypeID) {
		errs = append(errs, "ticket_type_id must be a UUID")
	}
	return errs
}

// RegistrationSuccessResponse is the success envelope carrying one registration.
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// RegistrationListSuccessResponse is the success envelope carrying a list of registrations.
type RegistrationListSuccessResponse struct {
	Data  []*domain.Registration `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// CancelSuccessResponse is the success envelope carrying a cancellation outcome.
type CancelSuccessResponse struct {
	Data  *domain.CancelResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register an attendee for an event
// @Description Admits the attendee when the ticket type and event have capacity; otherwise places them on the waitlist. The response status field distinguishes the two outcomes. A discount code, when given, is validated and applied to the charged amount.
// @Tags registrations
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param registration body RegisterRequest true "Attendee data"
// @Success 201 {object} controllers.RegistrationSuccessResponse "data contains the registration; status is Confirmed or Waitlisted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or conflict"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.Register(r.Context(), eventID, domain.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		TicketTypeID: req.TicketTypeID,
		DiscountCode: req.DiscountCode,
	})
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// ListRegistrations godoc
// @Summary List registrations for an event
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.RegistrationListSuccessResponse "data contains the registrations"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [get]
func (c *RegistrationController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	regs, err := c.Service.ListRegistrations(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// GetRegistration godoc
// @Summary Get a registration by ID
// @Tags registrations
// @Produce json
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} controllers.RegistrationSuccessResponse "data contains the registration"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID} [get]
func (c *RegistrationController) GetRegistration(w http.ResponseWriter, r *http.Request) {
	registrationID, ok := pathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	reg, err := c.Service.GetRegistration(r.Context(), registrationID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// ListRegistrationsByEmail godoc
// @Summary List registrations for an email address
// @Tags registrations
// @Produce json
// @Param email path string true "Attendee email"
// @Success 200 {object} controllers.RegistrationListSuccessResponse "data contains the registrations"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/by-email/{email} [get]
func (c *RegistrationController) ListRegistrationsByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if !emailRegex.MatchString(email) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid email")
		return
	}
	regs, err := c.Service.ListRegistrationsByEmail(r.Context(), email)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// CancelRegistration godoc
// @Summary Cancel a registration
// @Description Marks the registration cancelled, computes the refund from the event's cancellation policy, and promotes the next eligible waitlist entry. The response carries the refund amount and reason.
// @Tags registrations
// @Produce json
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} controllers.CancelSuccessResponse "data contains the cancellation outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: conflict when already cancelled"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID}/cancel [post]
func (c *RegistrationController) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	registrationID, ok := pathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	result, err := c.Service.Cancel(r.Context(), registrationID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// DeleteRegistration godoc
// @Summary Cancel a registration (DELETE form)
// @Description Same as the cancel operation but responds with a confirmation message instead of refund details.
// @Tags registrations
// @Produce json
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: conflict when already cancelled"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID} [delete]
func (c *RegistrationController) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	registrationID, ok := pathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	if _, err := c.Service.Cancel(r.Context(), registrationID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "registration cancelled"})
}
