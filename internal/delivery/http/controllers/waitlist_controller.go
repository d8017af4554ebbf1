package controllers

import (
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// WaitlistListSuccessResponse is the success envelope carrying waitlist entries.
type WaitlistListSuccessResponse struct {
	Data  []*domain.WaitlistEntry `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type WaitlistController struct {
	Logger  *slog.Logger
	Service domain.WaitlistService
}

func NewWaitlistController(logger *slog.Logger, svc domain.WaitlistService) *WaitlistController {
	return &WaitlistController{
		Logger:  logger,
		Service: svc,
	}
}

// ListWaitlist godoc
// @Summary List the waitlist for an event
// @Description Returns all waitlist entries for the event, ordered by position within each ticket type.
// @Tags waitlist
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.WaitlistListSuccessResponse "data contains the waitlist entries"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/waitlist [get]
func (c *WaitlistController) ListWaitlist(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	entries, err := c.Service.ListWaitlist(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entries)
}

// ListWaitlistForTicketType godoc
// @Summary List the waitlist for one ticket type
// @Tags waitlist
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param ticketTypeID path string true "Ticket type ID (UUID)"
// @Success 200 {object} controllers.WaitlistListSuccessResponse "data contains the waitlist entries"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/waitlist/{ticketTypeID} [get]
func (c *WaitlistController) ListWaitlistForTicketType(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	ticketTypeID, ok := pathUUID(w, r, "ticketTypeID")
	if !ok {
		return
	}
	entries, err := c.Service.ListWaitlistForTicketType(r.Context(), eventID, ticketTypeID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entries)
}

// ConfirmWaitlistEntry godoc
// @Summary Confirm a waitlist entry
// @Description Organizer override: confirms the entry's waitlisted registration and removes it from the queue, without a capacity check.
// @Tags waitlist
// @Produce json
// @Param waitlistID path string true "Waitlist entry ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /waitlist/{waitlistID}/confirm [post]
func (c *WaitlistController) ConfirmWaitlistEntry(w http.ResponseWriter, r *http.Request) {
	waitlistID, ok := pathUUID(w, r, "waitlistID")
	if !ok {
		return
	}
	if err := c.Service.ConfirmEntry(r.Context(), waitlistID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "waitlist entry confirmed"})
}

// RemoveWaitlistEntry godoc
// @Summary Remove a waitlist entry
// @Tags waitlist
// @Produce json
// @Param waitlistID path string true "Waitlist entry ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /waitlist/{waitlistID} [delete]
func (c *WaitlistController) RemoveWaitlistEntry(w http.ResponseWriter, r *http.Request) {
	waitlistID, ok := pathUUID(w, r, "waitlistID")
	if !ok {
		return
	}
	if err := c.Service.RemoveEntry(r.Context(), waitlistID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "waitlist entry removed"})
}
