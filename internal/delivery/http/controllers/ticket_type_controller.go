package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// TicketTypeRequest is the request body for creating or updating a ticket type.
type TicketTypeRequest struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	Capacity       int        `json:"capacity"`
	AvailableFrom  *time.Time `json:"available_from"`
	AvailableUntil *time.Time `json:"available_until"`
}

// Validate implements Validator.
func (t TicketTypeRequest) Validate() []string {
	var errs []string
	if t.Name == "" {
		errs = append(errs, "name is required")
	}
	if t.Price < 0 {
		errs = append(errs, "price must not be negative")
	}
	if t.Capacity <= 0 {
		errs = append(errs, "capacity must be positive")
	}
	if t.AvailableFrom != nil && t.AvailableUntil != nil && !t.AvailableUntil.After(*t.AvailableFrom) {
		errs = append(errs, "available_until must be after available_from")
	}
	return errs
}

func (t TicketTypeRequest) toDomain(eventID, id string) *domain.TicketType {
	return &domain.TicketType{
		ID:             id,
		EventID:        eventID,
		Name:           t.Name,
		Description:    t.Description,
		Price:          t.Price,
		Capacity:       t.Capacity,
		AvailableFrom:  t.AvailableFrom,
		AvailableUntil: t.AvailableUntil,
	}
}

// TicketTypeSuccessResponse is the success envelope carrying one ticket type
// with its remaining capacity.
type TicketTypeSuccessResponse struct {
	Data  *domain.TicketTypeWithRemaining `json:"data"`
	Error *helpers.APIError               `json:"error"`
}

// TicketTypeListSuccessResponse is the success envelope carrying a list of
// ticket types with remaining capacity.
type TicketTypeListSuccessResponse struct {
	Data  []*domain.TicketTypeWithRemaining `json:"data"`
	Error *helpers.APIError                 `json:"error"`
}

type TicketTypeController struct {
	Logger  *slog.Logger
	Service domain.TicketTypeService
}

func NewTicketTypeController(logger *slog.Logger, svc domain.TicketTypeService) *TicketTypeController {
	return &TicketTypeController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateTicketType godoc
// @Summary Create a ticket type for an event
// @Description Creates a ticket tier. The sum of ticket type capacities must not exceed the event's overall capacity.
// @Tags ticket-types
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param ticketType body TicketTypeRequest true "Ticket type data"
// @Success 201 {object} controllers.TicketTypeSuccessResponse "data contains the created ticket type"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/ticket-types [post]
func (c *TicketTypeController) CreateTicketType(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req TicketTypeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	created, err := c.Service.CreateTicketType(r.Context(), req.toDomain(eventID, ""))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListTicketTypes godoc
// @Summary List ticket types for an event
// @Description Returns the event's ticket types, each with remaining capacity.
// @Tags ticket-types
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.TicketTypeListSuccessResponse "data contains the ticket types"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/ticket-types [get]
func (c *TicketTypeController) ListTicketTypes(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	tts, err := c.Service.ListTicketTypes(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tts)
}

// GetTicketType godoc
// @Summary Get a ticket type
// @Tags ticket-types
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param ticketTypeID path string true "Ticket type ID (UUID)"
// @Success 200 {object} controllers.TicketTypeSuccessResponse "data contains the ticket type"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/ticket-types/{ticketTypeID} [get]
func (c *TicketTypeController) GetTicketType(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	ticketTypeID, ok := pathUUID(w, r, "ticketTypeID")
	if !ok {
		return
	}
	tt, err := c.Service.GetTicketType(r.Context(), eventID, ticketTypeID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tt)
}

// UpdateTicketType godoc
// @Summary Update a ticket type
// @Description Replaces the ticket type's fields. Capacity cannot drop below the current confirmed count.
// @Tags ticket-types
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param ticketTypeID path string true "Ticket type ID (UUID)"
// @Param ticketType body TicketTypeRequest true "Ticket type data"
// @Success 200 {object} controllers.TicketTypeSuccessResponse "data contains the updated ticket type"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/ticket-types/{ticketTypeID} [put]
func (c *TicketTypeController) UpdateTicketType(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	ticketTypeID, ok := pathUUID(w, r, "ticketTypeID")
	if !ok {
		return
	}
	var req TicketTypeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	updated, err := c.Service.UpdateTicketType(r.Context(), req.toDomain(eventID, ticketTypeID))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteTicketType godoc
// @Summary Delete a ticket type
// @Description Deletes the ticket type. Fails while any registration references it.
// @Tags ticket-types
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param ticketTypeID path string true "Ticket type ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: conflict"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/ticket-types/{ticketTypeID} [delete]
func (c *TicketTypeController) DeleteTicketType(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	ticketTypeID, ok := pathUUID(w, r, "ticketTypeID")
	if !ok {
		return
	}
	if err := c.Service.DeleteTicketType(r.Context(), eventID, ticketTypeID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "ticket type deleted"})
}
