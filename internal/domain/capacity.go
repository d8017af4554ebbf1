package domain

import "context"

// TicketTypeCapacity is the per-ticket-type slice of a capacity report.
type TicketTypeCapacity struct {
	TicketTypeID string `json:"ticket_type_id"`
	Name         string `json:"name"`
	Capacity     int    `json:"capacity"`
	Registered   int    `json:"registered"`
	Remaining    int    `json:"remaining"`
}

// CapacityReport is the live capacity view of an event. Only confirmed
// registrations count; waitlisted and cancelled ones do not occupy slots.
type CapacityReport struct {
	EventID           string               `json:"event_id"`
	OverallCapacity   int                  `json:"overall_capacity"`
	OverallRegistered int                  `json:"overall_registered"`
	OverallRemaining  int                  `json:"overall_remaining"`
	TicketTypes       []TicketTypeCapacity `json:"ticket_types"`
}

// CapacityService answers capacity questions from current registration state.
// It performs pure reads; admission and promotion re-derive the same counts
// inside their own transactions.
type CapacityService interface {
	GetCapacityReport(ctx context.Context, eventID string) (*CapacityReport, error)
	HasCapacity(ctx context.Context, eventID, ticketTypeID string) (bool, error)
}
