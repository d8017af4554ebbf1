package domain

import (
	"context"
	"time"
)

// RegistrationExportRow is one line of a registrations export, with the
// ticket type resolved to its name.
type RegistrationExportRow struct {
	RegistrationID   string             `json:"registration_id"`
	FirstName        string             `json:"first_name"`
	LastName         string             `json:"last_name"`
	Email            string             `json:"email"`
	PhoneNumber      string             `json:"phone_number,omitempty"`
	TicketTypeName   string             `json:"ticket_type_name"`
	Status           RegistrationStatus `json:"status"`
	TotalAmount      float64            `json:"total_amount"`
	RegistrationDate time.Time          `json:"registration_date"`
}

// ExportService builds export rows for an event's registrations. Rendering
// (CSV or JSON) is the delivery layer's concern.
type ExportService interface {
	ExportRegistrations(ctx context.Context, eventID string) ([]RegistrationExportRow, error)
}
