package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the admission state of a registration.
type RegistrationStatus string

const (
	RegistrationStatusConfirmed  RegistrationStatus = "Confirmed"
	RegistrationStatusWaitlisted RegistrationStatus = "Waitlisted"
	RegistrationStatusCancelled  RegistrationStatus = "Cancelled"
	// RegistrationStatusRefunded is reserved for a future refund flow; no
	// current transition produces it.
	RegistrationStatusRefunded RegistrationStatus = "Refunded"
)

// Registration represents an attendee's registration for an event.
// TotalAmount is the price actually charged, after any discount.
// swagger:model Registration
type Registration struct {
	ID               string             `json:"id"`
	EventID          string             `json:"event_id"`
	TicketTypeID     string             `json:"ticket_type_id"`
	FirstName        string             `json:"first_name"`
	LastName         string             `json:"last_name"`
	Email            string             `json:"email"`
	PhoneNumber      string             `json:"phone_number,omitempty"`
	RegistrationDate time.Time          `json:"registration_date"`
	Status           RegistrationStatus `json:"status"`
	TotalAmount      float64            `json:"total_amount"`
	DiscountCodeUsed string             `json:"discount_code_used,omitempty"`
}

// RegisterInput carries the attendee fields of a registration request.
type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	TicketTypeID string
	DiscountCode string
}

// CancelResult is the outcome of cancelling a registration.
type CancelResult struct {
	RegistrationID string             `json:"registration_id"`
	Status         RegistrationStatus `json:"status"`
	RefundAmount   float64            `json:"refund_amount"`
	RefundReason   string             `json:"refund_reason"`
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	ListByEmail(ctx context.Context, email string) ([]*Registration, error)
	// ExistsByEventAndEmail reports whether any registration (cancelled
	// included) exists for the event and email.
	ExistsByEventAndEmail(ctx context.Context, eventID, email string) (bool, error)
	ExistsByEventID(ctx context.Context, eventID string) (bool, error)
	ExistsByTicketTypeID(ctx context.Context, ticketTypeID string) (bool, error)
	GetWaitlistedByEventAndEmail(ctx context.Context, eventID, email string) (*Registration, error)
	CountConfirmedByEventID(ctx context.Context, eventID string) (int, error)
	CountConfirmedByTicketTypeID(ctx context.Context, ticketTypeID string) (int, error)
	UpdateStatus(ctx context.Context, id string, status RegistrationStatus) error
	// MarkConfirmed flips a waitlisted registration to confirmed, refreshing
	// its registration date and charged amount.
	MarkConfirmed(ctx context.Context, id string, registrationDate time.Time, totalAmount float64) error
}

// RegistrationService owns the admission, cancellation, and waitlist
// promotion state machine. All registration state changes go through it.
type RegistrationService interface {
	// Register admits the attendee when capacity allows, otherwise waitlists
	// them. A full house is not an error: the returned registration carries
	// RegistrationStatusWaitlisted in that case.
	Register(ctx context.Context, eventID string, in RegisterInput) (*Registration, error)
	// Cancel marks the registration cancelled, computes the refund from the
	// event's cancellation policy, and promotes the next waitlist entry if
	// the freed slot allows it.
	Cancel(ctx context.Context, registrationID string) (*CancelResult, error)
	GetRegistration(ctx context.Context, id string) (*Registration, error)
	ListRegistrations(ctx context.Context, eventID string) ([]*Registration, error)
	ListRegistrationsByEmail(ctx context.Context, email string) ([]*Registration, error)
}
