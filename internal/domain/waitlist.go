package domain

import (
	"context"
	"time"
)

// WaitlistEntry is one attendee waiting for a slot in a ticket type. Entries
// for a given (event, ticket type) are totally ordered by Position; positions
// are assigned as max+1 at enqueue time and never renumbered, so gaps appear
// when entries are removed.
// swagger:model WaitlistEntry
type WaitlistEntry struct {
	ID              string     `json:"id"`
	EventID         string     `json:"event_id"`
	TicketTypeID    string     `json:"ticket_type_id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	PhoneNumber     string     `json:"phone_number,omitempty"`
	Position        int        `json:"position"`
	JoinedDate      time.Time  `json:"joined_date"`
	PromotionExpiry *time.Time `json:"promotion_expiry,omitempty"`
	DiscountCode    string     `json:"discount_code,omitempty"`
}

// WaitlistRepository defines storage operations for the FIFO waitlist.
// Ordering is by Position only, never by JoinedDate, so concurrent enqueues
// sharing a timestamp cannot tie.
type WaitlistRepository interface {
	Create(ctx context.Context, entry *WaitlistEntry) error
	GetByID(ctx context.Context, id string) (*WaitlistEntry, error)
	// PeekNext returns the lowest-position entry for the event and ticket
	// type, or ErrNotFound when the queue is empty.
	PeekNext(ctx context.Context, eventID, ticketTypeID string) (*WaitlistEntry, error)
	// MaxPosition returns the highest position in use, 0 when none exist.
	MaxPosition(ctx context.Context, eventID, ticketTypeID string) (int, error)
	// GetByEventAndEmail returns the entry for an attendee; emails are unique
	// per event, so at most one entry matches.
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*WaitlistEntry, error)
	ListByEventID(ctx context.Context, eventID string) ([]*WaitlistEntry, error)
	ListByEventAndTicketType(ctx context.Context, eventID, ticketTypeID string) ([]*WaitlistEntry, error)
	Remove(ctx context.Context, id string) error
}

// WaitlistService exposes the waitlist query and manual-management surface.
type WaitlistService interface {
	ListWaitlist(ctx context.Context, eventID string) ([]*WaitlistEntry, error)
	ListWaitlistForTicketType(ctx context.Context, eventID, ticketTypeID string) ([]*WaitlistEntry, error)
	// ConfirmEntry promotes a specific entry's waitlisted registration and
	// removes the entry, without a capacity check.
	ConfirmEntry(ctx context.Context, entryID string) error
	RemoveEntry(ctx context.Context, entryID string) error
}
