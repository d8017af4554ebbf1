package domain

import (
	"context"
	"time"
)

// TicketType represents one ticket tier of an event with its own price and
// capacity. The sum of ticket type capacities for an event never exceeds the
// event's overall capacity.
// swagger:model TicketType
type TicketType struct {
	ID             string     `json:"id"`
	EventID        string     `json:"event_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Price          float64    `json:"price"`
	Capacity       int        `json:"capacity"`
	AvailableFrom  *time.Time `json:"available_from,omitempty"`
	AvailableUntil *time.Time `json:"available_until,omitempty"`
}

// TicketTypeWithRemaining bundles a ticket type with its remaining capacity
// (capacity minus confirmed registrations).
type TicketTypeWithRemaining struct {
	*TicketType
	Remaining int `json:"remaining"`
}

// TicketTypeRepository defines the interface for ticket type storage.
type TicketTypeRepository interface {
	Create(ctx context.Context, tt *TicketType) error
	// GetByID loads a ticket type scoped to an event; a ticket type belonging
	// to a different event is reported as ErrNotFound.
	GetByID(ctx context.Context, eventID, id string) (*TicketType, error)
	ListByEventID(ctx context.Context, eventID string) ([]*TicketType, error)
	// SumCapacity returns the total capacity of the event's ticket types,
	// excluding excludeID when non-empty.
	SumCapacity(ctx context.Context, eventID, excludeID string) (int, error)
	Update(ctx context.Context, tt *TicketType) error
	Delete(ctx context.Context, id string) error
}

// TicketTypeService defines organizer-facing ticket type operations.
type TicketTypeService interface {
	CreateTicketType(ctx context.Context, tt *TicketType) (*TicketTypeWithRemaining, error)
	ListTicketTypes(ctx context.Context, eventID string) ([]*TicketTypeWithRemaining, error)
	GetTicketType(ctx context.Context, eventID, id string) (*TicketTypeWithRemaining, error)
	UpdateTicketType(ctx context.Context, tt *TicketType) (*TicketTypeWithRemaining, error)
	DeleteTicketType(ctx context.Context, eventID, id string) error
}
