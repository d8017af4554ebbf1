package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "Draft"
	EventStatusPublished EventStatus = "Published"
	EventStatusCancelled EventStatus = "Cancelled"
	EventStatusCompleted EventStatus = "Completed"
)

// Valid reports whether s is one of the known event statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// Event represents a registrable event with an overall attendee capacity.
// swagger:model Event
type Event struct {
	ID                   string      `json:"id"`
	Name                 string      `json:"name"`
	Description          string      `json:"description,omitempty"`
	VenueName            string      `json:"venue_name,omitempty"`
	VenueAddress         string      `json:"venue_address,omitempty"`
	StartDate            time.Time   `json:"start_date"`
	EndDate              time.Time   `json:"end_date"`
	OverallCapacity      int         `json:"overall_capacity"`
	RegistrationDeadline *time.Time  `json:"registration_deadline,omitempty"`
	Status               EventStatus `json:"status"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetByIDForUpdate loads the event row with a row-level lock. It is only
	// meaningful inside a transaction and serializes concurrent admission and
	// promotion for the same event.
	GetByIDForUpdate(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, status EventStatus) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService defines organizer-facing event operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListEvents(ctx context.Context, status EventStatus) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	UpdateEvent(ctx context.Context, event *Event) (*Event, error)
	// DeleteEvent removes the event. It fails with ErrHasRegistrations while
	// any registration references the event.
	DeleteEvent(ctx context.Context, id string) error
}
