package services

import (
	"context"
	"fmt"

	"eventregistration/internal/domain"
)

type capacityService struct {
	store domain.Store
}

// NewCapacityService creates a CapacityService reading from the given store.
func NewCapacityService(store domain.Store) domain.CapacityService {
	return &capacityService{store: store}
}

func (s *capacityService) GetCapacityReport(ctx context.Context, eventID string) (*domain.CapacityReport, error) {
	ev, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	overall, err := s.store.Registrations().CountConfirmedByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count confirmed for event: %w", err)
	}

	types, err := s.store.TicketTypes().ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list ticket types: %w", err)
	}

	report := &domain.CapacityReport{
		EventID:           eventID,
		OverallCapacity:   ev.OverallCapacity,
		OverallRegistered: overall,
		OverallRemaining:  ev.OverallCapacity - overall,
		TicketTypes:       make([]domain.TicketTypeCapacity, 0, len(types)),
	}
	for _, tt := range types {
		registered, err := s.store.Registrations().CountConfirmedByTicketTypeID(ctx, tt.ID)
		if err != nil {
			return nil, fmt.Errorf("count confirmed for ticket type: %w", err)
		}
		report.TicketTypes = append(report.TicketTypes, domain.TicketTypeCapacity{
			TicketTypeID: tt.ID,
			Name:         tt.Name,
			Capacity:     tt.Capacity,
			Registered:   registered,
			Remaining:    tt.Capacity - registered,
		})
	}
	return report, nil
}

func (s *capacityService) HasCapacity(ctx context.Context, eventID, ticketTypeID string) (bool, error) {
	ev, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		return false, err
	}
	tt, err := s.store.TicketTypes().GetByID(ctx, eventID, ticketTypeID)
	if err != nil {
		return false, err
	}
	return hasCapacity(ctx, s.store, ev, tt)
}

// hasCapacity reports whether a confirmed registration would still fit both
// the ticket type capacity and the event's overall capacity. Only confirmed
// registrations occupy slots. The admission and promotion paths call this
// with transaction-bound repositories so the answer reflects a consistent
// snapshot.
func hasCapacity(ctx context.Context, repos domain.Repositories, ev *domain.Event, tt *domain.TicketType) (bool, error) {
	confirmedTT, err := repos.Registrations().CountConfirmedByTicketTypeID(ctx, tt.ID)
	if err != nil {
		return false, fmt.Errorf("count confirmed for ticket type: %w", err)
	}
	confirmedEv, err := repos.Registrations().CountConfirmedByEventID(ctx, ev.ID)
	if err != nil {
		return false, fmt.Errorf("count confirmed for event: %w", err)
	}
	return confirmedTT < tt.Capacity && confirmedEv < ev.OverallCapacity, nil
}
