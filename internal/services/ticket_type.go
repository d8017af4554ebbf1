package services

import (
	"context"
	"fmt"
	"strings"

	"eventregistration/internal/domain"
)

type ticketTypeService struct {
	store domain.Store
}

// NewTicketTypeService creates a TicketTypeService over the given store.
func NewTicketTypeService(store domain.Store) domain.TicketTypeService {
	return &ticketTypeService{store: store}
}

func (s *ticketTypeService) CreateTicketType(ctx context.Context, tt *domain.TicketType) (*domain.TicketTypeWithRemaining, error) {
	if err := validateTicketType(tt); err != nil {
		return nil, err
	}

	err := s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		ev, err := tx.Events().GetByIDForUpdate(ctx, tt.EventID)
		if err != nil {
			return err
		}
		if err := checkCapacitySum(ctx, tx, ev, tt, ""); err != nil {
			return err
		}
		if tt.AvailableUntil != nil && tt.AvailableUntil.After(ev.StartDate) {
			return fmt.Errorf("%w: available until date must be before or at event start", domain.ErrInvalidInput)
		}
		if err := tx.TicketTypes().Create(ctx, tt); err != nil {
			return fmt.Errorf("create ticket type: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &domain.TicketTypeWithRemaining{TicketType: tt, Remaining: tt.Capacity}, nil
}

func (s *ticketTypeService) ListTicketTypes(ctx context.Context, eventID string) ([]*domain.TicketTypeWithRemaining, error) {
	if _, err := s.store.Events().GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	types, err := s.store.TicketTypes().ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list ticket types: %w", err)
	}
	result := make([]*domain.TicketTypeWithRemaining, 0, len(types))
	for _, tt := range types {
		withRemaining, err := s.withRemaining(ctx, tt)
		if err != nil {
			return nil, err
		}
		result = append(result, withRemaining)
	}
	return result, nil
}

func (s *ticketTypeService) GetTicketType(ctx context.Context, eventID, id string) (*domain.TicketTypeWithRemaining, error) {
	tt, err := s.store.TicketTypes().GetByID(ctx, eventID, id)
	if err != nil {
		return nil, err
	}
	return s.withRemaining(ctx, tt)
}

func (s *ticketTypeService) UpdateTicketType(ctx context.Context, tt *domain.TicketType) (*domain.TicketTypeWithRemaining, error) {
	if err := validateTicketType(tt); err != nil {
		return nil, err
	}

	var result *domain.TicketTypeWithRemaining
	err := s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		ev, err := tx.Events().GetByIDForUpdate(ctx, tt.EventID)
		if err != nil {
			return err
		}
		if _, err := tx.TicketTypes().GetByID(ctx, tt.EventID, tt.ID); err != nil {
			return err
		}

		confirmed, err := tx.Registrations().CountConfirmedByTicketTypeID(ctx, tt.ID)
		if err != nil {
			return fmt.Errorf("count confirmed: %w", err)
		}
		if tt.Capacity < confirmed {
			return fmt.Errorf("%w: cannot reduce capacity below current registration count", domain.ErrInvalidInput)
		}
		if err := checkCapacitySum(ctx, tx, ev, tt, tt.ID); err != nil {
			return err
		}

		if err := tx.TicketTypes().Update(ctx, tt); err != nil {
			return fmt.Errorf("update ticket type: %w", err)
		}
		result = &domain.TicketTypeWithRemaining{TicketType: tt, Remaining: tt.Capacity - confirmed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ticketTypeService) DeleteTicketType(ctx context.Context, eventID, id string) error {
	return s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		if _, err := tx.TicketTypes().GetByID(ctx, eventID, id); err != nil {
			return err
		}
		exists, err := tx.Registrations().ExistsByTicketTypeID(ctx, id)
		if err != nil {
			return fmt.Errorf("check registrations: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: cannot delete ticket type with existing registrations", domain.ErrHasRegistrations)
		}
		if err := tx.TicketTypes().Delete(ctx, id); err != nil {
			return fmt.Errorf("delete ticket type: %w", err)
		}
		return nil
	})
}

func (s *ticketTypeService) withRemaining(ctx context.Context, tt *domain.TicketType) (*domain.TicketTypeWithRemaining, error) {
	confirmed, err := s.store.Registrations().CountConfirmedByTicketTypeID(ctx, tt.ID)
	if err != nil {
		return nil, fmt.Errorf("count confirmed: %w", err)
	}
	return &domain.TicketTypeWithRemaining{TicketType: tt, Remaining: tt.Capacity - confirmed}, nil
}

// checkCapacitySum enforces that the ticket type capacities of an event never
// add up past its overall capacity. excludeID skips the ticket type itself on
// update.
func checkCapacitySum(ctx context.Context, tx domain.Repositories, ev *domain.Event, tt *domain.TicketType, excludeID string) error {
	sum, err := tx.TicketTypes().SumCapacity(ctx, ev.ID, excludeID)
	if err != nil {
		return fmt.Errorf("sum ticket capacities: %w", err)
	}
	if sum+tt.Capacity > ev.OverallCapacity {
		return fmt.Errorf("%w: sum of ticket type capacities cannot exceed event capacity", domain.ErrInvalidInput)
	}
	return nil
}

func validateTicketType(tt *domain.TicketType) error {
	if strings.TrimSpace(tt.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if tt.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}
	if tt.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", domain.ErrInvalidInput)
	}
	return nil
}
