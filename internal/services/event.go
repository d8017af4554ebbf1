package services

import (
	"context"
	"fmt"
	"strings"

	"eventregistration/internal/domain"
)

type eventService struct {
	store domain.Store
}

// NewEventService creates an EventService over the given store.
func NewEventService(store domain.Store) domain.EventService {
	return &eventService{store: store}
}

func (s *eventService) CreateEvent(ctx context.Context, ev *domain.Event) error {
	if err := validateEvent(ev); err != nil {
		return err
	}
	if ev.Status == "" {
		ev.Status = domain.EventStatusDraft
	}
	if err := s.store.Events().Create(ctx, ev); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) ListEvents(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s.store.Events().List(ctx, status)
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.store.Events().GetByID(ctx, id)
}

func (s *eventService) UpdateEvent(ctx context.Context, ev *domain.Event) (*domain.Event, error) {
	if err := validateEvent(ev); err != nil {
		return nil, err
	}

	var updated *domain.Event
	err := s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		current, err := tx.Events().GetByIDForUpdate(ctx, ev.ID)
		if err != nil {
			return err
		}

		// Shifting dates under existing registrations would invalidate
		// deadline and refund calculations already made against them.
		if !current.StartDate.Equal(ev.StartDate) || !current.EndDate.Equal(ev.EndDate) {
			exists, err := tx.Registrations().ExistsByEventID(ctx, ev.ID)
			if err != nil {
				return fmt.Errorf("check registrations: %w", err)
			}
			if exists {
				return fmt.Errorf("%w: cannot modify event dates when registrations exist", domain.ErrHasRegistrations)
			}
		}

		if err := tx.Events().Update(ctx, ev); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		updated = ev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	return s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		if _, err := tx.Events().GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
		exists, err := tx.Registrations().ExistsByEventID(ctx, id)
		if err != nil {
			return fmt.Errorf("check registrations: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: cannot delete event with existing registrations", domain.ErrHasRegistrations)
		}
		if err := tx.Events().Delete(ctx, id); err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	})
}

func validateEvent(ev *domain.Event) error {
	if strings.TrimSpace(ev.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !ev.EndDate.After(ev.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidInput)
	}
	if ev.RegistrationDeadline != nil && !ev.RegistrationDeadline.Before(ev.StartDate) {
		return fmt.Errorf("%w: registration deadline must be before event start date", domain.ErrInvalidInput)
	}
	if ev.OverallCapacity <= 0 {
		return fmt.Errorf("%w: overall capacity must be positive", domain.ErrInvalidInput)
	}
	if ev.Status != "" && !ev.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, ev.Status)
	}
	return nil
}
