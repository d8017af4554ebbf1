package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventregistration/internal/domain"
)

type waitlistService struct {
	store domain.Store
	now   func() time.Time
}

// NewWaitlistService creates a WaitlistService over the given store.
func NewWaitlistService(store domain.Store) domain.WaitlistService {
	return &waitlistService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *waitlistService) ListWaitlist(ctx context.Context, eventID string) ([]*domain.WaitlistEntry, error) {
	if _, err := s.store.Events().GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.Waitlist().ListByEventID(ctx, eventID)
}

func (s *waitlistService) ListWaitlistForTicketType(ctx context.Context, eventID, ticketTypeID string) ([]*domain.WaitlistEntry, error) {
	if _, err := s.store.Events().GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.Waitlist().ListByEventAndTicketType(ctx, eventID, ticketTypeID)
}

// ConfirmEntry promotes one specific entry regardless of its queue position.
// It is the organizer's override and intentionally skips the capacity check.
func (s *waitlistService) ConfirmEntry(ctx context.Context, entryID string) error {
	return s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		entry, err := tx.Waitlist().GetByID(ctx, entryID)
		if err != nil {
			return err
		}

		shadow, err := tx.Registrations().GetWaitlistedByEventAndEmail(ctx, entry.EventID, entry.Email)
		if err == nil {
			if err := tx.Registrations().MarkConfirmed(ctx, shadow.ID, s.now(), shadow.TotalAmount); err != nil {
				return fmt.Errorf("confirm waitlisted registration: %w", err)
			}
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get waitlisted registration: %w", err)
		}

		if err := tx.Waitlist().Remove(ctx, entryID); err != nil {
			return fmt.Errorf("remove waitlist entry: %w", err)
		}
		return nil
	})
}

func (s *waitlistService) RemoveEntry(ctx context.Context, entryID string) error {
	return s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		if _, err := tx.Waitlist().GetByID(ctx, entryID); err != nil {
			return err
		}
		return tx.Waitlist().Remove(ctx, entryID)
	})
}
