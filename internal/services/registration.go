package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// registrationService owns the admission, cancellation, and waitlist
// promotion state machine. Every state change runs inside one store
// transaction with the event row locked, so concurrent requests for the same
// event serialize on the capacity check and the last slot cannot be sold
// twice.
type registrationService struct {
	store domain.Store
	now   func() time.Time
}

// NewRegistrationService creates the registration coordinator.
func NewRegistrationService(store domain.Store) domain.RegistrationService {
	return &registrationService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *registrationService) Register(ctx context.Context, eventID string, in domain.RegisterInput) (*domain.Registration, error) {
	if err := validateRegisterInput(in); err != nil {
		return nil, err
	}

	var created *domain.Registration
	err := s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		now := s.now()

		// Locking the event row serializes admission per event.
		ev, err := tx.Events().GetByIDForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}
		if ev.Status != domain.EventStatusPublished {
			return domain.ErrEventNotPublished
		}
		if err := checkDeadline(ev, now); err != nil {
			return err
		}

		tt, err := tx.TicketTypes().GetByID(ctx, eventID, in.TicketTypeID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get ticket type: %w", err)
		}

		// Any prior registration blocks the email, cancelled ones included.
		exists, err := tx.Registrations().ExistsByEventAndEmail(ctx, eventID, in.Email)
		if err != nil {
			return fmt.Errorf("check duplicate email: %w", err)
		}
		if exists {
			return domain.ErrDuplicateEmail
		}

		finalPrice := tt.Price
		var code *domain.DiscountCode
		var codeUsed string
		if in.DiscountCode != "" {
			code, finalPrice, err = applyDiscount(ctx, tx, eventID, in.DiscountCode, tt, now)
			if err != nil {
				return err
			}
			codeUsed = in.DiscountCode
		}

		ok, err := hasCapacity(ctx, tx, ev, tt)
		if err != nil {
			return err
		}

		if !ok {
			created, err = s.waitlist(ctx, tx, eventID, in, finalPrice, codeUsed, now)
			return err
		}

		reg := &domain.Registration{
			EventID:          eventID,
			TicketTypeID:     in.TicketTypeID,
			FirstName:        in.FirstName,
			LastName:         in.LastName,
			Email:            in.Email,
			PhoneNumber:      in.PhoneNumber,
			RegistrationDate: now,
			Status:           domain.RegistrationStatusConfirmed,
			TotalAmount:      finalPrice,
			DiscountCodeUsed: codeUsed,
		}
		if err := tx.Registrations().Create(ctx, reg); err != nil {
			return fmt.Errorf("create registration: %w", err)
		}
		// A discount use is only consumed by a confirmed registration, in the
		// same transaction so both land or neither does.
		if code != nil {
			if err := tx.DiscountCodes().IncrementUses(ctx, code.ID); err != nil {
				return fmt.Errorf("increment discount uses: %w", err)
			}
		}
		created = reg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// waitlist enqueues the attendee and creates the shadow waitlisted
// registration, so lookups by registration id resolve while they wait.
func (s *registrationService) waitlist(ctx context.Context, tx domain.Repositories, eventID string, in domain.RegisterInput, price float64, codeUsed string, now time.Time) (*domain.Registration, error) {
	maxPos, err := tx.Waitlist().MaxPosition(ctx, eventID, in.TicketTypeID)
	if err != nil {
		return nil, fmt.Errorf("max waitlist position: %w", err)
	}
	entry := &domain.WaitlistEntry{
		EventID:      eventID,
		TicketTypeID: in.TicketTypeID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		Position:     maxPos + 1,
		JoinedDate:   now,
		DiscountCode: in.DiscountCode,
	}
	if err := tx.Waitlist().Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create waitlist entry: %w", err)
	}

	reg := &domain.Registration{
		EventID:          eventID,
		TicketTypeID:     in.TicketTypeID,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		PhoneNumber:      in.PhoneNumber,
		RegistrationDate: now,
		Status:           domain.RegistrationStatusWaitlisted,
		TotalAmount:      price,
		DiscountCodeUsed: codeUsed,
	}
	if err := tx.Registrations().Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create waitlisted registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) Cancel(ctx context.Context, registrationID string) (*domain.CancelResult, error) {
	var result *domain.CancelResult
	err := s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		reg, err := tx.Registrations().GetByID(ctx, registrationID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get registration: %w", err)
		}
		if reg.Status == domain.RegistrationStatusCancelled {
			return domain.ErrAlreadyCancelled
		}

		// Same lock order as admission: event row first.
		ev, err := tx.Events().GetByIDForUpdate(ctx, reg.EventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		// Re-read under the lock. A concurrent cancel that committed while
		// we waited on the event row would otherwise pass the stale status
		// check and hand out a second refund.
		reg, err = tx.Registrations().GetByID(ctx, registrationID)
		if err != nil {
			return fmt.Errorf("get registration: %w", err)
		}
		if reg.Status == domain.RegistrationStatusCancelled {
			return domain.ErrAlreadyCancelled
		}

		policy, err := tx.CancellationPolicies().GetByEventID(ctx, reg.EventID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get cancellation policy: %w", err)
		}

		// The evaluator runs regardless of prior status; a waitlisted
		// registration refunds its theoretical amount.
		amount, reason := EvaluateRefund(reg, ev, policy, s.now())

		if err := tx.Registrations().UpdateStatus(ctx, registrationID, domain.RegistrationStatusCancelled); err != nil {
			return fmt.Errorf("cancel registration: %w", err)
		}

		if reg.Status == domain.RegistrationStatusWaitlisted {
			// A waitlisted cancellation frees no confirmed slot. Drop the
			// queue entry so it cannot surface in a later promotion.
			if err := s.dequeue(ctx, tx, reg.EventID, reg.Email); err != nil {
				return err
			}
		} else {
			// The promotion recheck below sees the freed slot because it
			// runs in the same transaction as the status change.
			if err := s.promote(ctx, tx, reg.EventID, reg.TicketTypeID); err != nil {
				return err
			}
		}

		result = &domain.CancelResult{
			RegistrationID: registrationID,
			Status:         domain.RegistrationStatusCancelled,
			RefundAmount:   amount,
			RefundReason:   reason,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// dequeue removes the waitlist entry of a cancelling waitlisted attendee.
// The entry may already be gone when a manual confirm or removal raced the
// cancellation; that is not an error.
func (s *registrationService) dequeue(ctx context.Context, tx domain.Repositories, eventID, email string) error {
	entry, err := tx.Waitlist().GetByEventAndEmail(ctx, eventID, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get waitlist entry: %w", err)
	}
	if err := tx.Waitlist().Remove(ctx, entry.ID); err != nil {
		return fmt.Errorf("remove waitlist entry: %w", err)
	}
	return nil
}

// promote confirms the lowest-position waitlist entry for the ticket type if
// a slot is free. It fills at most one slot per call; each cancellation frees
// one slot and triggers exactly one promotion. Only the ticket type capacity
// is rechecked here, not the event-wide capacity.
func (s *registrationService) promote(ctx context.Context, tx domain.Repositories, eventID, ticketTypeID string) error {
	entry, err := tx.Waitlist().PeekNext(ctx, eventID, ticketTypeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("peek waitlist: %w", err)
	}

	tt, err := tx.TicketTypes().GetByID(ctx, eventID, ticketTypeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get ticket type: %w", err)
	}

	confirmed, err := tx.Registrations().CountConfirmedByTicketTypeID(ctx, ticketTypeID)
	if err != nil {
		return fmt.Errorf("count confirmed: %w", err)
	}
	if confirmed >= tt.Capacity {
		// Entry stays queued; the next cancellation retries.
		return nil
	}

	now := s.now()

	// Re-validate the attached discount at promotion time; constraints may
	// have shifted since enqueue. A code that no longer validates falls back
	// to the undiscounted current price.
	price := tt.Price
	if entry.DiscountCode != "" {
		code, getErr := tx.DiscountCodes().GetByEventAndCode(ctx, eventID, entry.DiscountCode)
		if getErr == nil && code.ValidateForUse(ticketTypeID, now) == nil {
			price = code.DiscountedPrice(tt.Price)
		} else if getErr != nil && !errors.Is(getErr, domain.ErrNotFound) {
			return fmt.Errorf("get discount code: %w", getErr)
		}
	}

	shadow, err := tx.Registrations().GetWaitlistedByEventAndEmail(ctx, eventID, entry.Email)
	if err == nil {
		if err := tx.Registrations().MarkConfirmed(ctx, shadow.ID, now, price); err != nil {
			return fmt.Errorf("confirm waitlisted registration: %w", err)
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get waitlisted registration: %w", err)
	}

	if err := tx.Waitlist().Remove(ctx, entry.ID); err != nil {
		return fmt.Errorf("remove waitlist entry: %w", err)
	}
	return nil
}

func (s *registrationService) GetRegistration(ctx context.Context, id string) (*domain.Registration, error) {
	return s.store.Registrations().GetByID(ctx, id)
}

func (s *registrationService) ListRegistrations(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return s.store.Registrations().ListByEventID(ctx, eventID)
}

func (s *registrationService) ListRegistrationsByEmail(ctx context.Context, email string) ([]*domain.Registration, error) {
	return s.store.Registrations().ListByEmail(ctx, email)
}

func validateRegisterInput(in domain.RegisterInput) error {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return fmt.Errorf("%w: first name and last name are required", domain.ErrInvalidInput)
	}
	if !emailRegex.MatchString(in.Email) {
		return fmt.Errorf("%w: valid email is required", domain.ErrInvalidInput)
	}
	if in.TicketTypeID == "" {
		return fmt.Errorf("%w: ticket type is required", domain.ErrInvalidInput)
	}
	return nil
}

// checkDeadline enforces the registration deadline with its grace window: a
// registration past the deadline is still accepted while the deadline passed
// less than two days ago or the event start is more than a week out.
func checkDeadline(ev *domain.Event, now time.Time) error {
	if ev.RegistrationDeadline == nil || !now.After(*ev.RegistrationDeadline) {
		return nil
	}
	daysSinceDeadline := now.Sub(*ev.RegistrationDeadline).Hours() / 24
	daysUntilEvent := ev.StartDate.Sub(now).Hours() / 24
	if daysSinceDeadline < 2 || daysUntilEvent > 7 {
		return nil
	}
	return domain.ErrDeadlinePassed
}

// applyDiscount resolves and validates a discount code for the ticket type,
// returning the code and the discounted price. Validation failures surface
// as *domain.DiscountError.
func applyDiscount(ctx context.Context, tx domain.Repositories, eventID, rawCode string, tt *domain.TicketType, now time.Time) (*domain.DiscountCode, float64, error) {
	code, err := tx.DiscountCodes().GetByEventAndCode(ctx, eventID, rawCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, &domain.DiscountError{Kind: domain.DiscountNotFound, Message: "Invalid discount code"}
		}
		return nil, 0, fmt.Errorf("get discount code: %w", err)
	}
	if derr := code.ValidateForUse(tt.ID, now); derr != nil {
		return nil, 0, derr
	}
	return code, code.DiscountedPrice(tt.Price), nil
}
