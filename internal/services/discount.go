package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

type discountService struct {
	store domain.Store
	now   func() time.Time
}

// NewDiscountService creates a DiscountService over the given store.
func NewDiscountService(store domain.Store) domain.DiscountService {
	return &discountService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *discountService) CreateDiscountCode(ctx context.Context, code *domain.DiscountCode) error {
	if err := validateDiscountCode(code); err != nil {
		return err
	}
	return s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		if _, err := tx.Events().GetByID(ctx, code.EventID); err != nil {
			return err
		}
		_, err := tx.DiscountCodes().GetByEventAndCode(ctx, code.EventID, code.Code)
		if err == nil {
			return domain.ErrDuplicateCode
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check duplicate code: %w", err)
		}

		code.CurrentUses = 0
		code.Status = domain.DiscountStatusActive
		if err := tx.DiscountCodes().Create(ctx, code); err != nil {
			return fmt.Errorf("create discount code: %w", err)
		}
		return nil
	})
}

func (s *discountService) ListDiscountCodes(ctx context.Context, eventID string) ([]*domain.DiscountCode, error) {
	return s.store.DiscountCodes().ListByEventID(ctx, eventID)
}

func (s *discountService) GetDiscountCodeByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	return s.store.DiscountCodes().GetByCode(ctx, code)
}

func (s *discountService) UpdateDiscountCode(ctx context.Context, code *domain.DiscountCode) (*domain.DiscountCode, error) {
	if err := validateDiscountCode(code); err != nil {
		return nil, err
	}

	var updated *domain.DiscountCode
	err := s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		current, err := tx.DiscountCodes().GetByID(ctx, code.ID)
		if err != nil {
			return err
		}
		code.EventID = current.EventID
		code.CurrentUses = current.CurrentUses
		if err := tx.DiscountCodes().Update(ctx, code); err != nil {
			return fmt.Errorf("update discount code: %w", err)
		}
		updated = code
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *discountService) DeleteDiscountCode(ctx context.Context, id string) error {
	return s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		code, err := tx.DiscountCodes().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if code.CurrentUses > 0 {
			return domain.ErrDiscountCodeUsed
		}
		if err := tx.DiscountCodes().Delete(ctx, id); err != nil {
			return fmt.Errorf("delete discount code: %w", err)
		}
		return nil
	})
}

func (s *discountService) ValidateDiscountCode(ctx context.Context, rawCode, ticketTypeID string) (*domain.DiscountValidation, error) {
	code, err := s.store.DiscountCodes().GetByCode(ctx, rawCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.DiscountValidation{Valid: false, Message: "Invalid discount code"}, nil
		}
		return nil, fmt.Errorf("get discount code: %w", err)
	}

	if derr := code.ValidateForUse(ticketTypeID, s.now()); derr != nil {
		return &domain.DiscountValidation{Valid: false, Message: derr.Message}, nil
	}

	tt, err := s.store.TicketTypes().GetByID(ctx, code.EventID, ticketTypeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.DiscountValidation{Valid: false, Message: "Invalid ticket type"}, nil
		}
		return nil, fmt.Errorf("get ticket type: %w", err)
	}

	// The validate surface reports the reduction, not the final price.
	var amount float64
	switch code.DiscountType {
	case domain.DiscountTypePercentage:
		amount = tt.Price * code.DiscountValue / 100
	case domain.DiscountTypeFixedAmount:
		amount = math.Min(code.DiscountValue, tt.Price)
	}
	return &domain.DiscountValidation{Valid: true, DiscountAmount: &amount}, nil
}

func validateDiscountCode(code *domain.DiscountCode) error {
	if strings.TrimSpace(code.Code) == "" {
		return fmt.Errorf("%w: code is required", domain.ErrInvalidInput)
	}
	if !code.DiscountType.Valid() {
		return fmt.Errorf("%w: unknown discount type %q", domain.ErrInvalidInput, code.DiscountType)
	}
	if code.DiscountType == domain.DiscountTypePercentage && (code.DiscountValue < 0 || code.DiscountValue > 100) {
		return fmt.Errorf("%w: percentage discount must be between 0 and 100", domain.ErrInvalidInput)
	}
	if code.DiscountValue < 0 {
		return fmt.Errorf("%w: discount value cannot be negative", domain.ErrInvalidInput)
	}
	if !code.ValidUntil.After(code.ValidFrom) {
		return fmt.Errorf("%w: valid until must be after valid from", domain.ErrInvalidInput)
	}
	return nil
}
