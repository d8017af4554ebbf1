package services

import (
	"context"
	"fmt"

	"eventregistration/internal/domain"
)

type cancellationPolicyService struct {
	store domain.Store
}

// NewCancellationPolicyService creates a CancellationPolicyService over the
// given store.
func NewCancellationPolicyService(store domain.Store) domain.CancellationPolicyService {
	return &cancellationPolicyService{store: store}
}

func (s *cancellationPolicyService) CreatePolicy(ctx context.Context, policy *domain.CancellationPolicy) error {
	if err := validatePolicy(policy); err != nil {
		return err
	}
	return s.store.WithinTx(ctx, func(tx domain.Repositories) error {
		if _, err := tx.Events().GetByID(ctx, policy.EventID); err != nil {
			return err
		}
		if err := tx.CancellationPolicies().Create(ctx, policy); err != nil {
			return fmt.Errorf("create cancellation policy: %w", err)
		}
		return nil
	})
}

func (s *cancellationPolicyService) GetPolicy(ctx context.Context, eventID string) (*domain.CancellationPolicy, error) {
	return s.store.CancellationPolicies().GetByEventID(ctx, eventID)
}

func (s *cancellationPolicyService) UpdatePolicy(ctx context.Context, policy *domain.CancellationPolicy) (*domain.CancellationPolicy, error) {
	if err := validatePolicy(policy); err != nil {
		return nil, err
	}
	if err := s.store.CancellationPolicies().Update(ctx, policy); err != nil {
		return nil, err
	}
	return s.store.CancellationPolicies().GetByEventID(ctx, policy.EventID)
}

func validatePolicy(policy *domain.CancellationPolicy) error {
	if policy.PartialRefundPercentage < 0 || policy.PartialRefundPercentage > 100 {
		return fmt.Errorf("%w: partial refund percentage must be between 0 and 100", domain.ErrInvalidInput)
	}
	if policy.CancellationFee != nil && *policy.CancellationFee < 0 {
		return fmt.Errorf("%w: cancellation fee cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}
