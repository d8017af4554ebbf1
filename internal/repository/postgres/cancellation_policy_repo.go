package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventregistration/internal/domain"

	"github.com/google/uuid"
)

type cancellationPolicyRepository struct {
	db DBTX
}

func NewCancellationPolicyRepository(db DBTX) domain.CancellationPolicyRepository {
	return &cancellationPolicyRepository{db: db}
}

func (r *cancellationPolicyRepository) Create(ctx context.Context, policy *domain.CancellationPolicy) error {
	if policy.ID == "" {
		policy.ID = uuid.NewString()
	}
	query := `
		INSERT INTO cancellation_policies (id, event_id, full_refund_deadline_days, partial_refund_deadline_days, partial_refund_percentage, no_refund_after_days, cancellation_fee)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		policy.ID, policy.EventID, policy.FullRefundDeadlineDays, policy.PartialRefundDeadlineDays,
		policy.PartialRefundPercentage, policy.NoRefundAfterDays, nullFloat(policy.CancellationFee),
	)
	return err
}

func (r *cancellationPolicyRepository) GetByEventID(ctx context.Context, eventID string) (*domain.CancellationPolicy, error) {
	query := `
		SELECT id, event_id, full_refund_deadline_days, partial_refund_deadline_days, partial_refund_percentage, no_refund_after_days, cancellation_fee
		FROM cancellation_policies
		WHERE event_id = $1
	`
	policy := &domain.CancellationPolicy{}
	var fee sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(
		&policy.ID, &policy.EventID, &policy.FullRefundDeadlineDays, &policy.PartialRefundDeadlineDays,
		&policy.PartialRefundPercentage, &policy.NoRefundAfterDays, &fee,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if fee.Valid {
		policy.CancellationFee = &fee.Float64
	}
	return policy, nil
}

func (r *cancellationPolicyRepository) Update(ctx context.Context, policy *domain.CancellationPolicy) error {
	query := `
		UPDATE cancellation_policies
		SET full_refund_deadline_days = $2, partial_refund_deadline_days = $3,
		    partial_refund_percentage = $4, no_refund_after_days = $5, cancellation_fee = $6
		WHERE event_id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		policy.EventID, policy.FullRefundDeadlineDays, policy.PartialRefundDeadlineDays,
		policy.PartialRefundPercentage, policy.NoRefundAfterDays, nullFloat(policy.CancellationFee),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}
