package domain

import "context"

// CancellationPolicy describes refund bands for an event, expressed in days
// before the event start. The evaluator assumes the thresholds are ordered
// full ≥ partial ≥ no-refund; the ordering itself is not enforced here.
// swagger:model CancellationPolicy
type CancellationPolicy struct {
	ID                        string   `json:"id"`
	EventID                   string   `json:"event_id"`
	FullRefundDeadlineDays    int      `json:"full_refund_deadline_days"`
	PartialRefundDeadlineDays int      `json:"partial_refund_deadline_days"`
	PartialRefundPercentage   int      `json:"partial_refund_percentage"`
	NoRefundAfterDays         int      `json:"no_refund_after_days"`
	CancellationFee           *float64 `json:"cancellation_fee,omitempty"`
}

// CancellationPolicyRepository defines storage for the per-event policy.
type CancellationPolicyRepository interface {
	Create(ctx context.Context, policy *CancellationPolicy) error
	GetByEventID(ctx context.Context, eventID string) (*CancellationPolicy, error)
	Update(ctx context.Context, policy *CancellationPolicy) error
}

// CancellationPolicyService defines the policy management surface.
type CancellationPolicyService interface {
	CreatePolicy(ctx context.Context, policy *CancellationPolicy) error
	GetPolicy(ctx context.Context, eventID string) (*CancellationPolicy, error)
	UpdatePolicy(ctx context.Context, policy *CancellationPolicy) (*CancellationPolicy, error)
}
