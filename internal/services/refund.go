package services

import (
	"fmt"
	"time"

	"eventregistration/internal/domain"
)

// EvaluateRefund computes the refund owed for cancelling reg at the given
// time. It is a pure function; callers mutate registration state separately.
//
// Without a policy the default is a full refund. With one, the bands are
// evaluated top-down on the fractional days until the event start and the
// first match wins. The result is clamped at zero so a fee larger than the
// charged amount cannot produce a negative refund.
func EvaluateRefund(reg *domain.Registration, ev *domain.Event, policy *domain.CancellationPolicy, now time.Time) (float64, string) {
	if policy == nil {
		return reg.TotalAmount, "Full refund - default policy"
	}

	daysUntilEvent := ev.StartDate.Sub(now).Hours() / 24
	var fee float64
	if policy.CancellationFee != nil {
		fee = *policy.CancellationFee
	}

	var amount float64
	var reason string
	switch {
	case daysUntilEvent >= float64(policy.FullRefundDeadlineDays):
		amount = reg.TotalAmount - fee
		reason = "full refund - cancelled well in advance"
	case daysUntilEvent >= float64(policy.PartialRefundDeadlineDays):
		amount = (reg.TotalAmount - fee) * float64(policy.PartialRefundPercentage) / 100
		reason = fmt.Sprintf("partial refund - %d%% refund", policy.PartialRefundPercentage)
	case daysUntilEvent >= float64(policy.NoRefundAfterDays):
		amount = 0
		reason = "no refund - too close to event date"
	default:
		amount = 0
		reason = "no refund - past no-refund deadline"
	}
	return max(0, amount), reason
}
