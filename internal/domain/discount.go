package domain

import (
	"context"
	"slices"
	"time"
)

// DiscountType selects how a discount code reduces the ticket price.
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "Percentage"
	DiscountTypeFixedAmount DiscountType = "FixedAmount"
)

// Valid reports whether t is a known discount type.
func (t DiscountType) Valid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixedAmount
}

// DiscountStatus is the administrative status of a discount code.
type DiscountStatus string

const (
	DiscountStatusActive   DiscountStatus = "Active"
	DiscountStatusInactive DiscountStatus = "Inactive"
	DiscountStatusExpired  DiscountStatus = "Expired"
)

// DiscountErrorKind classifies why a discount code failed validation.
type DiscountErrorKind string

const (
	DiscountNotFound      DiscountErrorKind = "not_found"
	DiscountInactive      DiscountErrorKind = "inactive"
	DiscountExpired       DiscountErrorKind = "expired"
	DiscountMaxUses       DiscountErrorKind = "max_uses_reached"
	DiscountNotApplicable DiscountErrorKind = "not_applicable"
)

// DiscountError reports a failed discount code validation with a
// user-presentable message.
type DiscountError struct {
	Kind    DiscountErrorKind
	Message string
}

func (e *DiscountError) Error() string { return e.Message }

// DiscountCode is a per-event discount with usage and validity constraints.
// Code is unique per event, compared case-insensitively. CurrentUses only
// grows; cancelling a registration does not hand the use back.
// swagger:model DiscountCode
type DiscountCode struct {
	ID                      string         `json:"id"`
	EventID                 string         `json:"event_id"`
	Code                    string         `json:"code"`
	DiscountType            DiscountType   `json:"discount_type"`
	DiscountValue           float64        `json:"discount_value"`
	MaxUses                 *int           `json:"max_uses,omitempty"`
	CurrentUses             int            `json:"current_uses"`
	ValidFrom               time.Time      `json:"valid_from"`
	ValidUntil              time.Time      `json:"valid_until"`
	ApplicableTicketTypeIDs []string       `json:"applicable_ticket_type_ids,omitempty"`
	Status                  DiscountStatus `json:"status"`
}

// ValidateForUse checks the code's constraints for a registration against the
// given ticket type at the given time. The checks run in a fixed order and
// the first failure wins. A nil result means the code may be applied.
func (d *DiscountCode) ValidateForUse(ticketTypeID string, now time.Time) *DiscountError {
	if d.Status != DiscountStatusActive {
		return &DiscountError{Kind: DiscountInactive, Message: "Discount code is not active"}
	}
	if now.Before(d.ValidFrom) || now.After(d.ValidUntil) {
		return &DiscountError{Kind: DiscountExpired, Message: "Discount code is not valid at this time"}
	}
	if d.MaxUses != nil && d.CurrentUses >= *d.MaxUses {
		return &DiscountError{Kind: DiscountMaxUses, Message: "Discount code has reached its maximum uses"}
	}
	if len(d.ApplicableTicketTypeIDs) > 0 && !slices.Contains(d.ApplicableTicketTypeIDs, ticketTypeID) {
		return &DiscountError{Kind: DiscountNotApplicable, Message: "Discount code is not applicable to this ticket type"}
	}
	return nil
}

// DiscountedPrice computes the price after applying the code, clamped at 0.
func (d *DiscountCode) DiscountedPrice(price float64) float64 {
	final := price
	switch d.DiscountType {
	case DiscountTypePercentage:
		final = price * (1 - d.DiscountValue/100)
	case DiscountTypeFixedAmount:
		final = price - d.DiscountValue
	}
	return max(0, final)
}

// DiscountValidation is the outcome of the standalone validate operation.
// DiscountAmount is the reduction, not the final price.
type DiscountValidation struct {
	Valid          bool     `json:"valid"`
	Message        string   `json:"message,omitempty"`
	DiscountAmount *float64 `json:"discount_amount,omitempty"`
}

// DiscountCodeRepository defines storage operations for discount codes.
type DiscountCodeRepository interface {
	Create(ctx context.Context, code *DiscountCode) error
	GetByID(ctx context.Context, id string) (*DiscountCode, error)
	// GetByEventAndCode matches the code case-insensitively within the event.
	GetByEventAndCode(ctx context.Context, eventID, code string) (*DiscountCode, error)
	// GetByCode matches the code case-insensitively across events.
	GetByCode(ctx context.Context, code string) (*DiscountCode, error)
	ListByEventID(ctx context.Context, eventID string) ([]*DiscountCode, error)
	Update(ctx context.Context, code *DiscountCode) error
	Delete(ctx context.Context, id string) error
	// IncrementUses bumps CurrentUses by one as a single conditional update.
	IncrementUses(ctx context.Context, id string) error
}

// DiscountService defines the discount code management and validation surface.
type DiscountService interface {
	CreateDiscountCode(ctx context.Context, code *DiscountCode) error
	ListDiscountCodes(ctx context.Context, eventID string) ([]*DiscountCode, error)
	GetDiscountCodeByCode(ctx context.Context, code string) (*DiscountCode, error)
	UpdateDiscountCode(ctx context.Context, code *DiscountCode) (*DiscountCode, error)
	// DeleteDiscountCode fails with ErrDiscountCodeUsed once the code has
	// been applied to any registration.
	DeleteDiscountCode(ctx context.Context, id string) error
	// ValidateDiscountCode runs the use-time checks against a ticket type and
	// reports the computed discount amount. It never returns a validation
	// failure as an error; the result carries the outcome.
	ValidateDiscountCode(ctx context.Context, code, ticketTypeID string) (*DiscountValidation, error)
}
