package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name  string
		code  DiscountCode
		price float64
		want  float64
	}{
		{"percentage", DiscountCode{DiscountType: DiscountTypePercentage, DiscountValue: 25}, 100, 75},
		{"fixed amount", DiscountCode{DiscountType: DiscountTypeFixedAmount, DiscountValue: 30}, 100, 70},
		{"fixed amount exceeding price clamps to zero", DiscountCode{DiscountType: DiscountTypeFixedAmount, DiscountValue: 30}, 10, 0},
		{"hundred percent", DiscountCode{DiscountType: DiscountTypePercentage, DiscountValue: 100}, 50, 0},
		{"zero value", DiscountCode{DiscountType: DiscountTypePercentage, DiscountValue: 0}, 50, 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.code.DiscountedPrice(tc.price), 0.001)
		})
	}
}

func TestValidateForUse(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	maxUses := 2
	base := DiscountCode{
		Code:          "SPRING",
		DiscountType:  DiscountTypePercentage,
		DiscountValue: 10,
		MaxUses:       &maxUses,
		ValidFrom:     now.AddDate(0, 0, -5),
		ValidUntil:    now.AddDate(0, 0, 5),
		Status:        DiscountStatusActive,
	}

	t.Run("valid", func(t *testing.T) {
		code := base
		assert.Nil(t, code.ValidateForUse("tt-1", now))
	})

	t.Run("inactive", func(t *testing.T) {
		code := base
		code.Status = DiscountStatusInactive
		derr := code.ValidateForUse("tt-1", now)
		require.NotNil(t, derr)
		assert.Equal(t, DiscountInactive, derr.Kind)
		assert.Equal(t, "Discount code is not active", derr.Message)
	})

	t.Run("before window", func(t *testing.T) {
		code := base
		derr := code.ValidateForUse("tt-1", now.AddDate(0, 0, -10))
		require.NotNil(t, derr)
		assert.Equal(t, DiscountExpired, derr.Kind)
	})

	t.Run("after window", func(t *testing.T) {
		code := base
		derr := code.ValidateForUse("tt-1", now.AddDate(0, 0, 10))
		require.NotNil(t, derr)
		assert.Equal(t, DiscountExpired, derr.Kind)
		assert.Equal(t, "Discount code is not valid at this time", derr.Message)
	})

	t.Run("max uses reached", func(t *testing.T) {
		code := base
		code.CurrentUses = 2
		derr := code.ValidateForUse("tt-1", now)
		require.NotNil(t, derr)
		assert.Equal(t, DiscountMaxUses, derr.Kind)
		assert.Equal(t, "Discount code has reached its maximum uses", derr.Message)
	})

	t.Run("no max uses never exhausts", func(t *testing.T) {
		code := base
		code.MaxUses = nil
		code.CurrentUses = 1000
		assert.Nil(t, code.ValidateForUse("tt-1", now))
	})

	t.Run("not applicable to ticket type", func(t *testing.T) {
		code := base
		code.ApplicableTicketTypeIDs = []string{"tt-2", "tt-3"}
		derr := code.ValidateForUse("tt-1", now)
		require.NotNil(t, derr)
		assert.Equal(t, DiscountNotApplicable, derr.Kind)
		assert.Equal(t, "Discount code is not applicable to this ticket type", derr.Message)
	})

	t.Run("empty allow-list applies to all", func(t *testing.T) {
		code := base
		assert.Nil(t, code.ValidateForUse("any", now))
	})

	t.Run("status check wins over window", func(t *testing.T) {
		code := base
		code.Status = DiscountStatusExpired
		derr := code.ValidateForUse("tt-1", now.AddDate(0, 0, 10))
		require.NotNil(t, derr)
		assert.Equal(t, DiscountInactive, derr.Kind)
	})
}
