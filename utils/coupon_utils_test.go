package utils

import (
	"testing"
	"time"

	"github.com/petandco/PetAndCo/models"
	"github.com/stretchr/testify/assert"
)

func activeCoupon() *models.Coupon {
	return &models.Coupon{
		ID:           1,
		Code:         "SAVE10",
		DiscountType: models.DiscountTypePercentage,
		Value:        10,
		Active:       true,
	}
}

func TestEvaluateCouponPercentageDiscount(t *testing.T) {
	result := EvaluateCoupon(activeCoupon(), CouponContext{Subtotal: 300}, time.Now())

	assert.True(t, result.Valid)
	assert.Equal(t, 30.0, result.Discount)
	assert.Empty(t, result.Reason)
}

func TestEvaluateCouponFlatDiscount(t *testing.T) {
	coupon := activeCoupon()
	coupon.DiscountType = models.DiscountTypeFlat
	coupon.Value = 75

	result := EvaluateCoupon(coupon, CouponContext{Subtotal: 300}, time.Now())
	assert.True(t, result.Valid)
	assert.Equal(t, 75.0, result.Discount)
}

func TestEvaluateCouponInactive(t *testing.T) {
	coupon := activeCoupon()
	coupon.Active = false

	result := EvaluateCoupon(coupon, CouponContext{Subtotal: 300}, time.Now())
	assert.False(t, result.Valid)
	assert.Equal(t, CouponReasonInactive, result.Reason)
}

func TestEvaluateCouponValidityWindow(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	coupon := activeCoupon()
	coupon.ValidFrom = &future
	result := EvaluateCoupon(coupon, CouponContext{Subtotal: 300}, now)
	assert.Equal(t, CouponReasonOutOfWindow, result.Reason)

	coupon = activeCoupon()
	coupon.ValidTo = &past
	result = EvaluateCoupon(coupon, CouponContext{Subtotal: 300}, now)
	assert.Equal(t, CouponReasonOutOfWindow, result.Reason)

	coupon = activeCoupon()
	coupon.ValidFrom = &past
	coupon.ValidTo = &future
	result = EvaluateCoupon(coupon, CouponContext{Subtotal: 300}, now)
	assert.True(t, result.Valid)
}

func TestEvaluateCouponMinimumSubtotal(t *testing.T) {
	coupon := activeCoupon()
	coupon.MinSubtotal = 500

	result := EvaluateCoupon(coupon, CouponContext{Subtotal: 499}, time.Now())
	assert.Equal(t, CouponReasonMinimumNotMet, result.Reason)

	result = EvaluateCoupon(coupon, CouponContext{Subtotal: 500}, time.Now())
	assert.True(t, result.Valid)
}

func TestEvaluateCouponScope(t *testing.T) {
	coupon := activeCoupon()
	coupon.PetType = "Dog"
	coupon.Category = "Food"

	result := EvaluateCoupon(coupon, CouponContext{Subtotal: 300, PetType: "Cat", Category: "Food"}, time.Now())
	assert.Equal(t, CouponReasonScopeMismatch, result.Reason)

	// case-insensitive match
	result = EvaluateCoupon(coupon, CouponContext{Subtotal: 300, PetType: "dog", Category: "FOOD"}, time.Now())
	assert.True(t, result.Valid)
}

func TestEvaluateCouponUnscopedMatchesEverything(t *testing.T) {
	result := EvaluateCoupon(activeCoupon(), CouponContext{Subtotal: 300, PetType: "Cat", Category: "Toys"}, time.Now())
	assert.True(t, result.Valid)
}

func TestEvaluateCouponDiscountClampedToPayable(t *testing.T) {
	coupon := activeCoupon()
	coupon.DiscountType = models.DiscountTypeFlat
	coupon.Value = 1000

	result := EvaluateCoupon(coupon, CouponContext{Subtotal: 200}, time.Now())
	assert.True(t, result.Valid)
	// subtotal 200 + shipping 50
	assert.Equal(t, 250.0, result.Discount)

	_, total := ComputeTotals(200, result.Discount)
	assert.Equal(t, 0.0, total)
}

func TestEvaluateCouponIsIdempotent(t *testing.T) {
	coupon := activeCoupon()
	ctx := CouponContext{Subtotal: 300}
	now := time.Now()

	first := EvaluateCoupon(coupon, ctx, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, EvaluateCoupon(coupon, ctx, now))
	}
}

func TestScopeMatches(t *testing.T) {
	assert.True(t, scopeMatches("", "anything"))
	assert.True(t, scopeMatches("  ", "anything"))
	assert.True(t, scopeMatches("Dog", "dog"))
	assert.True(t, scopeMatches(" Dog ", "DOG"))
	assert.False(t, scopeMatches("Dog", "Cat"))
	assert.False(t, scopeMatches("Dog", ""))
}
