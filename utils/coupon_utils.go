package utils

import (
	"strings"
	"time"

	"github.com/petandco/PetAndCo/models"
	"gorm.io/gorm"
)

// Reasons a coupon fails validation. Returned to the storefront as
// {valid:false, reason} so invalid codes render inline instead of as hard
// errors.
const (
	CouponReasonNotFound        = "Invalid coupon code"
	CouponReasonInactive        = "Coupon is not active"
	CouponReasonOutOfWindow     = "Coupon is not valid at this time"
	CouponReasonMinimumNotMet   = "Order subtotal does not meet the coupon minimum"
	CouponReasonScopeMismatch   = "Coupon is not applicable to these items"
	CouponReasonAlreadyRedeemed = "Coupon has already been used"
)

// CouponValidationResult is the outcome of validating a code against a
// subtotal and category context for a user.
type CouponValidationResult struct {
	Valid    bool
	Discount float64
	Reason   string
	Coupon   *models.Coupon
}

// CouponContext carries the cart context a coupon is checked against.
type CouponContext struct {
	Subtotal    float64
	PetType     string
	Category    string
	Subcategory string
}

// EvaluateCoupon checks a loaded coupon against the given context and
// computes the discount. It never touches storage, so calling it repeatedly
// with the same inputs always yields the same result.
func EvaluateCoupon(coupon *models.Coupon, ctx CouponContext, now time.Time) CouponValidationResult {
	if !coupon.Active {
		return CouponValidationResult{Reason: CouponReasonInactive}
	}
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return CouponValidationResult{Reason: CouponReasonOutOfWindow}
	}
	if coupon.ValidTo != nil && now.After(*coupon.ValidTo) {
		return CouponValidationResult{Reason: CouponReasonOutOfWindow}
	}
	if ctx.Subtotal < coupon.MinSubtotal {
		return CouponValidationResult{Reason: CouponReasonMinimumNotMet}
	}
	if !scopeMatches(coupon.PetType, ctx.PetType) ||
		!scopeMatches(coupon.Category, ctx.Category) ||
		!scopeMatches(coupon.Subcategory, ctx.Subcategory) {
		return CouponValidationResult{Reason: CouponReasonScopeMismatch}
	}

	var discount float64
	if coupon.DiscountType == models.DiscountTypePercentage {
		discount = ctx.Subtotal * coupon.Value / 100
	} else {
		discount = coupon.Value
	}
	if discount < 0 {
		discount = 0
	}
	// Never discount past the payable amount.
	if max := ctx.Subtotal + ShippingFee(ctx.Subtotal); discount > max {
		discount = max
	}

	return CouponValidationResult{Valid: true, Discount: discount, Coupon: coupon}
}

// scopeMatches reports whether a coupon scoping field admits the context
// value. An unscoped coupon matches everything; a scoped one requires a
// case-insensitive match.
func scopeMatches(scope, value string) bool {
	if strings.TrimSpace(scope) == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(scope), strings.TrimSpace(value))
}

// ValidateCoupon resolves a code (case-insensitively) and evaluates it. When
// userID is known it also rejects codes the user has redeemed before. This
// is read-only: redemption is recorded only at order placement, so a user
// can validate and re-apply freely until they check out.
func ValidateCoupon(db *gorm.DB, code string, ctx CouponContext, now time.Time, userID *uint) CouponValidationResult {
	var coupon models.Coupon
	if err := db.Where("LOWER(code) = LOWER(?)", strings.TrimSpace(code)).First(&coupon).Error; err != nil {
		return CouponValidationResult{Reason: CouponReasonNotFound}
	}

	result := EvaluateCoupon(&coupon, ctx, now)
	if !result.Valid {
		return result
	}

	if userID != nil {
		var count int64
		db.Model(&models.CouponRedemption{}).
			Where("coupon_id = ? AND user_id = ?", coupon.ID, *userID).
			Count(&count)
		if count > 0 {
			return CouponValidationResult{Reason: CouponReasonAlreadyRedeemed}
		}
	}

	return result
}
