package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

type couponCheckRequest struct {
	Code        string  `json:"code" binding:"required"`
	Email       string  `json:"email"`
	Subtotal    float64 `json:"subtotal"`
	PetType     string  `json:"pet_type"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
}

// optionalUserID resolves the optional email in a coupon request to a user
// id, so redemption history can be checked when the caller is known.
func optionalUserID(email string) *uint {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	var user models.User
	if err := config.DB.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil
	}
	return &user.ID
}

func couponResultPayload(result utils.CouponValidationResult) gin.H {
	payload := gin.H{
		"valid":    result.Valid,
		"discount": result.Discount,
	}
	if !result.Valid {
		payload["reason"] = result.Reason
	}
	if result.Coupon != nil {
		payload["code"] = result.Coupon.Code
		payload["description"] = result.Coupon.Description
	}
	return payload
}

// ValidateCouponCode checks a code against the supplied cart context and
// returns {valid, discount, reason}. Invalid codes are a 200 with
// valid=false, not an error, so the checkout UI can render them inline.
func ValidateCouponCode(c *gin.Context) {
	utils.LogInfo("ValidateCouponCode called")

	var req couponCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	ctx := utils.CouponContext{
		Subtotal:    req.Subtotal,
		PetType:     req.PetType,
		Category:    req.Category,
		Subcategory: req.Subcategory,
	}
	result := utils.ValidateCoupon(config.DB, req.Code, ctx, time.Now(), optionalUserID(req.Email))

	utils.Success(c, "Coupon checked", couponResultPayload(result))
}

// ApplyCoupon validates a code and, when valid, folds the discount into the
// user's checkout selection. Redemption is not recorded here; the code stays
// reusable until an order is actually placed.
func ApplyCoupon(c *gin.Context) {
	utils.LogInfo("ApplyCoupon called")

	var req couponCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	userID := optionalUserID(req.Email)
	if userID == nil {
		utils.NotFound(c, "User not found")
		return
	}

	ctx := utils.CouponContext{
		Subtotal:    req.Subtotal,
		PetType:     req.PetType,
		Category:    req.Category,
		Subcategory: req.Subcategory,
	}
	result := utils.ValidateCoupon(config.DB, req.Code, ctx, time.Now(), userID)
	if !result.Valid {
		utils.Success(c, "Coupon checked", couponResultPayload(result))
		return
	}

	var selection models.CheckoutSelection
	err := config.DB.Where("user_id = ?", *userID).First(&selection).Error
	if err != nil {
		// First checkout step for this user: stage a selection with
		// the storefront defaults.
		selection = models.CheckoutSelection{
			UserID:         *userID,
			DeliveryOption: utils.DeliveryOptionStandard,
			PaymentMethod:  utils.PaymentMethodCOD,
		}
	}

	shippingFee, total := utils.ComputeTotals(req.Subtotal, result.Discount)
	selection.CouponCode = result.Coupon.Code
	selection.Subtotal = &req.Subtotal
	selection.ShippingFee = &shippingFee
	selection.Total = &total

	if err := config.DB.Save(&selection).Error; err != nil {
		utils.LogError("Failed to save selection for user %d: %v", *userID, err)
		utils.InternalServerError(c, "Failed to apply coupon", nil)
		return
	}
	utils.LogInfo("Coupon %s applied for user %d: discount=%.2f total=%.2f",
		result.Coupon.Code, *userID, result.Discount, total)

	payload := couponResultPayload(result)
	payload["subtotal"] = req.Subtotal
	payload["shipping_fee"] = shippingFee
	payload["total"] = total
	utils.Success(c, "Coupon applied", payload)
}

// RemoveCoupon clears the code from the user's checkout selection and
// restores undiscounted totals.
func RemoveCoupon(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var selection models.CheckoutSelection
	if err := config.DB.Where("user_id = ?", user.ID).First(&selection).Error; err != nil {
		utils.NotFound(c, "No checkout selection found")
		return
	}

	selection.CouponCode = ""
	if selection.Subtotal != nil {
		shippingFee, total := utils.ComputeTotals(*selection.Subtotal, 0)
		selection.ShippingFee = &shippingFee
		selection.Total = &total
	}
	if err := config.DB.Save(&selection).Error; err != nil {
		utils.LogError("Failed to clear coupon for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to remove coupon", nil)
		return
	}

	utils.Success(c, "Coupon removed", gin.H{"selection": selection})
}
