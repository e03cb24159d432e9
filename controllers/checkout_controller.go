package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

// SaveCheckoutSelection stages (or restages) the user's checkout choices:
// address, delivery option and payment method. Totals are recomputed from
// the live cart each time, re-validating any applied coupon so an
// invalidated code is cleared instead of left dangling on the row.
func SaveCheckoutSelection(c *gin.Context) {
	utils.LogInfo("SaveCheckoutSelection called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		AddressID      *uint  `json:"address_id"`
		DeliveryOption string `json:"delivery_option"`
		PaymentMethod  string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.AddressID != nil {
		var address models.Address
		if err := config.DB.Where("id = ? AND user_id = ?", *req.AddressID, user.ID).
			First(&address).Error; err != nil {
			utils.NotFound(c, "Address not found")
			return
		}
	}
	if req.DeliveryOption == "" {
		req.DeliveryOption = utils.DeliveryOptionStandard
	}
	if req.DeliveryOption != utils.DeliveryOptionStandard && req.DeliveryOption != utils.DeliveryOptionExpress {
		utils.BadRequest(c, "delivery_option must be standard or express", nil)
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = utils.PaymentMethodCOD
	}
	if req.PaymentMethod != utils.PaymentMethodCOD && req.PaymentMethod != utils.PaymentMethodOnline {
		utils.BadRequest(c, "payment_method must be cod or online", nil)
		return
	}

	var selection models.CheckoutSelection
	if err := config.DB.Where("user_id = ?", user.ID).First(&selection).Error; err != nil {
		selection = models.CheckoutSelection{UserID: user.ID}
	}
	selection.AddressID = req.AddressID
	selection.DeliveryOption = req.DeliveryOption
	selection.PaymentMethod = req.PaymentMethod

	subtotal, discount, err := checkoutTotals(&user, &selection)
	if err != nil {
		utils.LogError("Failed to compute checkout totals for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to compute totals", nil)
		return
	}
	shippingFee, total := utils.ComputeTotals(subtotal, discount)
	selection.Subtotal = &subtotal
	selection.ShippingFee = &shippingFee
	selection.Total = &total

	if err := config.DB.Save(&selection).Error; err != nil {
		utils.LogError("Failed to save checkout selection for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save checkout selection", nil)
		return
	}

	utils.Success(c, "Checkout selection saved", gin.H{
		"selection": selection,
		"discount":  discount,
	})
}

// checkoutTotals sums the cart's frozen prices and re-validates the
// selection's coupon against the fresh subtotal. An invalid coupon is
// stripped from the selection here.
func checkoutTotals(user *models.User, selection *models.CheckoutSelection) (subtotal, discount float64, err error) {
	var items []models.CartItem
	if err := config.DB.Preload("Product").Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
		return 0, 0, err
	}
	for _, item := range items {
		subtotal += item.PriceAtAdd * float64(item.Quantity)
	}

	if selection.CouponCode != "" && len(items) > 0 {
		ctx := utils.CouponContext{
			Subtotal:    subtotal,
			PetType:     items[0].Product.PetType,
			Category:    items[0].Product.Category,
			Subcategory: items[0].Product.Subcategory,
		}
		result := utils.ValidateCoupon(config.DB, selection.CouponCode, ctx, time.Now(), &user.ID)
		if result.Valid {
			discount = result.Discount
		} else {
			utils.LogInfo("Clearing coupon %q from selection of user %d: %s",
				selection.CouponCode, user.ID, result.Reason)
			selection.CouponCode = ""
		}
	}
	return subtotal, discount, nil
}

// GetCheckoutSummary returns the staged selection together with cart lines
// so the storefront can render the review step.
func GetCheckoutSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var selection models.CheckoutSelection
	if err := config.DB.Where("user_id = ?", user.ID).First(&selection).Error; err != nil {
		utils.NotFound(c, "No checkout selection found")
		return
	}

	var items []models.CartItem
	if err := config.DB.Preload("Product").Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
		utils.LogError("Failed to fetch cart for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch cart", nil)
		return
	}

	var address *models.Address
	if selection.AddressID != nil {
		var a models.Address
		if err := config.DB.First(&a, *selection.AddressID).Error; err == nil {
			address = &a
		}
	}

	utils.Success(c, "Checkout summary", gin.H{
		"selection": selection,
		"items":     items,
		"address":   address,
	})
}
