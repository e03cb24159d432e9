package controllers

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"
)

// resolveUserByEmail loads the customer account the storefront is paying
// for. The payment endpoints are driven by the storefront session's email
// rather than a bearer token.
func resolveUserByEmail(c *gin.Context, email string) (models.User, bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		utils.BadRequest(c, "email is required", nil)
		return models.User{}, false
	}
	var user models.User
	if err := config.DB.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		utils.LogError("Payment user lookup failed for %s: %v", email, err)
		utils.NotFound(c, "User not found")
		return models.User{}, false
	}
	if user.IsBlocked {
		utils.Forbidden(c, "Account is blocked")
		return models.User{}, false
	}
	return user, true
}

// ensureSelectionTotals fills in the selection's subtotal/shipping/total from
// the live cart when they are missing, and persists them back so the order
// assembler later sees the same numbers the gateway charged. Any coupon code
// on the selection is re-validated against the recomputed subtotal and
// cleared if it no longer holds.
func ensureSelectionTotals(db *gorm.DB, user *models.User, selection *models.CheckoutSelection) error {
	if selection.Subtotal != nil && selection.Total != nil {
		return nil
	}

	var items []models.CartItem
	if err := db.Preload("Product").Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrEmptyCart
	}

	var subtotal float64
	for _, item := range items {
		price := item.PriceAtAdd
		if price == 0 {
			price = item.Product.Price
		}
		subtotal += price * float64(item.Quantity)
	}

	var discount float64
	if selection.CouponCode != "" {
		ctx := utils.CouponContext{
			Subtotal:    subtotal,
			PetType:     items[0].Product.PetType,
			Category:    items[0].Product.Category,
			Subcategory: items[0].Product.Subcategory,
		}
		result := utils.ValidateCoupon(db, selection.CouponCode, ctx, time.Now(), &user.ID)
		if result.Valid {
			discount = result.Discount
		} else {
			utils.LogInfo("Clearing invalid coupon %q from selection of user %d: %s",
				selection.CouponCode, user.ID, result.Reason)
			selection.CouponCode = ""
		}
	}

	shippingFee, total := utils.ComputeTotals(subtotal, discount)
	selection.Subtotal = &subtotal
	selection.ShippingFee = &shippingFee
	selection.Total = &total
	return db.Save(selection).Error
}

// CreateRazorpayOrder registers a gateway order for the user's checkout
// total and returns what the storefront needs to open the payment widget.
func CreateRazorpayOrder(c *gin.Context) {
	utils.LogInfo("CreateRazorpayOrder called")

	user, ok := resolveUserByEmail(c, c.Query("email"))
	if !ok {
		return
	}

	selection, err := loadSelection(config.DB, user.ID)
	if err != nil {
		if errors.Is(err, ErrNoCheckoutSelection) {
			utils.BadRequest(c, "Please complete checkout before paying", nil)
			return
		}
		utils.InternalServerError(c, "Failed to load checkout selection", nil)
		return
	}
	if _, err := loadAddress(config.DB, selection); err != nil {
		if errors.Is(err, ErrNoAddress) {
			utils.BadRequest(c, "Please select a delivery address", nil)
			return
		}
		utils.InternalServerError(c, "Failed to load address", nil)
		return
	}

	if err := ensureSelectionTotals(config.DB, &user, selection); err != nil {
		if errors.Is(err, ErrEmptyCart) {
			utils.BadRequest(c, "Your cart is empty", nil)
			return
		}
		utils.LogError("Failed to compute totals for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to compute order total", nil)
		return
	}

	total := *selection.Total
	amountPaise := int(math.Round(total * 100))
	receipt := fmt.Sprintf("receipt_%d_%d", time.Now().UnixMilli(), user.ID)

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        utils.PaymentCurrency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create Razorpay order for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create payment order", err.Error())
		return
	}
	utils.LogInfo("Razorpay order %v created for user %d, amount %d paise", rzOrder["id"], user.ID, amountPaise)

	utils.Success(c, "Payment order created", gin.H{
		"key":               os.Getenv("RAZORPAY_KEY"),
		"razorpay_order_id": rzOrder["id"],
		"amount":            amountPaise,
		"currency":          utils.PaymentCurrency,
		"receipt":           receipt,
		"total":             total,
	})
}

// VerifyRazorpayPayment checks the gateway signature and, only after it
// passes, assembles the order through the online-payment path. A signature
// mismatch never creates an order.
func VerifyRazorpayPayment(c *gin.Context) {
	utils.LogInfo("VerifyRazorpayPayment called")

	var req struct {
		Email             string `json:"email" binding:"required"`
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	user, ok := resolveUserByEmail(c, req.Email)
	if !ok {
		return
	}

	if !utils.VerifyRazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID,
		req.RazorpaySignature, os.Getenv("RAZORPAY_SECRET")) {
		utils.LogError("Razorpay signature mismatch for user %d, order %s", user.ID, req.RazorpayOrderID)
		utils.BadRequest(c, "Payment signature verification failed", nil)
		return
	}
	utils.LogInfo("Razorpay signature verified for user %d, order %s", user.ID, req.RazorpayOrderID)

	selection, err := loadSelection(config.DB, user.ID)
	if err != nil {
		if errors.Is(err, ErrNoCheckoutSelection) {
			utils.BadRequest(c, "No checkout selection found", nil)
			return
		}
		utils.InternalServerError(c, "Failed to load checkout selection", nil)
		return
	}
	// Verification can arrive before the totals were staged; rebuild them
	// from the cart so the assembler has its mandatory subtotal.
	if selection.Subtotal == nil {
		if err := ensureSelectionTotals(config.DB, &user, selection); err != nil && !errors.Is(err, ErrEmptyCart) {
			utils.LogError("Failed to rebuild totals for user %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to compute order total", nil)
			return
		}
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	order, err := placeOrderForOnlinePaymentTx(tx, &user)
	if err != nil {
		tx.Rollback()
		respondPlacementError(c, &user, err)
		return
	}

	order.RazorpayOrderID = req.RazorpayOrderID
	order.RazorpayPaymentID = req.RazorpayPaymentID
	order.Status = models.OrderStatusPaid
	order.PaymentStatus = models.PaymentStatusPaid
	if err := tx.Model(order).Updates(map[string]interface{}{
		"razorpay_order_id":   req.RazorpayOrderID,
		"razorpay_payment_id": req.RazorpayPaymentID,
		"status":              models.OrderStatusPaid,
		"payment_status":      models.PaymentStatusPaid,
	}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to record payment on order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to record payment", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit online order for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	order.User = user
	utils.NotifyOrderStatusChanged(order, models.OrderStatusPlaced, models.OrderStatusPaid)

	utils.Created(c, "Payment verified and order placed", gin.H{
		"order": orderSummary(order),
	})
}
