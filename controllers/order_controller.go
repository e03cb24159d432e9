package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

// PlaceOrder handles cash-on-delivery checkout. The whole placement runs in
// one transaction; validation failures roll back before anything sticks.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	order, err := placeOrderTx(tx, &user)
	if err != nil {
		tx.Rollback()
		respondPlacementError(c, &user, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit order for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	order.User = user
	utils.NotifyOrderStatusChanged(order, "", models.OrderStatusPlaced)

	utils.Created(c, "Order placed successfully", gin.H{
		"order": orderSummary(order),
	})
}

// respondPlacementError maps assembler errors onto HTTP responses. Stock
// shortfalls return 409 with the product detail so the storefront re-fetches
// availability.
func respondPlacementError(c *gin.Context, user *models.User, err error) {
	var stockErr *models.OutOfStockError
	switch {
	case errors.Is(err, ErrEmptyCart):
		utils.BadRequest(c, "Your cart is empty", nil)
	case errors.Is(err, ErrNoCheckoutSelection):
		utils.BadRequest(c, "Please complete checkout before placing the order", nil)
	case errors.Is(err, ErrNoAddress):
		utils.BadRequest(c, "Please select a delivery address", nil)
	case errors.Is(err, ErrMissingSubtotal):
		utils.BadRequest(c, "Checkout totals are missing, please retry checkout", nil)
	case errors.Is(err, models.ErrInvalidQuantity):
		utils.BadRequest(c, "Invalid quantity in cart", nil)
	case errors.Is(err, ErrCouponAlreadyRedeemed):
		utils.Conflict(c, "Coupon has already been used", nil)
	case errors.As(err, &stockErr):
		utils.Conflict(c, "Insufficient stock for "+stockErr.ProductName, stockErr.Detail)
	default:
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Error(c, appErr.Code, appErr.Message, nil)
			return
		}
		utils.LogError("Order placement failed for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to place order", nil)
	}
}

func orderSummary(order *models.Order) gin.H {
	return gin.H{
		"id":              order.ID,
		"status":          order.Status,
		"payment_status":  order.PaymentStatus,
		"payment_method":  order.PaymentMethod,
		"delivery_option": order.DeliveryOption,
		"subtotal":        order.Subtotal,
		"shipping_fee":    order.ShippingFee,
		"total":           order.Total,
		"items":           order.Items,
		"shipping":        order.Shipping,
		"created_at":      order.CreatedAt,
	}
}

// GetOrders lists the authenticated user's orders, newest first.
func GetOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var orders []models.Order
	if err := config.DB.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	utils.Success(c, "Orders retrieved successfully", gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderDetails returns a single order owned by the authenticated user.
func GetOrderDetails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orderID := c.Param("id")
	var order models.Order
	if err := config.DB.Preload("Items").Preload("Items.Product").
		Where("id = ? AND user_id = ?", orderID, user.ID).
		First(&order).Error; err != nil {
		utils.LogError("Order %s not found for user %d: %v", orderID, user.ID, err)
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", gin.H{"order": order})
}
