package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

// ListAllOrders returns orders across all users for the admin panel,
// filterable by status and payment method.
func ListAllOrders(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	query := config.DB.Model(&models.Order{}).Preload("Items").Preload("User")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", strings.ToLower(status))
	}
	if method := c.Query("payment_method"); method != "" {
		query = query.Where("payment_method = ?", strings.ToLower(method))
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultPaginationLimit)))
	if err != nil || limit < 1 {
		limit = utils.DefaultPaginationLimit
	}
	if limit > utils.MaxPaginationLimit {
		limit = utils.MaxPaginationLimit
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	utils.Success(c, "Orders retrieved successfully", gin.H{
		"orders": orders,
		"count":  len(orders),
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// validStatusTransitions maps each order status to the statuses an admin may
// move it to.
var validStatusTransitions = map[string][]string{
	models.OrderStatusPlaced:    {models.OrderStatusPaid, models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusPaid:      {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

func transitionAllowed(from, to string) bool {
	for _, s := range validStatusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// UpdateOrderStatus moves an order along its lifecycle and emails the
// customer. The email is fire and forget; a send failure never fails the
// status update.
func UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").First(&order, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	newStatus := strings.ToLower(strings.TrimSpace(req.Status))

	if _, known := validStatusTransitions[newStatus]; !known {
		utils.BadRequest(c, "Unknown order status", nil)
		return
	}
	oldStatus := order.Status
	if !transitionAllowed(oldStatus, newStatus) {
		utils.BadRequest(c, "Cannot move order from "+oldStatus+" to "+newStatus, nil)
		return
	}

	updates := map[string]interface{}{"status": newStatus}
	if newStatus == models.OrderStatusPaid {
		updates["payment_status"] = models.PaymentStatusPaid
	}
	if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update status for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order status", nil)
		return
	}
	order.Status = newStatus

	utils.LogInfo("Order %d status changed %s -> %s", order.ID, oldStatus, newStatus)
	utils.NotifyOrderStatusChanged(&order, oldStatus, newStatus)

	utils.Success(c, "Order status updated", gin.H{"order": order})
}
