package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

// DashboardStats holds the headline numbers for the admin landing page.
type DashboardStats struct {
	TotalSales      string `json:"total_sales"`
	TotalOrders     int64  `json:"total_orders"`
	TotalCustomers  int64  `json:"total_customers"`
	TotalProducts   int64  `json:"total_products"`
	PendingBookings int64  `json:"pending_bookings"`
}

// GetDashboardStats returns overall store statistics. Cancelled orders are
// excluded from sales figures.
func GetDashboardStats(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var stats DashboardStats
	var totalSales float64

	config.DB.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Row().Scan(&totalSales)
	stats.TotalSales = fmt.Sprintf("%.2f", totalSales)

	config.DB.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Count(&stats.TotalOrders)
	config.DB.Model(&models.User{}).Count(&stats.TotalCustomers)
	config.DB.Model(&models.Product{}).Where("is_active = ?", true).Count(&stats.TotalProducts)
	config.DB.Model(&models.ServiceBooking{}).
		Where("status = ?", models.BookingStatusPending).
		Count(&stats.PendingBookings)

	utils.Success(c, "Dashboard stats retrieved", gin.H{"stats": stats})
}

// GetSalesChart returns daily sales totals for the last N days (default 7)
// for the dashboard chart.
func GetSalesChart(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	days := 7
	if c.Query("days") == "30" {
		days = 30
	}

	labels := make([]string, 0, days)
	data := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := time.Now().AddDate(0, 0, -i).Truncate(24 * time.Hour)
		next := day.AddDate(0, 0, 1)

		var total float64
		config.DB.Model(&models.Order{}).
			Where("status != ? AND created_at >= ? AND created_at < ?",
				models.OrderStatusCancelled, day, next).
			Select("COALESCE(SUM(total), 0)").
			Row().Scan(&total)

		labels = append(labels, day.Format("Jan 02"))
		data = append(data, fmt.Sprintf("%.2f", total))
	}

	utils.Success(c, "Sales chart retrieved", gin.H{
		"labels": labels,
		"data":   data,
	})
}

// TopSellingProduct is one row of the best-sellers table.
type TopSellingProduct struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

// GetTopSellingProducts returns the products with the highest sold quantity
// across non-cancelled orders.
func GetTopSellingProducts(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var rows []TopSellingProduct
	err := config.DB.Model(&models.OrderItem{}).
		Select("order_items.product_id, products.name, SUM(order_items.quantity) as quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.status != ?", models.OrderStatusCancelled).
		Group("order_items.product_id, products.name").
		Order("quantity DESC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		utils.LogError("Failed to fetch top sellers: %v", err)
		utils.InternalServerError(c, "Failed to fetch top sellers", nil)
		return
	}

	utils.Success(c, "Top selling products retrieved", gin.H{"products": rows})
}
