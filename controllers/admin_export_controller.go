package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
	"github.com/tealeg/xlsx"
)

// ExportOrders writes all orders in a date range to an Excel workbook for
// the admin panel. Dates are inclusive and default to the last 30 days.
func ExportOrders(c *gin.Context) {
	utils.LogInfo("ExportOrders called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30)
	if s := c.Query("start_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			utils.BadRequest(c, "start_date must be YYYY-MM-DD", nil)
			return
		}
		startDate = parsed
	}
	if s := c.Query("end_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			utils.BadRequest(c, "end_date must be YYYY-MM-DD", nil)
			return
		}
		endDate = parsed.AddDate(0, 0, 1)
	}

	var orders []models.Order
	if err := config.DB.Preload("Items").Preload("User").
		Where("created_at >= ? AND created_at < ?", startDate, endDate).
		Order("created_at ASC").Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for export: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create export", nil)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString(utils.AppName + " - Orders Export")
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString("Period: " + startDate.Format("2006-01-02") + " to " + endDate.AddDate(0, 0, -1).Format("2006-01-02"))
	sheet.AddRow()

	headers := []string{"Order ID", "Customer", "Email", "Date", "Items", "Subtotal", "Shipping", "Total", "Payment", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	var revenue float64
	var itemCount int
	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(order.ID))
		row.AddCell().SetString(strings.TrimSpace(order.User.FirstName + " " + order.User.LastName))
		row.AddCell().SetString(order.User.Email)
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetInt(len(order.Items))
		row.AddCell().SetFloat(order.Subtotal)
		row.AddCell().SetFloat(order.ShippingFee)
		row.AddCell().SetFloat(order.Total)
		row.AddCell().SetString(order.PaymentMethod)
		row.AddCell().SetString(order.Status)
		if order.Status != models.OrderStatusCancelled {
			revenue += order.Total
			itemCount += len(order.Items)
		}
	}

	sheet.AddRow()
	summaryData := [][]string{
		{"Total Orders", fmt.Sprintf("%d", len(orders))},
		{"Total Items", fmt.Sprintf("%d", itemCount)},
		{"Total Revenue", fmt.Sprintf("%.2f", revenue)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=orders-export.xlsx")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel export: %v", err)
	}
}
