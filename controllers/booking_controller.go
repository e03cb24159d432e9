package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

// CreateServiceBooking books a grooming/walking/boarding appointment.
// Guests may book without an account; a logged-in user gets linked via the
// optional email lookup. The confirmation email must never fail the booking.
func CreateServiceBooking(c *gin.Context) {
	utils.LogInfo("CreateServiceBooking called")

	var req struct {
		PetName       string  `json:"pet_name" binding:"required"`
		PetType       string  `json:"pet_type"`
		OwnerName     string  `json:"owner_name" binding:"required"`
		Phone         string  `json:"phone" binding:"required"`
		Email         string  `json:"email"`
		Address       string  `json:"address"`
		ServiceType   string  `json:"service_type" binding:"required"`
		ServiceName   string  `json:"service_name"`
		Date          string  `json:"date" binding:"required"`
		PreferredTime string  `json:"preferred_time"`
		TotalAmount   float64 `json:"total_amount"`
		Notes         string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.BadRequest(c, "date must be YYYY-MM-DD", nil)
		return
	}
	today := time.Now().Truncate(24 * time.Hour)
	if date.Before(today) {
		utils.BadRequest(c, "Booking date cannot be in the past", nil)
		return
	}
	if req.TotalAmount < 0 {
		utils.BadRequest(c, "Amount must not be negative", nil)
		return
	}

	booking := models.ServiceBooking{
		PetName:       strings.TrimSpace(req.PetName),
		PetType:       req.PetType,
		OwnerName:     strings.TrimSpace(req.OwnerName),
		Phone:         req.Phone,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Address:       req.Address,
		ServiceType:   strings.ToLower(req.ServiceType),
		ServiceName:   req.ServiceName,
		Date:          date,
		PreferredTime: req.PreferredTime,
		TotalAmount:   req.TotalAmount,
		Status:        models.BookingStatusPending,
		Notes:         req.Notes,
	}
	if booking.UserID = optionalUserID(booking.Email); booking.UserID != nil {
		utils.LogDebug("Booking linked to user %d", *booking.UserID)
	}

	if err := config.DB.Create(&booking).Error; err != nil {
		utils.LogError("Failed to create booking for %s: %v", booking.OwnerName, err)
		utils.InternalServerError(c, "Failed to create booking", nil)
		return
	}

	go func(b models.ServiceBooking) {
		if err := utils.SendBookingConfirmation(&b); err != nil {
			utils.LogError("Failed to send booking confirmation for booking %d: %v", b.ID, err)
		}
	}(booking)

	utils.LogInfo("Booking %d created for %s (%s)", booking.ID, booking.PetName, booking.ServiceType)
	utils.Created(c, "Booking created successfully", gin.H{"booking": booking})
}

// GetMyBookings lists the authenticated user's bookings.
func GetMyBookings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var bookings []models.ServiceBooking
	if err := config.DB.Where("user_id = ? OR LOWER(email) = LOWER(?)", user.ID, user.Email).
		Order("date DESC").Find(&bookings).Error; err != nil {
		utils.LogError("Failed to fetch bookings for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch bookings", nil)
		return
	}

	utils.Success(c, "Bookings retrieved successfully", gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// GetBookingDetails returns one booking owned by the authenticated user,
// matched by account link or booking email.
func GetBookingDetails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var booking models.ServiceBooking
	if err := config.DB.Where("id = ? AND (user_id = ? OR LOWER(email) = LOWER(?))",
		c.Param("id"), user.ID, user.Email).First(&booking).Error; err != nil {
		utils.NotFound(c, "Booking not found")
		return
	}

	utils.Success(c, "Booking retrieved successfully", gin.H{"booking": booking})
}

// ListServiceBookings returns bookings for the admin panel, filterable by
// status and service type.
func ListServiceBookings(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	query := config.DB.Model(&models.ServiceBooking{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", strings.ToLower(status))
	}
	if serviceType := c.Query("service_type"); serviceType != "" {
		query = query.Where("service_type = ?", strings.ToLower(serviceType))
	}

	var bookings []models.ServiceBooking
	if err := query.Order("date ASC").Find(&bookings).Error; err != nil {
		utils.LogError("Failed to fetch bookings: %v", err)
		utils.InternalServerError(c, "Failed to fetch bookings", nil)
		return
	}

	utils.Success(c, "Bookings retrieved successfully", gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

var validBookingStatuses = map[string]bool{
	models.BookingStatusPending:   true,
	models.BookingStatusConfirmed: true,
	models.BookingStatusCompleted: true,
	models.BookingStatusCancelled: true,
}

// UpdateBookingStatus moves a booking through its lifecycle and emails the
// customer about the change.
func UpdateBookingStatus(c *gin.Context) {
	utils.LogInfo("UpdateBookingStatus called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var booking models.ServiceBooking
	if err := config.DB.Preload("User").First(&booking, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Booking not found")
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
	if !validBookingStatuses[newStatus] {
		utils.BadRequest(c, "Unknown booking status", nil)
		return
	}

	oldStatus := booking.Status
	if err := config.DB.Model(&booking).Update("status", newStatus).Error; err != nil {
		utils.LogError("Failed to update booking %d: %v", booking.ID, err)
		utils.InternalServerError(c, "Failed to update booking", nil)
		return
	}
	booking.Status = newStatus

	go func(b models.ServiceBooking) {
		if err := utils.SendBookingStatusUpdate(&b, oldStatus, newStatus); err != nil {
			utils.LogError("Failed to send booking status email for booking %d: %v", b.ID, err)
		}
	}(booking)

	utils.Success(c, "Booking status updated", gin.H{"booking": booking})
}
