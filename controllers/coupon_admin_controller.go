package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

type couponUpsertRequest struct {
	Code         string     `json:"code" binding:"required"`
	Description  string     `json:"description"`
	DiscountType string     `json:"discount_type" binding:"required"`
	Value        float64    `json:"value" binding:"required"`
	MinSubtotal  float64    `json:"min_subtotal"`
	PetType      string     `json:"pet_type"`
	Category     string     `json:"category"`
	Subcategory  string     `json:"subcategory"`
	ValidFrom    *time.Time `json:"valid_from"`
	ValidTo      *time.Time `json:"valid_to"`
	Active       *bool      `json:"active"`
}

func (r *couponUpsertRequest) validate() string {
	r.Code = strings.TrimSpace(r.Code)
	if r.Code == "" {
		return "Coupon code is required"
	}
	if r.DiscountType != models.DiscountTypePercentage && r.DiscountType != models.DiscountTypeFlat {
		return "discount_type must be percentage or flat"
	}
	if r.Value <= 0 {
		return "Coupon value must be positive"
	}
	if r.DiscountType == models.DiscountTypePercentage && r.Value > 100 {
		return "Percentage discount cannot exceed 100"
	}
	if r.ValidFrom != nil && r.ValidTo != nil && r.ValidTo.Before(*r.ValidFrom) {
		return "valid_to must be after valid_from"
	}
	return ""
}

// CreateCoupon adds a new coupon. Codes are unique case-insensitively.
func CreateCoupon(c *gin.Context) {
	utils.LogInfo("CreateCoupon called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var req couponUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		utils.BadRequest(c, msg, nil)
		return
	}

	var existing models.Coupon
	if err := config.DB.Where("LOWER(code) = LOWER(?)", req.Code).First(&existing).Error; err == nil {
		utils.Conflict(c, "A coupon with this code already exists", nil)
		return
	}

	coupon := models.Coupon{
		Code:         req.Code,
		Description:  req.Description,
		DiscountType: req.DiscountType,
		Value:        req.Value,
		MinSubtotal:  req.MinSubtotal,
		PetType:      req.PetType,
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		ValidFrom:    req.ValidFrom,
		ValidTo:      req.ValidTo,
		Active:       true,
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := config.DB.Create(&coupon).Error; err != nil {
		utils.LogError("Failed to create coupon %s: %v", req.Code, err)
		utils.InternalServerError(c, "Failed to create coupon", nil)
		return
	}

	utils.Created(c, "Coupon created successfully", gin.H{"coupon": coupon})
}

// UpdateCoupon modifies an existing coupon.
func UpdateCoupon(c *gin.Context) {
	utils.LogInfo("UpdateCoupon called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	var req couponUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		utils.BadRequest(c, msg, nil)
		return
	}

	var clash models.Coupon
	if err := config.DB.Where("LOWER(code) = LOWER(?) AND id <> ?", req.Code, coupon.ID).
		First(&clash).Error; err == nil {
		utils.Conflict(c, "A coupon with this code already exists", nil)
		return
	}

	coupon.Code = req.Code
	coupon.Description = req.Description
	coupon.DiscountType = req.DiscountType
	coupon.Value = req.Value
	coupon.MinSubtotal = req.MinSubtotal
	coupon.PetType = req.PetType
	coupon.Category = req.Category
	coupon.Subcategory = req.Subcategory
	coupon.ValidFrom = req.ValidFrom
	coupon.ValidTo = req.ValidTo
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := config.DB.Save(&coupon).Error; err != nil {
		utils.LogError("Failed to update coupon %d: %v", coupon.ID, err)
		utils.InternalServerError(c, "Failed to update coupon", nil)
		return
	}

	utils.Success(c, "Coupon updated successfully", gin.H{"coupon": coupon})
}

// DeleteCoupon soft-deletes a coupon; historical redemptions stay intact.
func DeleteCoupon(c *gin.Context) {
	utils.LogInfo("DeleteCoupon called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	if err := config.DB.Delete(&coupon).Error; err != nil {
		utils.LogError("Failed to delete coupon %d: %v", coupon.ID, err)
		utils.InternalServerError(c, "Failed to delete coupon", nil)
		return
	}

	utils.Success(c, "Coupon deleted successfully", nil)
}

// ListCoupons returns all coupons with their redemption counts.
func ListCoupons(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var coupons []models.Coupon
	if err := config.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		utils.LogError("Failed to list coupons: %v", err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}

	type couponRow struct {
		models.Coupon
		Redemptions int64 `json:"redemptions"`
	}
	rows := make([]couponRow, 0, len(coupons))
	for _, coupon := range coupons {
		var count int64
		config.DB.Model(&models.CouponRedemption{}).Where("coupon_id = ?", coupon.ID).Count(&count)
		rows = append(rows, couponRow{Coupon: coupon, Redemptions: count})
	}

	utils.Success(c, "Coupons retrieved successfully", gin.H{
		"coupons": rows,
		"count":   len(rows),
	})
}
