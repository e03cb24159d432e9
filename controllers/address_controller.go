package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

type addressRequest struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Street      string `json:"street" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	Pincode     string `json:"pincode" binding:"required"`
	Landmark    string `json:"landmark"`
	AddressType string `json:"address_type"`
	IsDefault   bool   `json:"is_default"`
}

func (r *addressRequest) validate() string {
	r.Pincode = strings.TrimSpace(r.Pincode)
	if len(r.Pincode) != 6 {
		return "Pincode must be 6 digits"
	}
	if !utils.IsDeliveryAvailable(r.Pincode) {
		return "Delivery is not available for this pincode"
	}
	if r.AddressType == "" {
		r.AddressType = "home"
	}
	return ""
}

// ListAddresses returns the user's saved addresses, default first.
func ListAddresses(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
		utils.LogError("Failed to fetch addresses for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch addresses", nil)
		return
	}

	utils.Success(c, "Addresses retrieved successfully", gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// CreateAddress saves a new delivery address for the user.
func CreateAddress(c *gin.Context) {
	utils.LogInfo("CreateAddress called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		utils.BadRequest(c, msg, nil)
		return
	}

	var count int64
	config.DB.Model(&models.Address{}).Where("user_id = ?", user.ID).Count(&count)

	address := models.Address{
		UserID:      user.ID,
		Name:        req.Name,
		Phone:       req.Phone,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		Pincode:     req.Pincode,
		Landmark:    req.Landmark,
		AddressType: req.AddressType,
		IsDefault:   req.IsDefault || count == 0,
	}

	tx := config.DB.Begin()
	if address.IsDefault {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
			Update("is_default", false).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to save address", nil)
			return
		}
	}
	if err := tx.Create(&address).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create address for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save address", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to save address", nil)
		return
	}

	utils.Created(c, "Address saved successfully", gin.H{"address": address})
}

// UpdateAddress edits a saved address. Orders keep their own shipping
// snapshot, so history is unaffected.
func UpdateAddress(c *gin.Context) {
	utils.LogInfo("UpdateAddress called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		utils.BadRequest(c, msg, nil)
		return
	}

	address.Name = req.Name
	address.Phone = req.Phone
	address.Street = req.Street
	address.City = req.City
	address.State = req.State
	address.Pincode = req.Pincode
	address.Landmark = req.Landmark
	address.AddressType = req.AddressType

	if err := config.DB.Save(&address).Error; err != nil {
		utils.LogError("Failed to update address %d: %v", address.ID, err)
		utils.InternalServerError(c, "Failed to update address", nil)
		return
	}

	utils.Success(c, "Address updated successfully", gin.H{"address": address})
}

// DeleteAddress removes a saved address and detaches it from any staged
// checkout selection.
func DeleteAddress(c *gin.Context) {
	utils.LogInfo("DeleteAddress called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	tx := config.DB.Begin()
	if err := tx.Model(&models.CheckoutSelection{}).
		Where("user_id = ? AND address_id = ?", user.ID, address.ID).
		Update("address_id", nil).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to delete address", nil)
		return
	}
	if err := tx.Delete(&address).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete address %d: %v", address.ID, err)
		utils.InternalServerError(c, "Failed to delete address", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to delete address", nil)
		return
	}

	utils.Success(c, "Address deleted successfully", nil)
}

// SetDefaultAddress marks one address as the user's default.
func SetDefaultAddress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	tx := config.DB.Begin()
	if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
		Update("is_default", false).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to set default address", nil)
		return
	}
	if err := tx.Model(&address).Update("is_default", true).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to set default address", nil)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to set default address", nil)
		return
	}

	utils.Success(c, "Default address updated", gin.H{"address": address})
}
