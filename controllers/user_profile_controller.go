package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

// GetProfile returns the authenticated user's account with addresses.
func GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var full models.User
	if err := config.DB.Preload("Addresses").First(&full, user.ID).Error; err != nil {
		utils.LogError("Failed to load profile for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load profile", nil)
		return
	}

	utils.Success(c, "Profile retrieved successfully", gin.H{"user": full})
}

// UpdateProfile edits name and phone. Email and username changes are not
// supported here.
func UpdateProfile(c *gin.Context) {
	utils.LogInfo("UpdateProfile called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"phone":      req.Phone,
	}
	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update profile for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update profile", nil)
		return
	}

	utils.Success(c, "Profile updated successfully", gin.H{"user": user})
}

// ChangePassword verifies the current password before setting a new one.
func ChangePassword(c *gin.Context) {
	utils.LogInfo("ChangePassword called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if len(req.NewPassword) < utils.MinPasswordLength {
		utils.BadRequest(c, "Password must be at least 8 characters", nil)
		return
	}
	if !utils.CheckPassword(req.CurrentPassword, user.Password) {
		utils.Unauthorized(c, "Current password is incorrect")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.LogError("Failed to hash password for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to change password", nil)
		return
	}
	if err := config.DB.Model(&user).Update("password", hash).Error; err != nil {
		utils.LogError("Failed to change password for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to change password", nil)
		return
	}

	utils.Success(c, "Password changed successfully", nil)
}
