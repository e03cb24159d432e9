package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

// ListUsers returns customer accounts for the admin panel with optional
// search over username and email.
func ListUsers(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	query := config.DB.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", like, like)
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
		utils.LogError("Failed to count users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", nil)
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", nil)
		return
	}

	utils.Success(c, "Users retrieved successfully", gin.H{
		"users": users,
		"count": len(users),
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// ToggleUserBlock blocks or unblocks a customer account. Blocked users fail
// authentication on their next request.
func ToggleUserBlock(c *gin.Context) {
	utils.LogInfo("ToggleUserBlock called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	user.IsBlocked = !user.IsBlocked
	if err := config.DB.Model(&user).Update("is_blocked", user.IsBlocked).Error; err != nil {
		utils.LogError("Failed to toggle block for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}

	msg := "User unblocked"
	if user.IsBlocked {
		msg = "User blocked"
	}
	utils.LogInfo("%s: %d", msg, user.ID)
	utils.Success(c, msg, gin.H{"user": user})
}
