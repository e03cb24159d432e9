package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

// currentUser pulls the authenticated user out of the request context. When
// it returns false a response has already been written.
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "Unauthorized")
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.BadRequest(c, "Invalid user in context", nil)
		return models.User{}, false
	}
	return user, true
}

// currentAdmin pulls the authenticated admin out of the request context.
func currentAdmin(c *gin.Context) (models.Admin, bool) {
	adminVal, exists := c.Get("admin")
	if !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Unauthorized")
		return models.Admin{}, false
	}
	admin, ok := adminVal.(models.Admin)
	if !ok {
		utils.LogError("Invalid admin type in context")
		utils.BadRequest(c, "Invalid admin in context", nil)
		return models.Admin{}, false
	}
	return admin, true
}
