package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/utils"
)

// CheckDelivery reports whether we deliver to a pincode. Public endpoint
// used by the storefront's pincode widget.
func CheckDelivery(c *gin.Context) {
	pincode := c.Query("pincode")
	if pincode == "" {
		utils.BadRequest(c, "pincode is required", nil)
		return
	}

	info := utils.GetDeliveryInfo(pincode)
	utils.Success(c, "Delivery availability checked", gin.H{
		"pincode":  pincode,
		"delivery": info,
	})
}
