package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

// AddToCart puts a product (or one of its variants) into the user's cart.
// The price and a display label are frozen on the line at add time; later
// product edits never change what the cart shows.
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uint   `json:"product_id" binding:"required"`
		VariantID string `json:"variant_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if !product.IsActive {
		utils.BadRequest(c, "Product is not available", nil)
		return
	}

	// A line already in the cart for the same product+variant grows
	// instead of duplicating; the combined quantity must still be
	// coverable by current stock.
	var existing models.CartItem
	err := config.DB.Where("user_id = ? AND product_id = ? AND variant_id = ?",
		user.ID, req.ProductID, req.VariantID).First(&existing).Error
	quantity := req.Quantity
	if err == nil {
		quantity += existing.Quantity
	}

	if err := product.CheckAvailable(req.VariantID, quantity); err != nil {
		respondStockError(c, err)
		return
	}

	price := product.Price
	if req.VariantID != "" {
		if v := product.VariantByID(req.VariantID); v != nil && v.Price > 0 {
			price = v.Price
		}
	}
	label := product.DeriveVariantLabel(req.VariantID)

	if existing.ID != 0 {
		existing.Quantity = quantity
		if err := config.DB.Save(&existing).Error; err != nil {
			utils.LogError("Failed to update cart line %d: %v", existing.ID, err)
			utils.InternalServerError(c, "Failed to update cart", nil)
			return
		}
		utils.Success(c, "Cart updated", gin.H{"item": existing})
		return
	}

	item := models.CartItem{
		UserID:       user.ID,
		ProductID:    req.ProductID,
		VariantID:    req.VariantID,
		VariantLabel: label,
		Quantity:     req.Quantity,
		PriceAtAdd:   price,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		utils.LogError("Failed to add cart line for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to add to cart", nil)
		return
	}

	utils.LogInfo("User %d added product %d (variant %q) x%d to cart", user.ID, req.ProductID, req.VariantID, req.Quantity)
	utils.Created(c, "Added to cart", gin.H{"item": item})
}

func respondStockError(c *gin.Context, err error) {
	if err == models.ErrInvalidQuantity {
		utils.BadRequest(c, "Quantity must be at least 1", nil)
		return
	}
	if stockErr, ok := err.(*models.OutOfStockError); ok {
		utils.Conflict(c, "Insufficient stock for "+stockErr.ProductName, stockErr.Detail)
		return
	}
	utils.InternalServerError(c, "Failed to check stock", nil)
}

// GetCart returns the user's cart lines with a running subtotal computed
// from the frozen per-line prices.
func GetCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var items []models.CartItem
	if err := config.DB.Preload("Product").Where("user_id = ?", user.ID).
		Order("created_at ASC").Find(&items).Error; err != nil {
		utils.LogError("Failed to fetch cart for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch cart", nil)
		return
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.PriceAtAdd * float64(item.Quantity)
	}
	shippingFee, total := utils.ComputeTotals(subtotal, 0)

	utils.Success(c, "Cart retrieved successfully", gin.H{
		"items":        items,
		"count":        len(items),
		"subtotal":     subtotal,
		"shipping_fee": shippingFee,
		"total":        total,
	})
}

// UpdateCartItem sets a new quantity on a cart line after re-checking stock.
func UpdateCartItem(c *gin.Context) {
	utils.LogInfo("UpdateCartItem called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Quantity < 1 {
		utils.BadRequest(c, "Quantity must be at least 1", nil)
		return
	}

	var item models.CartItem
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&item).Error; err != nil {
		utils.NotFound(c, "Cart item not found")
		return
	}

	var product models.Product
	if err := config.DB.First(&product, item.ProductID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if err := product.CheckAvailable(item.VariantID, req.Quantity); err != nil {
		respondStockError(c, err)
		return
	}

	item.Quantity = req.Quantity
	if err := config.DB.Save(&item).Error; err != nil {
		utils.LogError("Failed to update cart line %d: %v", item.ID, err)
		utils.InternalServerError(c, "Failed to update cart", nil)
		return
	}

	utils.Success(c, "Cart updated", gin.H{"item": item})
}

// RemoveFromCart deletes one cart line.
func RemoveFromCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	result := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).Delete(&models.CartItem{})
	if result.Error != nil {
		utils.LogError("Failed to remove cart line for user %d: %v", user.ID, result.Error)
		utils.InternalServerError(c, "Failed to remove item", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Cart item not found")
		return
	}

	utils.Success(c, "Item removed from cart", nil)
}

// ClearCart empties the user's cart.
func ClearCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := config.DB.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		utils.LogError("Failed to clear cart for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to clear cart", nil)
		return
	}

	utils.Success(c, "Cart cleared", nil)
}
