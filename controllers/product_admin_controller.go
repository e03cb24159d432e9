package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

type productUpsertRequest struct {
	Name             string                  `json:"name" binding:"required"`
	Description      string                  `json:"description"`
	Brand            string                  `json:"brand"`
	PetType          string                  `json:"pet_type"`
	Category         string                  `json:"category"`
	Subcategory      string                  `json:"subcategory"`
	SubcategoryLabel string                  `json:"subcategory_label"`
	Price            float64                 `json:"price"`
	Weight           string                  `json:"weight"`
	WeightUnit       string                  `json:"weight_unit"`
	ImageURL         string                  `json:"image_url"`
	StockQuantity    int                     `json:"stock_quantity"`
	Variants         []models.ProductVariant `json:"variants"`
	IsActive         *bool                   `json:"is_active"`
}

// applyTo normalizes the payload onto a product row. Variant stock/price
// typing is enforced by the variant decoder during request binding, so by
// the time we get here every variant carries proper numbers. Variants
// without an id get one minted here.
func (r *productUpsertRequest) applyTo(product *models.Product) {
	product.Name = strings.TrimSpace(r.Name)
	product.Description = r.Description
	product.Brand = r.Brand
	product.PetType = r.PetType
	product.Category = r.Category
	product.Subcategory = r.Subcategory
	product.SubcategoryLabel = r.SubcategoryLabel
	product.Price = r.Price
	product.Weight = r.Weight
	product.WeightUnit = r.WeightUnit
	product.ImageURL = r.ImageURL
	product.StockQuantity = r.StockQuantity

	for i := range r.Variants {
		if strings.TrimSpace(r.Variants[i].ID) == "" {
			r.Variants[i].ID = uuid.NewString()
		}
	}
	product.Variants = r.Variants
	product.HasVariants = len(r.Variants) > 0
	product.InStock = product.StockQuantity > 0
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
}

// CreateProduct adds a catalog product. Malformed variant stock or price
// values fail the request instead of silently becoming zero.
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var req productUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid product payload", err.Error())
		return
	}
	if req.Price < 0 || req.StockQuantity < 0 {
		utils.BadRequest(c, "Price and stock must not be negative", nil)
		return
	}

	product := models.Product{IsActive: true}
	req.applyTo(&product)

	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product %s: %v", req.Name, err)
		utils.InternalServerError(c, "Failed to create product", nil)
		return
	}

	utils.Created(c, "Product created successfully", gin.H{"product": product})
}

// UpdateProduct replaces a product's fields and variant list.
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var req productUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid product payload", err.Error())
		return
	}
	if req.Price < 0 || req.StockQuantity < 0 {
		utils.BadRequest(c, "Price and stock must not be negative", nil)
		return
	}

	req.applyTo(&product)

	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", nil)
		return
	}

	utils.Success(c, "Product updated successfully", gin.H{"product": product})
}

// DeleteProduct soft-deletes a product. Historical order items keep their
// frozen price and label.
func DeleteProduct(c *gin.Context) {
	utils.LogInfo("DeleteProduct called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if err := config.DB.Delete(&product).Error; err != nil {
		utils.LogError("Failed to delete product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}

	utils.Success(c, "Product deleted successfully", nil)
}

// UpdateProductStock adjusts stock for a product or a single variant
// without touching the rest of the row.
func UpdateProductStock(c *gin.Context) {
	utils.LogInfo("UpdateProductStock called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var req struct {
		VariantID string `json:"variant_id"`
		Stock     int    `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Stock < 0 {
		utils.BadRequest(c, "Stock must not be negative", nil)
		return
	}

	if req.VariantID != "" {
		v := product.VariantByID(req.VariantID)
		if v == nil {
			utils.NotFound(c, "Variant not found")
			return
		}
		v.Stock = req.Stock
	} else {
		product.StockQuantity = req.Stock
		product.InStock = req.Stock > 0
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update stock for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update stock", nil)
		return
	}

	utils.Success(c, "Stock updated successfully", gin.H{"product": product})
}
