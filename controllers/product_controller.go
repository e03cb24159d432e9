package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

// ListProducts returns the storefront catalog, filterable by pet type,
// category and subcategory query params. Inactive products never appear;
// out-of-stock ones are included only when include_unavailable is set.
func ListProducts(c *gin.Context) {
	query := config.DB.Model(&models.Product{}).Where("is_active = ?", true)

	if petType := c.Query("pet_type"); petType != "" {
		query = query.Where("LOWER(pet_type) = LOWER(?)", petType)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}
	if subcategory := c.Query("subcategory"); subcategory != "" {
		query = query.Where("LOWER(subcategory) = LOWER(?)", subcategory)
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
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	var products []models.Product
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	if c.Query("include_unavailable") == "" {
		available := products[:0]
		for _, p := range products {
			if productAvailable(&p) {
				available = append(available, p)
			}
		}
		products = available
	}

	utils.Success(c, "Products retrieved successfully", gin.H{
		"products": products,
		"count":    len(products),
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// productAvailable reports whether any sellable unit exists.
func productAvailable(p *models.Product) bool {
	if p.HasVariants {
		for _, v := range p.Variants {
			if v.Stock > 0 {
				return true
			}
		}
		return false
	}
	return p.InStock && p.StockQuantity > 0
}

// GetProductDetails returns one product with its variants.
func GetProductDetails(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if !product.IsActive {
		utils.NotFound(c, "Product not found")
		return
	}

	utils.Success(c, "Product retrieved successfully", gin.H{
		"product":   product,
		"available": productAvailable(&product),
	})
}
