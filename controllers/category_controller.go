package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/models"
	"github.com/petandco/PetAndCo/utils"
)

// ListCategories returns the visible category tree, optionally scoped to a
// pet type.
func ListCategories(c *gin.Context) {
	query := config.DB.Model(&models.Category{}).Where("blocked = ?", false)
	if petType := c.Query("pet_type"); petType != "" {
		query = query.Where("LOWER(pet_type) = LOWER(?)", petType)
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", nil)
		return
	}

	utils.Success(c, "Categories retrieved successfully", gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}

// CreateCategory adds a category to the catalog tree.
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		PetType     string `json:"pet_type"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	category := models.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slugify(req.PetType + "-" + req.Name),
		PetType:     req.PetType,
		Description: req.Description,
	}

	var existing models.Category
	if err := config.DB.Where("slug = ?", category.Slug).First(&existing).Error; err == nil {
		utils.Conflict(c, "Category already exists", nil)
		return
	}

	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category %s: %v", category.Name, err)
		utils.InternalServerError(c, "Failed to create category", nil)
		return
	}

	utils.Created(c, "Category created successfully", gin.H{"category": category})
}

// UpdateCategory edits a category's name, pet type or description.
func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		PetType     string `json:"pet_type"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Slug = slugify(req.PetType + "-" + req.Name)
	category.PetType = req.PetType
	category.Description = req.Description

	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to update category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", nil)
		return
	}

	utils.Success(c, "Category updated successfully", gin.H{"category": category})
}

// ToggleCategoryBlock flips a category's visibility on the storefront.
func ToggleCategoryBlock(c *gin.Context) {
	utils.LogInfo("ToggleCategoryBlock called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	category.Blocked = !category.Blocked
	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to toggle category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", nil)
		return
	}

	msg := "Category unblocked"
	if category.Blocked {
		msg = "Category blocked"
	}
	utils.Success(c, msg, gin.H{"category": category})
}

// DeleteCategory soft-deletes a category.
func DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")

	if _, ok := currentAdmin(c); !ok {
		return
	}

	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	if err := config.DB.Delete(&category).Error; err != nil {
		utils.LogError("Failed to delete category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to delete category", nil)
		return
	}

	utils.Success(c, "Category deleted successfully", nil)
}
