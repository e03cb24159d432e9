package models

import (
	"gorm.io/gorm"
)

// Category groups products for a pet type, e.g. "Food" under "Dog".
type Category struct {
	gorm.Model
	Name        string `json:"name"`
	Slug        string `json:"slug" gorm:"uniqueIndex"`
	PetType     string `json:"pet_type"`
	Description string `json:"description"`
	Blocked     bool   `json:"blocked" gorm:"default:false"`
}
