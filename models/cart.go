package models

import (
	"time"
)

// CartItem is one line of a user's cart. PriceAtAdd is frozen when the line
// is created and never recomputed from the live product price.
type CartItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	User         User      `json:"-" gorm:"foreignKey:UserID"`
	ProductID    uint      `json:"product_id" gorm:"not null"`
	Product      Product   `json:"product" gorm:"foreignKey:ProductID"`
	VariantID    string    `json:"variant_id"`
	VariantLabel string    `json:"variant_label"`
	Quantity     int       `json:"quantity"`
	PriceAtAdd   float64   `json:"price_at_add"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
