package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon discount types
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFlat       = "flat"
)

// Coupon is a discount code. Codes match case-insensitively; scoping fields
// restrict the coupon to a pet type, category or subcategory when set.
type Coupon struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Code         string         `gorm:"uniqueIndex" json:"code"`
	Description  string         `json:"description"`
	DiscountType string         `json:"discount_type"` // percentage or flat
	Value        float64        `json:"value"`
	MinSubtotal  float64        `json:"min_subtotal"`
	PetType      string         `json:"pet_type"`
	Category     string         `json:"category"`
	Subcategory  string         `json:"subcategory"`
	ValidFrom    *time.Time     `json:"valid_from"`
	ValidTo      *time.Time     `json:"valid_to"`
	Active       bool           `json:"active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// CouponRedemption records that a user consumed a coupon's single allowed
// use. The composite unique index makes the insert itself the authority for
// "at most one redemption per (coupon, user)" under concurrent checkouts.
type CouponRedemption struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CouponID  uint      `json:"coupon_id" gorm:"uniqueIndex:idx_redemption_coupon_user"`
	Coupon    Coupon    `json:"-" gorm:"foreignKey:CouponID"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_redemption_coupon_user"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
}
