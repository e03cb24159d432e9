package models

import (
	"time"
)

// CheckoutSelection is the per-user staging row between cart and order. It
// captures the chosen address, delivery/payment method and the computed
// totals. Nil totals mean "not computed yet"; the order assembler and the
// payment bridge fall back to the shipping threshold rule in that case.
type CheckoutSelection struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	AddressID      *uint     `json:"address_id"`
	DeliveryOption string    `json:"delivery_option"`
	PaymentMethod  string    `json:"payment_method"`
	CouponCode     string    `json:"coupon_code"`
	Subtotal       *float64  `json:"subtotal"`
	ShippingFee    *float64  `json:"shipping_fee"`
	Total          *float64  `json:"total"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
