package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPlaced    = "placed"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment status constants
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// ShippingSnapshot is a copy of the delivery address embedded into the order
// at placement time, so historical orders keep showing the right shipping
// info even after the user edits or deletes the address.
type ShippingSnapshot struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	Landmark    string `json:"landmark"`
	AddressType string `json:"address_type"`
}

// Order is immutable after creation except for status/payment fields, which
// admin and payment-verification flows update later.
type Order struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	UserID            uint             `json:"user_id" gorm:"index"`
	User              User             `json:"-" gorm:"foreignKey:UserID"`
	DeliveryOption    string           `json:"delivery_option"`
	PaymentMethod     string           `json:"payment_method"`
	Shipping          ShippingSnapshot `json:"shipping" gorm:"embedded;embeddedPrefix:shipping_"`
	Subtotal          float64          `json:"subtotal"`
	ShippingFee       float64          `json:"shipping_fee"`
	Total             float64          `json:"total"`
	Status            string           `json:"status"`
	PaymentStatus     string           `json:"payment_status"`
	RazorpayOrderID   string           `json:"razorpay_order_id"`
	RazorpayPaymentID string           `json:"razorpay_payment_id"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	Items             []OrderItem      `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem freezes one cart line at order time. Price and VariantLabel are
// snapshots; the product reference stays live but later price or stock
// changes never touch historical items.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `json:"order_id" gorm:"index"`
	ProductID    uint    `json:"product_id"`
	Product      Product `json:"product" gorm:"foreignKey:ProductID"`
	VariantID    string  `json:"variant_id"`
	VariantLabel string  `json:"variant_label"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}
