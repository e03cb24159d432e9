package models

import (
	"time"
)

// Service booking statuses
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// ServiceBooking is an appointment for a pet service (grooming, walking,
// boarding). Bookings can be made by guests, so the user link is optional
// and contact details are stored on the row.
type ServiceBooking struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        *uint     `json:"user_id"`
	User          *User     `json:"-" gorm:"foreignKey:UserID"`
	PetName       string    `json:"pet_name"`
	PetType       string    `json:"pet_type"`
	OwnerName     string    `json:"owner_name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	ServiceType   string    `json:"service_type"` // grooming, walking, boarding
	ServiceName   string    `json:"service_name"`
	Date          time.Time `json:"date"`
	PreferredTime string    `json:"preferred_time"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status" gorm:"default:'pending'"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
