package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a customer account
type User struct {
	gorm.Model
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	IsBlocked   bool      `json:"is_blocked"`
	IsVerified  bool      `json:"is_verified" gorm:"default:false"`
	GoogleID    string    `gorm:"unique;default:null" json:"google_id"`
	TotalOrders int       `json:"total_orders" gorm:"default:0"`
	LastLoginAt time.Time `json:"last_login_at"`

	Addresses []Address `json:"addresses" gorm:"foreignKey:UserID"`
}

// Admin represents a store administrator
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}
