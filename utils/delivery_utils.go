package utils

import (
	"regexp"
	"strings"
)

var pincodeRe = regexp.MustCompile(`^\d{6}$`)

// Delivery currently covers Bangalore only.
const deliveryPincodePrefix = "560"

// IsDeliveryAvailable reports whether we deliver to the given pincode.
// The pincode must be six digits and inside the serviced area.
func IsDeliveryAvailable(pincode string) bool {
	clean := strings.ReplaceAll(strings.TrimSpace(pincode), " ", "")
	if !pincodeRe.MatchString(clean) {
		return false
	}
	return strings.HasPrefix(clean, deliveryPincodePrefix)
}

// DeliveryInfo describes delivery availability for a pincode.
type DeliveryInfo struct {
	Available     bool    `json:"available"`
	Status        string  `json:"status"`
	Message       string  `json:"message"`
	Charge        float64 `json:"delivery_charge"`
	EstimatedTime string  `json:"estimated_time,omitempty"`
}

// GetDeliveryInfo returns the delivery details shown on the storefront's
// pincode check.
func GetDeliveryInfo(pincode string) DeliveryInfo {
	if IsDeliveryAvailable(pincode) {
		return DeliveryInfo{
			Available:     true,
			Status:        "Available",
			Message:       "Standard delivery available in 3-5 business days",
			Charge:        0,
			EstimatedTime: "3-5 business days",
		}
	}
	return DeliveryInfo{
		Available: false,
		Status:    "Not Available",
		Message:   "Sorry, delivery is currently not available in your area. We only deliver to Bangalore (560xxx) at the moment.",
	}
}
