package utils

// Application constants
const (
	// Application name
	AppName = "PET&CO"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Free shipping kicks in at this subtotal (rupees)
	FreeShippingThreshold = 500.0

	// Flat shipping surcharge below the threshold
	StandardShippingFee = 50.0

	// Payment currency for the Razorpay gateway
	PaymentCurrency = "INR"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Minimum password length
	MinPasswordLength = 8
)

// Delivery options
const (
	DeliveryOptionStandard = "standard"
	DeliveryOptionExpress  = "express"
)

// Payment methods
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

// Error messages
const (
	ErrInvalidCredentials = "Invalid email or password"
	ErrUserBlocked        = "Your account has been blocked"
	ErrUnauthorized       = "Unauthorized access"
	ErrRecordNotFound     = "Record not found"
	ErrInternalServer     = "Internal server error"
)
