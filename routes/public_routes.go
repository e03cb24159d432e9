package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/controllers"
)

// registerPublicRoutes mounts endpoints that need no bearer token: catalog
// browsing, delivery checks, service bookings and the payment/coupon
// endpoints the storefront drives by email.
func registerPublicRoutes(api *gin.RouterGroup) {
	api.POST("/register", controllers.Register)
	api.POST("/login", controllers.Login)

	api.GET("/products", controllers.ListProducts)
	api.GET("/products/:id", controllers.GetProductDetails)
	api.GET("/categories", controllers.ListCategories)

	api.GET("/delivery/check", controllers.CheckDelivery)

	api.POST("/bookings", controllers.CreateServiceBooking)

	coupons := api.Group("/coupons")
	{
		coupons.POST("/validate", controllers.ValidateCouponCode)
		coupons.POST("/apply", controllers.ApplyCoupon)
	}

	payments := api.Group("/payments/razorpay")
	{
		payments.POST("/create-order", controllers.CreateRazorpayOrder)
		payments.POST("/verify", controllers.VerifyRazorpayPayment)
	}
}
