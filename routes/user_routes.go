package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/controllers"
	"github.com/petandco/PetAndCo/middleware"
)

// registerUserRoutes mounts the authenticated customer API: profile,
// addresses, cart, checkout and orders.
func registerUserRoutes(api *gin.RouterGroup) {
	user := api.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.PUT("/password", controllers.ChangePassword)

		user.GET("/addresses", controllers.ListAddresses)
		user.POST("/addresses", controllers.CreateAddress)
		user.PUT("/addresses/:id", controllers.UpdateAddress)
		user.DELETE("/addresses/:id", controllers.DeleteAddress)
		user.PATCH("/addresses/:id/default", controllers.SetDefaultAddress)

		user.GET("/cart", controllers.GetCart)
		user.POST("/cart", controllers.AddToCart)
		user.PUT("/cart/:id", controllers.UpdateCartItem)
		user.DELETE("/cart/:id", controllers.RemoveFromCart)
		user.DELETE("/cart", controllers.ClearCart)

		user.GET("/checkout", controllers.GetCheckoutSummary)
		user.POST("/checkout", controllers.SaveCheckoutSelection)
		user.DELETE("/checkout/coupon", controllers.RemoveCoupon)

		user.POST("/orders", controllers.PlaceOrder)
		user.GET("/orders", controllers.GetOrders)
		user.GET("/orders/:id", controllers.GetOrderDetails)
		user.GET("/orders/:id/invoice", controllers.DownloadInvoice)

		user.GET("/bookings", controllers.GetMyBookings)
		user.GET("/bookings/:id", controllers.GetBookingDetails)
	}
}
