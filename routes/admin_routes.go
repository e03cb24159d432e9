package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/controllers"
	"github.com/petandco/PetAndCo/middleware"
)

// registerAdminRoutes mounts the admin API behind the admin token check.
func registerAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.POST("/login", controllers.AdminLogin)

	admin.Use(middleware.AdminAuthMiddleware())
	{
		admin.GET("/dashboard", controllers.GetDashboardStats)
		admin.GET("/dashboard/sales-chart", controllers.GetSalesChart)
		admin.GET("/dashboard/top-products", controllers.GetTopSellingProducts)

		admin.GET("/users", controllers.ListUsers)
		admin.PATCH("/users/:id/block", controllers.ToggleUserBlock)

		admin.POST("/categories", controllers.CreateCategory)
		admin.PUT("/categories/:id", controllers.UpdateCategory)
		admin.PATCH("/categories/:id/block", controllers.ToggleCategoryBlock)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)

		admin.POST("/products", controllers.CreateProduct)
		admin.PUT("/products/:id", controllers.UpdateProduct)
		admin.PATCH("/products/:id/stock", controllers.UpdateProductStock)
		admin.DELETE("/products/:id", controllers.DeleteProduct)

		admin.GET("/coupons", controllers.ListCoupons)
		admin.POST("/coupons", controllers.CreateCoupon)
		admin.PUT("/coupons/:id", controllers.UpdateCoupon)
		admin.DELETE("/coupons/:id", controllers.DeleteCoupon)

		admin.GET("/orders", controllers.ListAllOrders)
		admin.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
		admin.GET("/orders/export", controllers.ExportOrders)

		admin.GET("/bookings", controllers.ListServiceBookings)
		admin.PATCH("/bookings/:id/status", controllers.UpdateBookingStatus)
	}
}
