package routes

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/petandco/PetAndCo/controllers"
	"github.com/petandco/PetAndCo/utils"
)

// SetupRouter wires the full HTTP surface: public storefront endpoints, the
// authenticated user API and the admin API.
func SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "petandco-dev-session"
	}
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24,
		Path:     "/",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("petandco", store))

	// OAuth endpoints stay outside the API prefix so the callback URL is
	// short.
	auth := router.Group("/auth")
	{
		auth.GET("/google/login", controllers.GoogleLogin)
		auth.GET("/google/callback", controllers.GoogleCallback)
	}

	api := router.Group("/api")
	{
		registerPublicRoutes(api)
		registerUserRoutes(api)
		registerAdminRoutes(api)
	}

	return router
}
