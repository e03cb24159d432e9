package main

import (
	"log"

	"github.com/petandco/PetAndCo/config"
	"github.com/petandco/PetAndCo/routes"
	"github.com/petandco/PetAndCo/utils"
)

func main() {
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	config.InitDB()
	config.InitGoogleOAuth()

	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = utils.DefaultPort
	}
	utils.LogInfo("Starting %s server on port %s", utils.AppName, port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
