package main

import (
	"context"
	"log"

	"marquee/internal"
	"marquee/internal/config"
	"marquee/internal/container"
	"marquee/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	internal.SetDefault(logger)
	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		logger.Error("Failed to create application container: %v", err)
		log.Fatal(err)
	}
	defer appContainer.Shutdown(context.Background())

	// A failed preload is not fatal: requests retry the load and report 503 until it succeeds
	if err := appContainer.Preload(context.Background()); err != nil {
		logger.Warn("Dataset preload failed: %v", err)
	}

	server, err := ui.NewServer(appContainer.Explorer, logger)
	if err != nil {
		logger.Error("Failed to initialize server: %v", err)
		log.Fatal(err)
	}

	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		logger.Error("Server failed: %v", err)
	}
}
