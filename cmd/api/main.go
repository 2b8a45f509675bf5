package main

import (
	"context"
	"log"

	"marquee/internal"
	"marquee/internal/config"
	"marquee/internal/container"
	"marquee/ui"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	internal.SetDefault(logger)

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.Preload(context.Background()); err != nil {
		logger.Warn("Dataset preload failed: %v", err)
	}

	api := ui.NewAPI(appContainer.Explorer, logger)
	if err := api.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server failed:", err)
	}
}
