package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"playpulse/adapters/api"
	"playpulse/adapters/ingest"
	"playpulse/app"
	"playpulse/internal/config"
	"playpulse/internal/report"
	"playpulse/internal/testkit"
	"playpulse/ports"
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

	// Configure data source
	var source ports.AppSource
	if appConfig.Data.AppsFile != "" {
		log.Printf("Using file data source: %s", appConfig.Data.AppsFile)
		coercer := ingest.NewCoercer(ingest.CoercionConfig{
			PopularInstallThreshold: appConfig.Analytics.PopularInstallThreshold,
			NormalizeCategories:     true,
		})
		source = ingest.NewFileSource(appConfig.Data.AppsFile, appConfig.Data.ReviewsFile, appConfig.Data.SheetName, coercer)
	} else {
		log.Printf("No apps file configured, using synthetic data")
		genConfig := testkit.DefaultPlayStoreConfig()
		genConfig.PopularThreshold = appConfig.Analytics.PopularInstallThreshold
		source = testkit.NewGeneratedSource(genConfig)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := app.NewDashboardService(source, appConfig.Analytics.TopN)
	if err := service.Load(ctx); err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	server := api.NewServer(service, report.NewGenerator(), appConfig.Reports.Dir)
	if err := server.Start(ctx, ":"+appConfig.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
