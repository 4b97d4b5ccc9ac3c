package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	redisclient "github.com/anvayahealth/yogatherapy-backend/internal/clients/redis"
	"github.com/anvayahealth/yogatherapy-backend/internal/db"
	"github.com/anvayahealth/yogatherapy-backend/internal/handlers"
	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/repos"
	"github.com/anvayahealth/yogatherapy-backend/internal/server"
	"github.com/anvayahealth/yogatherapy-backend/internal/services"
	"github.com/anvayahealth/yogatherapy-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Catalog store
	store, err := db.NewCatalogStore(log)
	if err != nil {
		log.Error("Catalog store init failed", "error", err)
		os.Exit(1)
	}
	if err := store.AutoMigrateAll(); err != nil {
		log.Error("Auto migration failed", "error", err)
		os.Exit(1)
	}
	gdb := store.DB()

	// Repos
	log.Info("Setting up repos from main...")
	diseaseRepo := repos.NewDiseaseRepo(gdb, log)
	moduleRepo := repos.NewModuleRepo(gdb, log)
	practiceRepo := repos.NewPracticeRepo(gdb, log)
	citationRepo := repos.NewCitationRepo(gdb, log)
	contraindicationRepo := repos.NewContraindicationRepo(gdb, log)
	rctRepo := repos.NewRCTRepo(gdb, log)

	// Optional recommendation cache
	cache, err := redisclient.NewRecommendationCache(log)
	if err != nil {
		log.Warn("Recommendation cache disabled", "error", err)
		cache = nil
	}

	// Services
	log.Info("Setting up services from main...")
	diseaseService := services.NewDiseaseService(gdb, log, diseaseRepo, moduleRepo)
	moduleService := services.NewModuleService(gdb, log, diseaseRepo, moduleRepo)
	practiceService := services.NewPracticeService(gdb, log, practiceRepo, diseaseRepo)
	citationService := services.NewCitationService(gdb, log, citationRepo)
	contraindicationService := services.NewContraindicationService(gdb, log, contraindicationRepo, diseaseRepo)
	rctService := services.NewRCTService(gdb, log, rctRepo, diseaseRepo, practiceRepo)
	recommendationService := services.NewRecommendationService(gdb, log, diseaseRepo, moduleRepo, rctRepo, cache)

	// Handlers
	log.Info("Setting up handlers from main...")
	recommendationHandler := handlers.NewRecommendationHandler(log, recommendationService)
	diseaseHandler := handlers.NewDiseaseHandler(log, diseaseService)
	moduleHandler := handlers.NewModuleHandler(log, moduleService)
	practiceHandler := handlers.NewPracticeHandler(log, practiceService)
	contraindicationHandler := handlers.NewContraindicationHandler(log, contraindicationService)
	citationHandler := handlers.NewCitationHandler(log, citationService)
	rctHandler := handlers.NewRCTHandler(log, rctService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:                     log,
		RecommendationHandler:   recommendationHandler,
		DiseaseHandler:          diseaseHandler,
		ModuleHandler:           moduleHandler,
		PracticeHandler:         practiceHandler,
		ContraindicationHandler: contraindicationHandler,
		CitationHandler:         citationHandler,
		RCTHandler:              rctHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
