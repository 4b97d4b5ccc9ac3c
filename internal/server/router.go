package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/anvayahealth/yogatherapy-backend/internal/handlers"
	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/middleware"
	"github.com/anvayahealth/yogatherapy-backend/internal/utils"
)

type RouterConfig struct {
	Log                     *logger.Logger
	RecommendationHandler   *handlers.RecommendationHandler
	DiseaseHandler          *handlers.DiseaseHandler
	ModuleHandler           *handlers.ModuleHandler
	PracticeHandler         *handlers.PracticeHandler
	ContraindicationHandler *handlers.ContraindicationHandler
	CitationHandler         *handlers.CitationHandler
	RCTHandler              *handlers.RCTHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Log))

	origins := strings.Split(utils.GetEnv("CORS_ORIGINS", "http://localhost:3000", cfg.Log), ",")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Recommendation engine
		api.POST("/recommendations", cfg.RecommendationHandler.Recommend)
		api.POST("/summary", cfg.RecommendationHandler.Summary)
		api.POST("/recommendations/plan", cfg.RecommendationHandler.Plan)
		api.POST("/recommendations/allocate", cfg.RecommendationHandler.Allocate)

		// Diseases
		api.POST("/diseases", cfg.DiseaseHandler.Create)
		api.GET("/diseases", cfg.DiseaseHandler.List)
		api.GET("/diseases/:id", cfg.DiseaseHandler.Get)
		api.PUT("/diseases/:id", cfg.DiseaseHandler.Update)
		api.DELETE("/diseases/:id", cfg.DiseaseHandler.Delete)

		// Modules
		api.POST("/modules", cfg.ModuleHandler.Create)
		api.GET("/modules", cfg.ModuleHandler.List)
		api.GET("/modules/:id", cfg.ModuleHandler.Get)
		api.PUT("/modules/:id", cfg.ModuleHandler.Update)
		api.DELETE("/modules/:id", cfg.ModuleHandler.Delete)

		// Practices
		api.POST("/practices", cfg.PracticeHandler.Create)
		api.GET("/practices", cfg.PracticeHandler.List)
		api.GET("/practices/search", cfg.PracticeHandler.Search)
		api.GET("/practices/:id", cfg.PracticeHandler.Get)
		api.PUT("/practices/:id", cfg.PracticeHandler.Update)
		api.DELETE("/practices/:id", cfg.PracticeHandler.Delete)

		// Contraindications
		api.POST("/contraindications", cfg.ContraindicationHandler.Create)
		api.GET("/contraindications", cfg.ContraindicationHandler.List)
		api.GET("/contraindications/:id", cfg.ContraindicationHandler.Get)
		api.PUT("/contraindications/:id", cfg.ContraindicationHandler.Update)
		api.DELETE("/contraindications/:id", cfg.ContraindicationHandler.Delete)

		// Citations
		api.POST("/citations", cfg.CitationHandler.Create)
		api.GET("/citations", cfg.CitationHandler.List)
		api.GET("/citations/:id", cfg.CitationHandler.Get)
		api.PUT("/citations/:id", cfg.CitationHandler.Update)
		api.DELETE("/citations/:id", cfg.CitationHandler.Delete)

		// RCTs
		api.POST("/rcts", cfg.RCTHandler.Create)
		api.GET("/rcts", cfg.RCTHandler.List)
		api.GET("/rcts/:id", cfg.RCTHandler.Get)
		api.PUT("/rcts/:id", cfg.RCTHandler.Update)
		api.DELETE("/rcts/:id", cfg.RCTHandler.Delete)
		api.POST("/rcts/refresh-counts", cfg.RCTHandler.RefreshCounts)
	}

	return router
}
