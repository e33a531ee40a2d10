package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"taxinator/internal/ai"
	"taxinator/internal/config"
	"taxinator/internal/handlers"
	"taxinator/internal/logger"
	"taxinator/internal/middleware"
	"taxinator/internal/services"
	"taxinator/internal/store"
	"taxinator/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// The job store lives for the life of the process; jobs are not
	// persisted across restarts.
	jobStore := store.New()

	// Initialize services
	jobService := services.NewJobService(jobStore)
	aiClient := ai.NewClient(appConfig)

	// Initialize handlers
	jobHandler := handlers.NewJobHandler(jobService)
	ingestHandler := handlers.NewIngestHandler(jobService)
	vendorHandler := handlers.NewVendorHandler(jobService)
	aiHandler := handlers.NewAIHandler(aiClient)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-Role")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	api := router.Group("/api")

	// Open reference endpoints
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":     appConfig.ServiceName,
			"version":     appConfig.ServiceVersion,
			"environment": appConfig.Env,
			"contact":     appConfig.Contact,
			"status":      "ok",
		})
	})
	api.GET("/roles", vendorHandler.ListRoles)
	api.GET("/templates", vendorHandler.ListTemplates)
	api.GET("/playbooks/sample-ingestion", vendorHandler.SampleIngestion)

	// Legacy single-shot ingestion
	api.POST("/ingestions",
		middleware.RequireRole(services.RolesFor(services.OpLegacyIngest)...),
		ingestHandler.IngestLegacy)

	// AI-assisted translation
	api.POST("/ai/translate",
		middleware.RequireRole(services.RolesFor(services.OpAITranslate)...),
		aiHandler.Translate)

	// Job workflow
	api.POST("/jobs/start",
		middleware.RequireRole(services.RolesFor(services.OpStartJob)...),
		jobHandler.StartJob)
	api.POST("/ingest/costbasis",
		middleware.RequireRole(services.RolesFor(services.OpIngestCostBasis)...),
		ingestHandler.IngestCostBasis)
	api.POST("/ingest/personal-info",
		middleware.RequireRole(services.RolesFor(services.OpIngestPersonalInfo)...),
		ingestHandler.IngestPersonalInfo)
	api.POST("/ingest/trades",
		middleware.RequireRole(services.RolesFor(services.OpIngestTrades)...),
		ingestHandler.IngestTrades)

	readRoles := middleware.RequireRole(services.RolesFor(services.OpReadJob)...)
	api.GET("/jobs", readRoles, jobHandler.ListJobs)
	api.GET("/jobs/:id", readRoles, jobHandler.GetJob)
	api.GET("/jobs/:id/output", readRoles, jobHandler.GetOutput)

	transformRoles := middleware.RequireRole(services.RolesFor(services.OpTransform)...)
	api.POST("/jobs/:id/transform", transformRoles, jobHandler.Transform)
	// Legacy alias retained for earlier-generation clients.
	api.POST("/jobs/:id/translate", transformRoles, jobHandler.Transform)

	api.POST("/jobs/:id/reconcile",
		middleware.RequireRole(services.RolesFor(services.OpReconcile)...),
		jobHandler.Reconcile)
	api.POST("/jobs/:id/export",
		middleware.RequireRole(services.RolesFor(services.OpExport)...),
		jobHandler.Export)

	api.POST("/admin/reset",
		middleware.RequireRole(services.RolesFor(services.OpResetStore)...),
		jobHandler.Reset)

	log.Infof("Starting Taxinator backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
