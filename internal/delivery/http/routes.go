package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/bettervitals/backend/config"
	"github.com/bettervitals/backend/internal/platform/logger"
)

const defaultMaxBodyBytes = 1_000_000

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log *logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.Nop()
	}

	// Set Gin mode based on environment
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false

	maxBody := cfg.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(log))
	if cfg.Telemetry.Enabled {
		router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(BodyLimitMiddleware(maxBody))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		// Narrative relay
		api.POST("/health-plan", handler.HealthPlan)
		api.POST("/hot-sleeper-plan", handler.HotSleeperPlan)
		api.POST("/cgm-assessment", handler.CGMAssessment)

		assessments := api.Group("/assessments")
		{
			assessments.POST("/hot-sleeper", handler.AssessHotSleeper)
			assessments.POST("/cgm", handler.AssessCGM)
		}

		scores := api.Group("/scores")
		{
			scores.POST("/hot-sleeper", handler.ScoreHotSleeper)
			scores.POST("/cgm", handler.ScoreCGM)
		}

		api.GET("/products", handler.ListProducts)
		api.GET("/products/:slug", handler.GetProduct)
		api.GET("/tools", handler.ListTools)
		api.GET("/reviews", handler.ListReviews)
		api.GET("/categories", handler.ListCategories)
		api.GET("/categories/:key", handler.GetCategory)
		api.GET("/pages/resolve", handler.ResolvePage)
	}

	var static gin.HandlerFunc
	if cfg.Server.IsProduction() {
		static = SPAHandler(cfg.Server.StaticDir)
	}
	fallback := func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path) {
			handler.APIFallback(c)
			return
		}
		if static != nil {
			static(c)
			return
		}
		c.String(http.StatusNotFound, msgNotFound)
	}
	router.NoRoute(fallback)
	router.NoMethod(fallback)

	return router
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}
