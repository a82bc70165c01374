package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ipo-exit-planner/internal/api/handlers"
	"ipo-exit-planner/internal/api/middleware"
	"ipo-exit-planner/internal/api/models"
)

type Options struct {
	Logger         *zap.Logger
	Catalog        *handlers.Catalog
	AllowedOrigins []string
}

// NewRouter wires middleware and every route onto a fresh gin engine.
func NewRouter(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.Logger(logger))

	scenarioHandler := handlers.NewScenarioHandler(opts.Catalog, logger)
	rankHandler := handlers.NewRankHandler(opts.Catalog, logger)
	jurisdictionHandler := handlers.NewJurisdictionHandler(opts.Catalog)
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/scenario", scenarioHandler.EvaluateScenario)
		api.POST("/grid", scenarioHandler.RunGrid)

		api.GET("/jurisdictions", jurisdictionHandler.ListJurisdictions)
		api.GET("/strategies", strategyHandler.ListStrategies)

		api.GET("/rank", rankHandler.RankDestinations)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: "no route for " + c.Request.Method + " " + c.Request.URL.Path,
			},
		})
	})

	return router
}
