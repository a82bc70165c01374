package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ipo-exit-planner/internal/api"
	"ipo-exit-planner/internal/api/handlers"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	production := os.Getenv("API_ENV") == "production"

	var logger *zap.Logger
	var err error
	if production {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	dir := os.Getenv("JURISDICTION_DIR")
	if dir == "" {
		dir = filepath.Join("examples", "jurisdictions")
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	catalog, err := handlers.LoadCatalog(dir, logger)
	if err != nil {
		logger.Fatal("failed to load jurisdictions", zap.String("dir", dir), zap.Error(err))
	}

	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Options{
		Logger:         logger,
		Catalog:        catalog,
		AllowedOrigins: splitList(os.Getenv("CORS_ORIGINS")),
	})

	// Start server
	addr := fmt.Sprintf(":%s", port)
	logger.Info("starting API server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
