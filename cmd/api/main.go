package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"dlmm-backtest/internal/api/handlers"
	"dlmm-backtest/internal/api/middleware"
	"dlmm-backtest/internal/backtest"
	"dlmm-backtest/internal/config"
	"dlmm-backtest/internal/data"
	"dlmm-backtest/internal/logger"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	log := logger.GetForComponent("server")

	registry, err := data.LoadPoolRegistry(cfg.Feeds.PoolRegistryFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Feeds.PoolRegistryFile).Msg("failed to load pool registry")
	}

	engine := cfg.NewEngine()
	prices := data.NewPriceClient(cfg.PriceClientConfig())

	// A typed nil in the interface would defeat the handler's nil check.
	var pools backtest.PoolSource
	if cfg.Feeds.PoolBaseURL != "" {
		pools = data.NewPoolClient(cfg.PoolClientConfig(), registry)
	} else {
		log.Info().Msg("pool feed not configured, using default fee model only")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS(cfg.Server.CORSOrigins...))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	backtestHandler := handlers.NewBacktestHandler(engine, prices, pools, cfg.Server.ResultTTL)
	priceHandler := handlers.NewPriceDataHandler(prices)
	strategyHandler := handlers.NewStrategyHandler(engine.Params)
	poolHandler := handlers.NewPoolHandler(registry)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.GET("/backtest/:id/breakdown", backtestHandler.GetBreakdown)
		api.POST("/backtest/compare", backtestHandler.CompareBacktests)

		api.GET("/price-data", priceHandler.GetPriceData)
		api.GET("/strategies", strategyHandler.ListStrategies)
		api.GET("/pools", poolHandler.ListPools)
	}

	serveStatic(router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go backtestHandler.Store().Janitor(ctx, time.Minute)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Server.Env).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// serveStatic serves a built web UI from STATIC_DIR (default ./web/dist)
// when present, falling back to index.html for client-side routes.
func serveStatic(router *gin.Engine) {
	log := logger.GetForComponent("server")
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}
	if _, err := os.Stat(staticDir); err != nil {
		log.Debug().Str("dir", staticDir).Msg("static directory not found, skipping static file serving")
		return
	}

	router.Static("/assets", staticDir+"/assets")
	router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(staticDir + "/index.html")
	})
	log.Info().Str("dir", staticDir).Msg("serving static files")
}
