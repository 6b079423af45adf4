// @title Quote Service API
// @version 1.0
// @description Internal API for the tour-operator catalog, multi-currency quotation drafts and saved quotations.
// @BasePath /
// @securityDefinitions.apikey InternalAPIKey
// @in header
// @name X-Internal-API-Key
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tourdesk/quote-service/config"
	_ "github.com/tourdesk/quote-service/docs"
	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/database"
	"github.com/tourdesk/quote-service/internal/fx"
	"github.com/tourdesk/quote-service/internal/handlers"
	"github.com/tourdesk/quote-service/internal/itinerary"
	"github.com/tourdesk/quote-service/internal/middleware"
	"github.com/tourdesk/quote-service/internal/sweepers"
	"github.com/tourdesk/quote-service/internal/telemetry"
)

func main() {
	cfg, err := config.Load(os.Getenv("QUOTE_SERVICE_CONFIG"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting quote service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry.ToTelemetry())
	if err != nil {
		logger.Warn().Err(err).Msg("Telemetry disabled")
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	var (
		quotations handlers.QuotationRepository
		stored     fx.RateSource
	)
	if dbURL := config.GetDatabaseURL(); dbURL != "" {
		if err := database.Connect(ctx, cfg.Database.PoolOptions(dbURL, true)); err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer database.Close()

		quotations = database.NewQuotationStore(database.Pool())
		stored = database.NewRateStore(database.Pool())
		logger.Info().Msg("Database connected")
	} else {
		logger.Warn().Msg("DATABASE_URL not set, quotations will not be persisted")
	}

	rates, closeRates, err := cfg.FX.RateSource(ctx, stored)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to set up exchange rates")
	}
	defer closeRates()

	pricingCfg, err := cfg.Pricing.ItineraryConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid pricing configuration")
	}
	pricer, err := itinerary.NewPricer(pricingCfg, rates)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create pricer")
	}

	regOpts, err := cfg.Catalog.RegistryOptions()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid catalog configuration")
	}
	registry := catalog.BuildRegistry(regOpts)
	if len(registry.List()) == 0 {
		logger.Warn().Msg("No catalog source configured (set CATALOG_BASE_URL or catalog.workbook_path)")
	}

	drafts := handlers.NewDraftStore(cfg.Server.DraftTTL)
	handlers.InitCatalog(catalog.NewAdapter(registry))
	handlers.InitQuotations(pricer, drafts, quotations)

	clientLimiter := middleware.NewIPRateLimiter(middleware.DefaultRateLimiterConfig())
	sweepInterval := 5 * time.Minute
	draftSweeper := sweepers.NewSweeper(drafts, *logger, sweepInterval)
	limiterSweeper := sweepers.NewSweeper(clientLimiter, *logger, sweepInterval)
	go draftSweeper.Start(ctx)
	go limiterSweeper.Start(ctx)

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(*logger))

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware(cfg.Server.InternalAPIKey))
	internal.Use(clientLimiter.Middleware())
	internal.Use(middleware.ServiceRateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))
	handlers.RegisterInternalRoutes(internal)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Strs("catalog", serviceTypeNames(registry)).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()

	logger.Info().Msg("Shutting down server...")
	draftSweeper.Stop()
	limiterSweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Telemetry shutdown failed")
	}

	logger.Info().Int("open_drafts", drafts.Len()).Msg("Server exited")
}

func serviceTypeNames(reg *catalog.Registry) []string {
	types := reg.List()
	names := make([]string, len(types))
	for i, st := range types {
		names[i] = string(st)
	}
	return names
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "quote-service").Logger()
	// component loggers derive from the global logger
	log.Logger = logger
	return &logger
}
