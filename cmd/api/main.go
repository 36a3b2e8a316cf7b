package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/velora/storefront_api/internal/cache"
	"github.com/velora/storefront_api/internal/config"
	"github.com/velora/storefront_api/internal/database"
	"github.com/velora/storefront_api/internal/handler"
	"github.com/velora/storefront_api/internal/middleware"
	"github.com/velora/storefront_api/internal/repository"
	"github.com/velora/storefront_api/internal/service"
	"github.com/velora/storefront_api/internal/sse"
	"github.com/velora/storefront_api/internal/view"
	"github.com/velora/storefront_api/internal/worker"
	"github.com/velora/storefront_api/pkg/cartsink"
	"github.com/velora/storefront_api/pkg/productsource"
)

// main is the application entrypoint for the storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting storefront api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize section cache
	sectionCache := cache.NewSectionCache(redisClient, cfg.Storefront.SectionCacheTTL)

	// 4. Initialize upstream clients
	sourceClient := productsource.NewClient(productsource.Config{
		BaseURL: cfg.ProductSource.BaseURL,
		APIKey:  cfg.ProductSource.APIKey,
		Timeout: cfg.ProductSource.Timeout,
	})
	cartClient := cartsink.NewClient(cartsink.Config{
		BaseURL: cfg.CartSink.BaseURL,
		APIKey:  cfg.CartSink.APIKey,
		Timeout: cfg.CartSink.Timeout,
	})

	// 5. Initialize repositories and view-session store
	categoryRepo := repository.NewCategoryRepository(db)
	sessionStore := view.NewStore(cfg.Storefront.SessionTTL)
	defer sessionStore.CloseAll()

	// 5a. SSE hub for section refresh pushes
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	// 6. Initialize services
	storefrontSvc := service.NewStorefrontService(
		sourceClient, cartClient, categoryRepo,
		cfg.Storefront.CategoryScope, cfg.Storefront.SelectLoadingDelay,
	)
	sectionSvc := service.NewSectionService(
		sourceClient, categoryRepo, sectionCache, notifier,
		cfg.Storefront.CategoryScope,
	)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:     handler.NewHealthHandler(db, redisClient),
		Storefront: handler.NewStorefrontHandler(storefrontSvc),
		Section:    handler.NewSectionHandler(sectionSvc),
		SSE:        handler.NewSSEHandler(hub),
	}

	// 8. Initialize middleware
	sessionMw := middleware.SessionMiddleware(sessionStore)
	cartLimiter := middleware.NewCartRateLimiter(30, time.Minute)

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, sessionMw, cartLimiter)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewSectionRefreshWorker(sectionSvc, cfg.Worker.SectionRefreshInterval).Start(ctx)
	go worker.NewSessionSweepWorker(sessionStore, cfg.Worker.SessionSweepInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health     *handler.HealthHandler
	Storefront *handler.StorefrontHandler
	Section    *handler.SectionHandler
	SSE        *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, sessionMw gin.HandlerFunc, cartLimiter *middleware.CartRateLimiter) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Storefront browsing surface (session-scoped)
	storefront := router.Group("/v1/storefront")
	storefront.Use(sessionMw)
	{
		storefront.GET("/products", handlers.Storefront.GetProducts)
		storefront.POST("/category/select", handlers.Storefront.SelectCategory)
		storefront.POST("/category/reset", handlers.Storefront.ResetSelection)
		storefront.GET("/categories", handlers.Storefront.GetGroupedView)
		storefront.POST("/cart/items", cartLimiter.Handle(), handlers.Storefront.AddToCart)

		// Marketing sections and refresh pushes
		storefront.GET("/sections/:name", handlers.Section.GetSection)
		storefront.GET("/events", handlers.SSE.Stream)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
