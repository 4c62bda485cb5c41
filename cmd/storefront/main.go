package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/storefront/docs"
	"github.com/tair/storefront/internal/catalog"
	cataloghttp "github.com/tair/storefront/internal/catalog/delivery/http"
	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/repository"
	"github.com/tair/storefront/internal/catalog/seed"
	"github.com/tair/storefront/internal/config"
	"github.com/tair/storefront/internal/storefront"
	storefronthttp "github.com/tair/storefront/internal/storefront/delivery/http"
	"github.com/tair/storefront/internal/storefront/notify"
	"github.com/tair/storefront/internal/storefront/persistence"
	"github.com/tair/storefront/internal/storefront/session"
	"github.com/tair/storefront/internal/storefront/state"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/database"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/middleware"
	"github.com/tair/storefront/pkg/tracing"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(logger.Options{
		ServiceName:   cfg.ServiceName,
		IsDevelopment: cfg.IsDevelopment(),
		LogFile:       cfg.LogFile,
	})
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Str("catalog_backend", cfg.CatalogBackend).
		Str("slot_backend", cfg.SlotBackend).
		Msg("Starting storefront service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.ServiceName, version, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	products, reviews, closeCatalog, err := openCatalog(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open catalog")
	}
	defer closeCatalog()

	slots, err := openSlotStore(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open slot store")
	}
	defer slots.Close()

	metrics := middleware.NewHTTPMetrics(prometheus.DefaultRegisterer, "storefront")

	catalogHandler, err := catalog.InitializeHTTPHandler(products, reviews, metrics, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize catalog handler")
	}

	notifiers := []notify.Notifier{
		notify.LogNotifier{},
		notify.NewMetricsNotifier(prometheus.DefaultRegisterer),
	}
	if cfg.KafkaEnabled() {
		stopEvents, eventNotifier := startEvents(ctx, cfg, catalogHandler)
		defer stopEvents()
		if eventNotifier != nil {
			notifiers = append(notifiers, eventNotifier)
		}
	}

	registry := session.NewRegistry(slots, prometheus.DefaultRegisterer, notifiers...)
	go registry.RunJanitor(ctx, time.Minute, cfg.SessionIdleTimeout)

	policy := state.ShippingPolicy{FreeShippingThreshold: cfg.FreeShippingThreshold, Fee: cfg.ShippingFee}
	storefrontHandler, err := storefront.InitializeHTTPHandler(products, registry, policy, metrics)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize storefront handler")
	}

	server := newHTTPServer(cfg, catalogHandler, storefrontHandler, map[string]storefronthttp.HealthCheck{
		"catalog": func(ctx context.Context) error {
			_, err := products.Count(ctx)
			return err
		},
		"slots": slots.Ping,
	})

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Logger.Info().Int("sessions", registry.Len()).Msg("Server exited")
}

func newHTTPServer(
	cfg config.Config,
	catalogHandler *cataloghttp.CatalogHandler,
	storefrontHandler *storefronthttp.StorefrontHandler,
	checks map[string]storefronthttp.HealthCheck,
) *http.Server {
	router := mux.NewRouter()

	middleware.Register(router, middleware.DefaultConfig())

	catalogHandler.RegisterRoutes(router)
	storefrontHandler.RegisterRoutes(router)

	storefronthttp.RegisterHealthCheck(router, checks)
	cataloghttp.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{storefronthttp.SessionHeader},
		AllowCredentials: true,
	})

	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// openCatalog returns the product and review repositories for the configured
// backend. Product access is traced either way.
func openCatalog(ctx context.Context, cfg config.Config) (domain.ProductRepository, domain.ReviewRepository, func(), error) {
	products, err := seed.Products()
	if cfg.CatalogSeed != "" {
		products, err = seed.ProductsFromFile(cfg.CatalogSeed)
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load catalog seed: %w", err)
	}
	reviews, err := seed.Reviews()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load review seed: %w", err)
	}

	if cfg.CatalogBackend == config.CatalogMemory {
		logger.Logger.Info().Int("products", len(products)).Msg("Catalog loaded into memory")
		return repository.NewTracingProductRepository(repository.NewMemoryProductRepository(products)),
			repository.NewMemoryReviewRepository(reviews),
			func() {},
			nil
	}

	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	productRepo := repository.NewGormProductRepository(db)
	if err := productRepo.AutoMigrate(); err != nil {
		sqlDB.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := productRepo.SeedIfEmpty(ctx, products, reviews); err != nil {
		sqlDB.Close()
		return nil, nil, nil, err
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	return repository.NewTracingProductRepository(productRepo),
		repository.NewGormReviewRepository(db),
		func() { sqlDB.Close() },
		nil
}

func openSlotStore(ctx context.Context, cfg config.Config) (persistence.SlotStore, error) {
	switch cfg.SlotBackend {
	case config.SlotRedis:
		store := persistence.NewRedisSlotStore(
			persistence.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
			cfg.SlotTTL,
		)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.SlotTTL).Msg("Persisting sessions to Redis")
		return store, nil
	case config.SlotBolt:
		store, err := persistence.OpenBoltSlotStore(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		logger.Logger.Info().Str("path", cfg.BoltPath).Msg("Persisting sessions to bbolt")
		return store, nil
	default:
		logger.Logger.Warn().Msg("Session slots are kept in memory and lost on restart")
		return persistence.NewMemorySlotStore(), nil
	}
}

// startEvents connects the publisher for storefront events and the consumer
// for warehouse stock updates. Kafka being down degrades to no events rather
// than failing startup.
func startEvents(ctx context.Context, cfg config.Config, catalogHandler *cataloghttp.CatalogHandler) (func(), notify.Notifier) {
	var closers []func() error
	stop := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to close Kafka client")
			}
		}
	}

	var eventNotifier notify.Notifier
	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create Kafka publisher, storefront events disabled")
	} else {
		closers = append(closers, publisher.Close)
		eventNotifier = notify.NewEventNotifier(publisher)
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, []string{cfg.KafkaStockTopic})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create Kafka consumer, stock updates disabled")
		return stop, eventNotifier
	}
	closers = append(closers, consumer.Close)

	consumer.RegisterHandler(kafka.EventTypeStockUpdated, func(ctx context.Context, event kafka.StockUpdatedEvent) error {
		_, err := catalogHandler.ApplyStockUpdate(ctx, event.ProductID, event.Stock)
		return err
	})
	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
	}

	return stop, eventNotifier
}
