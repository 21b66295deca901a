package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/tavola/ledger/internal/adapter/http"
	"github.com/tavola/ledger/internal/adapter/http/handler"
	"github.com/tavola/ledger/internal/adapter/http/middleware"
	postgresRepo "github.com/tavola/ledger/internal/adapter/repository/postgres"
	redisRepo "github.com/tavola/ledger/internal/adapter/repository/redis"
	"github.com/tavola/ledger/internal/infrastructure/config"
	"github.com/tavola/ledger/internal/infrastructure/eventpublisher"
	"github.com/tavola/ledger/internal/infrastructure/logger"
	"github.com/tavola/ledger/internal/infrastructure/logging"
	"github.com/tavola/ledger/internal/infrastructure/postgres"
	"github.com/tavola/ledger/internal/infrastructure/redis"
	"github.com/tavola/ledger/internal/journal"
	"github.com/tavola/ledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zlog := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = zlog
	slogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier().WithLogger(slogger.Logger)

	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Journal catalog and use cases
	catalog := journal.NewDefaultCatalog()

	accountUC := usecase.NewAccountUseCase(accountRepo, auditRepo, idGen).
		WithOutbox(txManager, outboxRepo)
	postingUC := usecase.NewPostingUseCase(txManager, accountRepo, entryRepo, outboxRepo, auditRepo, catalog, idGen, cache).
		WithRetrier(retrier)
	ledgerUC := usecase.NewLedgerUseCase(accountRepo, entryRepo, cache).WithCacheTTL(cfg.BalanceCacheTTL)
	chartUC := usecase.NewChartUseCase(txManager, accountRepo, entryRepo)

	// Handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	postingHandler := handler.NewPostingHandler(postingUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, accountUC)
	chartHandler := handler.NewChartHandler(chartUC)
	catalogHandler := handler.NewCatalogHandler(catalog)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Logger:           zlog,
		AccountHandler:   accountHandler,
		PostingHandler:   postingHandler,
		LedgerHandler:    ledgerHandler,
		ChartHandler:     chartHandler,
		CatalogHandler:   catalogHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	// Outbox relay
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewStreamPublisher(redisClient, cfg.OutboxStream),
		Logger:     slogger.Logger,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && publisherCtx.Err() == nil {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
