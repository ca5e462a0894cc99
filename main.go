package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/nikolayk812/sweetshop/internal/cache"
	"github.com/nikolayk812/sweetshop/internal/handler"
	"github.com/nikolayk812/sweetshop/internal/repository"
	"github.com/nikolayk812/sweetshop/internal/service"
	"github.com/nikolayk812/sweetshop/migrations"
	"github.com/nikolayk812/sweetshop/pkg/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storeCurrency, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return fmt.Errorf("currency.ParseISO[%s]: %w", cfg.Currency, err)
	}

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("runMigrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	catalogRepo := repository.NewCatalog(pool)
	cartRepo := repository.NewCart(pool, storeCurrency)
	orderRepo := repository.NewOrder(pool)
	customerRepo := repository.NewCustomer(pool)

	productCache := cache.NewRedisProductCache(redisClient)

	catalogService := service.NewCatalogService(catalogRepo, productCache, logger)
	cartService := service.NewCartService(cartRepo, catalogRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, logger)
	customerService := service.NewCustomerService(customerRepo, orderRepo, logger)

	router := handler.NewRouter(
		handler.NewCatalogHandler(catalogService, logger),
		handler.NewCartHandler(cartService, logger),
		handler.NewOrderHandler(orderService, cartService, logger),
		handler.NewCustomerHandler(customerService, logger),
		logger,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server.ListenAndServe: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}

	return nil
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	driver, err := migratepostgres.WithInstance(db, &migratepostgres.Config{})
	if err != nil {
		return fmt.Errorf("postgres.WithInstance: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("iofs.New: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate.NewWithInstance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up: %w", err)
	}

	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("zap.ParseAtomicLevel[%s]: %w", level, err)
	}
	cfg.Level = lvl

	return cfg.Build()
}
