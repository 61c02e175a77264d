package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	countersHttp "event-counter-service/internal/counter/adapters/http/fiber"
	"event-counter-service/internal/counter/adapters/instrument"
	"event-counter-service/internal/counter/adapters/memory"
	countersRepoPg "event-counter-service/internal/counter/adapters/postgres"
	countersRedis "event-counter-service/internal/counter/adapters/redis"
	"event-counter-service/internal/counter/adapters/sqlite"
	"event-counter-service/internal/counter/core/ports"
	"event-counter-service/internal/counter/core/usecase"
	"event-counter-service/internal/platform/config"

	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "event-counter-service/docs"
)

// @title Event Counter Service API
// @version 1.0
// @description Persistent named event counters with threshold-triggered reset.
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storeMetrics := instrument.NewStoreMetrics(registry)
	resets := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "event_counter",
		Name:      "resets_total",
		Help:      "Number of reset tasks run after a counter reached its threshold",
	})
	registry.MustRegister(resets)

	// Store
	store, closer, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer closer.Close()

	store = instrument.InstrumentStoreMiddleware(cfg.StoreBackend, storeMetrics)(store)

	// Usecase
	counterService := usecase.NewEventCounterService(store, log.Default())

	// HTTP (Fiber) app + handlers
	app := fiber.New()

	countersHandler := countersHttp.NewCounterHandler(counterService, resets)
	countersHandler.Register(app)

	app.Get("/internal/metrics", countersHttp.PrometheusHandler(registry))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Printf("fiber stopped: %v", err)
		}
	}()

	log.Printf("server started on %s (store=%s)", cfg.HTTPAddr, cfg.StoreBackend)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("fiber shutdown error: %v", err)
	}

	log.Println("server exiting")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openStore(cfg config.Config) (ports.KeyValueStore, io.Closer, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}

		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}

		pgStore := countersRepoPg.NewStore(countersRepoPg.NewSQLDB(db), cfg.PostgresTable)
		if err := pgStore.EnsureSchema(context.Background()); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return pgStore, db, nil

	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil

	case config.BackendRedis:
		pool := countersRedis.Pool(cfg.RedisAddr, cfg.RedisPassword)
		conn := pool.Get()
		_, err := conn.Do(countersRedis.CommandPing)
		conn.Close()
		if err != nil {
			_ = pool.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return countersRedis.NewStore(pool), pool, nil

	default:
		return memory.NewStore(), nopCloser{}, nil
	}
}
