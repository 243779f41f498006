package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appfiy/backoffice/internal/api"
	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/config"
	"appfiy/backoffice/internal/db"
	"appfiy/backoffice/internal/logging"
	"appfiy/backoffice/internal/metrics"
	"appfiy/backoffice/internal/routes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Appfiy backoffice starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Connect to DB with sqlx
	sqlDB, err := db.InitPostgres(cfg.PostgresDSN())
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (sqlx)", "error", err.Error())
	}
	defer sqlDB.Close()
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM
	gormDB, err := db.InitPostgresORM(cfg.PostgresDSN())
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (GORM)", "error", err.Error())
	}
	logging.Info("Connected to Postgres (GORM)")

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), time.Minute)
	if err := db.AutoMigrate(migrateCtx, gormDB); err != nil {
		cancelMigrate()
		logging.Fatal("Schema migration failed", "error", err.Error())
	}
	cancelMigrate()

	cache := newCache(cfg)
	defer cache.Close()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	deps, err := api.InitDependencies(cfg, sqlDB, gormDB, cache, metricsReg)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err.Error())
	}

	router := routes.RegisterRoutes(deps)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv, "cache", cache.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server failed", "error", err.Error())
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logging.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err.Error())
	}
}

// newCache picks Redis when REDIS_HOST is set and the in-memory cache
// otherwise.
func newCache(cfg *config.Config) common.CacheInterface {
	if cfg.RedisEnabled() {
		client := common.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword)
		return common.NewRedisCacheService(client, "appfiy:")
	}
	return common.NewCacheService(int(cfg.ThemeCacheTTL.Seconds()), 600)
}
