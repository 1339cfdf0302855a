package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/tmc/langchaingo/llms/openai"

	"pantrybot/internal/api"
	"pantrybot/internal/assistant"
	"pantrybot/internal/cache"
	"pantrybot/internal/config"
	"pantrybot/internal/database"
	"pantrybot/internal/monitoring"
	"pantrybot/internal/store"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	provider, err := initializeProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize completion provider: %v", err)
	}

	metrics := monitoring.NewInterpreterMetrics()
	executor := assistant.NewExecutor(store.NewGormStore(db), assistant.DefaultRetryPolicy)
	interpreter := assistant.NewInterpreter(provider, executor, metrics)

	var guard cache.IdempotencyGuard = cache.Noop{}
	if cfg.Redis.Addr != "" {
		guard = cache.NewRedisGuard(redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr}))
		log.Printf("Idempotency guard backed by redis at %s", cfg.Redis.Addr)
	}

	srv := api.New(interpreter, provider, db, guard, monitoring.NewMonitor(), api.NewAuthenticator(cfg.Auth.JWTSecret))

	go startMetricsServer(cfg.Server.MetricsPort, metrics)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func initializeProvider(cfg *config.Config) (assistant.CompletionProvider, error) {
	llm, err := openai.New(
		openai.WithModel(cfg.Provider.Model),
		openai.WithToken(cfg.Provider.APIKey),
		openai.WithBaseURL(cfg.Provider.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize completion client: %w", err)
	}

	return assistant.NewLangchainProvider(llm, cfg.Provider.MaxTokens, cfg.Provider.Temperature), nil
}

func startMetricsServer(port int, metrics *monitoring.InterpreterMetrics) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
