// ==============================================================================
// API SERVICE MAIN - cmd/api/main.go
// ==============================================================================
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"finhub/internal/aggregation"
	"finhub/internal/analytics"
	"finhub/internal/category"
	"finhub/internal/handler"
	"finhub/internal/middleware"
	"finhub/internal/source"
	"finhub/internal/store"
	"finhub/pkg/cache"
	"finhub/pkg/config"
	"finhub/pkg/logger"
	"finhub/pkg/validator"
)

func main() {
	// Load .env when present; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("finhub-api")

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Starting transaction aggregation service", map[string]interface{}{
		"port": cfg.Server.Port,
	})

	// In-memory stores. Everything resets on restart.
	customers := store.NewCustomerStore()
	accounts := store.NewAccountStore()
	transactions := store.NewTransactionStore()

	if cfg.Store.SeedSampleData {
		if err := store.Seed(context.Background(), customers, accounts, transactions); err != nil {
			log.Fatal("Failed to seed sample data", map[string]interface{}{
				"error": err.Error(),
			})
		}
		log.Info("Seeded sample data", nil)
	}

	// Bank data sources (deterministic stubs seeded from config).
	sources := []source.DataSource{
		source.NewFirstNational(cfg.Sources.FirstNationalSeed),
		source.NewCommunityTrust(cfg.Sources.CommunityTrustSeed),
	}

	categorizer := category.New()
	aggSvc := aggregation.NewService(sources, transactions, categorizer, log)

	// Redis is optional: without REDIS_URL the summaries recompute every
	// request and no rate limiting is applied.
	var redisClient *redis.Client
	var summaryCache *cache.RedisCache
	if cfg.Redis.URL != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URL,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", map[string]interface{}{
				"error": err.Error(),
			})
		}
		defer redisClient.Close()
		summaryCache = cache.New(redisClient)

		log.Info("Redis connected", map[string]interface{}{"url": cfg.Redis.URL})
	}

	engine := analytics.NewEngine(transactions, summaryCache, log)

	// Initialize handlers
	val := validator.New()
	customerHandler := handler.NewCustomerHandler(customers, accounts, transactions, val, log)
	accountHandler := handler.NewAccountHandler(accounts, val, log)
	transactionHandler := handler.NewTransactionHandler(transactions, categorizer, engine, val, log)
	aggregationHandler := handler.NewAggregationHandler(aggSvc, engine, log)
	sourceHandler := handler.NewSourceHandler(sources, log)

	// Setup router
	r := mux.NewRouter()

	// Middleware
	r.Use(middleware.CORS)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CorrelationID)
	r.Use(middleware.NewLoggingMiddleware(log).Log)
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB global cap

	// Routes
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/ready", readyCheck(sources)).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	if redisClient != nil {
		api.Use(middleware.NewRateLimiter(redisClient, 100, time.Minute, log).Limit)
	}

	api.HandleFunc("/customers", customerHandler.List).Methods("GET")
	api.HandleFunc("/customers", customerHandler.Create).Methods("POST")
	api.HandleFunc("/customers/{id}", customerHandler.Get).Methods("GET")
	api.HandleFunc("/customers/{id}", customerHandler.Update).Methods("PUT")
	api.HandleFunc("/customers/{id}", customerHandler.Delete).Methods("DELETE")
	api.HandleFunc("/customers/{id}/accounts", customerHandler.ListAccounts).Methods("GET")
	api.HandleFunc("/customers/{id}/transactions", customerHandler.ListTransactions).Methods("GET")

	api.HandleFunc("/accounts", accountHandler.List).Methods("GET")
	api.HandleFunc("/accounts", accountHandler.Create).Methods("POST")
	api.HandleFunc("/accounts/{id}", accountHandler.Get).Methods("GET")
	api.HandleFunc("/accounts/{id}", accountHandler.Update).Methods("PUT")
	api.HandleFunc("/accounts/{id}", accountHandler.Delete).Methods("DELETE")

	api.HandleFunc("/transactions", transactionHandler.List).Methods("GET")
	api.HandleFunc("/transactions", transactionHandler.Create).Methods("POST")
	api.HandleFunc("/transactions/summary", transactionHandler.Summary).Methods("GET")
	api.HandleFunc("/transactions/categorize", transactionHandler.Categorize).Methods("POST")

	// WebSocket for live transaction updates. Registered before the {id}
	// routes so "stream" is not read as a transaction ID.
	api.HandleFunc("/transactions/stream", transactionHandler.Stream)

	api.HandleFunc("/transactions/{id}", transactionHandler.Get).Methods("GET")
	api.HandleFunc("/transactions/{id}", transactionHandler.Update).Methods("PUT")
	api.HandleFunc("/transactions/{id}", transactionHandler.Delete).Methods("DELETE")

	api.HandleFunc("/aggregation/run", aggregationHandler.Run).Methods("POST")
	api.HandleFunc("/aggregation/status", aggregationHandler.Status).Methods("GET")

	api.HandleFunc("/sources", sourceHandler.List).Methods("GET")
	api.HandleFunc("/sources/{name}/customers", sourceHandler.Customers).Methods("GET")
	api.HandleFunc("/sources/{name}/customers/{customerId}/preview", sourceHandler.Preview).Methods("GET")

	// Background aggregation
	runCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	if cfg.Aggregation.RunOnStart {
		if _, err := aggSvc.Aggregate(runCtx); err != nil {
			log.Error("Initial aggregation failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			engine.Invalidate(runCtx)
		}
	}
	if cfg.Aggregation.Interval > 0 {
		go aggSvc.RunEvery(runCtx, cfg.Aggregation.Interval)
	}

	// Start server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("API service started", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down API service...", nil)
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("API service forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("API service stopped gracefully", nil)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	_ = r
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"finhub-api"}`))
}

// readyCheck reports ready once every data source answers its health probe.
func readyCheck(sources []source.DataSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, src := range sources {
			if !src.CheckHealth(r.Context()) {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"not ready","reason":"data source unavailable"}`))
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready","service":"finhub-api"}`))
	}
}
