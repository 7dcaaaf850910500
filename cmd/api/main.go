package main

import (
	"context"
	"net/http"
	"os"

	"shipdash-shopify-layer/internal/application"
	"shipdash-shopify-layer/internal/application/webhook_handlers"
	apiinfra "shipdash-shopify-layer/internal/infrastructure/api"
	"shipdash-shopify-layer/internal/infrastructure/idempotency"
	"shipdash-shopify-layer/internal/infrastructure/pubsub"
	"shipdash-shopify-layer/internal/infrastructure/repository"
	shopifyinfra "shipdash-shopify-layer/internal/infrastructure/shopify"
	vendorinfra "shipdash-shopify-layer/internal/infrastructure/vendor"
	"shipdash-shopify-layer/internal/metrics"
	"shipdash-shopify-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	vendorBaseURL := os.Getenv("VENDOR_API_URL")
	if vendorBaseURL == "" {
		logger.Fatal().Msg("VENDOR_API_URL environment variable is required")
	}

	webhookSecret := os.Getenv("SHOPIFY_API_SECRET")
	if webhookSecret == "" {
		logger.Fatal().Msg("SHOPIFY_API_SECRET environment variable is required")
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(os.Getenv("MONGODB_DATABASE"))

	// Initialize repositories
	orderRepo := repository.NewMongoOrderRepository(db)
	credentialRepo := repository.NewMongoCredentialRepository(db)
	sessionRepo := repository.NewMongoSessionRepository(db)

	// Optional redis-backed duplicate-delivery guard
	var deliveryGuard ports.DeliveryGuard
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: redisAddr})
		deliveryGuard = idempotency.NewRedisDeliveryGuard(rdb, idempotency.DefaultDeliveryTTL, logger)
		logger.Info().Str("addr", redisAddr).Msg("Redis delivery guard enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, duplicate webhook deliveries rely on repository upsert only")
	}

	// Initialize infrastructure clients
	vendorClient := vendorinfra.NewClient(vendorBaseURL, logger)
	webhookVerifier := shopifyinfra.NewWebhookVerifier(webhookSecret)
	adminGraphQL := shopifyinfra.NewAdminGraphQL(
		os.Getenv("SHOPIFY_API_KEY"),
		webhookSecret,
		os.Getenv("SHOPIFY_API_VERSION"),
		logger,
	)
	adminClient := shopifyinfra.NewAdminClient(adminGraphQL, logger)

	// Initialize application services
	authService := application.NewAuthService(credentialRepo, vendorClient, logger)
	orderSyncService := application.NewOrderSyncService(orderRepo, credentialRepo, vendorClient, authService, logger)
	fulfillmentService := application.NewFulfillmentService(sessionRepo, adminClient, logger)
	complianceService := application.NewComplianceService(orderRepo, credentialRepo, sessionRepo, logger)

	// Initialize webhook dispatcher and register handlers
	webhookDispatcher := application.NewWebhookDispatcher(logger)
	webhookDispatcher.RegisterHandler(webhook_handlers.NewOrderCreatedHandler(logger, orderRepo, deliveryGuard, orderSyncService))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewComplianceWebhookHandler(logger, complianceService))

	// Initialize webhook pub/sub for the operator event stream
	webhookPubSub := pubsub.NewWebhookPubSub(logger)

	// HTTP handlers
	webhookHandler := apiinfra.NewWebhookHandler(webhookVerifier, webhookDispatcher, webhookPubSub, logger)
	orderHandlers := apiinfra.NewOrderHandlers(orderRepo, orderSyncService, authService, logger)
	fulfillmentHandlers := apiinfra.NewFulfillmentHandlers(fulfillmentService, logger)
	streamHandler := apiinfra.NewStreamHandler(webhookPubSub, logger)

	metrics.RegisterDefault()

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// Webhook endpoint
	r.Post("/webhooks/shopify", webhookHandler.Handle)

	// Operator API
	r.Get("/api/orders", orderHandlers.List)
	r.Post("/api/orders/sync", orderHandlers.SyncOrders)
	r.Post("/api/credentials", orderHandlers.SaveCredentials)
	r.Get("/api/fulfillment-orders", fulfillmentHandlers.ListFulfillmentOrders)
	r.Post("/api/fulfillments", fulfillmentHandlers.CreateFulfillment)
	r.Post("/api/fulfillment-events", fulfillmentHandlers.CreateFulfillmentEvents)
	r.Get("/api/webhooks/stream", streamHandler.Stream)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting API server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
