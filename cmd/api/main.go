package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"

	"github.com/example/quickbasket/internal/api"
	"github.com/example/quickbasket/internal/auth"
	"github.com/example/quickbasket/internal/catalog"
	"github.com/example/quickbasket/internal/checkout"
	"github.com/example/quickbasket/internal/config"
	"github.com/example/quickbasket/internal/domain/cart"
	"github.com/example/quickbasket/internal/domain/order"
	"github.com/example/quickbasket/internal/domain/tracking"
	"github.com/example/quickbasket/internal/identity"
	"github.com/example/quickbasket/internal/infrastructure/kafka"
	"github.com/example/quickbasket/internal/notify"
	"github.com/example/quickbasket/internal/storage"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	if err := cfg.ValidateAuth(); err != nil {
		log.Fatalf("[API] %v", err)
	}

	log.Println("[API] ========================================")
	log.Println("[API] QuickBasket Storefront")
	log.Println("[API] ========================================")
	log.Printf("[API] Storage: %s", cfg.Storage)

	kv, cleanup := openStorage(ctx, cfg)
	defer cleanup()

	// Notification sink: Kafka when enabled, otherwise the log sink.
	var sink notify.Sink = notify.NewLogSink()
	if cfg.KafkaEnabled {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		sink = notify.NewKafkaSink(producer)
		log.Printf("[API] Notifications: Kafka %v topic %s", cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	cat := catalog.NewInMemory(catalog.Fixture())

	users := identity.NewProvider(kv)
	for _, u := range identity.Fixture() {
		if err := users.Register(u, identity.DemoPassword); err != nil {
			log.Fatalf("[API] Failed to seed user %s: %v", u.Email, err)
		}
	}

	orderStore := order.NewStore(kv)
	trackingStore := tracking.NewStore(kv)
	orders := order.NewService(orderStore, trackingStore, sink)

	if err := order.Seed(ctx, orderStore, trackingStore, cat); err != nil {
		log.Printf("[API] Failed to seed demo orders: %v", err)
	}

	carts := cart.NewManager(cat, kv, sink)
	checkoutSvc := checkout.NewService(orders)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	handlers := api.NewHandlers(cat, carts, checkoutSvc, orders, users)
	authHandlers := api.NewAuthHandlers(users, jwtService)
	router := api.NewRouter(handlers, authHandlers, jwtService, cfg.WebDir)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		log.Printf("[API] Server started on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}
}

// openStorage builds the configured KV backend. The returned cleanup closes
// whatever connection the backend holds.
func openStorage(ctx context.Context, cfg config.Config) (storage.KV, func()) {
	switch cfg.Storage {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("[API] Failed to connect to Redis: %v", err)
		}
		log.Printf("[API] Connected to Redis at %s", cfg.RedisAddr)
		return storage.NewRedis(client, cfg.RedisTTL), func() { client.Close() }

	case "postgres":
		db, err := storage.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
		}
		pg := storage.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("[API] Failed to ensure schema: %v", err)
		}
		log.Println("[API] Connected to PostgreSQL")
		return pg, func() { db.Close() }

	case "dynamo":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("[API] Failed to load AWS config: %v", err)
		}
		log.Printf("[API] Using DynamoDB table %s", cfg.DynamoTable)
		return storage.NewDynamo(dynamodb.NewFromConfig(awsCfg), cfg.DynamoTable), func() {}

	default:
		log.Println("[API] Using in-memory storage (data is lost on restart)")
		return storage.NewMemory(), func() {}
	}
}
