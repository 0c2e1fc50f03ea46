package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/quickbasket/internal/config"
	"github.com/example/quickbasket/internal/email"
	"github.com/example/quickbasket/internal/identity"
	"github.com/example/quickbasket/internal/infrastructure/kafka"
	"github.com/example/quickbasket/internal/notification"
	"github.com/example/quickbasket/internal/storage"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	consumerGroup := "email-notifier"

	log.Println("[Notifier] ========================================")
	log.Println("[Notifier] QuickBasket - Email Notification Service")
	log.Println("[Notifier] ========================================")
	log.Printf("[Notifier] Kafka: %v", cfg.KafkaBrokers)
	log.Printf("[Notifier] Topic: %s", cfg.KafkaTopic)
	log.Printf("[Notifier] Group: %s", consumerGroup)
	log.Printf("[Notifier] SMTP: %s:%s", cfg.SMTPHost, cfg.SMTPPort)
	log.Printf("[Notifier] From: %s", cfg.SMTPFrom)

	// Profiles are looked up from the shared store so email addresses stay
	// current; the seeded accounts serve as fallback.
	kv, cleanup := openStorage(cfg)
	defer cleanup()

	users := identity.NewProvider(kv)
	for _, u := range identity.Fixture() {
		if err := users.Register(u, identity.DemoPassword); err != nil {
			log.Fatalf("[Notifier] Failed to seed user %s: %v", u.Email, err)
		}
	}

	emailSvc := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	handler := notification.NewHandler(emailSvc, users)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, consumerGroup)
	defer consumer.Close()

	go func() {
		log.Println("[Notifier] Starting consumer...")
		if err := consumer.Consume(ctx, handler.HandleMessage); err != nil {
			log.Printf("[Notifier] Consumer error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Notifier] Shutting down...")
	cancel()
}

func openStorage(cfg config.Config) (storage.KV, func()) {
	if cfg.Storage == "postgres" {
		db, err := storage.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[Notifier] Failed to connect to PostgreSQL: %v", err)
		}
		log.Println("[Notifier] Connected to PostgreSQL")
		return storage.NewPostgres(db), func() { db.Close() }
	}
	return storage.NewMemory(), func() {}
}
