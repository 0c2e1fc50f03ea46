package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/example/quickbasket/internal/config"
	"github.com/example/quickbasket/internal/domain/order"
	"github.com/example/quickbasket/internal/email"
	"github.com/example/quickbasket/internal/identity"
	"github.com/example/quickbasket/internal/infrastructure/dynamostream"
	"github.com/example/quickbasket/internal/storage"
)

var (
	emailSvc *email.Service
	users    *identity.Provider
)

func init() {
	cfg := config.Load()

	emailSvc = email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)

	users = identity.NewProvider(storage.NewMemory())
	for _, u := range identity.Fixture() {
		if err := users.Register(u, identity.DemoPassword); err != nil {
			log.Fatalf("[Lambda Notifier] Failed to seed user %s: %v", u.Email, err)
		}
	}

	log.Printf("[Lambda Notifier] Initialized (SMTP: %s:%s)", cfg.SMTPHost, cfg.SMTPPort)
}

// handler consumes the KV table's DynamoDB stream. A newly inserted
// order:<id> item is a freshly placed order; the shopper gets a
// confirmation email with the frozen snapshot.
func handler(ctx context.Context, streamEvent events.DynamoDBEvent) (events.DynamoDBEventResponse, error) {
	log.Printf("[Lambda Notifier] Received %d records", len(streamEvent.Records))

	var batchItemFailures []events.DynamoDBBatchItemFailure

	for _, record := range streamEvent.Records {
		r, err := dynamostream.ConvertRecord(record)
		if err != nil {
			log.Printf("[Lambda Notifier] Failed to convert record %s: %v", record.EventID, err)
			batchItemFailures = append(batchItemFailures, events.DynamoDBBatchItemFailure{
				ItemIdentifier: record.Change.SequenceNumber,
			})
			continue
		}

		if !r.IsInsert() || !r.HasPrefix("order:") {
			continue
		}

		var o order.Order
		if err := json.Unmarshal(r.Value, &o); err != nil {
			log.Printf("[Lambda Notifier] Skipping unreadable order item %s: %v", r.Key, err)
			continue
		}

		user, err := users.GetUser(ctx, o.UserID)
		if err != nil {
			log.Printf("[Lambda Notifier] Unknown user %s for order %s: %v", o.UserID, o.ID, err)
			continue
		}

		if err := emailSvc.SendOrderConfirmation(user.Email, &o); err != nil {
			log.Printf("[Lambda Notifier] Failed to send email for order %s: %v", o.ID, err)
			batchItemFailures = append(batchItemFailures, events.DynamoDBBatchItemFailure{
				ItemIdentifier: record.Change.SequenceNumber,
			})
			continue
		}

		log.Printf("[Lambda Notifier] Confirmation sent to %s for order %s", user.Email, o.ID)
	}

	successCount := len(streamEvent.Records) - len(batchItemFailures)
	log.Printf("[Lambda Notifier] Processed %d/%d records successfully", successCount, len(streamEvent.Records))

	return events.DynamoDBEventResponse{
		BatchItemFailures: batchItemFailures,
	}, nil
}

func main() {
	lambda.Start(handler)
}
