package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	defaultBrokers = "localhost:9092"
	bidEventsTopic = "bid_events"
	groupID        = "bid-events-consumer-group"
)

type bidEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	AuctionKoiID string    `json:"auction_koi_id"`
	BidderID     string    `json:"bidder_id"`
	Amount       int64     `json:"amount"`
	Accepted     bool      `json:"accepted"`
	Reason       string    `json:"reason,omitempty"`
	ClosedKoi    bool      `json:"closed_koi"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = defaultBrokers
	}

	log.Println("Starting bid events consumer...")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(brokers, ","),
		GroupID:        groupID,
		Topic:          bidEventsTopic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		log.Println("Closing Kafka reader...")
		if err := r.Close(); err != nil {
			log.Printf("Error closing Kafka reader: %v", err)
		}
	}()

	log.Printf("Consumer connected to topic '%s' on brokers %s", bidEventsTopic, brokers)

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutdown signal received, stopping consumer.")
			return
		default:
			m, err := r.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					log.Println("Context cancelled, exiting message loop.")
					return
				}
				log.Printf("Error reading message: %v", err)
				time.Sleep(5 * time.Second)
				continue
			}

			var event bidEvent
			if err := json.Unmarshal(m.Value, &event); err != nil {
				log.Printf("Skipping malformed bid event at offset %d: %v", m.Offset, err)
				continue
			}

			outcome := "rejected (" + event.Reason + ")"
			if event.Accepted {
				outcome = "accepted"
				if event.ClosedKoi {
					outcome = "accepted, koi sold"
				}
			}
			log.Printf("bid on koi %s by %s for %d at %s: %s (partition=%d offset=%d)",
				event.AuctionKoiID, event.BidderID, event.Amount, event.Timestamp.Format(time.RFC3339), outcome, m.Partition, m.Offset)
		}
	}
}
