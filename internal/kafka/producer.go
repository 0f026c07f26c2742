package kafka

import (
	"context"
	"log"

	"github.com/segmentio/kafka-go"
)

type Producer interface {
	SendMessage(ctx context.Context, topic string, key []byte, value []byte) error
	Close() error
}

// WriterProducer publishes outbox payloads to Kafka.
type WriterProducer struct {
	writer *kafka.Writer
}

func NewWriterProducer(brokers []string) Producer {
	return &WriterProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *WriterProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	})
}

func (p *WriterProducer) Close() error {
	return p.writer.Close()
}

// ConsoleProducer prints messages instead of publishing them, for
// local runs without a broker.
type ConsoleProducer struct{}

func NewConsoleProducer() Producer {
	log.Println("Initialized console Kafka producer")
	return &ConsoleProducer{}
}

func (p *ConsoleProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		log.Printf("KAFKA_PRODUCER (CONSOLE): topic=%s key=%s value=%s", topic, string(key), string(value))
		return nil
	}
}

func (p *ConsoleProducer) Close() error {
	log.Println("Closing console Kafka producer")
	return nil
}
