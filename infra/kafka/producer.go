package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config holds the producer settings.
type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// Producer is a thin wrapper over a kafka-go writer.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg Config) *Producer {
	timeout := cfg.BatchTimeout
	if timeout == 0 {
		timeout = 10 * time.Millisecond
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: timeout,
		},
	}
}

// Send publishes one message. Messages sharing a key land on one partition,
// which keeps per-order event streams ordered.
func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
