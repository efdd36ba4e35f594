package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Koushikchikkond/vouchers/internal/amqp"
	"github.com/Koushikchikkond/vouchers/internal/config"
)

// AMQPPublisher sends events through the shared AMQP client.
type AMQPPublisher struct {
	client *amqp.Client
}

func NewAMQPPublisher(client *amqp.Client) *AMQPPublisher {
	return &AMQPPublisher{client: client}
}

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.client.Publish(ctx, e.ID, body)
}

func (p *AMQPPublisher) Close() error { return p.client.Close() }

// KafkaWriter is the subset of *kafka.Writer the publisher needs.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher keys messages by node so a node's events stay ordered
// within a partition.
type KafkaPublisher struct {
	writer KafkaWriter
}

func NewKafkaPublisher(w KafkaWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(e.User + "/" + e.Node),
		Value: body,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(e.Kind)},
			{Key: "event_id", Value: []byte(e.ID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error { return p.writer.Close() }

// FromConfig builds the publisher selected by EVENTS_BACKEND.
func FromConfig(ctx context.Context, cfg *config.Config) (Publisher, error) {
	switch cfg.EventsBackend {
	case "amqp":
		client, err := amqp.DialWithRetry(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, 3)
		if err != nil {
			return nil, fmt.Errorf("amqp events: %w", err)
		}
		return NewAMQPPublisher(client), nil
	case "kafka":
		w := &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 10 * time.Second,
		}
		return NewKafkaPublisher(w), nil
	case "", "none":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.EventsBackend)
	}
}
