// Package kafka publishes remittance domain events for the settlement side.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crossborder-remit/internal/core/domain"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event types.
const (
	EventTransferRequested = "transfer.requested"
	EventKYCSubmitted      = "kyc.submitted"
)

const envelopeVersion = 1

// Envelope wraps every published payload.
type Envelope struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Version    int       `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// NewEnvelope stamps payload with a fresh event id.
func NewEnvelope(eventType string, payload any) Envelope {
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		Version:    envelopeVersion,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Topics maps event types to Kafka topics.
type Topics struct {
	TransferRequested string
	KYCSubmitted      string
}

// Publisher implements ports.EventPublisher with a sarama SyncProducer.
type Publisher struct {
	producer sarama.SyncProducer
	topics   Topics
	log      zerolog.Logger
}

// NewProducerConfig returns the producer settings used in every deployment.
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_7_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 250 * time.Millisecond
	return cfg
}

// Connect dials the brokers and returns a ready publisher.
func Connect(brokers []string, topics Topics, log zerolog.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers required")
	}
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	log.Info().Strs("brokers", brokers).Msg("Kafka producer connected")
	return NewPublisher(producer, topics, log), nil
}

// NewPublisher wraps an existing producer.
func NewPublisher(producer sarama.SyncProducer, topics Topics, log zerolog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topics:   topics,
		log:      log.With().Str("component", "kafka_publisher").Logger(),
	}
}

// PublishTransferRequested emits a newly created pending transfer, keyed by
// transaction id.
func (p *Publisher) PublishTransferRequested(ctx context.Context, tx *domain.Transaction) error {
	return p.publish(ctx, p.topics.TransferRequested, tx.ID.String(), NewEnvelope(EventTransferRequested, tx))
}

// PublishKYCSubmitted emits a submitted document, keyed by user id. The
// document number is never part of the payload.
func (p *Publisher) PublishKYCSubmitted(ctx context.Context, doc *domain.KYCDocument) error {
	return p.publish(ctx, p.topics.KYCSubmitted, doc.UserID.String(), NewEnvelope(EventKYCSubmitted, doc))
}

func (p *Publisher) publish(ctx context.Context, topic, key string, env Envelope) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal kafka payload: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("kafka publish %s: %w", env.EventType, err)
	}

	p.log.Debug().
		Str("topic", topic).
		Str("event_id", env.EventID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("event published")
	return nil
}

// Close flushes and closes the producer.
func (p *Publisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}

// NoopPublisher is used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransferRequested(context.Context, *domain.Transaction) error {
	return nil
}

func (NoopPublisher) PublishKYCSubmitted(context.Context, *domain.KYCDocument) error {
	return nil
}
