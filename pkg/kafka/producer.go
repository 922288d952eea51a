package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/wisteria/pkg/tracing"
)

// Producer handles Kafka event emission
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
	topic  string
}

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	compression := kafka.Snappy
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "none":
		compression = 0
	}

	requiredAcks := kafka.RequiredAcks(cfg.RequiredAcks)

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           requiredAcks,
		Compression:            compression,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		topic:  cfg.Topic,
	}
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// CustomerEvent represents an event about a customer record
type CustomerEvent struct {
	EventType      string          `json:"event_type"` // customer.cleaned, customer.stub_created
	RunID          string          `json:"run_id"`
	CustomerID     string          `json:"customer_id"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	Data           json.RawMessage `json:"data,omitempty"`
	SourceRows     []string        `json:"source_rows,omitempty"`
	IssueCount     int             `json:"issue_count,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

// RelationshipEvent represents a discovered relationship edge
type RelationshipEvent struct {
	EventType        string          `json:"event_type"` // relationship.discovered
	RunID            string          `json:"run_id"`
	SourceCustomerID string          `json:"source_customer_id"`
	TargetCustomerID string          `json:"target_customer_id"`
	RelationshipCode string          `json:"relationship_code"`
	Category         string          `json:"category,omitempty"`
	NeedsReview      bool            `json:"needs_review,omitempty"`
	Properties       json.RawMessage `json:"properties,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
}

// PublishCustomerEvents publishes multiple customer events in a batch
func (p *Producer) PublishCustomerEvents(ctx context.Context, events []*CustomerEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishCustomerEvents")
	defer span.End()

	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, len(events))
	for i, event := range events {
		if event.Timestamp.IsZero() {
			event.Timestamp = time.Now().UTC()
		}

		data, err := json.Marshal(event)
		if err != nil {
			return err
		}

		messages[i] = kafka.Message{
			Topic: p.topic,
			Key:   []byte(event.CustomerID),
			Value: data,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.EventType)},
				{Key: "run_id", Value: []byte(event.RunID)},
				{Key: "schema_version", Value: []byte("1.0")},
			},
		}
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		p.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"batch_size": len(events),
		}).Error("Failed to publish customer events batch")
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"batch_size": len(events),
	}).Debug("Published customer events batch")

	return nil
}

// PublishRelationshipEvents publishes multiple relationship events in a batch
func (p *Producer) PublishRelationshipEvents(ctx context.Context, events []*RelationshipEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishRelationshipEvents")
	defer span.End()

	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, len(events))
	for i, event := range events {
		if event.Timestamp.IsZero() {
			event.Timestamp = time.Now().UTC()
		}

		data, err := json.Marshal(event)
		if err != nil {
			return err
		}

		messages[i] = kafka.Message{
			Topic: p.topic,
			Key:   []byte(event.SourceCustomerID),
			Value: data,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.EventType)},
				{Key: "run_id", Value: []byte(event.RunID)},
				{Key: "relationship_code", Value: []byte(event.RelationshipCode)},
				{Key: "schema_version", Value: []byte("1.0")},
			},
		}
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		p.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"batch_size": len(events),
		}).Error("Failed to publish relationship events batch")
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"batch_size": len(events),
	}).Debug("Published relationship events batch")

	return nil
}
