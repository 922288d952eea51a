package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/Ramsey-B/wisteria/config"
	"github.com/Ramsey-B/wisteria/pkg/events"
	"github.com/Ramsey-B/wisteria/pkg/graph"
	"github.com/Ramsey-B/wisteria/pkg/kafka"
	"github.com/Ramsey-B/wisteria/pkg/logging"
	"github.com/Ramsey-B/wisteria/pkg/reconciler"
	"github.com/Ramsey-B/wisteria/pkg/store"
	"github.com/Ramsey-B/wisteria/pkg/tracing"
)

// FromConfig builds a pipeline and its collaborators from environment
// configuration, honoring the tracing/events/graph toggles. The returned
// shutdown flushes spans and closes the kafka producer and graph driver;
// call it on exit.
func FromConfig(ctx context.Context, cfg *config.Config, documents store.DocumentStore) (*Pipeline, func(context.Context) error, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.PrettyLogs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var firstErr error
		for _, fn := range shutdowns {
			if err := fn(ctx); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	if cfg.TracingEnabled {
		stop, err := tracing.InitConsole(cfg.AppName, cfg.PrettyLogs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init tracing: %w", err)
		}
		shutdowns = append(shutdowns, stop)
	}

	var emitter *events.Emitter
	if cfg.EventsEnabled {
		producer := kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaOutputTopic,
			BatchSize:    cfg.KafkaBatchSize,
			BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
			RequiredAcks: cfg.KafkaRequiredAcks,
			Compression:  cfg.KafkaCompression,
		}, logger)
		shutdowns = append(shutdowns, func(context.Context) error { return producer.Close() })
		emitter = events.NewEmitter(producer, logger)
	}

	var customers *graph.CustomerService
	var relationships *graph.RelationshipService
	if cfg.GraphEnabled {
		client, err := graph.NewClient(graph.Config{
			Host:     cfg.GraphDBHost,
			Port:     cfg.GraphDBPort,
			Username: cfg.GraphDBUser,
			Password: cfg.GraphDBPassword,
		}, logger)
		if err != nil {
			_ = shutdown(ctx)
			return nil, nil, err
		}
		if err := client.VerifyConnectivity(ctx); err != nil {
			_ = shutdown(ctx)
			return nil, nil, fmt.Errorf("graph database unreachable: %w", err)
		}
		shutdowns = append(shutdowns, client.Close)
		customers = graph.NewCustomerService(client, logger)
		relationships = graph.NewRelationshipService(client, logger)
	}

	p := New(logger, documents, emitter, customers, relationships, reconciler.Config{
		TrackingPrefix: cfg.TrackingPrefix,
		TrackingStart:  cfg.TrackingStart,
	})
	return p, shutdown, nil
}
