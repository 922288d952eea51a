// Package events handles event emission for cleaning and reconciliation runs
package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/wisteria/pkg/kafka"
	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/tracing"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Emitter publishes pipeline outcomes downstream
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitCustomersCleaned emits one customer.cleaned event per cleaned record.
func (e *Emitter) EmitCustomersCleaned(ctx context.Context, runID string, customers []models.CleanedCustomer) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitCustomersCleaned")
	defer span.End()

	batch := make([]*kafka.CustomerEvent, 0, len(customers))
	for i := range customers {
		customer := &customers[i]
		data, err := json.Marshal(customer)
		if err != nil {
			return err
		}
		batch = append(batch, &kafka.CustomerEvent{
			EventType:  "customer.cleaned",
			RunID:      runID,
			CustomerID: customer.CustomerID,
			Data:       data,
			IssueCount: customer.CleaningReport.IssueCount,
		})
	}

	if err := e.producer.PublishCustomerEvents(ctx, batch); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit customer.cleaned events")
		return err
	}

	return nil
}

// EmitStubsCreated emits a customer.stub_created event per minted stub.
func (e *Emitter) EmitStubsCreated(ctx context.Context, runID string, stubs []models.CustomerStub) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitStubsCreated")
	defer span.End()

	batch := make([]*kafka.CustomerEvent, 0, len(stubs))
	for i := range stubs {
		stub := &stubs[i]
		data, err := json.Marshal(stub)
		if err != nil {
			return err
		}
		batch = append(batch, &kafka.CustomerEvent{
			EventType:      "customer.stub_created",
			RunID:          runID,
			CustomerID:     stub.ID,
			TrackingNumber: stub.TrackingNumber,
			Data:           data,
			SourceRows:     stub.SourceCustomerIDs,
		})
	}

	if err := e.producer.PublishCustomerEvents(ctx, batch); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit customer.stub_created events")
		return err
	}

	return nil
}

// EmitRelationshipsDiscovered emits a relationship.discovered event per edge.
func (e *Emitter) EmitRelationshipsDiscovered(ctx context.Context, runID string, edges []models.RelationshipEdge) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitRelationshipsDiscovered")
	defer span.End()

	batch := make([]*kafka.RelationshipEvent, 0, len(edges))
	for i := range edges {
		edge := &edges[i]
		props, err := json.Marshal(map[string]any{
			"schema_version":    SchemaVersion,
			"relationship_name": edge.RelationshipName,
			"reverse_code":      edge.ReverseCode,
			"confidence":        edge.Confidence,
		})
		if err != nil {
			return err
		}
		batch = append(batch, &kafka.RelationshipEvent{
			EventType:        "relationship.discovered",
			RunID:            runID,
			SourceCustomerID: edge.SourceID,
			TargetCustomerID: edge.TargetID,
			RelationshipCode: edge.RelationshipCode,
			Category:         edge.Category,
			NeedsReview:      edge.NeedsManualResolution,
			Properties:       props,
		})
	}

	if err := e.producer.PublishRelationshipEvents(ctx, batch); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit relationship.discovered events")
		return err
	}

	return nil
}
