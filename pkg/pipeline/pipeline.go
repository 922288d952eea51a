// Package pipeline orchestrates one full cleaning and reconciliation run:
// clean rows, persist records, resolve contacts, then hand results to the
// optional event and graph collaborators.
package pipeline

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Ramsey-B/wisteria/pkg/events"
	"github.com/Ramsey-B/wisteria/pkg/graph"
	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/processor"
	"github.com/Ramsey-B/wisteria/pkg/reconciler"
	"github.com/Ramsey-B/wisteria/pkg/store"
	"github.com/Ramsey-B/wisteria/pkg/tracing"
)

// Result carries everything one run produced.
type Result struct {
	RunID      string                    `json:"run_id"`
	Cleaned    []models.CleanedCustomer  `json:"cleaned"`
	Statistics models.BatchStatistics    `json:"statistics"`
	Stubs      []models.CustomerStub     `json:"stubs"`
	Edges      []models.RelationshipEdge `json:"edges"`
	Report     models.ReviewReport       `json:"report"`
}

// Pipeline runs the batch transformation end to end. The emitter and graph
// services are optional; when nil the run stays a pure in-process
// transformation plus document-store writes.
type Pipeline struct {
	logger        ectologger.Logger
	processor     *processor.Processor
	store         store.DocumentStore
	emitter       *events.Emitter
	customers     *graph.CustomerService
	relationships *graph.RelationshipService
	validate      *validator.Validate
	reconcilerCfg reconciler.Config
}

// New creates a pipeline over the given collaborators
func New(
	logger ectologger.Logger,
	documents store.DocumentStore,
	emitter *events.Emitter,
	customers *graph.CustomerService,
	relationships *graph.RelationshipService,
	reconcilerCfg reconciler.Config,
) *Pipeline {
	return &Pipeline{
		logger:        logger,
		processor:     processor.NewProcessor(logger),
		store:         documents,
		emitter:       emitter,
		customers:     customers,
		relationships: relationships,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		reconcilerCfg: reconcilerCfg,
	}
}

// Run executes one batch. Row-level anomalies never fail the run; only
// collaborator failures and invalid reconciler output surface as errors.
func (p *Pipeline) Run(ctx context.Context, rows []models.RawRecord, existing []models.ExistingCustomer) (*Result, error) {
	ctx, span := tracing.StartSpan(ctx, "pipeline.Pipeline.Run")
	defer span.End()

	runID := uuid.NewString()
	log := p.logger.WithContext(ctx).WithFields(map[string]any{
		"run_id":    runID,
		"row_count": len(rows),
	})
	log.Info("Starting cleaning run")

	cleaned, stats := p.processor.CleanBatch(ctx, rows)

	// Rows missing a customer number get a positional identity, so their
	// contacts and edges still resolve and nothing silently disappears.
	for i := range cleaned {
		if cleaned[i].CustomerID == "" {
			cleaned[i].CustomerID = fmt.Sprintf("row-%d", i)
		}
	}

	if err := p.persistCleaned(ctx, cleaned); err != nil {
		return nil, fmt.Errorf("failed to persist cleaned customers: %w", err)
	}

	stubs, edges, report := reconciler.
		New(p.logger, reconciler.BuildIndex(existing), p.reconcilerCfg).
		Consume(cleaned).
		Resolve(ctx)
	report.RunID = runID

	if err := p.validateOutput(stubs, edges); err != nil {
		return nil, err
	}

	if err := p.persistResolved(ctx, stubs, edges); err != nil {
		return nil, fmt.Errorf("failed to persist reconciliation output: %w", err)
	}

	if p.emitter != nil {
		if err := p.emit(ctx, runID, cleaned, stubs, edges); err != nil {
			return nil, err
		}
	}

	if p.customers != nil && p.relationships != nil {
		if err := p.project(ctx, cleaned, stubs, edges); err != nil {
			return nil, err
		}
	}

	log.WithFields(map[string]any{
		"records_with_issues": stats.RecordsWithIssues,
		"new_stubs":           report.NewStubs,
		"edge_count":          report.EdgeCount,
	}).Info("Finished cleaning run")

	return &Result{
		RunID:      runID,
		Cleaned:    cleaned,
		Statistics: stats,
		Stubs:      stubs,
		Edges:      edges,
		Report:     report,
	}, nil
}

func (p *Pipeline) persistCleaned(ctx context.Context, cleaned []models.CleanedCustomer) error {
	docs := make(map[string]any, len(cleaned))
	for i := range cleaned {
		docs["customer:"+cleaned[i].CustomerID] = &cleaned[i]
	}
	return p.store.SetBatch(ctx, docs)
}

func (p *Pipeline) persistResolved(ctx context.Context, stubs []models.CustomerStub, edges []models.RelationshipEdge) error {
	docs := make(map[string]any, len(stubs)+len(edges))
	for i := range stubs {
		docs["stub:"+stubs[i].ID] = &stubs[i]
	}
	for i := range edges {
		edge := &edges[i]
		docs["edge:"+edge.SourceID+"|"+edge.TargetID+"|"+edge.RelationshipCode] = edge
	}
	return p.store.SetBatch(ctx, docs)
}

func (p *Pipeline) validateOutput(stubs []models.CustomerStub, edges []models.RelationshipEdge) error {
	for i := range stubs {
		if err := p.validate.Struct(&stubs[i]); err != nil {
			return fmt.Errorf("invalid customer stub %q: %w", stubs[i].TrackingNumber, err)
		}
	}
	for i := range edges {
		if err := p.validate.Struct(&edges[i]); err != nil {
			return fmt.Errorf("invalid relationship edge %s->%s: %w", edges[i].SourceID, edges[i].TargetID, err)
		}
	}
	return nil
}

func (p *Pipeline) emit(ctx context.Context, runID string, cleaned []models.CleanedCustomer, stubs []models.CustomerStub, edges []models.RelationshipEdge) error {
	if err := p.emitter.EmitCustomersCleaned(ctx, runID, cleaned); err != nil {
		return fmt.Errorf("failed to emit cleaned-customer events: %w", err)
	}
	if err := p.emitter.EmitStubsCreated(ctx, runID, stubs); err != nil {
		return fmt.Errorf("failed to emit stub-created events: %w", err)
	}
	if err := p.emitter.EmitRelationshipsDiscovered(ctx, runID, edges); err != nil {
		return fmt.Errorf("failed to emit relationship events: %w", err)
	}
	return nil
}

func (p *Pipeline) project(ctx context.Context, cleaned []models.CleanedCustomer, stubs []models.CustomerStub, edges []models.RelationshipEdge) error {
	if err := p.customers.BatchUpsertCleaned(ctx, cleaned); err != nil {
		return err
	}
	if err := p.customers.BatchUpsertStubs(ctx, stubs); err != nil {
		return err
	}
	return p.relationships.BatchCreateOrUpdate(ctx, edges)
}
