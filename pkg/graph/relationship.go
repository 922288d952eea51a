package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gobusters/ectologger"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/tracing"
)

// RelationshipService maintains kinship edges between :Customer nodes.
// The Cypher relationship type is the edge category in upper case
// (CHILD, SPOUSE, UNCLASSIFIED, ...); the code, canonical name, and review
// flags travel as edge properties.
type RelationshipService struct {
	client *Client
	logger ectologger.Logger
}

// NewRelationshipService creates a new relationship service
func NewRelationshipService(client *Client, logger ectologger.Logger) *RelationshipService {
	return &RelationshipService{
		client: client,
		logger: logger,
	}
}

// relType maps an edge's category to a Cypher relationship type.
func relType(edge *models.RelationshipEdge) string {
	return sanitizeLabel(strings.ToUpper(edge.Category))
}

func edgeProps(edge *models.RelationshipEdge) map[string]any {
	return map[string]any{
		"code":          edge.RelationshipCode,
		"name":          edge.RelationshipName,
		"category":      edge.Category,
		"reverse_code":  edge.ReverseCode,
		"reverse_name":  edge.ReverseName,
		"confidence":    edge.Confidence,
		"needs_review":  edge.NeedsManualResolution,
		"review_reason": edge.ManualResolutionReason,
	}
}

// BatchCreateOrUpdate MERGEs the kinship edges in a single transaction.
// The (source, target, code) triple is the edge identity, so re-running a
// projection never duplicates edges.
func (s *RelationshipService) BatchCreateOrUpdate(ctx context.Context, edges []models.RelationshipEdge) error {
	ctx, span := tracing.StartSpan(ctx, "graph.RelationshipService.BatchCreateOrUpdate")
	defer span.End()

	if len(edges) == 0 {
		return nil
	}

	log := s.logger.WithContext(ctx).WithFields(map[string]any{
		"batch_size": len(edges),
	})

	// Group by relationship type, since the type cannot be parameterized
	byType := make(map[string][]map[string]any)
	for i := range edges {
		edge := &edges[i]
		t := relType(edge)
		byType[t] = append(byType[t], map[string]any{
			"from_id": edge.SourceID,
			"to_id":   edge.TargetID,
			"code":    edge.RelationshipCode,
			"props":   edgeProps(edge),
		})
	}

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for t, batch := range byType {
			cypher := fmt.Sprintf(`
				UNWIND $batch AS data
				MATCH (from:Customer {id: data.from_id})
				MATCH (to:Customer {id: data.to_id})
				MERGE (from)-[r:%s {code: data.code}]->(to)
				SET r += data.props
			`, t)

			if _, err := tx.Run(ctx, cypher, map[string]any{"batch": batch}); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})

	if err != nil {
		log.WithError(err).Error("Failed to batch create/update kinship edges in graph")
		return fmt.Errorf("failed to batch create/update kinship edges: %w", err)
	}

	log.Debug("Batch created/updated kinship edges in graph")
	return nil
}
