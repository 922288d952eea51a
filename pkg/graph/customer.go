package graph

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/tracing"
)

// CustomerService maintains :Customer nodes in the graph
type CustomerService struct {
	client *Client
	logger ectologger.Logger
}

// NewCustomerService creates a new customer node service
func NewCustomerService(client *Client, logger ectologger.Logger) *CustomerService {
	return &CustomerService{
		client: client,
		logger: logger,
	}
}

// BatchUpsertCleaned upserts every cleaned customer in one transaction.
func (s *CustomerService) BatchUpsertCleaned(ctx context.Context, customers []models.CleanedCustomer) error {
	ctx, span := tracing.StartSpan(ctx, "graph.CustomerService.BatchUpsertCleaned")
	defer span.End()

	if len(customers) == 0 {
		return nil
	}

	batch := make([]map[string]any, len(customers))
	for i := range customers {
		c := &customers[i]
		batch[i] = map[string]any{
			"id": c.CustomerID,
			"props": map[string]any{
				"id":          c.CustomerID,
				"name":        c.Name,
				"kana":        c.Kana,
				"phone":       c.Phone.Cleaned,
				"mobile":      c.Mobile.Cleaned,
				"email":       c.Email.Cleaned,
				"postal_code": c.Address.PostalCode.Cleaned,
				"prefecture":  c.Address.Prefecture.Cleaned,
				"address":     c.Address.FullAddress,
				"issue_count": c.CleaningReport.IssueCount,
				"stub":        false,
			},
		}
	}

	cypher := `
		UNWIND $batch AS data
		MERGE (c:Customer {id: data.id})
		SET c = data.props
	`

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, map[string]any{"batch": batch})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})

	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"batch_size": len(customers),
		}).Error("Failed to batch upsert customers in graph")
		return fmt.Errorf("failed to batch upsert customers: %w", err)
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"batch_size": len(customers),
	}).Debug("Batch upserted customers in graph")
	return nil
}

// BatchUpsertStubs upserts newly minted contact stubs as :Customer nodes
// marked stub, keyed by id like any other customer.
func (s *CustomerService) BatchUpsertStubs(ctx context.Context, stubs []models.CustomerStub) error {
	ctx, span := tracing.StartSpan(ctx, "graph.CustomerService.BatchUpsertStubs")
	defer span.End()

	if len(stubs) == 0 {
		return nil
	}

	batch := make([]map[string]any, len(stubs))
	for i := range stubs {
		stub := &stubs[i]
		batch[i] = map[string]any{
			"id": stub.ID,
			"props": map[string]any{
				"id":              stub.ID,
				"tracking_number": stub.TrackingNumber,
				"name":            stub.Name,
				"kana":            stub.Kana,
				"phone":           stub.Phone,
				"mobile":          stub.Mobile,
				"postal_code":     stub.PostalCode,
				"prefecture":      stub.Prefecture,
				"address":         stub.FullAddress,
				"stub":            true,
			},
		}
	}

	cypher := `
		UNWIND $batch AS data
		MERGE (c:Customer {id: data.id})
		SET c = data.props
	`

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, map[string]any{"batch": batch})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})

	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"batch_size": len(stubs),
		}).Error("Failed to batch upsert customer stubs in graph")
		return fmt.Errorf("failed to batch upsert customer stubs: %w", err)
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"batch_size": len(stubs),
	}).Debug("Batch upserted customer stubs in graph")
	return nil
}
