package pipeline

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/reconciler"
	"github.com/Ramsey-B/wisteria/pkg/store"
)

func testPipeline() (*Pipeline, *store.MemoryStore) {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	documents := store.NewMemoryStore()
	return New(logger, documents, nil, nil, nil, reconciler.DefaultConfig()), documents
}

func exportRows() []models.RawRecord {
	return []models.RawRecord{
		{
			models.FieldCustomerID:          "C-1",
			models.FieldName:                "佐藤花子",
			models.FieldPhone:               "0451234567",
			models.FieldContactName:         "山田太郎",
			models.FieldContactRelationship: "長男",
			models.FieldContactPhone:        "090-1111-2222",
		},
		{
			models.FieldCustomerID:          "C-2",
			models.FieldName:                "佐藤次郎",
			models.FieldPhone:               "電話不明",
			models.FieldContactName:         "山田太郎",
			models.FieldContactRelationship: "息子",
			models.FieldContactPhone:        "090-1111-2222",
		},
	}
}

func TestRun(t *testing.T) {
	p, documents := testPipeline()
	ctx := context.Background()

	result, err := p.Run(ctx, exportRows(), nil)
	require.NoError(t, err)

	t.Run("run metadata", func(t *testing.T) {
		assert.NotEmpty(t, result.RunID)
		assert.Equal(t, result.RunID, result.Report.RunID)
	})

	t.Run("cleaning output", func(t *testing.T) {
		require.Len(t, result.Cleaned, 2)
		assert.Equal(t, 2, result.Statistics.TotalRecords)
		assert.Equal(t, 1, result.Statistics.RecordsWithIssues)
	})

	t.Run("reconciliation output", func(t *testing.T) {
		require.Len(t, result.Stubs, 1)
		assert.Len(t, result.Edges, 2)
		assert.Equal(t, 1, result.Report.NewStubs)
	})

	t.Run("documents persisted", func(t *testing.T) {
		var customer models.CleanedCustomer
		require.NoError(t, documents.Get(ctx, "customer:C-1", &customer))
		assert.Equal(t, "佐藤花子", customer.Name)

		var stub models.CustomerStub
		require.NoError(t, documents.Get(ctx, "stub:"+result.Stubs[0].ID, &stub))
		assert.Equal(t, "山田太郎", stub.Name)

		docs, err := documents.ListRecent(ctx, "edge:", 0)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})
}

func TestRun_ExistingCustomersAreMatched(t *testing.T) {
	p, _ := testPipeline()

	existing := []models.ExistingCustomer{
		{ID: "E-1", Name: "山田太郎", Mobile: "090-1111-2222"},
	}

	result, err := p.Run(context.Background(), exportRows(), existing)
	require.NoError(t, err)

	assert.Empty(t, result.Stubs)
	require.Len(t, result.Edges, 2)
	for _, edge := range result.Edges {
		assert.Equal(t, "E-1", edge.TargetID)
	}
}

func TestRun_RowWithoutCustomerID(t *testing.T) {
	p, documents := testPipeline()
	ctx := context.Background()

	rows := []models.RawRecord{
		{
			// No customer number, but a real contact mention.
			models.FieldName:                "無番号花子",
			models.FieldContactName:         "山田太郎",
			models.FieldContactRelationship: "長男",
			models.FieldContactPhone:        "090-1111-2222",
		},
		{
			models.FieldCustomerID:          "C-2",
			models.FieldName:                "佐藤次郎",
			models.FieldContactName:         "鈴木一郎",
			models.FieldContactRelationship: "友人",
			models.FieldContactPhone:        "080-3333-4444",
		},
	}

	result, err := p.Run(ctx, rows, nil)
	require.NoError(t, err, "a row without a customer number must not abort the batch")

	t.Run("sourceless row gets a positional identity", func(t *testing.T) {
		require.Len(t, result.Cleaned, 2)
		assert.Equal(t, "row-0", result.Cleaned[0].CustomerID)

		var customer models.CleanedCustomer
		require.NoError(t, documents.Get(ctx, "customer:row-0", &customer))
		assert.Equal(t, "無番号花子", customer.Name)
	})

	t.Run("its contact still resolves to a stub and edge", func(t *testing.T) {
		require.Len(t, result.Stubs, 2)
		require.Len(t, result.Edges, 2)
		assert.Equal(t, "row-0", result.Edges[0].SourceID)
		assert.Equal(t, "KAN2001", result.Edges[0].RelationshipCode)
	})

	t.Run("the other row's output is intact", func(t *testing.T) {
		assert.Equal(t, "C-2", result.Edges[1].SourceID)
		assert.Equal(t, "KAN9001", result.Edges[1].RelationshipCode)
	})
}

func TestRun_EmptyBatch(t *testing.T) {
	p, _ := testPipeline()

	result, err := p.Run(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Cleaned)
	assert.Empty(t, result.Stubs)
	assert.Empty(t, result.Edges)
	assert.Equal(t, 0, result.Report.ContactMentions)
}
