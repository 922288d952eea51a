package reconciler

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/wisteria/pkg/models"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func phone(number string) models.PhoneCleaningResult {
	return models.PhoneCleaningResult{
		CleaningResult: models.CleaningResult[string]{Original: number, Cleaned: number},
		IsValid:        true,
	}
}

func rowWithContact(customerID, contactName, relationship, contactPhone string) models.CleanedCustomer {
	return models.CleanedCustomer{
		CustomerID: customerID,
		Name:       "申込者" + customerID,
		MemorialContact: models.MemorialContact{
			Name:         contactName,
			Relationship: relationship,
			Phone:        phone(contactPhone),
		},
	}
}

func TestIdentityKey(t *testing.T) {
	t.Run("folds width and whitespace", func(t *testing.T) {
		assert.Equal(t,
			IdentityKey("山田太郎", "090-1111-2222"),
			IdentityKey("山田　太郎", "０９０１１１１２２２２"))
	})

	t.Run("different phones make different keys", func(t *testing.T) {
		assert.NotEqual(t,
			IdentityKey("山田太郎", "090-1111-2222"),
			IdentityKey("山田太郎", "090-1111-2223"))
	})
}

func TestBuildIndex(t *testing.T) {
	index := BuildIndex([]models.ExistingCustomer{
		{ID: "E-1", Name: "鈴木一郎", Phone: "03-1234-5678", Mobile: "090-0000-1111"},
		{ID: "E-2", Name: "鈴木二郎"},
	})

	assert.Equal(t, "E-1", index[IdentityKey("鈴木一郎", "0312345678")])
	assert.Equal(t, "E-1", index[IdentityKey("鈴木一郎", "09000001111")])
	assert.Equal(t, "E-2", index[IdentityKey("鈴木二郎", "")])
}

func TestResolve_SameContactTwiceMakesOneStub(t *testing.T) {
	corpus := []models.CleanedCustomer{
		rowWithContact("C-1", "山田太郎", "長男", "090-1111-2222"),
		rowWithContact("C-2", "山田太郎", "息子", "090-1111-2222"),
	}

	stubs, edges, report := New(testLogger(), nil, DefaultConfig()).
		Consume(corpus).
		Resolve(context.Background())

	require.Len(t, stubs, 1)
	assert.Equal(t, "山田太郎", stubs[0].Name)
	assert.Equal(t, []string{"C-1", "C-2"}, stubs[0].SourceCustomerIDs)

	require.Len(t, edges, 2)
	assert.Equal(t, "KAN2001", edges[0].RelationshipCode)
	assert.Equal(t, "KAN2000", edges[1].RelationshipCode)
	for _, edge := range edges {
		assert.Equal(t, stubs[0].ID, edge.TargetID)
		assert.Equal(t, 1.0, edge.Confidence)
		assert.False(t, edge.NeedsManualResolution)
	}

	assert.Equal(t, 2, report.ContactMentions)
	assert.Equal(t, 1, report.DistinctContacts)
	assert.Equal(t, 1, report.NewStubs)
	assert.Equal(t, 0, report.MatchedExisting)
	assert.Equal(t, 2, report.EdgeCount)
}

func TestResolve_SelfReferenceExcluded(t *testing.T) {
	corpus := []models.CleanedCustomer{
		rowWithContact("C-1", "本人", "本人", ""),
	}

	stubs, edges, report := New(testLogger(), nil, DefaultConfig()).
		Consume(corpus).
		Resolve(context.Background())

	assert.Empty(t, stubs)
	assert.Empty(t, edges)
	assert.Equal(t, 1, report.ContactMentions)
	assert.Equal(t, 1, report.ExcludedMentions)
	assert.Equal(t, 0, report.DistinctContacts)
}

func TestResolve_NamelessContactExcluded(t *testing.T) {
	stubs, edges, report := New(testLogger(), nil, DefaultConfig()).
		Consume([]models.CleanedCustomer{rowWithContact("C-1", "", "長男", "090-1111-2222")}).
		Resolve(context.Background())

	assert.Empty(t, stubs)
	assert.Empty(t, edges)
	assert.Equal(t, 1, report.ExcludedMentions)
}

func TestResolve_SourcelessMentionExcluded(t *testing.T) {
	stubs, edges, report := New(testLogger(), nil, DefaultConfig()).
		Consume([]models.CleanedCustomer{rowWithContact("", "山田太郎", "長男", "090-1111-2222")}).
		Resolve(context.Background())

	assert.Empty(t, stubs)
	assert.Empty(t, edges)
	assert.Equal(t, 1, report.ContactMentions)
	assert.Equal(t, 1, report.ExcludedMentions)
}

func TestResolve_BlankRelationshipLabel(t *testing.T) {
	corpus := []models.CleanedCustomer{
		rowWithContact("C-1", "山田太郎", "", "090-1111-2222"),
	}

	stubs, edges, report := New(testLogger(), nil, DefaultConfig()).
		Consume(corpus).
		Resolve(context.Background())

	require.Len(t, stubs, 1)
	require.Len(t, edges, 1)
	assert.Equal(t, "KAN0000", edges[0].RelationshipCode)
	assert.True(t, edges[0].NeedsManualResolution)
	assert.Equal(t, "続柄が未記入です", edges[0].ManualResolutionReason)
	assert.Equal(t, 0.4, edges[0].Confidence)
	assert.Empty(t, report.UnmappedLabels)
}

func TestResolve_UnmappedLabelStillMakesEdge(t *testing.T) {
	corpus := []models.CleanedCustomer{
		rowWithContact("C-1", "田中桃子", "姪(従姉の長女)", "080-2222-3333"),
	}

	stubs, edges, report := New(testLogger(), nil, DefaultConfig()).
		Consume(corpus).
		Resolve(context.Background())

	require.Len(t, stubs, 1)
	require.Len(t, edges, 1)
	assert.Equal(t, "KAN0000", edges[0].RelationshipCode)
	assert.True(t, edges[0].NeedsManualResolution)
	assert.Contains(t, edges[0].ManualResolutionReason, "姪(従姉の長女)")
	assert.Equal(t, 0.4, edges[0].Confidence)
	assert.Equal(t, 1, report.UnmappedLabels["姪(従姉の長女)"])
}

func TestResolve_ExistingMatchBeatsStubCreation(t *testing.T) {
	index := BuildIndex([]models.ExistingCustomer{
		{ID: "E-9", Name: "山田太郎", Phone: "090-1111-2222"},
	})
	corpus := []models.CleanedCustomer{
		rowWithContact("C-1", "山田太郎", "長男", "090-1111-2222"),
	}

	stubs, edges, report := New(testLogger(), index, DefaultConfig()).
		Consume(corpus).
		Resolve(context.Background())

	assert.Empty(t, stubs)
	require.Len(t, edges, 1)
	assert.Equal(t, "E-9", edges[0].TargetID)
	assert.Equal(t, 1, report.MatchedExisting)
	assert.Equal(t, 0, report.NewStubs)
}

func TestResolve_ContactMatchesAnotherCorpusRow(t *testing.T) {
	sibling := models.CleanedCustomer{
		CustomerID: "C-2",
		Name:       "佐藤次郎",
		Mobile:     phone("090-5555-6666"),
	}
	corpus := []models.CleanedCustomer{
		rowWithContact("C-1", "佐藤次郎", "弟", "090-5555-6666"),
		sibling,
	}

	stubs, edges, _ := New(testLogger(), nil, DefaultConfig()).
		Consume(corpus).
		Resolve(context.Background())

	// The later row reveals the contact is already in the export, so no
	// stub is minted and the edge points at that row's customer.
	assert.Empty(t, stubs)
	require.Len(t, edges, 1)
	assert.Equal(t, "C-2", edges[0].TargetID)
}

func TestResolve_EdgeDedup(t *testing.T) {
	corpus := []models.CleanedCustomer{
		rowWithContact("C-1", "山田太郎", "長男", "090-1111-2222"),
		rowWithContact("C-1", "山田太郎", "長男", "090-1111-2222"),
	}

	_, edges, report := New(testLogger(), nil, DefaultConfig()).
		Consume(corpus).
		Resolve(context.Background())

	require.Len(t, edges, 1)
	assert.Equal(t, 2, report.ContactMentions)
	assert.Equal(t, 1, report.EdgeCount)
}

func TestResolve_TrackingNumbersAreSequential(t *testing.T) {
	corpus := []models.CleanedCustomer{
		rowWithContact("C-1", "山田一子", "長女", "090-0000-0001"),
		rowWithContact("C-2", "山田二子", "次女", "090-0000-0002"),
		rowWithContact("C-3", "山田三子", "三女", "090-0000-0003"),
	}

	stubs, _, _ := New(testLogger(), nil, Config{TrackingPrefix: "TRK-", TrackingStart: 10}).
		Consume(corpus).
		Resolve(context.Background())

	require.Len(t, stubs, 3)
	assert.Equal(t, "TRK-0010", stubs[0].TrackingNumber)
	assert.Equal(t, "TRK-0011", stubs[1].TrackingNumber)
	assert.Equal(t, "TRK-0012", stubs[2].TrackingNumber)
}

func TestResolve_StubAddressIsParsed(t *testing.T) {
	row := rowWithContact("C-1", "中村正", "友人", "")
	row.MemorialContact.Address = "〒231-0007 神奈川県横浜市中区弁天通2-21"

	stubs, _, _ := New(testLogger(), nil, DefaultConfig()).
		Consume([]models.CleanedCustomer{row}).
		Resolve(context.Background())

	require.Len(t, stubs, 1)
	assert.Equal(t, "231-0007", stubs[0].PostalCode)
	assert.Equal(t, "神奈川県", stubs[0].Prefecture)
	assert.Equal(t, "横浜市", stubs[0].City)
	assert.NotEmpty(t, stubs[0].FullAddress)
}

func TestResolve_DedupProperty(t *testing.T) {
	// Any set of mentions sharing one IdentityKey resolves to exactly one
	// target ID, however the name was rendered.
	renderings := []string{"山田太郎", "山田　太郎", " 山田太郎 "}
	corpus := make([]models.CleanedCustomer, 0, len(renderings))
	for i, name := range renderings {
		corpus = append(corpus, rowWithContact("C-"+string(rune('1'+i)), name, "息子", "090-1111-2222"))
	}

	stubs, edges, _ := New(testLogger(), nil, DefaultConfig()).
		Consume(corpus).
		Resolve(context.Background())

	require.Len(t, stubs, 1)
	targets := make(map[string]bool)
	for _, edge := range edges {
		targets[edge.TargetID] = true
	}
	assert.Len(t, targets, 1)
}
