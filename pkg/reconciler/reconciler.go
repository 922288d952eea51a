package reconciler

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/Ramsey-B/wisteria/pkg/cleaning"
	"github.com/Ramsey-B/wisteria/pkg/kinship"
	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/normalizers"
	"github.com/Ramsey-B/wisteria/pkg/tracing"
)

// Config contains configuration for the reconciler
type Config struct {
	TrackingPrefix string // Prefix for sequential tracking numbers (default: "NEW-")
	TrackingStart  int    // First sequence number assigned in a run (default: 1)
}

// DefaultConfig returns default reconciler configuration
func DefaultConfig() Config {
	return Config{
		TrackingPrefix: "NEW-",
		TrackingStart:  1,
	}
}

// mention is one (source row, stated relationship) pair attached to a contact.
type mention struct {
	sourceID string
	label    string
}

// contact accumulates everything the corpus says about one distinct person.
// Later mentions only fill fields an earlier mention left blank.
type contact struct {
	name     string
	kana     string
	phone    string
	mobile   string
	address  string
	sources  []string
	mentions []mention
}

// Reconciler resolves responsible contacts against the customer identity
// space. It is a two-phase builder: Consume must see the whole corpus before
// Resolve runs, because a late row can reveal that an early contact is in
// fact an already-known customer.
type Reconciler struct {
	logger ectologger.Logger
	index  Index
	config Config

	order    []string
	contacts map[string]*contact
	report   models.ReviewReport
}

// New creates a reconciler over a snapshot of the existing-customer index.
// The index is copied, so a run never mutates its caller's map.
func New(logger ectologger.Logger, existing Index, config Config) *Reconciler {
	index := make(Index, len(existing))
	for key, id := range existing {
		index[key] = id
	}
	if config.TrackingPrefix == "" {
		config.TrackingPrefix = DefaultConfig().TrackingPrefix
	}
	if config.TrackingStart <= 0 {
		config.TrackingStart = DefaultConfig().TrackingStart
	}
	return &Reconciler{
		logger:   logger,
		index:    index,
		config:   config,
		contacts: make(map[string]*contact),
		report: models.ReviewReport{
			UnmappedLabels: make(map[string]int),
		},
	}
}

// Consume indexes the cleaned rows and collects their responsible-contact
// mentions, grouped by IdentityKey in first-seen order. It returns the
// reconciler so the two phases read as one chain.
func (r *Reconciler) Consume(corpus []models.CleanedCustomer) *Reconciler {
	// Index the corpus rows themselves first. A contact naming another row
	// of the same export must resolve to that row's customer, not a stub.
	for _, customer := range corpus {
		if normalizers.NameKey(customer.Name) == "" || customer.CustomerID == "" {
			continue
		}
		key := IdentityKey(customer.Name, primaryPhone(customer.Phone.Cleaned, customer.Mobile.Cleaned))
		if _, taken := r.index[key]; !taken {
			r.index[key] = customer.CustomerID
		}
	}

	for _, customer := range corpus {
		r.consumeMention(customer)
	}
	return r
}

func (r *Reconciler) consumeMention(customer models.CleanedCustomer) {
	m := customer.MemorialContact
	name := normalizers.Trim(m.Name)
	label := normalizers.Trim(m.Relationship)

	if name == "" && label == "" && m.Phone.Cleaned == "" && m.Mobile.Cleaned == "" {
		return
	}
	r.report.ContactMentions++

	// Self-referential sentinels and nameless contacts produce nothing: a
	// name is required to form an IdentityKey.
	if name == "" || kinship.IsSelfReference(name) || kinship.IsSelfReference(label) {
		r.report.ExcludedMentions++
		return
	}

	// An edge needs a source identity. Rows without a customer id cannot
	// anchor one, so their mentions are excluded rather than emitted broken.
	if customer.CustomerID == "" {
		r.report.ExcludedMentions++
		return
	}

	key := IdentityKey(name, primaryPhone(m.Phone.Cleaned, m.Mobile.Cleaned))
	c, seen := r.contacts[key]
	if !seen {
		c = &contact{}
		r.contacts[key] = c
		r.order = append(r.order, key)
	}

	fill(&c.name, name)
	fill(&c.kana, normalizers.Trim(m.Kana))
	fill(&c.phone, m.Phone.Cleaned)
	fill(&c.mobile, m.Mobile.Cleaned)
	if !m.AddressIsReference {
		fill(&c.address, normalizers.Trim(m.Address))
	}
	c.sources = append(c.sources, customer.CustomerID)
	c.mentions = append(c.mentions, mention{sourceID: customer.CustomerID, label: label})
}

// fill sets dst when it is still blank.
func fill(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// Resolve runs the second pass: one identity per distinct contact, one edge
// per (source, relationship) mention with exact (source, target, code)
// duplicates suppressed. An existing-customer match always wins over minting
// a stub.
func (r *Reconciler) Resolve(ctx context.Context) ([]models.CustomerStub, []models.RelationshipEdge, models.ReviewReport) {
	ctx, span := tracing.StartSpan(ctx, "reconciler.Reconciler.Resolve")
	defer span.End()

	stubs := make([]models.CustomerStub, 0)
	edges := make([]models.RelationshipEdge, 0)
	seenEdges := make(map[string]bool)

	sequence := r.config.TrackingStart
	for _, key := range r.order {
		c := r.contacts[key]

		targetID, matched := r.index[key]
		if matched {
			r.report.MatchedExisting++
		} else {
			stub := r.mintStub(c, sequence)
			sequence++
			targetID = stub.ID
			r.index[key] = targetID
			stubs = append(stubs, stub)
			r.report.NewStubs++
		}

		for _, m := range c.mentions {
			edge := r.buildEdge(m, targetID)
			dedup := edge.SourceID + "|" + edge.TargetID + "|" + edge.RelationshipCode
			if seenEdges[dedup] {
				continue
			}
			seenEdges[dedup] = true
			edges = append(edges, edge)
		}
	}

	r.report.DistinctContacts = len(r.order)
	r.report.EdgeCount = len(edges)

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"contact_mentions":  r.report.ContactMentions,
		"excluded_mentions": r.report.ExcludedMentions,
		"distinct_contacts": r.report.DistinctContacts,
		"matched_existing":  r.report.MatchedExisting,
		"new_stubs":         r.report.NewStubs,
		"edge_count":        r.report.EdgeCount,
		"unmapped_labels":   len(r.report.UnmappedLabels),
	}).Info("Resolved responsible-contact corpus")

	return stubs, edges, r.report
}

// mintStub creates a new customer record for a contact that matched nothing.
// The free-text address is re-parsed heuristically into structured parts.
func (r *Reconciler) mintStub(c *contact, sequence int) models.CustomerStub {
	parsed := cleaning.ParseFreeformAddress(c.address)
	return models.CustomerStub{
		ID:             uuid.NewString(),
		TrackingNumber: fmt.Sprintf("%s%04d", r.config.TrackingPrefix, sequence),
		Name:           c.name,
		Kana:           c.kana,
		Phone:          c.phone,
		Mobile:         c.mobile,

		PostalCode:  parsed.PostalCode,
		Prefecture:  parsed.Prefecture,
		City:        parsed.City,
		Town:        parsed.Town,
		FullAddress: c.address,

		SourceCustomerIDs: c.sources,
	}
}

func (r *Reconciler) buildEdge(m mention, targetID string) models.RelationshipEdge {
	mapping, ok := kinship.Lookup(m.label)
	if !ok {
		reason := "続柄が未記入です"
		if m.label != "" {
			r.report.UnmappedLabels[m.label]++
			reason = "続柄が対応表に存在しません: " + m.label
		}
		return models.RelationshipEdge{
			SourceID:         m.sourceID,
			TargetID:         targetID,
			RelationshipCode: kinship.UnmappedCode,
			RelationshipName: m.label,
			Category:         kinship.UnmappedCategory,
			Confidence:       0.4,

			NeedsManualResolution:  true,
			ManualResolutionReason: reason,
		}
	}

	return models.RelationshipEdge{
		SourceID:         m.sourceID,
		TargetID:         targetID,
		RelationshipCode: mapping.Code,
		RelationshipName: mapping.CanonicalName,
		Category:         mapping.Category,
		ReverseCode:      mapping.Reverse.Code,
		ReverseName:      mapping.Reverse.CanonicalName,
		Confidence:       1.0,
	}
}
