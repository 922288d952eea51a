package models

// ExistingCustomer is the slice of an already-persisted customer that the
// reconciler needs to build its identity index. The identity service supplies
// these; the engine never loads them itself.
type ExistingCustomer struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Phone  string `json:"phone,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

// CustomerStub is a newly minted customer record for a responsible contact
// that matched no existing customer. TrackingNumber is the sequential
// human-readable identifier; ID is the record identity used by storage.
type CustomerStub struct {
	ID             string `json:"id" validate:"required"`
	TrackingNumber string `json:"tracking_number" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Kana           string `json:"kana,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Mobile         string `json:"mobile,omitempty"`

	PostalCode  string `json:"postal_code,omitempty"`
	Prefecture  string `json:"prefecture,omitempty"`
	City        string `json:"city,omitempty"`
	Town        string `json:"town,omitempty"`
	FullAddress string `json:"full_address,omitempty"`

	// SourceCustomerIDs lists every cleaned row that mentioned this contact.
	SourceCustomerIDs []string `json:"source_customer_ids,omitempty"`
}

// RelationshipEdge is one resolved relationship between a source customer and
// a responsible contact. Edges are never mutated after creation; exact
// (source, target, code) duplicates are suppressed at creation time.
type RelationshipEdge struct {
	SourceID         string  `json:"source_id" validate:"required"`
	TargetID         string  `json:"target_id" validate:"required"`
	RelationshipCode string  `json:"relationship_code" validate:"required"`
	RelationshipName string  `json:"relationship_name"`
	Category         string  `json:"category"`
	ReverseCode      string  `json:"reverse_code,omitempty"`
	ReverseName      string  `json:"reverse_name,omitempty"`
	Confidence       float64 `json:"confidence" validate:"gte=0,lte=1"`

	NeedsManualResolution  bool   `json:"needs_manual_resolution,omitempty"`
	ManualResolutionReason string `json:"manual_resolution_reason,omitempty"`
}

// ReviewReport is the operator-facing summary of a reconciliation run.
type ReviewReport struct {
	RunID            string         `json:"run_id,omitempty"`
	ContactMentions  int            `json:"contact_mentions"`
	ExcludedMentions int            `json:"excluded_mentions"`
	DistinctContacts int            `json:"distinct_contacts"`
	MatchedExisting  int            `json:"matched_existing"`
	NewStubs         int            `json:"new_stubs"`
	EdgeCount        int            `json:"edge_count"`
	UnmappedLabels   map[string]int `json:"unmapped_labels,omitempty"`
}
