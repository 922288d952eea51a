package models

// MemorialContact is the cleaned responsible-contact sub-record of a customer
// row: the secondary person to be contacted for after-the-fact arrangements.
type MemorialContact struct {
	Name         string              `json:"name"`
	Kana         string              `json:"kana,omitempty"`
	Relationship string              `json:"relationship,omitempty"`
	Phone        PhoneCleaningResult `json:"phone"`
	Mobile       PhoneCleaningResult `json:"mobile"`
	Address      string              `json:"address,omitempty"`
	// AddressIsReference is set when the source text was the "same as the
	// applicant" sentinel and Address was resolved from the primary address.
	AddressIsReference bool `json:"address_is_reference,omitempty"`
}

// UserChangeInfo carries the audit columns of the source row unchanged.
type UserChangeInfo struct {
	ChangedBy string `json:"changed_by,omitempty"`
	ChangedAt string `json:"changed_at,omitempty"`
}

// Needs carries the free-text preference fields through untouched.
type Needs struct {
	Ceremony string `json:"ceremony,omitempty"`
	Flowers  string `json:"flowers,omitempty"`
	Other    string `json:"other,omitempty"`
}

// CleanedCustomer is the structured record produced for one source row. It is
// created once by the row cleaner and never mutated afterwards; the
// reconciler and the persistence collaborators only read it.
type CleanedCustomer struct {
	CustomerID string `json:"customer_id"`
	MemberType string `json:"member_type,omitempty"`
	Name       string `json:"name"`
	Kana       string `json:"kana,omitempty"`
	Gender     string `json:"gender,omitempty"`
	BirthDate  string `json:"birth_date,omitempty"`

	Phone  PhoneCleaningResult `json:"phone"`
	Mobile PhoneCleaningResult `json:"mobile"`
	Email  EmailCleaningResult `json:"email"`

	Address AddressCleaningResult `json:"address"`

	MemorialContact MemorialContact `json:"memorial_contact"`
	UserChangeInfo  UserChangeInfo  `json:"user_change_info"`
	Needs           Needs           `json:"needs"`

	InquiryCount string `json:"inquiry_count,omitempty"`
	RegisteredAt string `json:"registered_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`

	// Notes starts with the original notes column byte-for-byte, followed by
	// any relocated fragments under a fixed heading.
	Notes string `json:"notes,omitempty"`

	CleaningReport CleaningReport `json:"cleaning_report"`
}

// BatchStatistics summarizes a cleaning run. It is a pure fold over the
// cleaned records, so it can always be recomputed from them as a cross-check.
type BatchStatistics struct {
	TotalRecords      int            `json:"total_records"`
	RecordsWithIssues int            `json:"records_with_issues"`
	TotalIssues       int            `json:"total_issues"`
	IssuesByType      map[string]int `json:"issues_by_type"`
}
