package models

// CleaningResult is the outcome of cleaning a single field. Cleaned is always
// safe to persist: rejected or relocated text never survives in Cleaned, it is
// captured verbatim in MovedToNotes and summarized in Issues so nothing is
// silently lost.
type CleaningResult[T any] struct {
	Original     string   `json:"original"`
	Cleaned      T        `json:"cleaned"`
	Issues       []string `json:"issues,omitempty"`
	MovedToNotes string   `json:"moved_to_notes,omitempty"`
}

// PhoneType classifies a cleaned phone number by its prefix and digit count.
type PhoneType string

const (
	PhoneTypeLandline  PhoneType = "landline"
	PhoneTypeMobile    PhoneType = "mobile"
	PhoneTypeFreephone PhoneType = "freephone"
	PhoneTypeUnknown   PhoneType = "unknown"
)

// PhoneCleaningResult is the cleaning outcome for a phone field. IsValid is
// true for empty input: absence of a number is not an error.
type PhoneCleaningResult struct {
	CleaningResult[string]
	IsValid bool      `json:"is_valid"`
	Type    PhoneType `json:"type"`
}

// EmailCleaningResult is the cleaning outcome for an email field.
type EmailCleaningResult struct {
	CleaningResult[string]
	IsValid bool `json:"is_valid"`
}

// PostalCodeCleaningResult is the cleaning outcome for a postal-code field.
// EmbeddedAddress carries free-text address content that operators appended
// after the code itself, a frequent data-entry error in the source system.
type PostalCodeCleaningResult struct {
	CleaningResult[string]
	EmbeddedAddress string `json:"embedded_address,omitempty"`
}

// AddressCleaningResult is the composed outcome for the five address
// components plus the postal code. FullAddress is always the fixed-order
// concatenation prefecture, city, town, street number, building of the
// cleaned components, skipping empties.
type AddressCleaningResult struct {
	PostalCode   PostalCodeCleaningResult `json:"postal_code"`
	Prefecture   CleaningResult[string]   `json:"prefecture"`
	City         CleaningResult[string]   `json:"city"`
	Town         CleaningResult[string]   `json:"town"`
	StreetNumber CleaningResult[string]   `json:"street_number"`
	Building     CleaningResult[string]   `json:"building"`
	FullAddress  string                   `json:"full_address"`
	Issues       []string                 `json:"issues,omitempty"`
}

// CleaningReport aggregates every issue recorded while cleaning one row.
type CleaningReport struct {
	IssueCount int      `json:"issue_count"`
	Issues     []string `json:"issues,omitempty"`
}
