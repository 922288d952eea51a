// Package reconciler resolves responsible-contact mentions across a cleaned
// corpus into a deduplicated set of customer identities and relationship
// edges. Matching is deterministic, keyed on normalized name plus phone.
package reconciler

import (
	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/normalizers"
)

// Index maps IdentityKeys to resolved customer IDs. It is per-run state,
// passed explicitly into the reconciler so independent runs never share it.
type Index map[string]string

// IdentityKey derives the deduplication key for a person. Two entities
// sharing a key are treated as the same person for the whole run.
func IdentityKey(name, phone string) string {
	return normalizers.NameKey(name) + "|" + normalizers.PhoneKey(phone)
}

// primaryPhone picks the number that participates in identity keying:
// the landline when present, the mobile otherwise.
func primaryPhone(phone, mobile string) string {
	if normalizers.PhoneKey(phone) != "" {
		return phone
	}
	return mobile
}

// BuildIndex keys existing customers by IdentityKey. Customers carrying both
// a landline and a mobile are reachable under either key, since source rows
// record whichever number the operator happened to know. The first customer
// to claim a key keeps it.
func BuildIndex(existing []models.ExistingCustomer) Index {
	index := make(Index, len(existing))
	for _, customer := range existing {
		if normalizers.NameKey(customer.Name) == "" {
			continue
		}
		keys := []string{IdentityKey(customer.Name, primaryPhone(customer.Phone, customer.Mobile))}
		if normalizers.PhoneKey(customer.Phone) != "" && normalizers.PhoneKey(customer.Mobile) != "" {
			keys = append(keys, IdentityKey(customer.Name, customer.Mobile))
		}
		for _, key := range keys {
			if _, taken := index[key]; !taken {
				index[key] = customer.ID
			}
		}
	}
	return index
}
