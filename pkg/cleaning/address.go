package cleaning

import (
	"regexp"

	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/normalizers"
)

// SameAsApplicant is the literal sentinel operators write into a contact
// address meaning "same as the primary applicant".
const SameAsApplicant = "申込者と同じ"

// cityTokenRe captures the first 市/区/町/村 token of a free-text address.
var cityTokenRe = regexp.MustCompile(`^(.+?[市区町村])`)

// freeformPostalRe matches an optional postal code at the head of a
// free-text address.
var freeformPostalRe = regexp.MustCompile(`^〒?(\d{3})-?(\d{4})[\s\x{3000}]*`)

// CleanAddress runs every address-field cleaner and composes the result.
// When the postal-code cleaner recovered embedded address text and the
// prefecture field is empty, the prefecture is recovered from the head of
// that text. FullAddress is the fixed-order concatenation of the cleaned
// components. The function is pure and idempotent: re-running it on its own
// output changes nothing.
func CleanAddress(postal, prefecture, city, town, streetNumber, building string) models.AddressCleaningResult {
	result := models.AddressCleaningResult{
		PostalCode:   CleanPostalCode(postal),
		Prefecture:   CleanPrefecture(prefecture),
		City:         CleanCity(city),
		Town:         passThrough(town),
		StreetNumber: passThrough(streetNumber),
		Building:     passThrough(building),
	}

	if result.PostalCode.EmbeddedAddress != "" && result.Prefecture.Cleaned == "" {
		if name, _ := MatchPrefecture(result.PostalCode.EmbeddedAddress); name != "" {
			result.Prefecture.Cleaned = name
			result.Prefecture.Issues = append(result.Prefecture.Issues,
				"都道府県: 郵便番号欄の住所から都道府県を復元しました")
		}
	}

	result.Issues = collectIssues(
		result.PostalCode.Issues,
		result.Prefecture.Issues,
		result.City.Issues,
		result.Town.Issues,
		result.StreetNumber.Issues,
		result.Building.Issues,
	)

	result.FullAddress = composeFullAddress(
		result.Prefecture.Cleaned,
		result.City.Cleaned,
		result.Town.Cleaned,
		result.StreetNumber.Cleaned,
		result.Building.Cleaned,
	)

	return result
}

// ResolveAddressReference replaces the "same as applicant" sentinel with the
// applicant's already-resolved full address. It must run only after the
// applicant's own address has been cleaned.
func ResolveAddressReference(addressText, resolvedCustomerAddress string) (resolved string, isReference bool) {
	if normalizers.Trim(addressText) == SameAsApplicant {
		return resolvedCustomerAddress, true
	}
	return addressText, false
}

// ParsedAddress is the heuristic decomposition of a free-text address.
type ParsedAddress struct {
	PostalCode string
	Prefecture string
	City       string
	Town       string
}

// ParseFreeformAddress splits a free-text address into postal code,
// prefecture, city, and town: longest-prefix match against the prefecture
// list, then the first 市/区/町/村 token as city, remainder as town.
func ParseFreeformAddress(text string) ParsedAddress {
	var parsed ParsedAddress

	s := normalizers.Trim(normalizers.Narrow(text))
	if s == "" {
		return parsed
	}

	if m := freeformPostalRe.FindStringSubmatch(s); m != nil {
		parsed.PostalCode = m[1] + "-" + m[2]
		s = s[len(m[0]):]
	}

	if name, rest := MatchPrefecture(s); name != "" {
		parsed.Prefecture = name
		s = rest
	}

	if m := cityTokenRe.FindStringSubmatch(s); m != nil {
		parsed.City = m[1]
		s = s[len(m[1]):]
	}

	parsed.Town = normalizers.Trim(s)
	return parsed
}

func passThrough(raw string) models.CleaningResult[string] {
	return models.CleaningResult[string]{
		Original: raw,
		Cleaned:  normalizers.Trim(raw),
	}
}

func composeFullAddress(parts ...string) string {
	full := ""
	for _, part := range parts {
		full += part
	}
	return full
}

func collectIssues(lists ...[]string) []string {
	var issues []string
	for _, list := range lists {
		issues = append(issues, list...)
	}
	return issues
}
