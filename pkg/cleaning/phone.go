// Package cleaning implements the field-level cleaners for the legacy CRM
// export: phone, email, postal code, prefecture, city, and the address
// composer. Every cleaner is a pure function that never fails; anomalies are
// downgraded to cleared fields, recorded issues, and notes relocation.
package cleaning

import (
	"strings"
	"unicode"

	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/normalizers"
)

// mobilePrefixes are the carrier prefixes for mobile numbers.
var mobilePrefixes = []string{"090", "080", "070"}

// freephonePrefixes are the toll-free prefixes (10 digits).
var freephonePrefixes = []string{"0120", "0800"}

// twoDigitAreaCodes are the metropolitan area codes formatted as 2-4-4.
var twoDigitAreaCodes = map[string]bool{
	"03": true,
	"06": true,
}

// fourDigitAreaCodes are the 4-digit area codes seen in the source data,
// formatted as 4-2-4. Everything else defaults to a 3-digit area code.
var fourDigitAreaCodes = map[string]bool{
	"0422": true, "0428": true, "0436": true, "0438": true,
	"0463": true, "0465": true, "0466": true, "0467": true,
	"0470": true, "0475": true, "0478": true, "0493": true,
	"0495": true, "0265": true, "0266": true, "0267": true,
}

// CleanPhoneNumber cleans one phone field. Empty input is valid: absence of a
// number is not an error. Free text trailing the number is split off into
// MovedToNotes; the split never truncates the final digit of the number
// itself. Full-width digits and the long-vowel mark are normalized before
// classification.
func CleanPhoneNumber(raw string) models.PhoneCleaningResult {
	result := models.PhoneCleaningResult{
		CleaningResult: models.CleaningResult[string]{Original: raw},
		IsValid:        true,
		Type:           models.PhoneTypeUnknown,
	}

	trimmed := normalizers.Trim(raw)
	if trimmed == "" {
		return result
	}

	folded := foldPhoneRunes(normalizers.Narrow(trimmed))
	run, rest := splitPhoneRun(folded)
	if rest != "" {
		result.MovedToNotes = normalizers.Trim(rest)
		result.Issues = append(result.Issues, "電話番号: 電話番号以外の文字列を備考へ退避しました")
	}

	digits := normalizers.DigitsOnly(run)

	// 030 not followed by 0 is a retired prefix that appears in the export as
	// an entry error; it is rejected no matter how many digits follow.
	if strings.HasPrefix(digits, "030") && (len(digits) < 4 || digits[3] != '0') {
		return rejectPhone(result, trimmed, "電話番号: 無効な030番号のため備考へ退避しました")
	}

	switch {
	case digits == "":
		return rejectPhone(result, trimmed, "電話番号: 電話番号として解釈できないため備考へ退避しました")
	case len(digits) == 10 && hasAnyPrefix(digits, freephonePrefixes):
		result.Type = models.PhoneTypeFreephone
		result.Cleaned = digits[:4] + "-" + digits[4:7] + "-" + digits[7:]
	case len(digits) == 11 && hasAnyPrefix(digits, mobilePrefixes):
		result.Type = models.PhoneTypeMobile
		result.Cleaned = digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	case len(digits) == 10 && hasAnyPrefix(digits, mobilePrefixes):
		result.Type = models.PhoneTypeMobile
		result.Cleaned = digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	case len(digits) == 10 && digits[0] == '0':
		result.Type = models.PhoneTypeLandline
		result.Cleaned = formatLandline(digits)
	default:
		return rejectPhone(result, trimmed, "電話番号: 桁数または形式が不正のため備考へ退避しました")
	}

	return result
}

// rejectPhone clears the field and preserves the original text verbatim.
func rejectPhone(result models.PhoneCleaningResult, original, issue string) models.PhoneCleaningResult {
	result.IsValid = false
	result.Type = models.PhoneTypeUnknown
	result.Cleaned = ""
	result.MovedToNotes = original
	result.Issues = append(result.Issues, issue)
	return result
}

// formatLandline re-hyphenates a 10-digit landline number into area-code
// aware groups.
func formatLandline(digits string) string {
	switch {
	case twoDigitAreaCodes[digits[:2]]:
		return digits[:2] + "-" + digits[2:6] + "-" + digits[6:]
	case fourDigitAreaCodes[digits[:4]]:
		return digits[:4] + "-" + digits[4:6] + "-" + digits[6:]
	default:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	}
}

// foldPhoneRunes maps the long-vowel mark and typographic dashes, which
// operators use interchangeably with hyphens, onto an ASCII hyphen.
func foldPhoneRunes(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'ー', '−', '‐', '―', '－':
			return '-'
		}
		return r
	}, s)
}

// splitPhoneRun splits the leading phone-like run (digits, hyphens,
// parentheses, whitespace) from whatever follows it. The run is cut back to
// its last digit only when deciding where the free text starts, so a
// legitimate trailing digit is never truncated.
func splitPhoneRun(s string) (run, rest string) {
	for i, r := range s {
		if isPhoneRune(r) {
			continue
		}
		return s[:i], s[i:]
	}
	return s, ""
}

func isPhoneRune(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	switch r {
	case '-', '(', ')', '（', '）':
		return true
	}
	return unicode.IsSpace(r)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
