package cleaning

import (
	"regexp"
	"strings"

	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/normalizers"
)

// postalRe matches a 7-digit postal code with optional hyphen, optionally
// followed by free-text address content the operator typed into the same
// cell.
var postalRe = regexp.MustCompile(`^(\d{3})-?(\d{4})[\s\x{3000}]*(.*)$`)

// CleanPostalCode cleans one postal-code field. It folds width, strips the
// leading postal mark, auto-inserts the hyphen for bare 7-digit input, and
// extracts an address erroneously appended after a valid code. Anything not
// matching the final 123-4567 shape is cleared with the original preserved.
func CleanPostalCode(raw string) models.PostalCodeCleaningResult {
	result := models.PostalCodeCleaningResult{
		CleaningResult: models.CleaningResult[string]{Original: raw},
	}

	trimmed := normalizers.Trim(raw)
	if trimmed == "" {
		return result
	}

	s := foldPhoneRunes(normalizers.Narrow(trimmed))
	s = strings.TrimPrefix(s, "〒")
	s = normalizers.Trim(s)

	m := postalRe.FindStringSubmatch(s)
	if m == nil {
		result.MovedToNotes = trimmed
		result.Issues = append(result.Issues, "郵便番号: 形式が不正のため備考へ退避しました")
		return result
	}

	result.Cleaned = m[1] + "-" + m[2]

	if rest := normalizers.Trim(m[3]); rest != "" {
		result.EmbeddedAddress = rest
		result.MovedToNotes = rest
		result.Issues = append(result.Issues, "郵便番号: 郵便番号欄に混入した住所を抽出しました")
	}

	return result
}
