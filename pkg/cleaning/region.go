package cleaning

import (
	"regexp"
	"strings"

	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/normalizers"
)

// doubledCitySuffixRe matches an accidentally doubled 市/区/町/村 suffix.
var doubledCitySuffixRe = regexp.MustCompile(`(市市|区区|町町|村村)$`)

// CleanPrefecture collapses an accidentally duplicated prefecture name
// ("東京都東京都" → "東京都") and otherwise passes the value through.
func CleanPrefecture(raw string) models.CleaningResult[string] {
	result := models.CleaningResult[string]{Original: raw}

	s := normalizers.Trim(raw)
	if s == "" {
		return result
	}

	if half, ok := splitDoubled(s); ok && IsPrefecture(half) {
		result.Cleaned = half
		result.Issues = append(result.Issues, "都道府県: 重複した都道府県名を修正しました")
		return result
	}

	result.Cleaned = s
	return result
}

// CleanCity collapses a duplicated city name or a doubled 市/区/町/村 suffix
// ("横浜市市" → "横浜市") and otherwise passes the value through.
func CleanCity(raw string) models.CleaningResult[string] {
	result := models.CleaningResult[string]{Original: raw}

	s := normalizers.Trim(raw)
	if s == "" {
		return result
	}

	if half, ok := splitDoubled(s); ok && hasCitySuffix(half) {
		result.Cleaned = half
		result.Issues = append(result.Issues, "市区町村: 重複した市区町村名を修正しました")
		return result
	}

	if doubledCitySuffixRe.MatchString(s) {
		result.Cleaned = s[:len(s)-len("市")]
		result.Issues = append(result.Issues, "市区町村: 重複した末尾文字を修正しました")
		return result
	}

	result.Cleaned = s
	return result
}

func hasCitySuffix(s string) bool {
	for _, suffix := range []string{"市", "区", "町", "村"} {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// splitDoubled reports whether s is some non-empty string repeated twice.
func splitDoubled(s string) (string, bool) {
	if len(s) == 0 || len(s)%2 != 0 {
		return "", false
	}
	half := s[:len(s)/2]
	if half == s[len(s)/2:] {
		return half, true
	}
	return "", false
}
