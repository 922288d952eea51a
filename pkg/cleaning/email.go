package cleaning

import (
	"regexp"
	"strings"

	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/normalizers"
)

// emailTokenRe extracts a leading email-shaped token; anything after it is
// operator free text.
var emailTokenRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._%+\-]*@[A-Za-z0-9.\-]+`)

// emailShapeRe validates the extracted token.
var emailShapeRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)+$`)

// CleanEmail cleans one email field. A leading email token is extracted and
// validated; trailing text is relocated to notes; invalid values are cleared
// with the original preserved verbatim.
func CleanEmail(raw string) models.EmailCleaningResult {
	result := models.EmailCleaningResult{
		CleaningResult: models.CleaningResult[string]{Original: raw},
		IsValid:        true,
	}

	trimmed := normalizers.Trim(raw)
	if trimmed == "" {
		return result
	}

	folded := normalizers.Narrow(trimmed)

	token := emailTokenRe.FindString(folded)
	if token == "" {
		result.IsValid = false
		result.MovedToNotes = trimmed
		result.Issues = append(result.Issues, "メール: メールアドレスとして解釈できないため備考へ退避しました")
		return result
	}

	if rest := normalizers.Trim(folded[len(token):]); rest != "" {
		result.MovedToNotes = rest
		result.Issues = append(result.Issues, "メール: メールアドレス以外の文字列を備考へ退避しました")
	}

	if !emailShapeRe.MatchString(token) {
		result.IsValid = false
		result.Cleaned = ""
		result.MovedToNotes = trimmed
		result.Issues = append(result.Issues, "メール: 形式が不正のため備考へ退避しました")
		return result
	}

	result.Cleaned = strings.ToLower(token)
	return result
}
