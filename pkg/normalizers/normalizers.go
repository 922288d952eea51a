// Package normalizers provides field normalization functions for identity
// keying and kinship-label lookup
package normalizers

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Normalizer is a function that normalizes a string value
type Normalizer func(string) string

// registry holds all registered normalizers
var registry = make(map[string]Normalizer)

func init() {
	// Register built-in normalizers
	Register("trim", Trim)
	Register("narrow", Narrow)
	Register("digits_only", DigitsOnly)
	Register("remove_whitespace", RemoveWhitespace)
	Register("nname", NameKey)
	Register("nphone", PhoneKey)
	Register("nlabel", LabelKey)
}

// Register adds a normalizer to the registry
func Register(name string, fn Normalizer) {
	registry[name] = fn
}

// Get retrieves a normalizer by name
func Get(name string) (Normalizer, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Apply applies a named normalizer to a value
func Apply(value, normalizer string) string {
	fn, ok := registry[normalizer]
	if !ok {
		return value
	}
	return fn(value)
}

// ApplyChain applies multiple normalizers in sequence
func ApplyChain(value string, normalizers ...string) string {
	result := value
	for _, name := range normalizers {
		result = Apply(result, name)
	}
	return result
}

// Built-in normalizers

// Trim removes leading and trailing whitespace, ideographic space included
func Trim(s string) string {
	return strings.TrimFunc(s, unicode.IsSpace)
}

// Narrow folds full-width digits, latin letters, and punctuation to their
// half-width forms. Half-width katakana folds to full-width, which keeps kana
// comparable regardless of how the operator typed it.
func Narrow(s string) string {
	return width.Fold.String(s)
}

// DigitsOnly keeps only ASCII digits after width folding
func DigitsOnly(s string) string {
	s = Narrow(s)
	var result strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// RemoveWhitespace removes all whitespace characters, full-width included
func RemoveWhitespace(s string) string {
	var result strings.Builder
	for _, r := range s {
		if !unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// NameKey normalizes a person's name into a deduplication key:
// width-folded with all whitespace removed. Kanji and kana are kept as
// written; matching stays deterministic, not phonetic.
func NameKey(s string) string {
	return RemoveWhitespace(Narrow(s))
}

// PhoneKey reduces a phone number to its digits for identity keying
func PhoneKey(s string) string {
	return DigitsOnly(s)
}

// LabelKey normalizes a free-text kinship label for table lookup:
// width-folded and trimmed. Lookups stay exact-string so coverage is
// auditable; anything that still misses the table is flagged for review.
func LabelKey(s string) string {
	return Trim(Narrow(s))
}
