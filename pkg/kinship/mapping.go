// Package kinship holds the static mapping from free-text kinship labels to
// canonical relationship codes. The table is the single source of truth for
// label translation, including the inverse relationship; lookups are
// exact-string over normalized labels so coverage stays auditable.
package kinship

import "github.com/Ramsey-B/wisteria/pkg/normalizers"

// Reverse identifies the inverse relationship of a mapping.
type Reverse struct {
	Code          string `json:"code"`
	CanonicalName string `json:"canonical_name"`
}

// Mapping is one canonical relationship entry.
type Mapping struct {
	Code          string  `json:"code"`
	CanonicalName string  `json:"canonical_name"`
	Category      string  `json:"category"`
	Reverse       Reverse `json:"reverse"`
}

// Relationship categories.
const (
	CategorySpouse      = "spouse"
	CategoryChild       = "child"
	CategoryParent      = "parent"
	CategorySibling     = "sibling"
	CategoryGrandchild  = "grandchild"
	CategoryGrandparent = "grandparent"
	CategoryUncleAunt   = "uncle_aunt"
	CategoryNephewNiece = "nephew_niece"
	CategoryCousin      = "cousin"
	CategoryInLaw       = "in_law"
	CategoryRelative    = "relative"
	CategoryNonKin      = "non_kin"
)

// UnmappedCode and UnmappedCategory tag edges whose label missed the table.
const (
	UnmappedCode     = "KAN0000"
	UnmappedCategory = "unclassified"
)

// Generic inverse codes. Where the inverse of a specific relationship cannot
// be narrowed (the reverse of 長男 is "parent", never a specific parent),
// the reverse points at one of these. They are deliberately not forward label
// codes, so code-level reverse lookups are either mutual or absent.
var (
	reverseParent       = Reverse{Code: "KAN3900", CanonicalName: "親"}
	reverseChild        = Reverse{Code: "KAN2900", CanonicalName: "子"}
	reverseParentInLaw  = Reverse{Code: "KAN3901", CanonicalName: "義父母"}
	reverseChildInLaw   = Reverse{Code: "KAN2901", CanonicalName: "子の配偶者"}
	reverseSibling      = Reverse{Code: "KAN4900", CanonicalName: "兄弟姉妹"}
	reverseSiblingInLaw = Reverse{Code: "KAN4901", CanonicalName: "義兄弟姉妹"}
	reverseGrandparent  = Reverse{Code: "KAN6900", CanonicalName: "祖父母"}
	reverseGrandchild   = Reverse{Code: "KAN5900", CanonicalName: "孫"}
	reverseUncleAunt    = Reverse{Code: "KAN7900", CanonicalName: "おじ・おば"}
	reverseNephewNiece  = Reverse{Code: "KAN7901", CanonicalName: "甥・姪"}
)

// mappings is keyed by normalized surface form. Many surface forms collapse
// onto one code; every entry sharing a code shares its canonical name,
// category, and reverse.
var mappings = map[string]Mapping{
	// Spouse
	"配偶者": {Code: "KAN1000", CanonicalName: "配偶者", Category: CategorySpouse, Reverse: Reverse{Code: "KAN1000", CanonicalName: "配偶者"}},
	"夫":   spouseHusband, "主人": spouseHusband, "ご主人": spouseHusband, "旦那": spouseHusband,
	"妻": spouseWife, "家内": spouseWife, "奥様": spouseWife, "奥さん": spouseWife,

	// Children
	"息子": son, "子息": son, "むすこ": son,
	"長男": {Code: "KAN2001", CanonicalName: "長男", Category: CategoryChild, Reverse: reverseParent},
	"次男": {Code: "KAN2002", CanonicalName: "次男", Category: CategoryChild, Reverse: reverseParent},
	"二男": {Code: "KAN2002", CanonicalName: "次男", Category: CategoryChild, Reverse: reverseParent},
	"三男": {Code: "KAN2003", CanonicalName: "三男", Category: CategoryChild, Reverse: reverseParent},
	"娘":  daughter, "息女": daughter, "むすめ": daughter,
	"長女": {Code: "KAN2011", CanonicalName: "長女", Category: CategoryChild, Reverse: reverseParent},
	"次女": {Code: "KAN2012", CanonicalName: "次女", Category: CategoryChild, Reverse: reverseParent},
	"二女": {Code: "KAN2012", CanonicalName: "次女", Category: CategoryChild, Reverse: reverseParent},
	"三女": {Code: "KAN2013", CanonicalName: "三女", Category: CategoryChild, Reverse: reverseParent},
	"子":  childGeneric, "子供": childGeneric, "子ども": childGeneric,

	// Children-in-law
	"婿":     sonInLaw, "娘婿": sonInLaw, "義理の息子": sonInLaw, "義息子": sonInLaw,
	"嫁":     daughterInLaw, "息子の嫁": daughterInLaw, "義理の娘": daughterInLaw, "義娘": daughterInLaw,

	// Parents
	"親":  parentGeneric, "父母": parentGeneric, "両親": parentGeneric,
	"父":  father, "実父": father, "お父様": father, "父親": father,
	"母":  mother, "実母": mother, "お母様": mother, "母親": mother,
	"義父": {Code: "KAN3101", CanonicalName: "義父", Category: CategoryInLaw, Reverse: reverseChildInLaw},
	"義母": {Code: "KAN3102", CanonicalName: "義母", Category: CategoryInLaw, Reverse: reverseChildInLaw},

	// Siblings
	"兄":    elderBrother, "実兄": elderBrother, "お兄様": elderBrother,
	"弟":    youngerBrother, "実弟": youngerBrother,
	"姉":    elderSister, "実姉": elderSister, "お姉様": elderSister,
	"妹":    youngerSister, "実妹": youngerSister,
	"兄弟":   {Code: "KAN4005", CanonicalName: "兄弟", Category: CategorySibling, Reverse: reverseSibling},
	"姉妹":   {Code: "KAN4006", CanonicalName: "姉妹", Category: CategorySibling, Reverse: reverseSibling},
	"兄弟姉妹": {Code: "KAN4000", CanonicalName: "兄弟姉妹", Category: CategorySibling, Reverse: Reverse{Code: "KAN4000", CanonicalName: "兄弟姉妹"}},
	"義兄":   {Code: "KAN4101", CanonicalName: "義兄", Category: CategoryInLaw, Reverse: reverseSiblingInLaw},
	"義弟":   {Code: "KAN4102", CanonicalName: "義弟", Category: CategoryInLaw, Reverse: reverseSiblingInLaw},
	"義姉":   {Code: "KAN4103", CanonicalName: "義姉", Category: CategoryInLaw, Reverse: reverseSiblingInLaw},
	"義妹":   {Code: "KAN4104", CanonicalName: "義妹", Category: CategoryInLaw, Reverse: reverseSiblingInLaw},

	// Grandchildren
	"孫":  grandchild, "孫息子": {Code: "KAN5001", CanonicalName: "孫息子", Category: CategoryGrandchild, Reverse: reverseGrandparent},
	"孫娘": {Code: "KAN5002", CanonicalName: "孫娘", Category: CategoryGrandchild, Reverse: reverseGrandparent},

	// Grandparents
	"祖父母": {Code: "KAN6000", CanonicalName: "祖父母", Category: CategoryGrandparent, Reverse: reverseGrandchild},
	"祖父":  {Code: "KAN6001", CanonicalName: "祖父", Category: CategoryGrandparent, Reverse: reverseGrandchild},
	"祖母":  {Code: "KAN6002", CanonicalName: "祖母", Category: CategoryGrandparent, Reverse: reverseGrandchild},

	// Uncles, aunts, nephews, nieces
	"おじ": uncle, "伯父": uncle, "叔父": uncle,
	"おば": aunt, "伯母": aunt, "叔母": aunt,
	"甥":  nephew, "甥っ子": nephew,
	"姪":  niece, "姪っ子": niece,

	// Cousins (symmetric)
	"いとこ": cousin, "従兄弟": cousin, "従姉妹": cousin, "従兄": cousin, "従姉": cousin,

	// Other relatives (symmetric)
	"親族": relative, "親戚": relative, "遠縁": relative,

	// Non-kin (symmetric)
	"友人": friend, "友達": friend, "ご友人": friend,
	"知人": acquaintance, "知り合い": acquaintance,
	"隣人": neighbor, "近所": neighbor, "ご近所": neighbor,
	"後見人": {Code: "KAN9101", CanonicalName: "後見人", Category: CategoryNonKin, Reverse: Reverse{Code: "KAN9902", CanonicalName: "被後見人"}},
}

// Shared entries for labels that collapse onto one code.
var (
	spouseHusband  = Mapping{Code: "KAN1001", CanonicalName: "夫", Category: CategorySpouse, Reverse: Reverse{Code: "KAN1002", CanonicalName: "妻"}}
	spouseWife     = Mapping{Code: "KAN1002", CanonicalName: "妻", Category: CategorySpouse, Reverse: Reverse{Code: "KAN1001", CanonicalName: "夫"}}
	son            = Mapping{Code: "KAN2000", CanonicalName: "息子", Category: CategoryChild, Reverse: reverseParent}
	daughter       = Mapping{Code: "KAN2010", CanonicalName: "娘", Category: CategoryChild, Reverse: reverseParent}
	childGeneric   = Mapping{Code: "KAN2020", CanonicalName: "子", Category: CategoryChild, Reverse: reverseParent}
	sonInLaw       = Mapping{Code: "KAN2101", CanonicalName: "婿", Category: CategoryInLaw, Reverse: reverseParentInLaw}
	daughterInLaw  = Mapping{Code: "KAN2102", CanonicalName: "嫁", Category: CategoryInLaw, Reverse: reverseParentInLaw}
	parentGeneric  = Mapping{Code: "KAN3000", CanonicalName: "親", Category: CategoryParent, Reverse: reverseChild}
	father         = Mapping{Code: "KAN3001", CanonicalName: "父", Category: CategoryParent, Reverse: reverseChild}
	mother         = Mapping{Code: "KAN3002", CanonicalName: "母", Category: CategoryParent, Reverse: reverseChild}
	elderBrother   = Mapping{Code: "KAN4001", CanonicalName: "兄", Category: CategorySibling, Reverse: reverseSibling}
	youngerBrother = Mapping{Code: "KAN4002", CanonicalName: "弟", Category: CategorySibling, Reverse: reverseSibling}
	elderSister    = Mapping{Code: "KAN4003", CanonicalName: "姉", Category: CategorySibling, Reverse: reverseSibling}
	youngerSister  = Mapping{Code: "KAN4004", CanonicalName: "妹", Category: CategorySibling, Reverse: reverseSibling}
	grandchild     = Mapping{Code: "KAN5000", CanonicalName: "孫", Category: CategoryGrandchild, Reverse: reverseGrandparent}
	uncle          = Mapping{Code: "KAN7001", CanonicalName: "おじ", Category: CategoryUncleAunt, Reverse: reverseNephewNiece}
	aunt           = Mapping{Code: "KAN7002", CanonicalName: "おば", Category: CategoryUncleAunt, Reverse: reverseNephewNiece}
	nephew         = Mapping{Code: "KAN7101", CanonicalName: "甥", Category: CategoryNephewNiece, Reverse: reverseUncleAunt}
	niece          = Mapping{Code: "KAN7102", CanonicalName: "姪", Category: CategoryNephewNiece, Reverse: reverseUncleAunt}
	cousin         = Mapping{Code: "KAN8000", CanonicalName: "いとこ", Category: CategoryCousin, Reverse: Reverse{Code: "KAN8000", CanonicalName: "いとこ"}}
	relative       = Mapping{Code: "KAN8100", CanonicalName: "親族", Category: CategoryRelative, Reverse: Reverse{Code: "KAN8100", CanonicalName: "親族"}}
	friend         = Mapping{Code: "KAN9001", CanonicalName: "友人", Category: CategoryNonKin, Reverse: Reverse{Code: "KAN9001", CanonicalName: "友人"}}
	acquaintance   = Mapping{Code: "KAN9002", CanonicalName: "知人", Category: CategoryNonKin, Reverse: Reverse{Code: "KAN9002", CanonicalName: "知人"}}
	neighbor       = Mapping{Code: "KAN9003", CanonicalName: "隣人", Category: CategoryNonKin, Reverse: Reverse{Code: "KAN9003", CanonicalName: "隣人"}}
)

// byCode indexes canonical entries by relationship code.
var byCode = func() map[string]Mapping {
	index := make(map[string]Mapping, len(mappings))
	for _, m := range mappings {
		index[m.Code] = m
	}
	return index
}()

// selfSentinels are the self-referential values that exclude a contact from
// reconciliation entirely: the "contact" is the applicant.
var selfSentinels = map[string]bool{
	"本人":    true,
	"ご本人":   true,
	"本人様":   true,
	"ご本人様":  true,
	"自分":    true,
	"同上":    true,
	"申込者本人": true,
	"契約者本人": true,
	"申込者と同じ": true,
}

// Lookup resolves a free-text kinship label. The label is width-folded and
// trimmed before the exact-string table lookup; no fuzzy matching.
func Lookup(label string) (Mapping, bool) {
	m, ok := mappings[normalizers.LabelKey(label)]
	return m, ok
}

// ByCode resolves a relationship code to its canonical entry.
func ByCode(code string) (Mapping, bool) {
	m, ok := byCode[code]
	return m, ok
}

// IsSelfReference reports whether a contact name or relationship label is one
// of the self-referential sentinels.
func IsSelfReference(s string) bool {
	return selfSentinels[normalizers.LabelKey(s)]
}

// All returns a copy of the full label table, for audit and tests.
func All() map[string]Mapping {
	out := make(map[string]Mapping, len(mappings))
	for label, m := range mappings {
		out[label] = m
	}
	return out
}
