package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"lexfeatures/internal/gazetteer"
)

const (
	ArabicNumeral = "#arabicnumeral"
	DayOfTheWeek  = "#dayoftheweek"
	MonthOfYear   = "#monthoftheyear"
	PersonalName  = "#personalname"
	PlaceName     = "#placename"
	RomanNumeral  = "#romannumeral"
	HeaderPrefix  = "#header"
)

// Normalizer maps raw tokens onto coarse categories. It holds no mutable
// state and is safe for concurrent use.
type Normalizer struct {
	g *gazetteer.Gazetteer
}

func New(g *gazetteer.Gazetteer) *Normalizer {
	if g == nil {
		g = gazetteer.Defaults()
	}
	return &Normalizer{g: g}
}

// Token lowercases tok and returns its category tag, or the lowercased token
// when no category applies.
func (n *Normalizer) Token(tok string) string {
	lower := strings.ToLower(tok)
	if tag, ok := n.category(lower); ok {
		return tag
	}
	return lower
}

// PageToken behaves like Token but also bundles roman numerals. The uppercase
// pronoun "I" is returned as is.
func (n *Normalizer) PageToken(tok string) string {
	if tok == "I" {
		return tok
	}
	lower := strings.ToLower(tok)
	if tag, ok := n.category(lower); ok {
		return tag
	}
	if n.g.RomanNumerals.Contains(lower) {
		return RomanNumeral
	}
	return lower
}

// Header marks a normalized token as header vocabulary.
func Header(normalized string) string {
	return HeaderPrefix + normalized
}

func (n *Normalizer) category(lower string) (string, bool) {
	if lower == "" {
		return "", false
	}
	if isNumeral(lower) {
		return ArabicNumeral, true
	}
	switch {
	case n.g.Days.Contains(lower):
		return DayOfTheWeek, true
	case n.g.Months.Contains(lower):
		return MonthOfYear, true
	case n.g.PersonalNames.Contains(lower):
		return PersonalName, true
	case n.g.PlaceNames.Contains(lower):
		return PlaceName, true
	}
	return "", false
}

func isNumeral(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsDigit(first) && unicode.IsDigit(last)
}
