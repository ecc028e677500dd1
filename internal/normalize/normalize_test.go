package normalize

import (
	"testing"

	"lexfeatures/internal/gazetteer"
)

func testGazetteer() *gazetteer.Gazetteer {
	g := gazetteer.Defaults()
	g.PersonalNames = gazetteer.NewSet("elizabeth", "may")
	g.PlaceNames = gazetteer.NewSet("london", "paris")
	g.RomanNumerals = gazetteer.NewSet("i", "ii", "iii", "iv", "xii")
	return g
}

func TestTokenCategories(t *testing.T) {
	n := New(testGazetteer())
	cases := map[string]string{
		"":          "",
		"2024":      ArabicNumeral,
		"1-2":       ArabicNumeral,
		"3rd":       "3rd",
		"Monday":    DayOfTheWeek,
		"MAY":       MonthOfYear,
		"Elizabeth": PersonalName,
		"London":    PlaceName,
		"ii":        "ii",
		"Whale":     "whale",
	}
	for in, want := range cases {
		if got := n.Token(in); got != want {
			t.Fatalf("Token(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestPageTokenRomanNumerals(t *testing.T) {
	n := New(testGazetteer())
	if got := n.PageToken("I"); got != "I" {
		t.Fatalf("expected uppercase I verbatim, got %q", got)
	}
	for _, tok := range []string{"ii", "iii", "iv", "XII", "i"} {
		if got := n.PageToken(tok); got != RomanNumeral {
			t.Fatalf("PageToken(%q): expected %q, got %q", tok, RomanNumeral, got)
		}
	}
	if got := n.PageToken("1850"); got != ArabicNumeral {
		t.Fatalf("expected numerals to win before roman lookup, got %q", got)
	}
	if got := n.PageToken("Paris"); got != PlaceName {
		t.Fatalf("expected place name, got %q", got)
	}
}

func TestNormalizeIsIdempotentOnTags(t *testing.T) {
	n := New(testGazetteer())
	for _, tok := range []string{"1850", "tuesday", "june", "elizabeth", "london", "iv", "quay"} {
		once := n.PageToken(tok)
		if twice := n.PageToken(once); twice != once {
			t.Fatalf("expected %q stable under renormalization, got %q", once, twice)
		}
		vol := n.Token(tok)
		if again := n.Token(vol); again != vol {
			t.Fatalf("expected %q stable under renormalization, got %q", vol, again)
		}
	}
}

func TestHeaderPrefix(t *testing.T) {
	n := New(testGazetteer())
	if got := Header(n.Token("Chapter")); got != "#headerchapter" {
		t.Fatalf("expected #headerchapter, got %q", got)
	}
	if got := Header(n.Token("12")); got != "#header#arabicnumeral" {
		t.Fatalf("expected #header#arabicnumeral, got %q", got)
	}
}

func TestNilGazetteerFallsBackToDefaults(t *testing.T) {
	n := New(nil)
	if got := n.Token("Friday"); got != DayOfTheWeek {
		t.Fatalf("expected day tag, got %q", got)
	}
	if got := n.Token("Elizabeth"); got != "elizabeth" {
		t.Fatalf("expected passthrough without name list, got %q", got)
	}
}
