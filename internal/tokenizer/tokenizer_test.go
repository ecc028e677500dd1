package tokenizer

import (
	"strings"
	"testing"
)

func TestStripPunctuation(t *testing.T) {
	p := NewPunctuationSet(DefaultPunctuation)
	cases := []struct {
		in, prefix, core, suffix string
	}{
		{`"Hello,"`, `"`, "Hello", `,"`},
		{"(whale)!", "(", "whale", ")!"},
		{"plain", "", "plain", ""},
		{"...", "", ".", ".."},
		{"«été»", "«", "été", "»"},
		{"", "", "", ""},
	}
	for _, c := range cases {
		prefix, core, suffix := StripPunctuation(c.in, p)
		if prefix != c.prefix || core != c.core || suffix != c.suffix {
			t.Fatalf("StripPunctuation(%q): expected (%q,%q,%q), got (%q,%q,%q)",
				c.in, c.prefix, c.core, c.suffix, prefix, core, suffix)
		}
	}
}

func TestStripPunctuationUsesGivenSet(t *testing.T) {
	prefix, core, suffix := StripPunctuation("-word-", NewPunctuationSet("."))
	if prefix != "" || core != "-word-" || suffix != "" {
		t.Fatalf("expected hyphens kept with a dot-only set, got (%q,%q,%q)", prefix, core, suffix)
	}
}

func TestZapNonAlpha(t *testing.T) {
	if got := ZapNonAlpha("don't-stop 1851!é"); got != "dontstopé" {
		t.Fatalf("expected dontstopé, got %q", got)
	}
}

func TestCoreDropsBarePunctuation(t *testing.T) {
	got := Core(Words(`"Call me Ishmael." — he said`), NewPunctuationSet(DefaultPunctuation))
	if strings.Join(got, " ") != "Call me Ishmael he said" {
		t.Fatalf("unexpected core words %v", got)
	}
}

func TestRejoinHyphens(t *testing.T) {
	lex, err := LoadLexicon(strings.NewReader("government\t120\nwhale\t40\n"))
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	r := NewRejoiner(lex, nil)

	got := r.Rejoin([]string{
		"the new govern-",
		"ment, said he",
		"a well-",
		"known fact",
		"trailing-",
	})
	want := [][]string{
		{"the", "new", "government,"},
		{"said", "he"},
		{"a", "well-"},
		{"known", "fact"},
		{"trailing-"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if strings.Join(got[i], "|") != strings.Join(want[i], "|") {
			t.Fatalf("line %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestRejoinHyphensChainedLines(t *testing.T) {
	lex, _ := LoadLexicon(strings.NewReader("Whale\n"))
	r := NewRejoiner(lex, nil)
	got := r.Rejoin([]string{"wha-", "le", "", "x"})
	if strings.Join(got[0], " ") != "whale" || len(got[1]) != 0 {
		t.Fatalf("expected merge into first line, got %v", got)
	}
}
