// Package tokenizer splits raw text lines into words, peeling punctuation and
// rejoining words hyphenated across line breaks. It is heuristic: neither
// step is guaranteed to be correct.
package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultPunctuation is the character set peeled from word edges, hyphens
// included.
const DefaultPunctuation = ".,():-—;\"!?•$%@“”#<>+=/[]*^'{}_■~\\|«»©&`£·"

// PunctuationSet is an explicit set of characters treated as punctuation.
type PunctuationSet map[rune]struct{}

func NewPunctuationSet(chars string) PunctuationSet {
	set := make(PunctuationSet, len(chars))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	return set
}

func (p PunctuationSet) Has(r rune) bool {
	_, ok := p[r]
	return ok
}

// StripPunctuation peels trailing and then leading punctuation from word,
// always leaving at least one rune in core.
func StripPunctuation(word string, p PunctuationSet) (prefix, core, suffix string) {
	runes := []rune(word)
	end := len(runes)
	for end > 1 && p.Has(runes[end-1]) {
		end--
	}
	start := 0
	for end-start > 1 && p.Has(runes[start]) {
		start++
	}
	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}

// ZapNonAlpha drops every rune that is not a letter.
func ZapNonAlpha(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, word)
}

// Words splits a line into whitespace separated words after NFC
// normalization.
func Words(line string) []string {
	return strings.Fields(norm.NFC.String(line))
}

// Core returns the punctuation-stripped words of a line, dropping any that
// are nothing but punctuation.
func Core(words []string, p PunctuationSet) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		_, core, _ := StripPunctuation(w, p)
		if r, size := utf8.DecodeRuneInString(core); size == len(core) && p.Has(r) {
			continue
		}
		out = append(out, core)
	}
	return out
}
