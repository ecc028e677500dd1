package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Lexicon is a set of known lowercase word forms.
type Lexicon map[string]struct{}

func (l Lexicon) Contains(word string) bool {
	_, ok := l[strings.ToLower(word)]
	return ok
}

// LoadLexicon reads a tab separated dictionary whose first column is the word.
func LoadLexicon(r io.Reader) (Lexicon, error) {
	lex := Lexicon{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		word, _, _ := strings.Cut(sc.Text(), "\t")
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		lex[word] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan lexicon: %w", err)
	}
	return lex, nil
}

func LoadLexiconFile(path string) (Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()
	return LoadLexicon(f)
}

// Rejoiner merges words broken by a line-end hyphen when the merged form is
// a known word.
type Rejoiner struct {
	Lexicon     Lexicon
	Punctuation PunctuationSet
}

func NewRejoiner(lex Lexicon, p PunctuationSet) *Rejoiner {
	if p == nil {
		p = NewPunctuationSet(DefaultPunctuation)
	}
	return &Rejoiner{Lexicon: lex, Punctuation: p}
}

// Rejoin splits each line into words. When a line ends in "-", the last word
// without its hyphen is joined to the first word of the next line; the join
// is kept only if the lexicon knows it, otherwise both lines keep their
// original words. Punctuation trailing the next word is kept on the merged
// word but ignored for the lookup.
func (r *Rejoiner) Rejoin(lines []string) [][]string {
	out := make([][]string, len(lines))
	for i, line := range lines {
		out[i] = Words(line)
	}
	for i := 0; i+1 < len(out); i++ {
		words, next := out[i], out[i+1]
		if len(words) == 0 || len(next) == 0 {
			continue
		}
		last := words[len(words)-1]
		if !strings.HasSuffix(last, "-") {
			continue
		}
		stem := strings.TrimSuffix(last, "-")
		if stem == "" {
			continue
		}
		_, core, _ := StripPunctuation(next[0], r.Punctuation)
		if !r.Lexicon.Contains(stem + core) {
			continue
		}
		merged := make([]string, len(words))
		copy(merged, words)
		merged[len(merged)-1] = stem + next[0]
		out[i] = merged
		out[i+1] = next[1:]
	}
	return out
}
