// Package features decodes per-page token count files produced by the
// upstream extraction pipeline.
package features

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMissingField = errors.New("missing required field")

type Document struct {
	ID       string    `json:"id"`
	Features *Features `json:"features"`
}

type Features struct {
	Pages []Page `json:"pages"`
}

type Page struct {
	LineCount *Count   `json:"lineCount"`
	Body      *Section `json:"body"`
	Header    *Section `json:"header"`
	Footer    *Section `json:"footer"`
}

type Section struct {
	SentenceCount *Count       `json:"sentenceCount"`
	TokenPosCount *TokenCounts `json:"tokenPosCount"`
}

// Count accepts either a JSON number or a numeric string.
type Count int

func (c *Count) UnmarshalJSON(raw []byte) error {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		return fmt.Errorf("count is null")
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	if n, err := strconv.Atoi(s); err == nil {
		*c = Count(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse count %q: %w", s, err)
	}
	*c = Count(int(f))
	return nil
}

// PartOfSpeech is one tag/count pair for a token.
type PartOfSpeech struct {
	Tag   string
	Count int
}

// TokenEntry is one token with its part-of-speech counts in file order.
type TokenEntry struct {
	Token string
	Parts []PartOfSpeech
}

func (e TokenEntry) Total() int {
	total := 0
	for _, p := range e.Parts {
		total += p.Count
	}
	return total
}

// TokenCounts keeps tokenPosCount entries in the order they appear in the
// file, since chunk sampling depends on document order.
type TokenCounts []TokenEntry

func (tc *TokenCounts) UnmarshalJSON(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("tokenPosCount: %w", err)
	}
	out := TokenCounts{}
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return fmt.Errorf("tokenPosCount key: %w", err)
		}
		token, _ := key.(string)
		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("tokenPosCount %q: %w", token, err)
		}
		entry := TokenEntry{Token: token}
		for dec.More() {
			tagTok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("tokenPosCount %q tag: %w", token, err)
			}
			tag, _ := tagTok.(string)
			var n json.Number
			if err := dec.Decode(&n); err != nil {
				return fmt.Errorf("tokenPosCount %q/%s: %w", token, tag, err)
			}
			count, err := n.Int64()
			if err != nil {
				return fmt.Errorf("tokenPosCount %q/%s: %w", token, tag, err)
			}
			entry.Parts = append(entry.Parts, PartOfSpeech{Tag: tag, Count: int(count)})
		}
		if err := expectDelim(dec, '}'); err != nil {
			return fmt.Errorf("tokenPosCount %q: %w", token, err)
		}
		out = append(out, entry)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return fmt.Errorf("tokenPosCount: %w", err)
	}
	*tc = out
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// Validate checks every key the aggregator reads.
func (d *Document) Validate() error {
	if d.Features == nil {
		return fmt.Errorf("%w: features", ErrMissingField)
	}
	if d.Features.Pages == nil {
		return fmt.Errorf("%w: features.pages", ErrMissingField)
	}
	for i, p := range d.Features.Pages {
		at := fmt.Sprintf("features.pages[%d]", i)
		if p.LineCount == nil {
			return fmt.Errorf("%w: %s.lineCount", ErrMissingField, at)
		}
		if p.Body == nil {
			return fmt.Errorf("%w: %s.body", ErrMissingField, at)
		}
		if p.Body.SentenceCount == nil {
			return fmt.Errorf("%w: %s.body.sentenceCount", ErrMissingField, at)
		}
		sections := []struct {
			name string
			s    *Section
		}{{"body", p.Body}, {"header", p.Header}, {"footer", p.Footer}}
		for _, sec := range sections {
			if sec.s == nil {
				return fmt.Errorf("%w: %s.%s", ErrMissingField, at, sec.name)
			}
			if sec.s.TokenPosCount == nil {
				return fmt.Errorf("%w: %s.%s.tokenPosCount", ErrMissingField, at, sec.name)
			}
		}
	}
	return nil
}
