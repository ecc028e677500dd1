// Package volume aggregates per-page token counts of one volume into
// normalized feature counts and derived style statistics.
package volume

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"lexfeatures/internal/chunk"
	"lexfeatures/internal/features"
	"lexfeatures/internal/normalize"
)

var (
	ErrIDMismatch = errors.New("volume id mismatch")
	ErrNoLines    = errors.New("volume has no lines")
)

// Names of the derived scalar features.
const (
	SentenceLengthFeature = "#sentencelength"
	TypeTokenFeature      = "#typetoken"
	LineLengthFeature     = "#linelength"
)

// Counts maps a normalized token to its occurrences.
type Counts map[string]int

// Keys returns the features in lexical order.
func (c Counts) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c Counts) Sum() int {
	total := 0
	for _, v := range c {
		total += v
	}
	return total
}

// PageStats is per-page detail kept when Options.RetainPages is set.
type PageStats struct {
	Tokens       int
	BodyTokens   int
	HeaderTokens int
	Lines        int
	Sentences    int
	WordsPerLine float64
}

type Options struct {
	// RetainPages keeps per-page counts and statistics and normalizes with
	// the page-level rules, which also bundle roman numerals.
	RetainPages bool
}

// Aggregate is the fully computed feature set of one volume. It is not
// modified after construction.
type Aggregate struct {
	ID       string
	NumPages int

	PageCounts  []Counts
	Pages       []PageStats
	TotalCounts Counts

	TotalTokens   int
	BodyTokens    int
	HeaderTokens  int
	SentenceCount int
	LineCount     int

	TypeToken      float64
	SentenceLength float64
	LineLength     float64
}

// Build reads the feature file at path and aggregates it. The id embedded in
// the file must equal id.
func Build(id, path string, n *normalize.Normalizer, opts Options) (*Aggregate, error) {
	doc, err := features.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromDocument(id, doc, n, opts)
}

// FromDocument walks the pages of doc in order.
func FromDocument(id string, doc *features.Document, n *normalize.Normalizer, opts Options) (*Aggregate, error) {
	if doc.ID != id {
		return nil, fmt.Errorf("%w: requested %q, file has %q", ErrIDMismatch, id, doc.ID)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if n == nil {
		n = normalize.New(nil)
	}

	pages := doc.Features.Pages
	agg := &Aggregate{
		ID:          doc.ID,
		NumPages:    len(pages),
		TotalCounts: Counts{},
	}
	w := walker{n: n, opts: opts, sampler: chunk.NewSampler()}

	for _, page := range pages {
		counts, stats := w.page(page)
		agg.SentenceCount += stats.Sentences
		agg.LineCount += stats.Lines
		agg.BodyTokens += stats.BodyTokens
		agg.HeaderTokens += stats.HeaderTokens
		agg.TotalTokens += stats.Tokens

		for k, v := range counts {
			agg.TotalCounts[k] += v
		}
		if opts.RetainPages {
			agg.PageCounts = append(agg.PageCounts, counts)
			agg.Pages = append(agg.Pages, stats)
		}
	}

	if agg.LineCount == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoLines, agg.ID)
	}
	agg.TypeToken = w.sampler.TypeToken()
	agg.SentenceLength = float64(agg.BodyTokens) / float64(agg.SentenceCount+1)
	agg.LineLength = float64(agg.TotalTokens) / float64(agg.LineCount)
	return agg, nil
}

// Features returns every count as a share of TotalTokens plus the derived
// scalars, and the raw token total. An empty volume yields an empty map and 0.
func (a *Aggregate) Features() (map[string]float64, int) {
	out := map[string]float64{}
	if a.TotalTokens < 1 {
		return out, 0
	}
	for k, v := range a.TotalCounts {
		out[k] = float64(v) / float64(a.TotalTokens)
	}
	out[SentenceLengthFeature] = a.SentenceLength
	out[TypeTokenFeature] = a.TypeToken
	out[LineLengthFeature] = a.LineLength
	return out, a.TotalTokens
}

// Row is one named feature value.
type Row struct {
	Feature string
	Value   float64
}

// Rows lists the normalized counts in feature order followed by the three
// derived scalars. A volume without tokens has only the scalar rows.
func (a *Aggregate) Rows() []Row {
	rows := make([]Row, 0, len(a.TotalCounts)+3)
	if a.TotalTokens > 0 {
		for _, k := range a.TotalCounts.Keys() {
			rows = append(rows, Row{Feature: k, Value: float64(a.TotalCounts[k]) / float64(a.TotalTokens)})
		}
	}
	return append(rows,
		Row{Feature: SentenceLengthFeature, Value: a.SentenceLength},
		Row{Feature: TypeTokenFeature, Value: a.TypeToken},
		Row{Feature: LineLengthFeature, Value: a.LineLength},
	)
}

type walker struct {
	n       *normalize.Normalizer
	opts    Options
	sampler *chunk.Sampler
}

func (w *walker) page(p features.Page) (Counts, PageStats) {
	counts := Counts{}
	stats := PageStats{
		Lines:     int(*p.LineCount),
		Sentences: int(*p.Body.SentenceCount),
	}

	stats.BodyTokens += w.sampled(*p.Body.TokenPosCount, counts)
	for _, e := range *p.Header.TokenPosCount {
		key := normalize.Header(w.normalize(e.Token))
		for _, part := range e.Parts {
			stats.HeaderTokens += part.Count
			counts[key] += part.Count
		}
	}
	// Footers are rare and fold into the body.
	stats.BodyTokens += w.sampled(*p.Footer.TokenPosCount, counts)

	stats.Tokens = stats.BodyTokens + stats.HeaderTokens
	if stats.Lines > 0 {
		stats.WordsPerLine = float64(stats.Tokens) / float64(stats.Lines)
	}
	return counts, stats
}

// sampled adds body-like tokens to counts and feeds the type-token sampler.
// Types are recorded before normalization.
func (w *walker) sampled(entries features.TokenCounts, counts Counts) int {
	added := 0
	for _, e := range entries {
		w.sampler.Observe(strings.ToLower(e.Token))
		key := w.normalize(e.Token)
		for _, part := range e.Parts {
			added += part.Count
			counts[key] += part.Count
			w.sampler.Add(part.Count)
		}
	}
	return added
}

func (w *walker) normalize(tok string) string {
	if w.opts.RetainPages {
		return w.n.PageToken(tok)
	}
	return w.n.Token(tok)
}
