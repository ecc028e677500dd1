// Package chunk samples lexical diversity over fixed token windows.
package chunk

const (
	// WindowTokens is the size a chunk must exceed before it is closed.
	WindowTokens = 10000
	// TailMinTokens is the leftover size above which the tail is still sampled
	// when full chunks exist.
	TailMinTokens = 5000

	// CanonicalRatio is the expected type-token ratio of a full window.
	CanonicalRatio = 0.2242
	MinRatio       = 0.1
	MaxRatio       = 0.6

	// Quadratic fit of type-token ratio against window size.
	fitIntercept = 4.549e-01
	fitLinear    = 5.294e-05
	fitQuadratic = 2.987e-09
)

// Sampler tracks the current chunk's distinct types and token count. Tokens
// must be fed in document order.
type Sampler struct {
	types  map[string]struct{}
	tokens int
	ratios []float64
}

func NewSampler() *Sampler {
	return &Sampler{types: map[string]struct{}{}}
}

// Observe registers a type in the current chunk without counting tokens.
func (s *Sampler) Observe(typ string) {
	s.types[typ] = struct{}{}
}

// Add counts n occurrences toward the current chunk and closes it once the
// running count exceeds WindowTokens.
func (s *Sampler) Add(n int) {
	s.tokens += n
	if s.tokens > WindowTokens {
		s.ratios = append(s.ratios, float64(len(s.types))/float64(s.tokens))
		s.types = map[string]struct{}{}
		s.tokens = 0
	}
}

// Ratios returns the ratios of the chunks closed so far.
func (s *Sampler) Ratios() []float64 {
	out := make([]float64, len(s.ratios))
	copy(out, s.ratios)
	return out
}

// Pending reports the leftover chunk: distinct types and tokens.
func (s *Sampler) Pending() (types, tokens int) {
	return len(s.types), s.tokens
}

// TypeToken finishes sampling and returns the mean ratio. A short tail is
// dropped when at least one full chunk exists; otherwise the tail is
// extrapolated to window size.
func (s *Sampler) TypeToken() float64 {
	ratios := s.Ratios()
	if len(ratios) < 1 || s.tokens > TailMinTokens {
		ratios = append(ratios, Extrapolate(len(s.types), s.tokens))
	}
	total := 0.0
	for _, r := range ratios {
		total += r
	}
	return total / float64(len(ratios))
}

// Extrapolate estimates the ratio a full window would show given the types and
// tokens of a partial one. The result is clamped to [MinRatio, MaxRatio].
func Extrapolate(types, tokens int) float64 {
	n := float64(tokens + 1)
	raw := float64(types) / n
	extrapolated := CanonicalRatio * (raw / Predicted(n))
	if extrapolated > MaxRatio {
		extrapolated = MaxRatio
	}
	if extrapolated < MinRatio {
		extrapolated = MinRatio
	}
	return extrapolated
}

// Predicted is the fitted baseline ratio for a window of n tokens.
func Predicted(n float64) float64 {
	return fitIntercept - fitLinear*n + fitQuadratic*n*n
}
