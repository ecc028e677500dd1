package chunk

import (
	"math"
	"strconv"
	"testing"
)

func TestExtrapolateLaplaceAndClamp(t *testing.T) {
	predicted := Predicted(1000)
	if math.Abs(predicted-0.404947) > 1e-6 {
		t.Fatalf("expected predicted ~0.404947, got %f", predicted)
	}
	raw := CanonicalRatio * (0.005 / predicted)
	if math.Abs(raw-0.00277) > 1e-4 {
		t.Fatalf("expected unclamped ~0.00277, got %f", raw)
	}
	if got := Extrapolate(5, 999); got != MinRatio {
		t.Fatalf("expected clamp to %v, got %v", MinRatio, got)
	}
	if got := Extrapolate(5000, 5000); got != MaxRatio {
		t.Fatalf("expected clamp to %v, got %v", MaxRatio, got)
	}
}

func TestExtrapolateInsideRange(t *testing.T) {
	// 400 types over 1000 corrected tokens lands inside the clamp range.
	got := Extrapolate(400, 999)
	want := CanonicalRatio * (0.4 / Predicted(1000))
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %f, got %f", want, got)
	}
	if got <= MinRatio || got >= MaxRatio {
		t.Fatalf("expected unclamped value, got %f", got)
	}
}

func TestSamplerClosesChunksPastWindow(t *testing.T) {
	s := NewSampler()
	for i := 0; i < 3; i++ {
		s.Observe("w" + strconv.Itoa(i))
		s.Add(5000)
	}
	ratios := s.Ratios()
	if len(ratios) != 1 {
		t.Fatalf("expected one closed chunk, got %d", len(ratios))
	}
	if math.Abs(ratios[0]-3.0/15000.0) > 1e-12 {
		t.Fatalf("unexpected ratio %f", ratios[0])
	}
	types, tokens := s.Pending()
	if types != 0 || tokens != 0 {
		t.Fatalf("expected reset chunk, got types=%d tokens=%d", types, tokens)
	}
}

func TestSamplerExactWindowDoesNotClose(t *testing.T) {
	s := NewSampler()
	s.Observe("a")
	s.Add(WindowTokens)
	if len(s.Ratios()) != 0 {
		t.Fatal("expected chunk to stay open at exactly the window size")
	}
	s.Add(1)
	if len(s.Ratios()) != 1 {
		t.Fatal("expected chunk to close once window exceeded")
	}
}

func TestTypeTokenDropsSmallTail(t *testing.T) {
	s := NewSampler()
	s.Observe("a")
	s.Add(10001)
	s.Observe("b")
	s.Add(100)
	got := s.TypeToken()
	want := 1.0 / 10001.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected tail dropped (%g), got %g", want, got)
	}
}

func TestTypeTokenKeepsLargeTail(t *testing.T) {
	s := NewSampler()
	s.Observe("a")
	s.Add(10001)
	for i := 0; i < 10; i++ {
		s.Observe("t" + strconv.Itoa(i))
	}
	s.Add(6000)
	tail := Extrapolate(10, 6000)
	want := (1.0/10001.0 + tail) / 2
	if got := s.TypeToken(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %g, got %g", want, got)
	}
}

func TestTypeTokenTailBoundary(t *testing.T) {
	withTail := func(tail int) *Sampler {
		s := NewSampler()
		s.Observe("a")
		s.Add(WindowTokens + 1)
		s.Observe("b")
		s.Add(tail)
		return s
	}
	full := 1.0 / float64(WindowTokens+1)

	if got := withTail(TailMinTokens).TypeToken(); math.Abs(got-full) > 1e-12 {
		t.Fatalf("expected a %d token tail to be dropped, got %f", TailMinTokens, got)
	}

	want := (full + Extrapolate(1, TailMinTokens+1)) / 2
	if got := withTail(TailMinTokens + 1).TypeToken(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected a %d token tail to be extrapolated to %f, got %f", TailMinTokens+1, want, got)
	}
}

func TestTypeTokenShortDocumentIsClamped(t *testing.T) {
	s := NewSampler()
	for i := 0; i < 6000; i++ {
		s.Observe("t" + strconv.Itoa(i))
		s.Add(1)
	}
	got := s.TypeToken()
	if got != MaxRatio {
		t.Fatalf("expected fully diverse short text to clamp to %v, got %v", MaxRatio, got)
	}

	small := NewSampler()
	for i := 0; i < 50; i++ {
		small.Observe("t" + strconv.Itoa(i))
		small.Add(1)
	}
	got = small.TypeToken()
	if got < MinRatio || got > MaxRatio {
		t.Fatalf("expected value in [%v, %v], got %v", MinRatio, MaxRatio, got)
	}
	if want := Extrapolate(50, 50); got != want {
		t.Fatalf("expected single extrapolated ratio %v, got %v", want, got)
	}
}

func TestTypeTokenEmptySampler(t *testing.T) {
	if got := NewSampler().TypeToken(); got != MinRatio {
		t.Fatalf("expected empty sampler to clamp to %v, got %v", MinRatio, got)
	}
}
