package resample

import (
	"math"
	"math/cmplx"
	"testing"
)

func tone(freq float64, n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = cmplx.Exp(complex(0, 2*math.Pi*freq*float64(i)))
	}
	return out
}

func TestInvalidRatio(t *testing.T) {
	if _, err := NewRational(0, 1); err != ErrInvalidRatio {
		t.Fatalf("err = %v, want ErrInvalidRatio", err)
	}
	if _, err := NewRational(2, -3); err != ErrInvalidRatio {
		t.Fatalf("err = %v, want ErrInvalidRatio", err)
	}
}

func TestInvalidRates(t *testing.T) {
	if _, err := NewForRates(0, 48000); err != ErrInvalidRate {
		t.Fatalf("err = %v, want ErrInvalidRate", err)
	}
	if _, err := NewForRates(math.NaN(), 1); err != ErrInvalidRate {
		t.Fatalf("err = %v, want ErrInvalidRate", err)
	}
}

func TestRatioReduction(t *testing.T) {
	r, err := NewRational(4, 6)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}
	up, down := r.Ratio()
	if up != 2 || down != 3 {
		t.Fatalf("ratio = %d/%d, want 2/3", up, down)
	}
}

func TestOutputLengthMatchesPrediction(t *testing.T) {
	r, err := NewRational(3, 2)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	in := tone(0.01, 1000)
	want := r.PredictOutputLen(len(in))
	out := r.Process(in)

	if len(out) != want {
		t.Fatalf("output len = %d, predicted %d", len(out), want)
	}
	if got := float64(len(out)) / float64(len(in)); math.Abs(got-1.5) > 0.01 {
		t.Fatalf("rate ratio = %v, want ~1.5", got)
	}
}

func TestUpsamplePreservesTone(t *testing.T) {
	r, err := NewRational(2, 1, WithQuality(QualityBest))
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	freq := 0.05
	out := r.Process(tone(freq, 4000))

	// The tone should appear at half the normalized frequency. Correlate
	// against the expected tone over the steady-state region.
	var corr complex128
	var energy float64
	for i := 500; i < len(out)-500; i++ {
		ref := cmplx.Exp(complex(0, 2*math.Pi*freq/2*float64(i)))
		corr += out[i] * cmplx.Conj(ref)
		energy += cmplx.Abs(out[i]) * cmplx.Abs(out[i])
	}

	coherence := cmplx.Abs(corr) / energy * cmplx.Abs(corr) / float64(len(out)-1000)
	if coherence < 0.95 {
		t.Fatalf("tone coherence after upsampling = %v, want > 0.95", coherence)
	}
}

func TestApproximateRatioSmallOffset(t *testing.T) {
	// A fractional rate offset of 16 ppm must be representable.
	up, down := approximateRatio(1.000016, 100000)
	got := float64(up) / float64(down)
	if math.Abs(got-1.000016) > 1e-4 {
		t.Fatalf("approximation = %d/%d = %v", up, down, got)
	}
}

func TestDeterministicProcessing(t *testing.T) {
	in := tone(0.02, 512)

	r1, _ := NewRational(3, 4)
	r2, _ := NewRational(3, 4)
	a := r1.Process(in)
	b := r2.Process(in)

	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("mismatch at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	r, _ := NewRational(2, 3)
	in := tone(0.01, 256)

	first := r.Process(in)
	r.Reset()
	second := r.Process(in)

	if len(first) != len(second) {
		t.Fatalf("length mismatch after reset: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("mismatch at %d after reset", i)
		}
	}
}
