package fir

import (
	"math"
	"testing"
)

func TestEstimateLengthOdd(t *testing.T) {
	for _, bw := range []float64{0.01, 0.05, 0.175, 0.4} {
		n := EstimateLength(bw)
		if n%2 == 0 {
			t.Fatalf("EstimateLength(%v) = %d, want odd", bw, n)
		}
		if n < 3 {
			t.Fatalf("EstimateLength(%v) = %d, want >= 3", bw, n)
		}
	}
}

func TestEstimateLengthShrinksWithBandwidth(t *testing.T) {
	if EstimateLength(0.01) <= EstimateLength(0.1) {
		t.Fatal("narrower transition band should need more taps")
	}
}

func TestLowpassUnityDCGain(t *testing.T) {
	taps, err := Lowpass(101, 0.2)
	if err != nil {
		t.Fatalf("Lowpass() error = %v", err)
	}

	var sum float64
	for _, h := range taps {
		sum += h
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("DC gain = %v, want 1", sum)
	}
}

func TestLowpassStopbandRejection(t *testing.T) {
	taps, err := Lowpass(101, 0.1)
	if err != nil {
		t.Fatalf("Lowpass() error = %v", err)
	}

	// Evaluate |H| at a frequency deep in the stopband.
	f := 0.35
	var re, im float64
	for k, h := range taps {
		re += h * math.Cos(2*math.Pi*f*float64(k))
		im -= h * math.Sin(2*math.Pi*f*float64(k))
	}
	mag := math.Hypot(re, im)
	if 20*math.Log10(mag) > -50 {
		t.Fatalf("stopband leakage = %v dB, want < -50", 20*math.Log10(mag))
	}
}

func TestLowpassInvalid(t *testing.T) {
	if _, err := Lowpass(0, 0.2); err == nil {
		t.Fatal("expected error for zero taps")
	}
	if _, err := Lowpass(11, 0.5); err == nil {
		t.Fatal("expected error for cutoff at Nyquist")
	}
	if _, err := Lowpass(11, -0.1); err == nil {
		t.Fatal("expected error for negative cutoff")
	}
}

func TestRootRaisedCosineShape(t *testing.T) {
	taps, err := RootRaisedCosine(9, 2, 0.35)
	if err != nil {
		t.Fatalf("RootRaisedCosine() error = %v", err)
	}
	if len(taps) != 2*9*2+1 {
		t.Fatalf("len = %d, want %d", len(taps), 2*9*2+1)
	}

	// Symmetric around the center tap.
	for i := range len(taps) / 2 {
		if math.Abs(taps[i]-taps[len(taps)-1-i]) > 1e-12 {
			t.Fatalf("taps not symmetric at %d: %v != %v", i, taps[i], taps[len(taps)-1-i])
		}
	}

	// Peak at center.
	center := len(taps) / 2
	for i, h := range taps {
		if i != center && math.Abs(h) >= taps[center] {
			t.Fatalf("tap %d (%v) exceeds center (%v)", i, h, taps[center])
		}
	}
}

func TestRootRaisedCosineDiscontinuity(t *testing.T) {
	// sps=4, beta=0.25 puts n = +-4 exactly at the singular point Ns/(4*beta).
	taps, err := RootRaisedCosine(4, 4, 0.25)
	if err != nil {
		t.Fatalf("RootRaisedCosine() error = %v", err)
	}
	for i, h := range taps {
		if math.IsNaN(h) || math.IsInf(h, 0) {
			t.Fatalf("tap %d is not finite: %v", i, h)
		}
	}
}

func TestRootRaisedCosineInvalid(t *testing.T) {
	if _, err := RootRaisedCosine(0, 2, 0.35); err == nil {
		t.Fatal("expected error for zero span")
	}
	if _, err := RootRaisedCosine(4, 2, 0); err == nil {
		t.Fatal("expected error for zero roll-off")
	}
}

func TestGaussianUnitSum(t *testing.T) {
	taps, err := Gaussian(8, 0.35)
	if err != nil {
		t.Fatalf("Gaussian() error = %v", err)
	}

	var sum float64
	for _, h := range taps {
		sum += h
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("sum = %v, want 1", sum)
	}
	if len(taps) != 2*4*8+1 {
		t.Fatalf("len = %d, want %d", len(taps), 2*4*8+1)
	}
}

func TestKaiserWindowEdges(t *testing.T) {
	n := 33
	if got := KaiserWindow(n/2, n, 8.6); math.Abs(got-1) > 1e-12 {
		t.Fatalf("center = %v, want 1", got)
	}
	if got := KaiserWindow(0, n, 8.6); got >= 0.01 {
		t.Fatalf("edge = %v, want near 0", got)
	}
}

func TestSinc(t *testing.T) {
	if Sinc(0) != 1 {
		t.Fatalf("Sinc(0) = %v, want 1", Sinc(0))
	}
	if math.Abs(Sinc(1)) > 1e-12 {
		t.Fatalf("Sinc(1) = %v, want 0", Sinc(1))
	}
}
