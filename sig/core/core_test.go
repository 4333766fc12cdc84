package core

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestSignalLenDuration(t *testing.T) {
	s := NewSignal(make([]complex128, 4096), 1e6)
	if s.Len() != 4096 {
		t.Fatalf("Len() = %d, want 4096", s.Len())
	}
	if got, want := s.Duration(), 4096.0/1e6; math.Abs(got-want) > 1e-12 {
		t.Fatalf("Duration() = %v, want %v", got, want)
	}
}

func TestCloneIndependence(t *testing.T) {
	s := NewSignal([]complex128{1, 2i, 3}, 1)
	c := s.Clone()
	c.IQ[0] = 99

	if s.IQ[0] != 1 {
		t.Fatalf("clone aliases original: %v", s.IQ[0])
	}
}

func TestEnergyAndMeanPower(t *testing.T) {
	s := NewSignal([]complex128{complex(3, 4), complex(0, 0)}, 1)
	if got := s.Energy(); math.Abs(got-25) > 1e-12 {
		t.Fatalf("Energy() = %v, want 25", got)
	}
	if got := s.MeanPower(); math.Abs(got-12.5) > 1e-12 {
		t.Fatalf("MeanPower() = %v, want 12.5", got)
	}
}

func TestNormalizePower(t *testing.T) {
	iq := make([]complex128, 256)
	for i := range iq {
		iq[i] = cmplx.Rect(3.5, float64(i)*0.1)
	}
	s := NewSignal(iq, 1).NormalizePower()

	if got := s.MeanPower(); math.Abs(got-1) > 1e-9 {
		t.Fatalf("MeanPower() after normalize = %v, want 1", got)
	}
}

func TestNormalizePowerZeroSignal(t *testing.T) {
	s := NewSignal(make([]complex128, 8), 1).NormalizePower()
	for i, v := range s.IQ {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
}

func TestHasNaN(t *testing.T) {
	s := NewSignal([]complex128{1, complex(math.NaN(), 0)}, 1)
	if !s.HasNaN() {
		t.Fatal("expected NaN detection")
	}
	s = NewSignal([]complex128{1, complex(0, math.Inf(1))}, 1)
	if !s.HasNaN() {
		t.Fatal("expected Inf detection")
	}
	s = NewSignal([]complex128{1, 2, 3}, 1)
	if s.HasNaN() {
		t.Fatal("false positive NaN detection")
	}
}

func TestDeriveSeedDeterministic(t *testing.T) {
	if DeriveSeed(42, 7) != DeriveSeed(42, 7) {
		t.Fatal("DeriveSeed not deterministic")
	}
}

func TestDeriveSeedDecorrelated(t *testing.T) {
	seen := make(map[int64]bool)
	for i := range 1000 {
		s := DeriveSeed(1, i)
		if seen[s] {
			t.Fatalf("seed collision at index %d", i)
		}
		seen[s] = true
	}

	// Adjacent indices must not produce adjacent seeds.
	a := DeriveSeed(1, 0)
	b := DeriveSeed(1, 1)
	if b-a == 1 || a-b == 1 {
		t.Fatalf("adjacent seeds are sequential: %d, %d", a, b)
	}
}
