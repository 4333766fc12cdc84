package core

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Signal is a complex baseband waveform sampled at a fixed rate.
//
// A Signal is passed by value between pipeline stages; IQ is owned by the
// stage currently processing it. Stages that mutate samples must operate on
// a copy (see Clone) so earlier stages never observe the change.
type Signal struct {
	IQ         []complex128
	SampleRate float64
}

// NewSignal wraps iq at the given sample rate without copying.
func NewSignal(iq []complex128, sampleRate float64) Signal {
	return Signal{IQ: iq, SampleRate: sampleRate}
}

// Len returns the number of IQ samples.
func (s Signal) Len() int {
	return len(s.IQ)
}

// Duration returns the signal length in seconds.
func (s Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.IQ)) / s.SampleRate
}

// Clone returns a deep copy of the signal.
func (s Signal) Clone() Signal {
	iq := make([]complex128, len(s.IQ))
	copy(iq, s.IQ)
	return Signal{IQ: iq, SampleRate: s.SampleRate}
}

// Energy returns the total energy sum(|x[n]|^2).
//
// The squared magnitudes are computed with SIMD-accelerated vector math on
// the unpacked real and imaginary parts.
func (s Signal) Energy() float64 {
	n := len(s.IQ)
	if n == 0 {
		return 0
	}

	re := make([]float64, n)
	im := make([]float64, n)
	for i, v := range s.IQ {
		re[i] = real(v)
		im[i] = imag(v)
	}

	power := make([]float64, n)
	vecmath.Power(power, re, im)

	var sum float64
	for _, p := range power {
		sum += p
	}
	return sum
}

// MeanPower returns the average sample power Energy()/Len().
func (s Signal) MeanPower() float64 {
	if len(s.IQ) == 0 {
		return 0
	}
	return s.Energy() / float64(len(s.IQ))
}

// NormalizePower returns a copy scaled to unit average power.
// A zero signal is returned unchanged.
func (s Signal) NormalizePower() Signal {
	out := s.Clone()
	p := s.MeanPower()
	if p <= 0 {
		return out
	}

	scale := complex(1/math.Sqrt(p), 0)
	for i := range out.IQ {
		out.IQ[i] *= scale
	}
	return out
}

// HasNaN reports whether any sample contains a NaN or infinite component.
func (s Signal) HasNaN() bool {
	for _, v := range s.IQ {
		if math.IsNaN(real(v)) || math.IsNaN(imag(v)) ||
			math.IsInf(real(v), 0) || math.IsInf(imag(v), 0) {
			return true
		}
	}
	return false
}
