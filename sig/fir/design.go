// Package fir provides the FIR filter designs used by waveform generation
// and channel impairments: windowed-sinc lowpass filters, root-raised-cosine
// pulse shaping, and Gaussian pre-modulation filters.
//
// All cutoff and bandwidth arguments are normalized to the sample rate
// (cycles per sample), so the usable range is (0, 0.5).
package fir

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by filter design functions.
var (
	ErrInvalidTaps   = errors.New("fir: tap count must be > 0")
	ErrInvalidCutoff = errors.New("fir: cutoff must be in (0, 0.5)")
	ErrInvalidSpan   = errors.New("fir: span must be > 0")
)

// defaultAttenuationDB is the stopband attenuation assumed when estimating
// filter lengths from a transition bandwidth.
const defaultAttenuationDB = 72.0

// EstimateLength returns an odd tap count sufficient for the given
// transition bandwidth at ~72 dB stopband attenuation (fred harris
// approximation: N = att / (22 * bw)).
func EstimateLength(transitionBW float64) int {
	if transitionBW <= 0 {
		return 1
	}

	n := int(math.Ceil(defaultAttenuationDB / (22 * transitionBW)))
	if n%2 == 0 {
		n++
	}
	if n < 3 {
		n = 3
	}

	return n
}

// Lowpass designs a Blackman-windowed sinc lowpass filter with unity DC
// gain. cutoff is the -6 dB edge in cycles per sample.
func Lowpass(numTaps int, cutoff float64) ([]float64, error) {
	if numTaps <= 0 {
		return nil, ErrInvalidTaps
	}
	if cutoff <= 0 || cutoff >= 0.5 || math.IsNaN(cutoff) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCutoff, cutoff)
	}

	taps := make([]float64, numTaps)
	win := Blackman(numTaps)
	center := 0.5 * float64(numTaps-1)

	var sum float64
	for n := range taps {
		t := float64(n) - center
		taps[n] = 2 * cutoff * Sinc(2*cutoff*t) * win[n]
		sum += taps[n]
	}

	if sum == 0 {
		return nil, errors.New("fir: designed zero-sum lowpass")
	}
	for i := range taps {
		taps[i] /= sum
	}

	return taps, nil
}
