package gen

import (
	"fmt"
	"math/rand"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/sigsynth/sig/conv"
	"github.com/cwbudde/sigsynth/sig/fir"
	"github.com/cwbudde/sigsynth/sig/mod"
)

// Subcarrier modulation candidates and frame parameters for OFDM classes.
var (
	ofdmConstellations = []string{"bpsk", "qpsk", "16qam", "64qam", "256qam", "1024qam"}
	ofdmPrefixRatios   = []float64{0.125, 0.25}
)

const ofdmLowpassCutoff = 0.3

// genOFDM synthesizes a multicarrier waveform: constellation symbols mapped
// onto the occupied subcarriers, a 2x-oversampled IFFT per OFDM symbol, a
// cyclic prefix, optional lowpass sidelobe suppression, and a randomized
// start crop.
func genOFDM(cls mod.Class, n int, rng *rand.Rand) ([]complex128, error) {
	// The resolved request guarantees n covers at least one oversampled
	// symbol (2x subcarriers).
	numSub := cls.Subcarriers

	// Frame parameters drawn first, symbol data second.
	constName := ofdmConstellations[rng.Intn(len(ofdmConstellations))]
	cpLen := int(ofdmPrefixRatios[rng.Intn(len(ofdmPrefixRatios))] * float64(numSub))
	dcOff := rng.Intn(2) == 1
	suppress := rng.Intn(2) == 1

	points, _ := mod.Lookup(constName)

	numSymbols := n / numSub
	fftSize := 2 * numSub // oversampled by two: occupied band sits at +-0.25

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("gen: ofdm fft plan: %w", err)
	}

	symLen := fftSize + cpLen
	out := make([]complex128, 0, numSymbols*symLen)

	freq := make([]complex128, fftSize)
	time := make([]complex128, fftSize)

	for range numSymbols {
		for i := range freq {
			freq[i] = 0
		}

		// Occupied subcarriers fill the center of the shifted spectrum.
		base := numSub / 2
		for k := range numSub {
			freq[base+k] = points.Points[rng.Intn(len(points.Points))]
		}
		if dcOff {
			freq[fftSize/2] = 0
		}

		ifftShift(freq)
		if err := plan.Inverse(time, freq); err != nil {
			return nil, fmt.Errorf("gen: ofdm ifft: %w", err)
		}

		out = append(out, time[fftSize-cpLen:]...)
		out = append(out, time...)
	}

	if suppress {
		transition := (0.5 - ofdmLowpassCutoff) / 4
		taps, err := fir.Lowpass(fir.EstimateLength(transition), ofdmLowpassCutoff)
		if err != nil {
			return nil, err
		}
		out, err = conv.Same(out, toComplex(taps))
		if err != nil {
			return nil, err
		}
	}

	start := 0
	if len(out) > n {
		start = rng.Intn(len(out) - n)
	}

	return out[start : start+n], nil
}

// ifftShift rotates a spectrum by half its (even) length so the center bin
// moves to index zero.
func ifftShift(x []complex128) {
	half := len(x) / 2
	for i := range half {
		x[i], x[half+i] = x[half+i], x[i]
	}
}
