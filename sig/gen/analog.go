package gen

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/sigsynth/sig/conv"
	"github.com/cwbudde/sigsynth/sig/fir"
)

// Analog source parameters.
const (
	amFilterTaps   = 101
	amCutoff       = 0.25
	ssbCutoff      = 0.125
	ssbCarrierFreq = 0.125
	amCarrierLevel = 5.0
)

// genAM synthesizes the analog amplitude classes from a lowpass-filtered
// Gaussian message source. "am" adds a dominant carrier, "am-dsb" is the
// suppressed-carrier variant, "am-ssb" shifts the message to one sideband.
func genAM(name string, n int, rng *rand.Rand) ([]complex128, error) {
	cutoff := amCutoff
	if name == "am-ssb" {
		cutoff = ssbCutoff
	}

	source := make([]complex128, n)
	for i := range source {
		source[i] = complex(rng.NormFloat64(), 0)
	}

	taps, err := fir.Lowpass(amFilterTaps, cutoff)
	if err != nil {
		return nil, err
	}
	filtered, err := conv.Same(source, toComplex(taps))
	if err != nil {
		return nil, err
	}

	switch name {
	case "am-ssb":
		for i := range filtered {
			filtered[i] *= cmplx.Exp(complex(0, 2*math.Pi*ssbCarrierFreq*float64(i)))
		}
	case "am":
		for i := range filtered {
			filtered[i] += amCarrierLevel
		}
	}

	return filtered, nil
}

// genFM synthesizes wideband analog frequency modulation of a Gaussian
// message by phase integration.
func genFM(n int, rng *rand.Rand) ([]complex128, error) {
	out := make([]complex128, n)
	var acc float64
	for i := range out {
		acc += rng.NormFloat64()
		out[i] = cmplx.Exp(complex(0, math.Pi/4*acc))
	}
	return out, nil
}

// genTone synthesizes a single complex exponential at a frequency drawn
// uniformly from (-0.25, 0.25) cycles per sample.
func genTone(n int, rng *rand.Rand) ([]complex128, error) {
	freq := (rng.Float64()*2 - 1) * toneFreqBound

	out := make([]complex128, n)
	for i := range out {
		out[i] = cmplx.Exp(complex(0, 2*math.Pi*freq*float64(i)))
	}
	return out, nil
}
