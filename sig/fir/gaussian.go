package fir

import (
	"fmt"
	"math"
)

// gaussianSpanSymbols is the pre-modulation filter duration in symbols.
const gaussianSpanSymbols = 4

// Gaussian designs a Gaussian pre-modulation filter for GFSK/GMSK with the
// given samples per symbol and bandwidth-time product bt. Taps are
// normalized to unit sum so the filter preserves frequency deviation.
func Gaussian(sps int, bt float64) ([]float64, error) {
	if sps <= 0 {
		return nil, ErrInvalidSpan
	}
	if bt <= 0 || math.IsNaN(bt) {
		return nil, fmt.Errorf("fir: BT product must be > 0: %v", bt)
	}

	half := gaussianSpanSymbols * sps
	taps := make([]float64, 2*half+1)

	k := -2 * math.Pi * math.Pi * bt * bt / math.Ln2
	var sum float64
	for i := range taps {
		t := float64(i-half) / float64(sps)
		taps[i] = math.Exp(k * t * t)
		sum += taps[i]
	}

	for i := range taps {
		taps[i] /= sum
	}

	return taps, nil
}
