package fir

import (
	"fmt"
	"math"
)

// RootRaisedCosine designs root-raised-cosine pulse shaping taps spanning
// spanSymbols symbol periods on each side of the peak, at sps samples per
// symbol with roll-off beta in (0, 1].
//
// The filter length is 2*spanSymbols*sps + 1. Taps are not normalized; the
// pulse peak sits at the center tap.
func RootRaisedCosine(spanSymbols, sps int, beta float64) ([]float64, error) {
	if spanSymbols <= 0 || sps <= 0 {
		return nil, ErrInvalidSpan
	}
	if beta <= 0 || beta > 1 || math.IsNaN(beta) {
		return nil, fmt.Errorf("fir: roll-off must be in (0, 1]: %v", beta)
	}

	ns := float64(sps)
	half := spanSymbols * sps
	taps := make([]float64, 2*half+1)

	for i := range taps {
		n := float64(i - half)

		// The closed form has removable singularities at n = +-Ns/(4*beta).
		if math.Abs(math.Abs(n*4*beta)-ns) < 1e-9 {
			taps[i] = 0.5 * ((1+beta)*math.Sin((1+beta)*math.Pi/(4*beta)) -
				(1-beta)*math.Cos((1-beta)*math.Pi/(4*beta)) +
				(4*beta/math.Pi)*math.Sin((1-beta)*math.Pi/(4*beta)))
			continue
		}

		t := n / ns
		taps[i] = 4 * beta / (math.Pi * (1 - 16*beta*beta*t*t))
		taps[i] *= math.Cos((1+beta)*math.Pi*t) +
			Sinc((1-beta)*t)*(1-beta)*math.Pi/(4*beta)
	}

	return taps, nil
}
