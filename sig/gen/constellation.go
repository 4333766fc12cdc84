package gen

import (
	"math/rand"

	"github.com/cwbudde/sigsynth/sig/conv"
	"github.com/cwbudde/sigsynth/sig/fir"
	"github.com/cwbudde/sigsynth/sig/mod"
)

// genConstellation synthesizes a pulse-shaped linear modulation: seeded
// symbol draws, zero-stuffed upsampling, root-raised-cosine shaping, then a
// crop to the requested length.
func genConstellation(cls mod.Class, n, sps int, beta float64, rng *rand.Rand) ([]complex128, error) {
	nSym := (n + sps - 1) / sps

	upsampled := make([]complex128, nSym*sps)
	for i := range nSym {
		upsampled[i*sps] = cls.Points[rng.Intn(len(cls.Points))]
	}

	taps, err := rrcTaps(sps, beta)
	if err != nil {
		return nil, err
	}

	shaped, err := conv.Same(upsampled, taps)
	if err != nil {
		return nil, err
	}

	return shaped[len(shaped)-n:], nil
}

// rrcTaps sizes the pulse-shaping filter from the roll-off. Excess
// bandwidth is defined relative to the symbol rate, so the transition
// bandwidth seen by the filter shrinks with the oversampling factor.
func rrcTaps(sps int, beta float64) ([]complex128, error) {
	length := fir.EstimateLength(beta / float64(sps))
	span := (length - 1) / 2
	if span < 1 {
		span = 1
	}

	taps, err := fir.RootRaisedCosine(span, sps, beta)
	if err != nil {
		return nil, err
	}

	return toComplex(taps), nil
}
