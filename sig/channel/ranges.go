package channel

import (
	"fmt"
	"math"
	"math/rand"
)

// Ranges bounds the impairment parameters drawn per sample. A zero value
// describes a clean channel with infinite SNR disabled (SNR fixed at the
// configured bounds).
type Ranges struct {
	// SNRMin and SNRMax bound the target SNR draw in dB.
	SNRMin float64
	SNRMax float64

	// FreqOffsetMax bounds the carrier offset draw at +-FreqOffsetMax
	// cycles per sample.
	FreqOffsetMax float64

	// PhaseRandom enables a uniform carrier phase draw over (-pi, pi].
	PhaseRandom bool

	// RateOffsetMax bounds the fractional sample-rate offset draw.
	RateOffsetMax float64

	// Fading, when non-nil, enables Rayleigh multipath on every sample.
	Fading *Fading
}

// Validate checks the ranges eagerly, so a misconfigured dataset fails at
// construction rather than at first sample generation.
func (r Ranges) Validate() error {
	if math.IsNaN(r.SNRMin) || math.IsNaN(r.SNRMax) ||
		math.IsInf(r.SNRMin, 0) || math.IsInf(r.SNRMax, 0) {
		return fmt.Errorf("%w: SNR bounds must be finite: [%v, %v]", ErrInvalidConfiguration, r.SNRMin, r.SNRMax)
	}
	if r.SNRMin > r.SNRMax {
		return fmt.Errorf("%w: SNR bounds inverted: [%v, %v]", ErrInvalidConfiguration, r.SNRMin, r.SNRMax)
	}
	if r.FreqOffsetMax < 0 || r.FreqOffsetMax >= 0.5 {
		return fmt.Errorf("%w: frequency offset bound must be in [0, 0.5): %v", ErrInvalidConfiguration, r.FreqOffsetMax)
	}
	if r.RateOffsetMax < 0 || r.RateOffsetMax >= 0.5 {
		return fmt.Errorf("%w: rate offset bound must be in [0, 0.5): %v", ErrInvalidConfiguration, r.RateOffsetMax)
	}
	if r.Fading != nil && (r.Fading.NumTaps <= 0 || r.Fading.PowerDecay <= 0) {
		return fmt.Errorf("%w: fading profile %+v", ErrInvalidConfiguration, *r.Fading)
	}
	return nil
}

// Draw samples one concrete configuration from the ranges.
func (r Ranges) Draw(rng *rand.Rand) Config {
	cfg := Config{
		SNRdB:  r.SNRMin + rng.Float64()*(r.SNRMax-r.SNRMin),
		Fading: r.Fading,
	}
	if r.FreqOffsetMax > 0 {
		cfg.FreqOffset = (rng.Float64()*2 - 1) * r.FreqOffsetMax
	}
	if r.PhaseRandom {
		cfg.PhaseOffset = (rng.Float64()*2 - 1) * math.Pi
	}
	if r.RateOffsetMax > 0 {
		cfg.RateOffset = (rng.Float64()*2 - 1) * r.RateOffsetMax
	}
	return cfg
}
