package transform

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/sigsynth/sig/core"
)

// Clip limits the real and imaginary components to a random fraction of
// their peak magnitude, modeling front-end saturation.
type Clip struct {
	minFraction float64
	maxFraction float64
}

// NewClip creates a clipping transform with the retained peak fraction
// drawn uniformly from [minFraction, maxFraction].
func NewClip(minFraction, maxFraction float64) (*Clip, error) {
	if minFraction <= 0 || maxFraction > 1 || minFraction > maxFraction {
		return nil, fmt.Errorf("%w: clip fractions must satisfy 0 < min <= max <= 1: [%v, %v]",
			ErrInvalidArgument, minFraction, maxFraction)
	}
	return &Clip{minFraction: minFraction, maxFraction: maxFraction}, nil
}

// Name implements Transform.
func (t *Clip) Name() string { return "clip" }

// Spec implements Transform.
func (t *Clip) Spec() IOSpec { return IOSpec{In: Any(), Out: Same()} }

// Params implements Transform.
func (t *Clip) Params() map[string]float64 {
	return map[string]float64{"min_fraction": t.minFraction, "max_fraction": t.maxFraction}
}

// Apply implements Transform.
func (t *Clip) Apply(sig core.Signal, meta core.Metadata, rng *rand.Rand) (core.Signal, core.Metadata, error) {
	fraction := t.minFraction + rng.Float64()*(t.maxFraction-t.minFraction)

	var peak float64
	for _, v := range sig.IQ {
		peak = math.Max(peak, math.Max(math.Abs(real(v)), math.Abs(imag(v))))
	}
	limit := peak * fraction

	out := sig.Clone()
	for i, v := range out.IQ {
		out.IQ[i] = complex(clamp(real(v), limit), clamp(imag(v), limit))
	}
	return out, meta, nil
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// GainJitter scales the signal by a random gain drawn from +-maxDB.
type GainJitter struct {
	maxDB float64
}

// NewGainJitter creates a gain jitter bounded by +-maxDB decibels.
func NewGainJitter(maxDB float64) (*GainJitter, error) {
	if maxDB <= 0 || math.IsNaN(maxDB) {
		return nil, fmt.Errorf("%w: max gain must be > 0 dB: %v", ErrInvalidArgument, maxDB)
	}
	return &GainJitter{maxDB: maxDB}, nil
}

// Name implements Transform.
func (t *GainJitter) Name() string { return "gain_jitter" }

// Spec implements Transform.
func (t *GainJitter) Spec() IOSpec { return IOSpec{In: Any(), Out: Same()} }

// Params implements Transform.
func (t *GainJitter) Params() map[string]float64 {
	return map[string]float64{"max_db": t.maxDB}
}

// Apply implements Transform.
func (t *GainJitter) Apply(sig core.Signal, meta core.Metadata, rng *rand.Rand) (core.Signal, core.Metadata, error) {
	db := (rng.Float64()*2 - 1) * t.maxDB
	gain := complex(math.Pow(10, db/20), 0)

	out := sig.Clone()
	for i := range out.IQ {
		out.IQ[i] *= gain
	}
	return out, meta, nil
}

// Normalize rescales to unit average power. Deterministic; consumes no
// randomness.
type Normalize struct{}

// NewNormalize creates a unit-power normalization stage.
func NewNormalize() *Normalize { return &Normalize{} }

// Name implements Transform.
func (t *Normalize) Name() string { return "normalize" }

// Spec implements Transform.
func (t *Normalize) Spec() IOSpec { return IOSpec{In: Any(), Out: Same()} }

// Params implements Transform.
func (t *Normalize) Params() map[string]float64 { return nil }

// Apply implements Transform.
func (t *Normalize) Apply(sig core.Signal, meta core.Metadata, _ *rand.Rand) (core.Signal, core.Metadata, error) {
	return sig.NormalizePower(), meta, nil
}
