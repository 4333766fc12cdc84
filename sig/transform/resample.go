package transform

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/sigsynth/sig/core"
	"github.com/cwbudde/sigsynth/sig/resample"
)

// RandomResample stretches or compresses the time base by a random
// fractional rate drawn from +-maxOffset, then restores the original length
// by cropping or zero-padding.
type RandomResample struct {
	maxOffset float64
}

// NewRandomResample creates a randomized resampler bounded by +-maxOffset.
func NewRandomResample(maxOffset float64) (*RandomResample, error) {
	if maxOffset <= 0 || maxOffset >= 0.5 || math.IsNaN(maxOffset) {
		return nil, fmt.Errorf("%w: max rate offset must be in (0, 0.5): %v", ErrInvalidArgument, maxOffset)
	}
	return &RandomResample{maxOffset: maxOffset}, nil
}

// Name implements Transform.
func (t *RandomResample) Name() string { return "random_resample" }

// Spec implements Transform.
func (t *RandomResample) Spec() IOSpec { return IOSpec{In: Any(), Out: Same()} }

// Params implements Transform.
func (t *RandomResample) Params() map[string]float64 {
	return map[string]float64{"max_offset": t.maxOffset}
}

// Apply implements Transform.
func (t *RandomResample) Apply(sig core.Signal, meta core.Metadata, rng *rand.Rand) (core.Signal, core.Metadata, error) {
	offset := (rng.Float64()*2 - 1) * t.maxOffset

	r, err := resample.NewForRates(1, 1+offset, resample.WithMaxDenominator(1<<20))
	if err != nil {
		return core.Signal{}, core.Metadata{}, err
	}

	converted := r.Process(sig.IQ)
	out := make([]complex128, sig.Len())
	copy(out, converted)

	meta.RateOffset += offset
	return core.NewSignal(out, sig.SampleRate), meta, nil
}
