package transform

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/sigsynth/sig/core"
)

// TimeShift delays or advances the signal by a random integer number of
// samples, zero-padding the vacated region. Length is preserved.
type TimeShift struct {
	maxShift int
}

// NewTimeShift creates a time shift bounded by +-maxShift samples.
func NewTimeShift(maxShift int) (*TimeShift, error) {
	if maxShift < 0 {
		return nil, fmt.Errorf("%w: max shift must be >= 0: %d", ErrInvalidArgument, maxShift)
	}
	return &TimeShift{maxShift: maxShift}, nil
}

// Name implements Transform.
func (t *TimeShift) Name() string { return "time_shift" }

// Spec implements Transform.
func (t *TimeShift) Spec() IOSpec { return IOSpec{In: Any(), Out: Same()} }

// Params implements Transform.
func (t *TimeShift) Params() map[string]float64 {
	return map[string]float64{"max_shift": float64(t.maxShift)}
}

// Apply implements Transform.
func (t *TimeShift) Apply(sig core.Signal, meta core.Metadata, rng *rand.Rand) (core.Signal, core.Metadata, error) {
	shift := rng.Intn(2*t.maxShift+1) - t.maxShift

	out := core.NewSignal(make([]complex128, sig.Len()), sig.SampleRate)
	for i := range sig.IQ {
		j := i + shift
		if j >= 0 && j < len(out.IQ) {
			out.IQ[j] = sig.IQ[i]
		}
	}

	meta.Start = clampIndex(meta.Start+shift, sig.Len())
	meta.Stop = clampIndex(meta.Stop+shift, sig.Len())

	return out, meta, nil
}

// FreqShift rotates the signal by a random carrier offset drawn uniformly
// from +-maxOffset cycles per sample.
type FreqShift struct {
	maxOffset float64
}

// NewFreqShift creates a frequency shift bounded by +-maxOffset.
func NewFreqShift(maxOffset float64) (*FreqShift, error) {
	if maxOffset < 0 || maxOffset >= 0.5 || math.IsNaN(maxOffset) {
		return nil, fmt.Errorf("%w: max offset must be in [0, 0.5): %v", ErrInvalidArgument, maxOffset)
	}
	return &FreqShift{maxOffset: maxOffset}, nil
}

// Name implements Transform.
func (t *FreqShift) Name() string { return "freq_shift" }

// Spec implements Transform.
func (t *FreqShift) Spec() IOSpec { return IOSpec{In: Any(), Out: Same()} }

// Params implements Transform.
func (t *FreqShift) Params() map[string]float64 {
	return map[string]float64{"max_offset": t.maxOffset}
}

// Apply implements Transform.
func (t *FreqShift) Apply(sig core.Signal, meta core.Metadata, rng *rand.Rand) (core.Signal, core.Metadata, error) {
	offset := (rng.Float64()*2 - 1) * t.maxOffset

	out := sig.Clone()
	for i := range out.IQ {
		out.IQ[i] *= cmplx.Exp(complex(0, 2*math.Pi*offset*float64(i)))
	}

	meta.CenterFreqOffset += offset
	return out, meta, nil
}

// PhaseShift applies a random static phase rotation over (-pi, pi].
type PhaseShift struct{}

// NewPhaseShift creates a random phase rotation.
func NewPhaseShift() *PhaseShift { return &PhaseShift{} }

// Name implements Transform.
func (t *PhaseShift) Name() string { return "phase_shift" }

// Spec implements Transform.
func (t *PhaseShift) Spec() IOSpec { return IOSpec{In: Any(), Out: Same()} }

// Params implements Transform.
func (t *PhaseShift) Params() map[string]float64 { return nil }

// Apply implements Transform.
func (t *PhaseShift) Apply(sig core.Signal, meta core.Metadata, rng *rand.Rand) (core.Signal, core.Metadata, error) {
	rot := cmplx.Exp(complex(0, (rng.Float64()*2-1)*math.Pi))

	out := sig.Clone()
	for i := range out.IQ {
		out.IQ[i] *= rot
	}
	return out, meta, nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
