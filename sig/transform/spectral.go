package transform

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/sigsynth/sig/core"
)

// SpectralInversion conjugates the signal, mirroring its spectrum around
// DC. Deterministic; consumes no randomness.
type SpectralInversion struct{}

// NewSpectralInversion creates a spectral inversion stage.
func NewSpectralInversion() *SpectralInversion { return &SpectralInversion{} }

// Name implements Transform.
func (t *SpectralInversion) Name() string { return "spectral_inversion" }

// Spec implements Transform.
func (t *SpectralInversion) Spec() IOSpec { return IOSpec{In: Any(), Out: Same()} }

// Params implements Transform.
func (t *SpectralInversion) Params() map[string]float64 { return nil }

// Apply implements Transform.
func (t *SpectralInversion) Apply(sig core.Signal, meta core.Metadata, _ *rand.Rand) (core.Signal, core.Metadata, error) {
	out := sig.Clone()
	for i, v := range out.IQ {
		out.IQ[i] = complex(real(v), -imag(v))
	}

	meta.CenterFreqOffset = -meta.CenterFreqOffset
	return out, meta, nil
}

// TimeCrop extracts a random window of exactly n samples.
type TimeCrop struct {
	n int
}

// NewTimeCrop creates a crop to n samples.
func NewTimeCrop(n int) (*TimeCrop, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: crop length must be > 0: %d", ErrInvalidArgument, n)
	}
	return &TimeCrop{n: n}, nil
}

// Name implements Transform.
func (t *TimeCrop) Name() string { return "time_crop" }

// Spec implements Transform.
func (t *TimeCrop) Spec() IOSpec { return IOSpec{In: Any(), Out: Fixed(t.n)} }

// Params implements Transform.
func (t *TimeCrop) Params() map[string]float64 {
	return map[string]float64{"length": float64(t.n)}
}

// Apply implements Transform.
func (t *TimeCrop) Apply(sig core.Signal, meta core.Metadata, rng *rand.Rand) (core.Signal, core.Metadata, error) {
	if sig.Len() < t.n {
		return core.Signal{}, core.Metadata{}, fmt.Errorf("%w: cannot crop %d samples to %d",
			ErrInvalidArgument, sig.Len(), t.n)
	}

	start := 0
	if sig.Len() > t.n {
		start = rng.Intn(sig.Len() - t.n)
	}

	out := make([]complex128, t.n)
	copy(out, sig.IQ[start:start+t.n])

	meta.Start = clampIndex(meta.Start-start, t.n)
	meta.Stop = clampIndex(meta.Stop-start, t.n)

	return core.NewSignal(out, sig.SampleRate), meta, nil
}
