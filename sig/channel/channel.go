// Package channel applies physically-motivated impairments to clean
// baseband signals: additive white Gaussian noise at a target SNR, carrier
// frequency and phase offsets, fractional sample-rate offset, and causal
// multipath with optional Rayleigh fading taps.
//
// Noise and fading are seeded explicitly so an impaired signal is a pure
// function of (input, Config, seed).
package channel

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/sigsynth/sig/conv"
	"github.com/cwbudde/sigsynth/sig/core"
	"github.com/cwbudde/sigsynth/sig/resample"
)

// ErrInvalidConfiguration indicates a channel misconfiguration.
var ErrInvalidConfiguration = errors.New("channel: invalid configuration")

// Fading describes a random multipath profile with exponentially decaying
// tap power. Taps are drawn per Apply from the provided seed.
type Fading struct {
	// NumTaps is the channel length in samples.
	NumTaps int

	// PowerDecay is the per-tap power decay constant in taps; larger means
	// longer delay spread.
	PowerDecay float64
}

// Config enumerates the impairments to apply.
type Config struct {
	// SNRdB is the target signal-to-noise ratio. Must be finite.
	SNRdB float64

	// FreqOffset is the carrier offset in cycles per sample.
	FreqOffset float64

	// PhaseOffset is a static carrier phase rotation in radians.
	PhaseOffset float64

	// RateOffset is the fractional sample-rate offset, e.g. 20e-6 for
	// +20 ppm. Zero disables resampling.
	RateOffset float64

	// Taps is an explicit multipath impulse response. Mutually exclusive
	// with Fading.
	Taps []complex128

	// Fading, when non-nil, draws Rayleigh multipath taps per sample.
	Fading *Fading
}

// Channel applies a validated impairment configuration.
type Channel struct {
	cfg Config
}

// New validates the configuration eagerly and returns a Channel.
func New(cfg Config) (*Channel, error) {
	if math.IsNaN(cfg.SNRdB) || math.IsInf(cfg.SNRdB, 0) {
		return nil, fmt.Errorf("%w: SNR must be finite: %v", ErrInvalidConfiguration, cfg.SNRdB)
	}
	if math.IsNaN(cfg.FreqOffset) || math.Abs(cfg.FreqOffset) >= 0.5 {
		return nil, fmt.Errorf("%w: frequency offset must be in (-0.5, 0.5): %v", ErrInvalidConfiguration, cfg.FreqOffset)
	}
	if math.IsNaN(cfg.RateOffset) || math.Abs(cfg.RateOffset) >= 0.5 {
		return nil, fmt.Errorf("%w: rate offset must be in (-0.5, 0.5): %v", ErrInvalidConfiguration, cfg.RateOffset)
	}
	if len(cfg.Taps) > 0 && cfg.Fading != nil {
		return nil, fmt.Errorf("%w: explicit taps and fading are mutually exclusive", ErrInvalidConfiguration)
	}
	if cfg.Fading != nil {
		if cfg.Fading.NumTaps <= 0 || cfg.Fading.PowerDecay <= 0 {
			return nil, fmt.Errorf("%w: fading profile %+v", ErrInvalidConfiguration, *cfg.Fading)
		}
	}

	return &Channel{cfg: cfg}, nil
}

// Apply returns a new impaired signal and updated metadata. The input is
// never mutated. Impairments are applied in causal order: multipath, rate
// offset, carrier offset, additive noise.
func (c *Channel) Apply(sig core.Signal, meta core.Metadata, seed int64) (core.Signal, core.Metadata, error) {
	rng := rand.New(rand.NewSource(seed))

	iq := sig.IQ
	taps := c.cfg.Taps
	if c.cfg.Fading != nil {
		taps = rayleighTaps(c.cfg.Fading, rng)
	}

	if len(taps) > 0 {
		if len(taps) > len(iq) {
			return core.Signal{}, core.Metadata{}, fmt.Errorf("%w: %d taps exceed signal length %d",
				ErrInvalidConfiguration, len(taps), len(iq))
		}
		convolved, err := conv.Causal(iq, taps)
		if err != nil {
			return core.Signal{}, core.Metadata{}, err
		}
		iq = convolved
	}

	if c.cfg.RateOffset != 0 {
		resampled, err := applyRateOffset(iq, c.cfg.RateOffset)
		if err != nil {
			return core.Signal{}, core.Metadata{}, err
		}
		iq = resampled
	}

	if c.cfg.FreqOffset != 0 || c.cfg.PhaseOffset != 0 {
		iq = applyCarrierOffset(iq, c.cfg.FreqOffset, c.cfg.PhaseOffset)
	}

	out := core.NewSignal(iq, sig.SampleRate)
	out = addNoise(out, c.cfg.SNRdB, rng)

	meta.SNRdB = c.cfg.SNRdB
	meta.CenterFreqOffset += c.cfg.FreqOffset
	meta.RateOffset += c.cfg.RateOffset

	return out, meta, nil
}

// applyCarrierOffset rotates the signal by a linear phase ramp.
func applyCarrierOffset(iq []complex128, freq, phase float64) []complex128 {
	out := make([]complex128, len(iq))
	for i, v := range iq {
		out[i] = v * cmplx.Exp(complex(0, 2*math.Pi*freq*float64(i)+phase))
	}
	return out
}

// applyRateOffset resamples by 1+offset and restores the original length,
// padding with trailing zeros when the stream comes up short.
func applyRateOffset(iq []complex128, offset float64) ([]complex128, error) {
	// Offsets are in the ppm range, so the ratio approximation needs a
	// generous denominator bound to avoid collapsing to identity.
	r, err := resample.NewForRates(1, 1+offset, resample.WithMaxDenominator(1<<20))
	if err != nil {
		return nil, err
	}

	out := r.Process(iq)
	if len(out) >= len(iq) {
		return out[:len(iq)], nil
	}

	padded := make([]complex128, len(iq))
	copy(padded, out)
	return padded, nil
}

// addNoise adds seeded complex AWGN scaled so the realized SNR matches the
// target relative to the measured signal power.
func addNoise(sig core.Signal, snrDB float64, rng *rand.Rand) core.Signal {
	power := sig.MeanPower()
	if power <= 0 {
		return sig.Clone()
	}

	noisePower := power / math.Pow(10, snrDB/10)
	sigma := math.Sqrt(noisePower / 2)

	out := sig.Clone()
	for i := range out.IQ {
		out.IQ[i] += complex(rng.NormFloat64()*sigma, rng.NormFloat64()*sigma)
	}
	return out
}

// rayleighTaps draws a normalized multipath response with unit total power
// and exponentially decaying per-tap power. The first tap keeps the direct
// path dominant.
func rayleighTaps(f *Fading, rng *rand.Rand) []complex128 {
	taps := make([]complex128, f.NumTaps)

	taps[0] = 1
	for k := 1; k < len(taps); k++ {
		scale := math.Sqrt(math.Exp(-float64(k)/f.PowerDecay) / 2)
		taps[k] = complex(rng.NormFloat64()*scale, rng.NormFloat64()*scale)
	}

	var sum float64
	for _, t := range taps {
		sum += real(t)*real(t) + imag(t)*imag(t)
	}
	norm := complex(1/math.Sqrt(sum), 0)
	for k := range taps {
		taps[k] *= norm
	}

	return taps
}
