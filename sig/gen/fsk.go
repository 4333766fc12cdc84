package gen

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/sigsynth/sig/conv"
	"github.com/cwbudde/sigsynth/sig/fir"
	"github.com/cwbudde/sigsynth/sig/mod"
)

// genFrequency synthesizes phase-continuous frequency keying (FSK, MSK and
// their Gaussian-filtered variants). The configured samples-per-symbol acts
// as an oversampling rate; the effective symbol duration additionally
// scales with the modulation order, and tones are packed proportionally
// tighter around DC.
func genFrequency(cls mod.Class, cfg Config, oversampling int, rng *rand.Rand) ([]complex128, float64, error) {
	modIdx := cls.Family.ModulationIndex()
	spsEff := cls.Order * oversampling
	n := cfg.NumSamples

	// Detection bandwidth (and Gaussian BT product) drawn first, before any
	// symbol randomness, to keep the stream layout stable.
	bandwidth := 0.0
	if cfg.RandomPulseShaping {
		lo := modIdx / float64(oversampling)
		hi := 0.5 - lo
		if hi <= lo {
			lo, hi = 0.05, 0.45
		}
		bandwidth = lo + rng.Float64()*(hi-lo)
	}

	nSym := (n+1+spsEff-1)/spsEff + 1

	freqs := make([]complex128, 0, nSym*spsEff+1)
	// Leading zero sample starts the integrator at zero phase.
	freqs = append(freqs, 0)
	for range nSym {
		tone := cls.Tones[rng.Intn(len(cls.Tones))] / float64(oversampling)
		for range spsEff {
			freqs = append(freqs, complex(tone, 0))
		}
	}

	if cls.Family.Gaussian() {
		bt := bandwidth
		if bt <= 0 {
			bt = cfg.ExcessBandwidth
		}
		if bt <= 0 {
			bt = defaultGaussianBT
		}
		bandwidth = bt

		taps, err := fir.Gaussian(spsEff, bt)
		if err != nil {
			return nil, 0, err
		}
		filtered, err := conv.Same(freqs, toComplex(taps))
		if err != nil {
			return nil, 0, err
		}
		freqs = filtered
	}

	// Continuous-phase modulation: integrate the instantaneous frequency.
	modulated := make([]complex128, len(freqs))
	var phase float64
	for i, f := range freqs {
		phase += real(f) * modIdx * math.Pi
		modulated[i] = cmplx.Exp(complex(0, phase))
	}

	if cfg.RandomPulseShaping {
		// A randomized lowpass models a noisy detector / burst extractor.
		filtered, err := randomLowpass(modulated, bandwidth)
		if err != nil {
			return nil, 0, err
		}
		modulated = filtered
	}

	return modulated[len(modulated)-n:], bandwidth, nil
}

// randomLowpass applies a Blackman-windowed lowpass with the given cutoff.
func randomLowpass(x []complex128, cutoff float64) ([]complex128, error) {
	transition := (0.5 - cutoff) / 4
	taps, err := fir.Lowpass(fir.EstimateLength(transition), cutoff)
	if err != nil {
		return nil, err
	}

	return conv.Same(x, toComplex(taps))
}
