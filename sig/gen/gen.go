// Package gen implements the waveform generator: deterministic synthesis of
// labeled complex baseband signals for every class in the modulation
// catalog.
//
// Given the same (Config, seed) pair, Generate produces bit-identical
// samples and metadata. All randomness (symbol draws, randomized pulse
// shaping, start offsets) comes from a single generator seeded per call;
// nothing reads global random state.
package gen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/cwbudde/sigsynth/sig/core"
	"github.com/cwbudde/sigsynth/sig/mod"
)

// ErrInvalidParameter indicates a malformed generation request.
var ErrInvalidParameter = errors.New("gen: invalid parameter")

// Default pulse shaping parameters.
const (
	defaultRollOff      = 0.35
	defaultLinearSPS    = 2
	defaultFrequencySPS = 8
	randomRollOffMin    = 0.15
	randomRollOffMax    = 0.6
	defaultGaussianBT   = 0.35
	toneFreqBound       = 0.25
)

// Config describes one generation request.
type Config struct {
	// ClassName selects the modulation class from the catalog.
	ClassName string

	// NumSamples is the requested IQ sample count.
	NumSamples int

	// SamplesPerSymbol is the oversampling factor. Zero selects the family
	// default (2 for linear classes, 8 for frequency-keyed classes).
	SamplesPerSymbol int

	// SampleRate is carried into the produced Signal. Zero means normalized
	// rate 1.0.
	SampleRate float64

	// ExcessBandwidth overrides the pulse-shaping roll-off (linear classes)
	// or Gaussian BT product (GFSK/GMSK). Zero selects the default 0.35.
	ExcessBandwidth float64

	// RandomPulseShaping draws the roll-off (or FSK detection bandwidth)
	// from the per-sample generator instead of using fixed defaults.
	RandomPulseShaping bool
}

// Generator synthesizes signals for catalog classes.
type Generator struct {
	sampleRate float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSampleRate sets the default sample rate stamped on produced signals.
func WithSampleRate(rate float64) Option {
	return func(g *Generator) {
		if rate > 0 {
			g.sampleRate = rate
		}
	}
}

// New creates a waveform generator.
func New(opts ...Option) *Generator {
	g := &Generator{sampleRate: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Validate checks a generation request without synthesizing anything.
// Generate performs exactly these checks, so a request accepted here
// never fails for parameter reasons.
func (g *Generator) Validate(cfg Config) error {
	_, _, _, err := g.resolve(cfg)
	return err
}

// resolve validates the request and fills in family defaults.
func (g *Generator) resolve(cfg Config) (mod.Class, float64, int, error) {
	cls, ok := mod.Lookup(cfg.ClassName)
	if !ok {
		return mod.Class{}, 0, 0, fmt.Errorf("%w: unknown class %q", ErrInvalidParameter, cfg.ClassName)
	}

	if cfg.NumSamples <= 0 {
		return mod.Class{}, 0, 0, fmt.Errorf("%w: sample count must be > 0: %d", ErrInvalidParameter, cfg.NumSamples)
	}

	rate := cfg.SampleRate
	if rate == 0 {
		rate = g.sampleRate
	}
	if rate <= 0 {
		return mod.Class{}, 0, 0, fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidParameter, rate)
	}

	sps := cfg.SamplesPerSymbol
	if sps == 0 {
		if cls.Family.Continuous() {
			sps = defaultFrequencySPS
		} else {
			sps = defaultLinearSPS
		}
	}
	if cls.Family.Linear() && sps < 2 {
		// Fewer than two samples per symbol puts the symbol rate above the
		// Nyquist limit for the sample rate.
		return mod.Class{}, 0, 0, fmt.Errorf("%w: samples per symbol must be >= 2: %d", ErrInvalidParameter, sps)
	}
	if sps < 1 {
		return mod.Class{}, 0, 0, fmt.Errorf("%w: samples per symbol must be >= 1: %d", ErrInvalidParameter, sps)
	}

	if cls.Family == mod.FamilyOFDM && cfg.NumSamples < 2*cls.Subcarriers {
		return mod.Class{}, 0, 0, fmt.Errorf("%w: %d samples cannot carry one %s symbol",
			ErrInvalidParameter, cfg.NumSamples, cls.Name)
	}

	return cls, rate, sps, nil
}

// Generate deterministically produces a signal and its ground-truth
// metadata for the given request and seed.
func (g *Generator) Generate(cfg Config, seed int64) (core.Signal, core.Metadata, error) {
	cls, rate, sps, err := g.resolve(cfg)
	if err != nil {
		return core.Signal{}, core.Metadata{}, err
	}

	rng := rand.New(rand.NewSource(seed))

	var (
		iq   []complex128
		beta float64
	)

	switch {
	case cls.Family.Linear():
		beta = g.rollOff(cfg, rng)
		iq, err = genConstellation(cls, cfg.NumSamples, sps, beta, rng)
	case cls.Family.Continuous():
		iq, beta, err = genFrequency(cls, cfg, sps, rng)
	case cls.Family == mod.FamilyOFDM:
		iq, err = genOFDM(cls, cfg.NumSamples, rng)
	case cls.Family == mod.FamilyAM:
		iq, err = genAM(cls.Name, cfg.NumSamples, rng)
	case cls.Family == mod.FamilyFM:
		iq, err = genFM(cfg.NumSamples, rng)
	default:
		iq, err = genTone(cfg.NumSamples, rng)
	}
	if err != nil {
		return core.Signal{}, core.Metadata{}, err
	}

	sig := core.NewSignal(iq, rate).NormalizePower()

	// Samples-per-symbol is only meaningful for symbol-keyed families;
	// OFDM and analog classes carry zero.
	metaSPS := 0.0
	if cls.Family.Linear() || cls.Family.Continuous() {
		metaSPS = float64(sps)
	}

	meta := core.Metadata{
		ClassName:        cls.Name,
		BitsPerSymbol:    cls.BitsPerSymbol(),
		SamplesPerSymbol: metaSPS,
		ExcessBandwidth:  beta,
		Start:            0,
		Stop:             cfg.NumSamples,
	}

	return sig, meta, nil
}

// rollOff resolves the pulse-shaping roll-off for linear classes, drawing
// from rng when randomized shaping is requested. The draw happens before any
// symbol randomness so the sample stream stays reproducible.
func (g *Generator) rollOff(cfg Config, rng *rand.Rand) float64 {
	if cfg.RandomPulseShaping {
		return randomRollOffMin + rng.Float64()*(randomRollOffMax-randomRollOffMin)
	}
	if cfg.ExcessBandwidth > 0 {
		return cfg.ExcessBandwidth
	}
	return defaultRollOff
}

func toComplex(taps []float64) []complex128 {
	out := make([]complex128, len(taps))
	for i, h := range taps {
		out[i] = complex(h, 0)
	}
	return out
}
