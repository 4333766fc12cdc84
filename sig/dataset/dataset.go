// Package dataset assembles generator, channel, transforms and labels
// into a deterministic, indexable signal dataset.
//
// A Dataset is a pure function of its configuration and the base seed:
// Next(i) regenerates sample i bit-identically on every call, on any
// machine, in any order. There is no internal iteration state, which
// makes samplers trivially safe to share across goroutines.
package dataset

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/cwbudde/sigsynth/sig/channel"
	"github.com/cwbudde/sigsynth/sig/core"
	"github.com/cwbudde/sigsynth/sig/gen"
	"github.com/cwbudde/sigsynth/sig/label"
	"github.com/cwbudde/sigsynth/sig/transform"
)

var (
	// ErrInvalidConfiguration indicates a dataset that cannot be built.
	ErrInvalidConfiguration = errors.New("dataset: invalid configuration")

	// ErrRuntimeFailure indicates a sample that could not be produced,
	// e.g. a non-finite value after the transform pipeline. Samples are
	// never silently retried or clamped.
	ErrRuntimeFailure = errors.New("dataset: runtime failure")
)

// Seed stream offsets per sample, so the generator, the channel draw,
// the channel noise and the pipeline consume independent streams.
const (
	seedStreamChannelDraw = 1
	seedStreamChannel     = 2
	seedStreamPipeline    = 3
)

// Sample is one fully materialized dataset element.
type Sample struct {
	Index  int
	Seed   int64
	Signal core.Signal
	Meta   core.Metadata
	Label  label.Label
}

// Sampler produces samples by index. Implementations must be safe for
// concurrent use and must return bit-identical results for equal indices.
type Sampler interface {
	Next(index int) (Sample, error)
	Len() int
}

// Config describes a class-balanced dataset grid.
type Config struct {
	// Classes is the ordered modulation class list. Sample index i maps
	// to class i/SamplesPerClass.
	Classes []string

	// SamplesPerClass is the number of samples generated per class.
	SamplesPerClass int

	// NumIQSamples is the requested signal length before transforms.
	NumIQSamples int

	// SamplesPerSymbol forwards to the generator; zero selects the
	// per-family default.
	SamplesPerSymbol int

	// SampleRate stamps produced signals; zero means normalized rate 1.
	SampleRate float64

	// ExcessBandwidth forwards to the generator; zero selects 0.35.
	ExcessBandwidth float64

	// RandomPulseShaping draws pulse shaping per sample.
	RandomPulseShaping bool

	// Seed is the base seed of the whole dataset.
	Seed int64

	// Impairments, when non-nil, draws one channel configuration per
	// sample from these ranges.
	Impairments *channel.Ranges

	// Pipeline, when non-nil, is applied after the channel.
	Pipeline *transform.Pipeline

	// Encoder, when non-nil, attaches a label to every sample. Its class
	// list must cover Classes.
	Encoder *label.Encoder
}

// Dataset is the deterministic grid sampler.
type Dataset struct {
	cfg Config
	gen *gen.Generator
}

// New validates the configuration eagerly and builds the dataset.
// A misconfiguration is reported here, never at first Next call.
func New(cfg Config) (*Dataset, error) {
	if len(cfg.Classes) == 0 {
		return nil, fmt.Errorf("%w: empty class list", ErrInvalidConfiguration)
	}
	if cfg.SamplesPerClass <= 0 {
		return nil, fmt.Errorf("%w: samples per class must be > 0: %d", ErrInvalidConfiguration, cfg.SamplesPerClass)
	}
	if cfg.NumIQSamples <= 0 {
		return nil, fmt.Errorf("%w: IQ sample count must be > 0: %d", ErrInvalidConfiguration, cfg.NumIQSamples)
	}

	g := gen.New(gen.WithSampleRate(cfg.SampleRate))
	seen := make(map[string]struct{}, len(cfg.Classes))
	for _, name := range cfg.Classes {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate class %q", ErrInvalidConfiguration, name)
		}
		seen[name] = struct{}{}

		// Every class must be generatable with these parameters, so a bad
		// grid fails here instead of on every Next.
		if err := g.Validate(cfg.generation(name)); err != nil {
			return nil, fmt.Errorf("%w: class %q: %v", ErrInvalidConfiguration, name, err)
		}
	}
	if cfg.Impairments != nil {
		if err := cfg.Impairments.Validate(); err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
	}
	if cfg.Pipeline != nil {
		if err := checkPipelineContract(cfg.Pipeline, cfg.NumIQSamples); err != nil {
			return nil, err
		}
	}
	if cfg.Encoder != nil {
		for _, name := range cfg.Classes {
			if _, err := cfg.Encoder.Index(name); err != nil {
				return nil, fmt.Errorf("%w: encoder does not cover class %q", ErrInvalidConfiguration, name)
			}
		}
	}

	return &Dataset{cfg: cfg, gen: g}, nil
}

// generation is the per-class generator request for this grid.
func (c Config) generation(className string) gen.Config {
	return gen.Config{
		ClassName:          className,
		NumSamples:         c.NumIQSamples,
		SamplesPerSymbol:   c.SamplesPerSymbol,
		SampleRate:         c.SampleRate,
		ExcessBandwidth:    c.ExcessBandwidth,
		RandomPulseShaping: c.RandomPulseShaping,
	}
}

// checkPipelineContract rejects pipelines whose input contract cannot
// accept the generated signal length.
func checkPipelineContract(p *transform.Pipeline, n int) error {
	in := p.Spec().In
	if in.Kind == transform.LenFixed && in.N != n {
		return fmt.Errorf("%w: pipeline requires input length %d, dataset produces %d",
			ErrInvalidConfiguration, in.N, n)
	}
	return nil
}

// Len returns the total number of samples in the grid.
func (d *Dataset) Len() int {
	return len(d.cfg.Classes) * d.cfg.SamplesPerClass
}

// OutputLen returns the signal length of produced samples after the
// pipeline, which may differ from NumIQSamples when the last transform
// fixes its output length.
func (d *Dataset) OutputLen() int {
	if d.cfg.Pipeline != nil {
		if out := d.cfg.Pipeline.Spec().Out; out.Kind == transform.LenFixed {
			return out.N
		}
	}
	return d.cfg.NumIQSamples
}

// Next regenerates sample index from scratch. The result depends only on
// the dataset configuration, the base seed and the index.
func (d *Dataset) Next(index int) (Sample, error) {
	if index < 0 || index >= d.Len() {
		return Sample{}, fmt.Errorf("%w: index %d out of range [0, %d)", ErrInvalidConfiguration, index, d.Len())
	}

	className := d.cfg.Classes[index/d.cfg.SamplesPerClass]
	seed := core.DeriveSeed(d.cfg.Seed, index)

	sig, meta, err := d.gen.Generate(d.cfg.generation(className), seed)
	if err != nil {
		return Sample{}, fmt.Errorf("dataset: sample %d: %w", index, err)
	}
	meta.ClassIndex = index / d.cfg.SamplesPerClass

	if d.cfg.Impairments != nil {
		drawRNG := rand.New(rand.NewSource(core.DeriveSeed(seed, seedStreamChannelDraw)))
		ch, err := channel.New(d.cfg.Impairments.Draw(drawRNG))
		if err != nil {
			return Sample{}, fmt.Errorf("dataset: sample %d: %w", index, err)
		}
		sig, meta, err = ch.Apply(sig, meta, core.DeriveSeed(seed, seedStreamChannel))
		if err != nil {
			return Sample{}, fmt.Errorf("dataset: sample %d: %w", index, err)
		}
	}

	if d.cfg.Pipeline != nil {
		rng := rand.New(rand.NewSource(core.DeriveSeed(seed, seedStreamPipeline)))
		sig, meta, err = d.cfg.Pipeline.Apply(sig, meta, rng)
		if err != nil {
			return Sample{}, fmt.Errorf("dataset: sample %d: %w", index, err)
		}
	}

	if sig.HasNaN() {
		return Sample{}, fmt.Errorf("%w: sample %d (%s) contains non-finite values", ErrRuntimeFailure, index, className)
	}

	sample := Sample{Index: index, Seed: seed, Signal: sig, Meta: meta}
	if d.cfg.Encoder != nil {
		l, err := d.cfg.Encoder.Encode(meta)
		if err != nil {
			return Sample{}, fmt.Errorf("dataset: sample %d: %w", index, err)
		}
		sample.Label = l
	}
	return sample, nil
}
