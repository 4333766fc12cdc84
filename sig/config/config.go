// Package config loads dataset descriptions from YAML and builds the
// corresponding sampler graph. All validation is eager: a configuration
// either fails in Parse/Build or produces a dataset whose Next never
// fails for configuration reasons.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/sigsynth/sig/channel"
	"github.com/cwbudde/sigsynth/sig/dataset"
	"github.com/cwbudde/sigsynth/sig/label"
	"github.com/cwbudde/sigsynth/sig/transform"
)

// ErrInvalidConfig indicates a configuration file that cannot be used.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// File is the YAML document describing one dataset.
type File struct {
	Classes            []string `yaml:"classes"`
	SamplesPerClass    int      `yaml:"samples_per_class"`
	IQSamples          int      `yaml:"iq_samples"`
	SamplesPerSymbol   int      `yaml:"samples_per_symbol"`
	SampleRate         float64  `yaml:"sample_rate"`
	ExcessBandwidth    float64  `yaml:"excess_bandwidth"`
	RandomPulseShaping bool     `yaml:"random_pulse_shaping"`
	Seed               int64    `yaml:"seed"`

	Impairments *Impairments `yaml:"impairments"`
	Pipeline    []Stage      `yaml:"pipeline"`
	Label       *Label       `yaml:"label"`

	// Cache is the LRU capacity in samples; zero disables caching.
	Cache int `yaml:"cache"`
}

// Impairments mirrors channel.Ranges.
type Impairments struct {
	SNRMin        float64 `yaml:"snr_min"`
	SNRMax        float64 `yaml:"snr_max"`
	FreqOffsetMax float64 `yaml:"freq_offset_max"`
	PhaseRandom   bool    `yaml:"phase_random"`
	RateOffsetMax float64 `yaml:"rate_offset_max"`
	Fading        *Fading `yaml:"fading"`
}

// Fading mirrors channel.Fading.
type Fading struct {
	NumTaps    int     `yaml:"num_taps"`
	PowerDecay float64 `yaml:"power_decay"`
}

// Stage is one pipeline entry: a registered transform name plus its
// numeric parameters.
type Stage struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params"`
}

// Label selects which training targets the encoder emits.
type Label struct {
	OneHot          bool `yaml:"one_hot"`
	SNRTarget       bool `yaml:"snr_target"`
	BandwidthTarget bool `yaml:"bandwidth_target"`
}

// Load reads and parses a YAML dataset description from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML dataset description. Unknown fields are rejected
// so typos fail loudly.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &f, nil
}

// Build constructs the sampler graph: Generator, Channel ranges,
// Pipeline, Encoder and Dataset, optionally wrapped in an LRU cache.
func (f *File) Build() (dataset.Sampler, error) {
	cfg, err := f.datasetConfig()
	if err != nil {
		return nil, err
	}

	d, err := dataset.New(cfg)
	if err != nil {
		return nil, err
	}
	if f.Cache > 0 {
		return dataset.NewCached(d, f.Cache)
	}
	return d, nil
}

// Hash returns the content key of the built dataset configuration.
func (f *File) Hash() (uint64, error) {
	cfg, err := f.datasetConfig()
	if err != nil {
		return 0, err
	}
	return dataset.ConfigHash(cfg), nil
}

func (f *File) datasetConfig() (dataset.Config, error) {
	cfg := dataset.Config{
		Classes:            f.Classes,
		SamplesPerClass:    f.SamplesPerClass,
		NumIQSamples:       f.IQSamples,
		SamplesPerSymbol:   f.SamplesPerSymbol,
		SampleRate:         f.SampleRate,
		ExcessBandwidth:    f.ExcessBandwidth,
		RandomPulseShaping: f.RandomPulseShaping,
		Seed:               f.Seed,
	}

	if f.Impairments != nil {
		ranges := &channel.Ranges{
			SNRMin:        f.Impairments.SNRMin,
			SNRMax:        f.Impairments.SNRMax,
			FreqOffsetMax: f.Impairments.FreqOffsetMax,
			PhaseRandom:   f.Impairments.PhaseRandom,
			RateOffsetMax: f.Impairments.RateOffsetMax,
		}
		if fd := f.Impairments.Fading; fd != nil {
			ranges.Fading = &channel.Fading{NumTaps: fd.NumTaps, PowerDecay: fd.PowerDecay}
		}
		cfg.Impairments = ranges
	}

	if len(f.Pipeline) > 0 {
		stages := make([]transform.Transform, 0, len(f.Pipeline))
		for _, s := range f.Pipeline {
			t, err := transform.Build(s.Name, s.Params)
			if err != nil {
				return dataset.Config{}, fmt.Errorf("%w: pipeline stage %q: %v", ErrInvalidConfig, s.Name, err)
			}
			stages = append(stages, t)
		}
		p, err := transform.NewPipeline(stages...)
		if err != nil {
			return dataset.Config{}, fmt.Errorf("config: %w", err)
		}
		cfg.Pipeline = p
	}

	if f.Label != nil {
		var opts []label.Option
		if f.Label.OneHot {
			opts = append(opts, label.WithOneHot())
		}
		if f.Label.SNRTarget {
			opts = append(opts, label.WithSNRTarget())
		}
		if f.Label.BandwidthTarget {
			opts = append(opts, label.WithBandwidthTarget())
		}
		enc, err := label.NewEncoder(f.Classes, opts...)
		if err != nil {
			return dataset.Config{}, fmt.Errorf("config: %w", err)
		}
		cfg.Encoder = enc
	}

	return cfg, nil
}
