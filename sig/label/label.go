// Package label maps generated signal metadata to training targets.
//
// An Encoder is built once for a fixed, ordered class list and then
// applied to per-sample metadata. Class membership is validated at
// construction so an unknown class name can never surface mid-epoch.
package label

import (
	"errors"
	"fmt"

	"github.com/cwbudde/sigsynth/sig/core"
	"github.com/cwbudde/sigsynth/sig/mod"
)

// ErrUnknownClass reports a class name absent from the modulation catalog
// or from the encoder's configured class list.
var ErrUnknownClass = errors.New("label: unknown class")

// Label is the training target derived from one sample's metadata.
type Label struct {
	// ClassIndex is the position of the class within the encoder's list.
	ClassIndex int

	// ClassName echoes the metadata class name.
	ClassName string

	// OneHot is a dense one-hot vector over the encoder's class list.
	// Nil unless WithOneHot was set.
	OneHot []float64

	// SNR is the signal-to-noise ratio target in dB.
	// Only populated when WithSNRTarget is set.
	SNR float64

	// Bandwidth is the normalized occupied-bandwidth regression target.
	// Only populated when WithBandwidthTarget is set.
	Bandwidth float64
}

type config struct {
	oneHot    bool
	snr       bool
	bandwidth bool
}

// Option configures an Encoder.
type Option func(*config)

// WithOneHot makes Encode emit a one-hot vector alongside the class index.
func WithOneHot() Option {
	return func(c *config) { c.oneHot = true }
}

// WithSNRTarget copies the per-sample SNR into the label as a
// regression target.
func WithSNRTarget() Option {
	return func(c *config) { c.snr = true }
}

// WithBandwidthTarget derives a normalized occupied-bandwidth estimate
// from the sample's pulse-shaping metadata.
func WithBandwidthTarget() Option {
	return func(c *config) { c.bandwidth = true }
}

// Encoder converts sample metadata into labels for a fixed class list.
type Encoder struct {
	classes []string
	index   map[string]int
	cfg     config
}

// NewEncoder builds an encoder over the given ordered class list.
// Every name must exist in the modulation catalog and appear only once.
func NewEncoder(classes []string, opts ...Option) (*Encoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("%w: empty class list", ErrUnknownClass)
	}

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	index := make(map[string]int, len(classes))
	for i, name := range classes {
		if _, ok := mod.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownClass, name)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate class %q", ErrUnknownClass, name)
		}
		index[name] = i
	}

	return &Encoder{
		classes: append([]string(nil), classes...),
		index:   index,
		cfg:     cfg,
	}, nil
}

// NumClasses returns the size of the encoder's class list.
func (e *Encoder) NumClasses() int { return len(e.classes) }

// Classes returns the encoder's ordered class list.
func (e *Encoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Targets returns the names of the enabled optional targets in a stable
// order, for diagnostics and content keying.
func (e *Encoder) Targets() []string {
	var targets []string
	if e.cfg.oneHot {
		targets = append(targets, "one_hot")
	}
	if e.cfg.snr {
		targets = append(targets, "snr")
	}
	if e.cfg.bandwidth {
		targets = append(targets, "bandwidth")
	}
	return targets
}

// Index returns the class index for name, or ErrUnknownClass.
func (e *Encoder) Index(name string) (int, error) {
	i, ok := e.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
	return i, nil
}

// Name returns the class name at index i, or ErrUnknownClass when i is
// outside the class list.
func (e *Encoder) Name(i int) (string, error) {
	if i < 0 || i >= len(e.classes) {
		return "", fmt.Errorf("%w: index %d out of range [0, %d)", ErrUnknownClass, i, len(e.classes))
	}
	return e.classes[i], nil
}

// Encode maps one sample's metadata to a Label. The class name must be
// in the encoder's list; the mapping is total over any dataset built
// from the same list.
func (e *Encoder) Encode(meta core.Metadata) (Label, error) {
	i, ok := e.index[meta.ClassName]
	if !ok {
		return Label{}, fmt.Errorf("%w: %q", ErrUnknownClass, meta.ClassName)
	}

	l := Label{ClassIndex: i, ClassName: meta.ClassName}
	if e.cfg.oneHot {
		l.OneHot = make([]float64, len(e.classes))
		l.OneHot[i] = 1
	}
	if e.cfg.snr {
		l.SNR = meta.SNRdB
	}
	if e.cfg.bandwidth {
		l.Bandwidth = occupiedBandwidth(meta)
	}
	return l, nil
}

// occupiedBandwidth estimates normalized two-sided occupied bandwidth
// from pulse-shaping metadata: (1+beta)/sps for linear modulations,
// falling back to the full band when samples-per-symbol is unknown.
func occupiedBandwidth(meta core.Metadata) float64 {
	if meta.SamplesPerSymbol <= 0 {
		return 1
	}
	bw := (1 + meta.ExcessBandwidth) / meta.SamplesPerSymbol
	if bw > 1 {
		bw = 1
	}
	return bw
}
