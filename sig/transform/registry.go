package transform

import (
	"fmt"
	"sort"
)

// Builder constructs a transform from named numeric parameters, as they
// appear in a pipeline configuration document.
type Builder func(params map[string]float64) (Transform, error)

var registry = map[string]Builder{
	"time_shift": func(p map[string]float64) (Transform, error) {
		return NewTimeShift(int(p["max_shift"]))
	},
	"freq_shift": func(p map[string]float64) (Transform, error) {
		return NewFreqShift(p["max_offset"])
	},
	"phase_shift": func(p map[string]float64) (Transform, error) {
		return NewPhaseShift(), nil
	},
	"random_resample": func(p map[string]float64) (Transform, error) {
		return NewRandomResample(p["max_offset"])
	},
	"clip": func(p map[string]float64) (Transform, error) {
		return NewClip(p["min_fraction"], p["max_fraction"])
	},
	"gain_jitter": func(p map[string]float64) (Transform, error) {
		return NewGainJitter(p["max_db"])
	},
	"spectral_inversion": func(p map[string]float64) (Transform, error) {
		return NewSpectralInversion(), nil
	},
	"normalize": func(p map[string]float64) (Transform, error) {
		return NewNormalize(), nil
	},
	"time_crop": func(p map[string]float64) (Transform, error) {
		return NewTimeCrop(int(p["length"]))
	},
}

// Build constructs a registered transform by name.
func Build(name string, params map[string]float64) (Transform, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown transform %q", ErrInvalidArgument, name)
	}
	return b(params)
}

// Known returns the sorted names of all registered transforms.
func Known() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
