// Package transform provides composable, seeded signal augmentations and a
// Pipeline that validates shape contracts when it is built.
//
// Every transform draws all of its randomness from the generator passed to
// Apply; none reads or writes global state. Given the same input and an
// identically-seeded generator, a transform is a pure function.
package transform

import (
	"errors"
	"math/rand"

	"github.com/cwbudde/sigsynth/sig/core"
)

// Errors returned at pipeline composition and transform construction time.
var (
	ErrIncompatibleTransform = errors.New("transform: incompatible adjacent contracts")
	ErrInvalidArgument       = errors.New("transform: invalid argument")
)

// LenKind classifies a transform's declared length behavior.
type LenKind int

const (
	// LenAny accepts or produces any length.
	LenAny LenKind = iota
	// LenSame declares the output length equals the input length.
	LenSame
	// LenFixed declares an exact length.
	LenFixed
)

// LenSpec declares an input or output length contract.
type LenSpec struct {
	Kind LenKind
	N    int
}

// Any returns a contract matching any length.
func Any() LenSpec { return LenSpec{Kind: LenAny} }

// Same returns an output contract preserving the input length.
func Same() LenSpec { return LenSpec{Kind: LenSame} }

// Fixed returns a contract for exactly n samples.
func Fixed(n int) LenSpec { return LenSpec{Kind: LenFixed, N: n} }

// IOSpec declares a transform's input and output shape contract.
type IOSpec struct {
	In  LenSpec
	Out LenSpec
}

// Transform is a seeded, label-aware signal augmentation.
type Transform interface {
	// Name identifies the transform for registries and diagnostics.
	Name() string

	// Spec declares the static shape contract checked at composition time.
	Spec() IOSpec

	// Params returns the numeric parameters the transform was built with,
	// keyed as in the pipeline configuration schema. Parameter-free
	// transforms return nil.
	Params() map[string]float64

	// Apply transforms a signal/metadata pair, drawing any randomness from
	// rng. The input must not be mutated.
	Apply(sig core.Signal, meta core.Metadata, rng *rand.Rand) (core.Signal, core.Metadata, error)
}
