package transform

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/cwbudde/sigsynth/sig/core"
)

// Pipeline applies an ordered sequence of transforms left to right.
//
// Shape contracts of adjacent transforms are validated once when the
// pipeline is built; a mismatch fails with ErrIncompatibleTransform before
// any Apply runs.
type Pipeline struct {
	stages []Transform
	spec   IOSpec
}

// NewPipeline validates and composes the given transforms. An empty
// pipeline is valid and acts as identity.
func NewPipeline(stages ...Transform) (*Pipeline, error) {
	spec := IOSpec{In: Any(), Out: Any()}

	for i, t := range stages {
		ts := t.Spec()

		if i == 0 {
			spec.In = ts.In
			spec.Out = propagate(ts.In, ts.Out)
			continue
		}

		if spec.Out.Kind == LenFixed && ts.In.Kind == LenFixed && spec.Out.N != ts.In.N {
			return nil, fmt.Errorf("%w: %s produces %d samples but %s requires %d",
				ErrIncompatibleTransform, stages[i-1].Name(), spec.Out.N, t.Name(), ts.In.N)
		}

		spec.Out = propagate(spec.Out, ts.Out)
	}

	return &Pipeline{stages: stages, spec: spec}, nil
}

// propagate resolves the downstream length knowledge given what is known
// about the current stream and a stage's declared output.
func propagate(current, out LenSpec) LenSpec {
	switch out.Kind {
	case LenFixed:
		return out
	case LenSame:
		// Length-preserving: whatever was known upstream still holds.
		return current
	default:
		return Any()
	}
}

// Spec returns the composed shape contract of the whole pipeline.
func (p *Pipeline) Spec() IOSpec {
	return p.spec
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// StageNames returns the ordered names of the composed stages.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, t := range p.stages {
		names[i] = t.Name()
	}
	return names
}

// StageDescriptors returns one canonical string per stage, covering the
// stage name and every parameter it was built with. Two pipelines with
// equal descriptor lists behave identically for equal seeds.
func (p *Pipeline) StageDescriptors() []string {
	descs := make([]string, len(p.stages))
	for i, t := range p.stages {
		descs[i] = describe(t)
	}
	return descs
}

func describe(t Transform) string {
	params := t.Params()
	if len(params) == 0 {
		return t.Name()
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(t.Name())
	b.WriteByte('(')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%v", k, params[k])
	}
	b.WriteByte(')')
	return b.String()
}

// Apply runs every stage in order, threading the same generator through all
// of them.
func (p *Pipeline) Apply(sig core.Signal, meta core.Metadata, rng *rand.Rand) (core.Signal, core.Metadata, error) {
	var err error
	for _, t := range p.stages {
		sig, meta, err = t.Apply(sig, meta, rng)
		if err != nil {
			return core.Signal{}, core.Metadata{}, fmt.Errorf("transform %s: %w", t.Name(), err)
		}
	}
	return sig, meta, nil
}
