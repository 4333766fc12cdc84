package transform

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/sigsynth/sig/core"
)

func testSignal(n int) core.Signal {
	iq := make([]complex128, n)
	for i := range iq {
		phase := 2 * math.Pi * 0.03 * float64(i)
		iq[i] = complex(math.Cos(phase), math.Sin(phase))
	}
	return core.NewSignal(iq, 1e6)
}

// tracingTransform records whether Apply was ever invoked.
type tracingTransform struct {
	spec    IOSpec
	applied *bool
}

func (t *tracingTransform) Name() string               { return "tracing" }
func (t *tracingTransform) Spec() IOSpec               { return t.spec }
func (t *tracingTransform) Params() map[string]float64 { return nil }
func (t *tracingTransform) Apply(sig core.Signal, meta core.Metadata, _ *rand.Rand) (core.Signal, core.Metadata, error) {
	*t.applied = true
	return sig, meta, nil
}

func TestPipelineIncompatibleContractsFailAtBuild(t *testing.T) {
	appliedA, appliedB := false, false
	a := &tracingTransform{spec: IOSpec{In: Any(), Out: Fixed(1024)}, applied: &appliedA}
	b := &tracingTransform{spec: IOSpec{In: Fixed(2048), Out: Same()}, applied: &appliedB}

	_, err := NewPipeline(a, b)
	require.ErrorIs(t, err, ErrIncompatibleTransform)
	assert.False(t, appliedA, "Apply must not run during composition")
	assert.False(t, appliedB, "Apply must not run during composition")
}

func TestPipelineCompatibleFixedContracts(t *testing.T) {
	applied := false
	a := &tracingTransform{spec: IOSpec{In: Any(), Out: Fixed(1024)}, applied: &applied}
	b := &tracingTransform{spec: IOSpec{In: Fixed(1024), Out: Same()}, applied: &applied}

	p, err := NewPipeline(a, b)
	require.NoError(t, err)

	// Length-preserving stage keeps the upstream fixed-length knowledge.
	assert.Equal(t, Fixed(1024), p.Spec().Out)
}

func TestPipelineSamePreservesFixedKnowledge(t *testing.T) {
	crop, err := NewTimeCrop(512)
	require.NoError(t, err)
	norm := NewNormalize()

	p, err := NewPipeline(crop, norm)
	require.NoError(t, err)
	assert.Equal(t, Fixed(512), p.Spec().Out)
}

func TestPipelineOutputLengthMatchesContract(t *testing.T) {
	crop, err := NewTimeCrop(512)
	require.NoError(t, err)
	shift, err := NewTimeShift(16)
	require.NoError(t, err)

	p, err := NewPipeline(shift, crop)
	require.NoError(t, err)

	out, _, err := p.Apply(testSignal(2048), core.Metadata{Stop: 2048}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 512, out.Len())
	assert.Equal(t, Fixed(512), p.Spec().Out)
}

func TestPipelineDeterministicWithSeededRNG(t *testing.T) {
	shift, _ := NewTimeShift(64)
	freq, _ := NewFreqShift(0.1)
	gain, _ := NewGainJitter(3)

	p, err := NewPipeline(shift, freq, gain)
	require.NoError(t, err)

	in := testSignal(1024)
	a, _, err := p.Apply(in, core.Metadata{}, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, _, err := p.Apply(in, core.Metadata{}, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, a.IQ, b.IQ)
}

func TestEmptyPipelineIsIdentity(t *testing.T) {
	p, err := NewPipeline()
	require.NoError(t, err)

	in := testSignal(256)
	out, _, err := p.Apply(in, core.Metadata{}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, in.IQ, out.IQ)
}

func TestPipelineDoesNotMutateInput(t *testing.T) {
	freq, _ := NewFreqShift(0.2)
	p, err := NewPipeline(freq)
	require.NoError(t, err)

	in := testSignal(128)
	want := in.IQ[5]
	_, _, err = p.Apply(in, core.Metadata{}, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Equal(t, want, in.IQ[5])
}
