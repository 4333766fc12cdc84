package transform

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/sigsynth/sig/core"
)

func TestTimeShiftPreservesLength(t *testing.T) {
	shift, err := NewTimeShift(32)
	require.NoError(t, err)

	in := testSignal(500)
	out, _, err := shift.Apply(in, core.Metadata{Stop: 500}, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, in.Len(), out.Len())
}

func TestTimeShiftRejectsNegativeBound(t *testing.T) {
	_, err := NewTimeShift(-1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFreqShiftRejectsOutOfRangeBound(t *testing.T) {
	_, err := NewFreqShift(0.5)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewFreqShift(-0.1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFreqShiftUpdatesMetadata(t *testing.T) {
	shift, err := NewFreqShift(0.2)
	require.NoError(t, err)

	in := testSignal(256)
	out, meta, err := shift.Apply(in, core.Metadata{}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, in.Len(), out.Len())
	assert.LessOrEqual(t, math.Abs(meta.CenterFreqOffset), 0.2)
	assert.NotZero(t, meta.CenterFreqOffset)
}

func TestSpectralInversionIsInvolution(t *testing.T) {
	inv := NewSpectralInversion()
	rng := rand.New(rand.NewSource(1))

	in := testSignal(128)
	once, _, err := inv.Apply(in, core.Metadata{CenterFreqOffset: 0.05}, rng)
	require.NoError(t, err)
	twice, meta, err := inv.Apply(once, core.Metadata{CenterFreqOffset: -0.05}, rng)
	require.NoError(t, err)

	assert.Equal(t, in.IQ, twice.IQ)
	assert.InDelta(t, 0.05, meta.CenterFreqOffset, 1e-15)
}

func TestTimeCropShortInputFails(t *testing.T) {
	crop, err := NewTimeCrop(1024)
	require.NoError(t, err)

	_, _, err = crop.Apply(testSignal(100), core.Metadata{}, rand.New(rand.NewSource(1)))
	require.Error(t, err)
}

func TestTimeCropExactLengthIsIdentityWindow(t *testing.T) {
	crop, err := NewTimeCrop(100)
	require.NoError(t, err)

	in := testSignal(100)
	out, _, err := crop.Apply(in, core.Metadata{Stop: 100}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, in.IQ, out.IQ)
}

func TestClipBoundsAmplitude(t *testing.T) {
	clip, err := NewClip(0.5, 0.5)
	require.NoError(t, err)

	iq := []complex128{complex(1, 0), complex(0, -1), complex(0.2, 0.2)}
	in := core.NewSignal(iq, 1e6)
	out, _, err := clip.Apply(in, core.Metadata{}, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	for _, v := range out.IQ {
		assert.LessOrEqual(t, math.Abs(real(v)), 0.5+1e-12)
		assert.LessOrEqual(t, math.Abs(imag(v)), 0.5+1e-12)
	}
}

func TestGainJitterKeepsPhase(t *testing.T) {
	gain, err := NewGainJitter(6)
	require.NoError(t, err)

	in := testSignal(64)
	out, _, err := gain.Apply(in, core.Metadata{}, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	for i := range in.IQ {
		dPhase := cmplx.Phase(out.IQ[i]) - cmplx.Phase(in.IQ[i])
		assert.InDelta(t, 0, dPhase, 1e-12)
	}
}

func TestNormalizeUnitPower(t *testing.T) {
	norm := NewNormalize()

	iq := make([]complex128, 256)
	for i := range iq {
		iq[i] = complex(3, 4)
	}
	out, _, err := norm.Apply(core.NewSignal(iq, 1e6), core.Metadata{}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.MeanPower(), 1e-12)
}

func TestRandomResamplePreservesLength(t *testing.T) {
	rr, err := NewRandomResample(0.05)
	require.NoError(t, err)

	in := testSignal(2048)
	out, meta, err := rr.Apply(in, core.Metadata{}, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	assert.Equal(t, in.Len(), out.Len())
	assert.NotZero(t, meta.RateOffset)
}

func TestRegistryBuildsAllKnownTransforms(t *testing.T) {
	params := map[string]map[string]float64{
		"time_shift":         {"max_shift": 32},
		"freq_shift":         {"max_offset": 0.1},
		"phase_shift":        {},
		"random_resample":    {"max_offset": 0.05},
		"clip":               {"min_fraction": 0.7, "max_fraction": 0.95},
		"gain_jitter":        {"max_db": 3},
		"spectral_inversion": {},
		"normalize":          {},
		"time_crop":          {"length": 512},
	}

	names := Known()
	require.NotEmpty(t, names)
	for _, name := range names {
		p, ok := params[name]
		require.True(t, ok, "missing params for %s", name)
		tr, err := Build(name, p)
		require.NoError(t, err, "build %s", name)
		assert.Equal(t, name, tr.Name())
	}
}

func TestBuiltTransformsReportTheirParams(t *testing.T) {
	params := map[string]float64{"min_fraction": 0.7, "max_fraction": 0.95}
	tr, err := Build("clip", params)
	require.NoError(t, err)
	assert.Equal(t, params, tr.Params())

	norm, err := Build("normalize", nil)
	require.NoError(t, err)
	assert.Empty(t, norm.Params())
}

func TestStageDescriptorsCoverParameters(t *testing.T) {
	build := func(maxOffset float64) *Pipeline {
		fs, err := NewFreqShift(maxOffset)
		require.NoError(t, err)
		norm := NewNormalize()
		p, err := NewPipeline(fs, norm)
		require.NoError(t, err)
		return p
	}

	narrow := build(0.1)
	assert.Equal(t, []string{"freq_shift(max_offset=0.1)", "normalize"}, narrow.StageDescriptors())
	assert.NotEqual(t, narrow.StageDescriptors(), build(0.4).StageDescriptors())
}

func TestRegistryUnknownName(t *testing.T) {
	_, err := Build("reverb", nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRegistryBadParams(t *testing.T) {
	_, err := Build("time_crop", map[string]float64{"length": -4})
	require.Error(t, err)
}
