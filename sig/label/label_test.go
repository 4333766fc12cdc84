package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/sigsynth/sig/core"
	"github.com/cwbudde/sigsynth/sig/mod"
)

func TestNewEncoderValidatesClassNames(t *testing.T) {
	_, err := NewEncoder([]string{"qpsk", "wifi6"})
	require.ErrorIs(t, err, ErrUnknownClass)

	_, err = NewEncoder(nil)
	require.ErrorIs(t, err, ErrUnknownClass)

	_, err = NewEncoder([]string{"qpsk", "qpsk"})
	require.ErrorIs(t, err, ErrUnknownClass)
}

func TestEncoderIndexNameRoundTrip(t *testing.T) {
	classes := []string{"bpsk", "qpsk", "16qam", "2fsk"}
	enc, err := NewEncoder(classes)
	require.NoError(t, err)
	require.Equal(t, 4, enc.NumClasses())

	for want, name := range classes {
		got, err := enc.Index(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		back, err := enc.Name(got)
		require.NoError(t, err)
		assert.Equal(t, name, back)
	}

	_, err = enc.Index("8psk")
	assert.ErrorIs(t, err, ErrUnknownClass)
	_, err = enc.Name(4)
	assert.ErrorIs(t, err, ErrUnknownClass)
	_, err = enc.Name(-1)
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestEncodeTotalOverFullCatalog(t *testing.T) {
	enc, err := NewEncoder(mod.Names(), WithOneHot())
	require.NoError(t, err)

	for _, name := range mod.Names() {
		l, err := enc.Encode(core.Metadata{ClassName: name})
		require.NoError(t, err, "class %s", name)

		idx, err := enc.Index(name)
		require.NoError(t, err)
		assert.Equal(t, idx, l.ClassIndex)
		require.Len(t, l.OneHot, enc.NumClasses())
		for i, v := range l.OneHot {
			if i == idx {
				assert.Equal(t, float64(1), v)
			} else {
				assert.Equal(t, float64(0), v)
			}
		}
	}
}

func TestEncodeRejectsUnlistedClass(t *testing.T) {
	enc, err := NewEncoder([]string{"qpsk"})
	require.NoError(t, err)

	_, err = enc.Encode(core.Metadata{ClassName: "bpsk"})
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestEncodeOptionalTargets(t *testing.T) {
	enc, err := NewEncoder([]string{"qpsk"}, WithSNRTarget(), WithBandwidthTarget())
	require.NoError(t, err)

	meta := core.Metadata{
		ClassName:        "qpsk",
		SNRdB:            12.5,
		SamplesPerSymbol: 4,
		ExcessBandwidth:  0.35,
	}
	l, err := enc.Encode(meta)
	require.NoError(t, err)
	assert.Nil(t, l.OneHot)
	assert.Equal(t, 12.5, l.SNR)
	assert.InDelta(t, 1.35/4, l.Bandwidth, 1e-12)
}

func TestBandwidthTargetClampsToFullBand(t *testing.T) {
	enc, err := NewEncoder([]string{"fm"}, WithBandwidthTarget())
	require.NoError(t, err)

	l, err := enc.Encode(core.Metadata{ClassName: "fm"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, l.Bandwidth)
}

func TestTargetsReflectOptions(t *testing.T) {
	plain, err := NewEncoder([]string{"qpsk"})
	require.NoError(t, err)
	assert.Empty(t, plain.Targets())

	full, err := NewEncoder([]string{"qpsk"}, WithOneHot(), WithSNRTarget(), WithBandwidthTarget())
	require.NoError(t, err)
	assert.Equal(t, []string{"one_hot", "snr", "bandwidth"}, full.Targets())
}

func TestClassesReturnsCopy(t *testing.T) {
	enc, err := NewEncoder([]string{"bpsk", "qpsk"})
	require.NoError(t, err)

	got := enc.Classes()
	got[0] = "mangled"
	again := enc.Classes()
	assert.Equal(t, "bpsk", again[0])
}
