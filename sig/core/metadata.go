package core

// Metadata describes the ground truth of a generated signal.
//
// A Metadata value is created at generation time and carried alongside the
// signal through every impairment and transform. Stages that alter a
// physical property (realized SNR, frequency offset, burst boundaries)
// return an updated copy; the original value is never mutated in place.
type Metadata struct {
	// ClassName is the modulation class, one of the catalog names.
	ClassName string

	// ClassIndex is the position of ClassName in the generator's class set.
	ClassIndex int

	// BitsPerSymbol is log2 of the modulation order.
	BitsPerSymbol float64

	// SamplesPerSymbol is the oversampling factor used at generation.
	SamplesPerSymbol float64

	// SNRdB is the realized signal-to-noise ratio after the channel, in
	// decibels. It stays zero until a channel stage sets it; a freshly
	// generated signal carries no noise.
	SNRdB float64

	// ExcessBandwidth is the pulse-shaping roll-off (or Gaussian BT product
	// for GFSK/GMSK classes).
	ExcessBandwidth float64

	// CenterFreqOffset is the applied carrier offset in cycles per sample.
	CenterFreqOffset float64

	// RateOffset is the fractional sample-rate offset applied by the channel.
	RateOffset float64

	// Start and Stop bound the burst within the sample window.
	Start int
	Stop  int
}
