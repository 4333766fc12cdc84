package mod

// Family identifies the modulation family of a catalog class.
// The set is closed: generation dispatches exhaustively over it.
type Family int

const (
	// FamilyASK covers amplitude-shift keying (including OOK).
	FamilyASK Family = iota
	// FamilyPAM covers unipolar pulse-amplitude classes.
	FamilyPAM
	// FamilyPSK covers phase-shift keying.
	FamilyPSK
	// FamilyQAM covers rectangular and cross quadrature-amplitude classes.
	FamilyQAM
	// FamilyFSK covers frequency-shift keying without pre-filtering.
	FamilyFSK
	// FamilyGFSK covers Gaussian-filtered FSK.
	FamilyGFSK
	// FamilyMSK covers minimum-shift keying.
	FamilyMSK
	// FamilyGMSK covers Gaussian-filtered MSK.
	FamilyGMSK
	// FamilyOFDM covers multicarrier classes.
	FamilyOFDM
	// FamilyAM covers analog amplitude modulation variants.
	FamilyAM
	// FamilyFM covers analog frequency modulation.
	FamilyFM
	// FamilyTone is a single complex exponential.
	FamilyTone
)

// String returns the lower-case family name.
func (f Family) String() string {
	switch f {
	case FamilyASK:
		return "ask"
	case FamilyPAM:
		return "pam"
	case FamilyPSK:
		return "psk"
	case FamilyQAM:
		return "qam"
	case FamilyFSK:
		return "fsk"
	case FamilyGFSK:
		return "gfsk"
	case FamilyMSK:
		return "msk"
	case FamilyGMSK:
		return "gmsk"
	case FamilyOFDM:
		return "ofdm"
	case FamilyAM:
		return "am"
	case FamilyFM:
		return "fm"
	case FamilyTone:
		return "tone"
	default:
		return "unknown"
	}
}

// Linear reports whether the family maps symbols onto a constellation and
// is pulse-shaped linearly (as opposed to phase-continuous or analog).
func (f Family) Linear() bool {
	switch f {
	case FamilyASK, FamilyPAM, FamilyPSK, FamilyQAM:
		return true
	default:
		return false
	}
}

// Continuous reports whether the family is phase-continuous frequency keying.
func (f Family) Continuous() bool {
	switch f {
	case FamilyFSK, FamilyGFSK, FamilyMSK, FamilyGMSK:
		return true
	default:
		return false
	}
}

// Gaussian reports whether the family applies a Gaussian pre-modulation filter.
func (f Family) Gaussian() bool {
	return f == FamilyGFSK || f == FamilyGMSK
}

// ModulationIndex returns the frequency deviation index used by
// phase-continuous families: 0.32 for GFSK (Bluetooth), 0.5 for MSK/GMSK,
// 1.0 for plain FSK.
func (f Family) ModulationIndex() float64 {
	switch f {
	case FamilyGFSK:
		return 0.32
	case FamilyMSK, FamilyGMSK:
		return 0.5
	default:
		return 1.0
	}
}
