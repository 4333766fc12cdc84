// Package mod defines the closed modulation catalog used by the waveform
// generator: constellation point sets, frequency tone maps, and analog and
// multicarrier class descriptors.
//
// Constellations are constructed programmatically and normalized to unit
// mean magnitude, so symbol draws are directly usable as baseband symbols.
package mod

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Class describes one modulation class in the catalog.
type Class struct {
	// Name is the canonical lower-case class name, e.g. "qpsk" or "2gfsk".
	Name string

	// Family selects the generation strategy.
	Family Family

	// Order is the modulation order (constellation size or tone count).
	// Zero for analog classes.
	Order int

	// Points holds the normalized constellation for linear families.
	Points []complex128

	// Tones holds normalized tone frequencies for frequency-keyed families,
	// spanning (-1, 1) before oversampling.
	Tones []float64

	// Subcarriers is the subcarrier count for OFDM classes.
	Subcarriers int
}

// BitsPerSymbol returns log2(Order), or zero for analog classes.
func (c Class) BitsPerSymbol() float64 {
	if c.Order <= 1 {
		return 0
	}
	return math.Log2(float64(c.Order))
}

func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// gridPoints builds a rectangular constellation from the cartesian product
// of real and imaginary levels.
func gridPoints(re, im []float64) []complex128 {
	out := make([]complex128, 0, len(re)*len(im))
	for _, q := range im {
		for _, i := range re {
			out = append(out, complex(i, q))
		}
	}
	return out
}

// removeCorners trims the corner points of a square grid to form a cross
// constellation. The cutoff depends only on the grid size.
func removeCorners(points []complex128) []complex128 {
	side := math.Sqrt(float64(len(points)))
	spacing := 2.0 / (side - 1)
	cutoff := spacing * (side/6 - 0.5)

	out := make([]complex128, 0, len(points))
	for _, p := range points {
		if math.Abs(real(p)) < 1-cutoff || math.Abs(imag(p)) < 1-cutoff {
			out = append(out, p)
		}
	}
	return out
}

func pskPoints(order int) []complex128 {
	out := make([]complex128, order)
	for k := range order {
		out[k] = cmplx.Exp(complex(0, 2*math.Pi*float64(k)/float64(order)))
	}
	return out
}

func realPoints(levels []float64) []complex128 {
	out := make([]complex128, len(levels))
	for i, v := range levels {
		out[i] = complex(v, 0)
	}
	return out
}

// normalizePoints scales a constellation to unit mean magnitude.
func normalizePoints(points []complex128) []complex128 {
	var mean float64
	for _, p := range points {
		mean += cmplx.Abs(p)
	}
	mean /= float64(len(points))
	if mean == 0 {
		return points
	}

	out := make([]complex128, len(points))
	for i, p := range points {
		out[i] = p / complex(mean, 0)
	}
	return out
}

// toneMap returns order tones evenly spaced in (-1, 1) with half-step
// guard bands at the edges.
func toneMap(order int) []float64 {
	gap := 1.0 / float64(order)
	return linspace(-1+gap, 1-gap, order)
}

func constellationClass(name string, family Family, points []complex128) Class {
	return Class{
		Name:   name,
		Family: family,
		Order:  len(points),
		Points: normalizePoints(points),
	}
}

func frequencyClass(name string, family Family, order int) Class {
	return Class{
		Name:   name,
		Family: family,
		Order:  order,
		Tones:  toneMap(order),
	}
}

func buildCatalog() []Class {
	unit := linspace(0, 1, 2)
	classes := []Class{
		constellationClass("ook", FamilyASK, realPoints(unit)),
		constellationClass("bpsk", FamilyPSK, realPoints(linspace(-1, 1, 2))),
		constellationClass("4pam", FamilyPAM, realPoints(linspace(0, 1, 4))),
		constellationClass("4ask", FamilyASK, realPoints(linspace(-1, 1, 4))),
		constellationClass("qpsk", FamilyQAM, gridPoints(linspace(-1, 1, 2), linspace(-1, 1, 2))),
		constellationClass("8pam", FamilyPAM, realPoints(linspace(0, 1, 8))),
		constellationClass("8ask", FamilyASK, realPoints(linspace(-1, 1, 8))),
		constellationClass("8psk", FamilyPSK, pskPoints(8)),
		constellationClass("16qam", FamilyQAM, gridPoints(linspace(-1, 1, 4), linspace(-1, 1, 4))),
		constellationClass("16pam", FamilyPAM, realPoints(linspace(0, 1, 16))),
		constellationClass("16ask", FamilyASK, realPoints(linspace(-1, 1, 16))),
		constellationClass("16psk", FamilyPSK, pskPoints(16)),
		constellationClass("32qam", FamilyQAM, gridPoints(linspace(-1, 1, 4), linspace(-1, 1, 8))),
		constellationClass("32qam_cross", FamilyQAM, removeCorners(gridPoints(linspace(-1, 1, 6), linspace(-1, 1, 6)))),
		constellationClass("32pam", FamilyPAM, realPoints(linspace(0, 1, 32))),
		constellationClass("32ask", FamilyASK, realPoints(linspace(-1, 1, 32))),
		constellationClass("32psk", FamilyPSK, pskPoints(32)),
		constellationClass("64qam", FamilyQAM, gridPoints(linspace(-1, 1, 8), linspace(-1, 1, 8))),
		constellationClass("64pam", FamilyPAM, realPoints(linspace(0, 1, 64))),
		constellationClass("64ask", FamilyASK, realPoints(linspace(-1, 1, 64))),
		constellationClass("64psk", FamilyPSK, pskPoints(64)),
		constellationClass("128qam_cross", FamilyQAM, removeCorners(gridPoints(linspace(-1, 1, 12), linspace(-1, 1, 12)))),
		constellationClass("256qam", FamilyQAM, gridPoints(linspace(-1, 1, 16), linspace(-1, 1, 16))),
		constellationClass("512qam_cross", FamilyQAM, removeCorners(gridPoints(linspace(-1, 1, 24), linspace(-1, 1, 24)))),
		constellationClass("1024qam", FamilyQAM, gridPoints(linspace(-1, 1, 32), linspace(-1, 1, 32))),
	}

	for _, order := range []int{2, 4, 8, 16} {
		classes = append(classes,
			frequencyClass(fmt.Sprintf("%dfsk", order), FamilyFSK, order),
			frequencyClass(fmt.Sprintf("%dgfsk", order), FamilyGFSK, order),
			frequencyClass(fmt.Sprintf("%dmsk", order), FamilyMSK, order),
			frequencyClass(fmt.Sprintf("%dgmsk", order), FamilyGMSK, order),
		)
	}

	for _, sc := range []int{64, 128, 256, 512, 1024, 2048} {
		classes = append(classes, Class{
			Name:        fmt.Sprintf("ofdm-%d", sc),
			Family:      FamilyOFDM,
			Subcarriers: sc,
		})
	}

	classes = append(classes,
		Class{Name: "am", Family: FamilyAM},
		Class{Name: "am-ssb", Family: FamilyAM},
		Class{Name: "am-dsb", Family: FamilyAM},
		Class{Name: "fm", Family: FamilyFM},
		Class{Name: "tone", Family: FamilyTone},
	)

	return classes
}

var (
	catalog = buildCatalog()
	byName  = func() map[string]Class {
		m := make(map[string]Class, len(catalog))
		for _, c := range catalog {
			m[c.Name] = c
		}
		return m
	}()
)

// Catalog returns the full ordered class list.
func Catalog() []Class {
	out := make([]Class, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the ordered class names.
func Names() []string {
	out := make([]string, len(catalog))
	for i, c := range catalog {
		out[i] = c.Name
	}
	return out
}

// Lookup returns the class for name, if it exists in the catalog.
func Lookup(name string) (Class, bool) {
	c, ok := byName[name]
	return c, ok
}
