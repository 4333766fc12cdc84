package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// fftConvolve performs linear convolution via frequency-domain
// multiplication, zero-padding both inputs to the next power of two.
func fftConvolve(a, b []complex128) ([]complex128, error) {
	outLen := len(a) + len(b) - 1
	n := nextPowerOf2(outLen)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("conv: fft plan: %w", err)
	}

	fa := make([]complex128, n)
	fb := make([]complex128, n)
	copy(fa, a)
	copy(fb, b)

	if err := plan.Forward(fa, fa); err != nil {
		return nil, fmt.Errorf("conv: forward fft: %w", err)
	}
	if err := plan.Forward(fb, fb); err != nil {
		return nil, fmt.Errorf("conv: forward fft: %w", err)
	}

	for i := range fa {
		fa[i] *= fb[i]
	}

	if err := plan.Inverse(fa, fa); err != nil {
		return nil, fmt.Errorf("conv: inverse fft: %w", err)
	}

	return fa[:outLen], nil
}
