// Package conv provides linear convolution of complex baseband signals.
//
// Two strategies are available and selected automatically:
//
//   - Direct convolution: O(N*M) time-domain evaluation for short kernels
//   - FFT convolution: frequency-domain multiplication for longer kernels
//
// Causal evaluates only past samples, which channel multipath requires so
// that no future sample leaks backward through the taps.
package conv

import "errors"

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// Mode specifies the output mode for convolution.
type Mode int

const (
	// ModeFull returns the full result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output centered to the length of the first input.
	ModeSame

	// ModeValid returns only the fully-overlapping portion.
	ModeValid
)

// directThreshold is the kernel length above which FFT convolution wins.
const directThreshold = 64

// Direct performs direct time-domain linear convolution.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []complex128) ([]complex128, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]complex128, len(a)+len(b)-1)
	for i, x := range a {
		for j, h := range b {
			result[i+j] += x * h
		}
	}

	return result, nil
}

// Convolve performs linear convolution with automatic algorithm selection.
func Convolve(a, b []complex128) ([]complex128, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	// Ensure a is the longer signal.
	if len(b) > len(a) {
		a, b = b, a
	}

	if len(b) <= directThreshold {
		return Direct(a, b)
	}

	return fftConvolve(a, b)
}

// ConvolveMode performs convolution with the specified output mode.
func ConvolveMode(a, b []complex128, mode Mode) ([]complex128, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(a), len(b), mode), nil
}

// Same convolves a with kernel b and returns the centered portion with the
// same length as a.
func Same(a, b []complex128) ([]complex128, error) {
	return ConvolveMode(a, b, ModeSame)
}

// Causal convolves x with taps and returns the first len(x) samples, so
// each output sample depends only on current and earlier inputs:
//
//	y[n] = sum_k taps[k] * x[n-k]
func Causal(x, taps []complex128) ([]complex128, error) {
	full, err := Convolve(x, taps)
	if err != nil {
		return nil, err
	}

	return full[:len(x)], nil
}

func trimToMode(full []complex128, lenA, lenB int, mode Mode) []complex128 {
	switch mode {
	case ModeSame:
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}
		return full[lenA-1 : lenB]
	default:
		return full
	}
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
