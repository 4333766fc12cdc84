package fir

import "math"

// Sinc returns the normalized sinc function sin(pi x)/(pi x).
func Sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}

// Blackman returns symmetric Blackman window coefficients of length n.
func Blackman(n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = 1
		return out
	}

	for i := range out {
		x := float64(i) / float64(n-1)
		out[i] = 0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x)
	}

	return out
}

// KaiserWindow returns the i-th of n Kaiser window coefficients with shape
// parameter beta.
func KaiserWindow(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}

	t := 2*float64(i)/float64(n-1) - 1
	a := math.Sqrt(math.Max(0, 1-t*t))

	return i0(beta*a) / i0(beta)
}

// i0 is the zeroth-order modified Bessel function of the first kind.
func i0(x float64) float64 {
	// Power series approximation.
	sum := 1.0
	term := 1.0

	hx := x / 2
	for k := 1; k < 64; k++ {
		term *= hx / float64(k)
		inc := term * term
		sum += inc

		if inc < 1e-18*sum {
			break
		}
	}

	return sum
}
