package motion

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrum computes the centered discrete Fourier transform of a real
// signal: the zero-frequency-shifted signal is transformed and the result
// is shifted back so that frequency zero sits at the center index. This is
// the k-space convention used throughout the package.
func Spectrum(signal []float64) []complex128 {
	in := make([]complex128, len(signal))
	for i, v := range signal {
		in[i] = complex(v, 0)
	}
	return SpectrumComplex(in)
}

// SpectrumComplex is Spectrum for a complex-valued signal.
func SpectrumComplex(signal []complex128) []complex128 {
	n := len(signal)
	fft := fourier.NewCmplxFFT(n)

	shifted := ifftShift(signal)
	coeff := fft.Coefficients(nil, shifted)
	return fftShift(coeff)
}

// inverseSpectrum inverts a centered spectrum back to the signal domain.
// The inverse mirrors the forward convention: the unnormalized inverse
// transform of the centered spectrum, shifted so the center sample returns
// to the middle of the array.
func inverseSpectrum(spectrum []complex128) []complex128 {
	n := len(spectrum)
	fft := fourier.NewCmplxFFT(n)

	seq := fft.Sequence(nil, spectrum)
	scale := complex(1/float64(n), 0)
	for i := range seq {
		seq[i] *= scale
	}
	return ifftShift(seq)
}

// frequencyGrid returns the normalized frequency axis k used by the phase
// ramp: n samples spanning [-1, 1] linearly.
func frequencyGrid(n int) []float64 {
	k := make([]float64, n)
	if n == 1 {
		k[0] = -1
		return k
	}
	step := 2 / float64(n-1)
	for i := range k {
		k[i] = -1 + float64(i)*step
	}
	return k
}

// phaseRamp builds the per-frequency modulation exp(-i*pi*k*d) that shifts
// each frequency sample by its displacement d (the Fourier shift theorem
// applied non-uniformly).
func phaseRamp(course []float64) []complex128 {
	k := frequencyGrid(len(course))
	ramp := make([]complex128, len(course))
	for i, d := range course {
		theta := -math.Pi * k[i] * d
		ramp[i] = cmplx.Exp(complex(0, theta))
	}
	return ramp
}

// uniformRamp is phaseRamp for a constant displacement.
func uniformRamp(n int, shift float64) []complex128 {
	k := frequencyGrid(n)
	ramp := make([]complex128, n)
	for i := range ramp {
		theta := -math.Pi * k[i] * shift
		ramp[i] = cmplx.Exp(complex(0, theta))
	}
	return ramp
}

// fftShift rotates the array so the zero-frequency sample moves to the
// center, matching the usual k-space display convention.
func fftShift(x []complex128) []complex128 {
	return roll(x, len(x)/2)
}

// ifftShift is the inverse of fftShift. The two differ for odd lengths.
func ifftShift(x []complex128) []complex128 {
	return roll(x, -(len(x) / 2))
}

// roll circularly shifts x to the right by k samples (negative k shifts
// left): out[i] = x[(i-k) mod n].
func roll(x []complex128, k int) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for i := range out {
		out[i] = x[((i-k)%n+n)%n]
	}
	return out
}

// Roll circularly shifts a real signal to the right by k samples.
func Roll(x []float64, k int) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := range out {
		out[i] = x[((i-k)%n+n)%n]
	}
	return out
}

func magnitude(x []complex128) []float64 {
	out := make([]float64, len(x))
	for i, c := range x {
		out[i] = cmplx.Abs(c)
	}
	return out
}
