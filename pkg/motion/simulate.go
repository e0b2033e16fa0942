package motion

import (
	"fmt"
)

// Simulate corrupts a real 1D signal with the given displacement course
// and returns the magnitude of the corrupted signal.
//
// The signal's centered spectrum is multiplied by the phase ramp
// exp(-i*pi*k*d) where k spans [-1, 1] across the transform axis and d is
// the displacement course sampled at the same index, then inverted. With
// an all-zero course the magnitude of the input is returned unchanged.
func Simulate(course, signal []float64) ([]float64, error) {
	in := make([]complex128, len(signal))
	for i, v := range signal {
		in[i] = complex(v, 0)
	}
	out, err := SimulateComplex(course, in)
	if err != nil {
		return nil, err
	}
	return magnitude(out), nil
}

// SimulateComplex is Simulate for a complex-valued signal, returning the
// complex corrupted signal instead of its magnitude. This is the
// return_magnitude=false path: round trips and phase diagnostics need the
// complex result.
func SimulateComplex(course []float64, signal []complex128) ([]complex128, error) {
	if len(course) != len(signal) {
		return nil, fmt.Errorf("%w: course length %d, signal length %d",
			ErrShapeMismatch, len(course), len(signal))
	}

	spectrum := SpectrumComplex(signal)
	ramp := phaseRamp(course)
	for i := range spectrum {
		spectrum[i] *= ramp[i]
	}
	return inverseSpectrum(spectrum), nil
}
