package motion

import (
	"fmt"
	"math"
)

// ShiftMetric selects the comparison domain and norm used by the uniform
// shift search.
type ShiftMetric string

const (
	// SpatialL1 rolls the signal by whole voxels and compares with the
	// L1 norm in the signal domain.
	SpatialL1 ShiftMetric = "spatial-L1"

	// FourierL1 applies a sub-voxel phase shift in k-space and compares
	// the resulting magnitudes with the L1 norm.
	FourierL1 ShiftMetric = "fourier-L1"

	// FourierL2 is FourierL1 with a squared-error comparison.
	FourierL2 ShiftMetric = "fourier-L2"
)

// EstimateUniformShift searches candidate displacements for the one that
// best aligns signal a with signal b, returning the candidate with the
// smallest distance. Ties resolve to the earliest candidate. This corrects
// the uniform residual offset a non-uniform course leaves behind.
func EstimateUniformShift(a, b, candidates []float64, metric ShiftMetric) (float64, error) {
	losses, err := UniformShiftLosses(a, b, candidates, metric)
	if err != nil {
		return 0, err
	}

	best := 0
	for i, l := range losses {
		if l < losses[best] {
			best = i
		}
	}
	return candidates[best], nil
}

// UniformShiftLosses returns the distance between a and b for every
// candidate shift, aligned with the candidates slice. Exposed so callers
// can plot the search curve alongside the estimate.
func UniformShiftLosses(a, b, candidates []float64, metric ShiftMetric) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: signal lengths %d and %d",
			ErrShapeMismatch, len(a), len(b))
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidate shifts", ErrInvalidParameter)
	}

	switch metric {
	case SpatialL1:
		return spatialLosses(a, b, candidates), nil
	case FourierL1, FourierL2:
		return fourierLosses(a, b, candidates, metric), nil
	default:
		return nil, fmt.Errorf("%w: shift metric %q", ErrUnknownMethod, metric)
	}
}

func spatialLosses(a, b, candidates []float64) []float64 {
	losses := make([]float64, len(candidates))
	for i, c := range candidates {
		rolled := Roll(a, int(math.Round(c)))
		sum := 0.0
		for j := range rolled {
			sum += math.Abs(rolled[j] - b[j])
		}
		losses[i] = sum
	}
	return losses
}

func fourierLosses(a, b, candidates []float64, metric ShiftMetric) []float64 {
	spectrum := Spectrum(a)
	n := len(a)

	losses := make([]float64, len(candidates))
	for i, c := range candidates {
		ramp := uniformRamp(n, c)
		shifted := make([]complex128, n)
		for j := range shifted {
			shifted[j] = spectrum[j] * ramp[j]
		}
		ym := magnitude(inverseSpectrum(shifted))

		sum := 0.0
		for j := range ym {
			d := ym[j] - b[j]
			if metric == FourierL2 {
				sum += d * d
			} else {
				sum += math.Abs(d)
			}
		}
		losses[i] = sum
	}
	return losses
}
