package motion

import (
	"log"
	"math"
)

// SignScan describes the range of trial sub-voxel shifts searched by
// LocatePhaseSignChange.
type SignScan struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultSignScan matches the diagnostic sweep used when validating the
// translation theorem implementation: +/-30 voxels in millivoxel steps.
func DefaultSignScan() SignScan {
	return SignScan{Min: -30, Max: 30, Step: 0.001}
}

// LocatePhaseSignChange scans trial shifts applied to a centered spectrum
// and reports the first trial at which the accumulated imaginary part over
// the two half-spectrum bands (excluding the center sample) changes sign
// between consecutive trials. Of the two adjacent trials it returns the
// shifted spectrum with the smaller absolute sum, together with that
// trial's shift.
//
// If the scan exhausts without a crossing the input spectrum is returned
// unmodified with found=false; this is a diagnostic condition, not an
// error.
func LocatePhaseSignChange(spectrum []complex128, scan SignScan) (shifted []complex128, shift float64, found bool) {
	if scan.Step <= 0 || scan.Max <= scan.Min {
		log.Printf("warning: degenerate sign-change scan [%g,%g] step %g",
			scan.Min, scan.Max, scan.Step)
		return spectrum, 0, false
	}

	prevShift := scan.Min
	prev := applyUniformShift(spectrum, prevShift)
	prevSum := bandImagSum(prev)

	for s := scan.Min + scan.Step; s <= scan.Max; s += scan.Step {
		cur := applyUniformShift(spectrum, s)
		curSum := bandImagSum(cur)

		if prevSum*curSum < 0 {
			if math.Abs(prevSum) < math.Abs(curSum) {
				return prev, prevShift, true
			}
			return cur, s, true
		}

		prev, prevShift, prevSum = cur, s, curSum
	}

	log.Printf("warning: no sign change of the band imaginary sum in [%g,%g]",
		scan.Min, scan.Max)
	return spectrum, 0, false
}

// bandImagSum accumulates the imaginary part over the lower and upper
// halves of a centered spectrum, skipping the center sample.
func bandImagSum(spectrum []complex128) float64 {
	n := len(spectrum)
	center := n / 2

	sum := 0.0
	for i, c := range spectrum {
		if i == center {
			continue
		}
		sum += imag(c)
	}
	return sum
}

func applyUniformShift(spectrum []complex128, shift float64) []complex128 {
	ramp := uniformRamp(len(spectrum), shift)
	out := make([]complex128, len(spectrum))
	for i := range out {
		out[i] = spectrum[i] * ramp[i]
	}
	return out
}
