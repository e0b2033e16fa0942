// Package metrics scores the similarity between an original and a
// motion-corrupted signal, in the signal domain and on the magnitude and
// phase of their centered spectra.
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"mrimotion/pkg/motion"
)

// Scores holds the comparison metrics between two equally sized signals.
type Scores struct {
	// L1 is the mean absolute difference.
	L1 float64

	// L2 is the mean squared difference.
	L2 float64

	// Pearson is the sample Pearson correlation coefficient.
	Pearson float64

	// NCC is the normalized cross-correlation (mean product of
	// z-scored samples, population normalization).
	NCC float64

	// SSIM is the global Structural Similarity Index, with its three
	// components.
	SSIM      float64
	Luminance float64
	Contrast  float64
	Structure float64
}

// SSIM constants for data in the unit dynamic range.
const (
	ssimL  = 1.0
	ssimK1 = 0.01
	ssimK2 = 0.03
)

// Compare computes all signal-domain scores between a and b.
func Compare(a, b []float64) (Scores, error) {
	if len(a) != len(b) {
		return Scores{}, fmt.Errorf("%w: signal lengths %d and %d",
			motion.ErrShapeMismatch, len(a), len(b))
	}
	n := float64(len(a))

	var s Scores
	for i := range a {
		d := a[i] - b[i]
		s.L1 += math.Abs(d)
		s.L2 += d * d
	}
	s.L1 /= n
	s.L2 /= n

	s.Pearson = stat.Correlation(a, b, nil)
	s.NCC = normalizedCrossCorrelation(a, b)
	s.SSIM, s.Luminance, s.Contrast, s.Structure = ssim(a, b)

	return s, nil
}

// CompareKSpace computes the signal-domain scores on the magnitude and on
// the phase of the centered spectra of a and b.
func CompareKSpace(a, b []float64) (mag, phase Scores, err error) {
	if len(a) != len(b) {
		return Scores{}, Scores{}, fmt.Errorf("%w: signal lengths %d and %d",
			motion.ErrShapeMismatch, len(a), len(b))
	}

	fa := motion.Spectrum(a)
	fb := motion.Spectrum(b)

	magA, phaseA := magnitudeAndAngle(fa)
	magB, phaseB := magnitudeAndAngle(fb)

	mag, err = Compare(magA, magB)
	if err != nil {
		return Scores{}, Scores{}, err
	}
	phase, err = Compare(phaseA, phaseB)
	if err != nil {
		return Scores{}, Scores{}, err
	}
	return mag, phase, nil
}

func magnitudeAndAngle(spectrum []complex128) (mag, angle []float64) {
	mag = make([]float64, len(spectrum))
	angle = make([]float64, len(spectrum))
	for i, c := range spectrum {
		mag[i] = math.Hypot(real(c), imag(c))
		angle[i] = math.Atan2(imag(c), real(c))
	}
	return mag, angle
}

func normalizedCrossCorrelation(a, b []float64) float64 {
	n := float64(len(a))
	muA := stat.Mean(a, nil)
	muB := stat.Mean(b, nil)

	var cov, varA, varB float64
	for i := range a {
		da := a[i] - muA
		db := b[i] - muB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	denom := math.Sqrt(varA/n) * math.Sqrt(varB/n)
	if denom == 0 {
		return 0
	}
	return cov / n / denom
}

// ssim computes a global SSIM over the whole signal together with its
// luminance, contrast and structure components.
func ssim(a, b []float64) (index, luminance, contrast, structure float64) {
	c1 := (ssimK1 * ssimL) * (ssimK1 * ssimL)
	c2 := (ssimK2 * ssimL) * (ssimK2 * ssimL)
	c3 := c2 / 2

	muA := stat.Mean(a, nil)
	muB := stat.Mean(b, nil)
	varA := stat.Variance(a, nil)
	varB := stat.Variance(b, nil)
	cov := stat.Covariance(a, b, nil)

	sigmaA := math.Sqrt(varA)
	sigmaB := math.Sqrt(varB)

	luminance = (2*muA*muB + c1) / (muA*muA + muB*muB + c1)
	contrast = (2*sigmaA*sigmaB + c2) / (varA + varB + c2)
	structure = (cov + c3) / (sigmaA*sigmaB + c3)

	num := (2*muA*muB + c1) * (2*cov + c2)
	den := (muA*muA + muB*muB + c1) * (varA + varB + c2)
	if den > 0 {
		index = num / den
	}
	return index, luminance, contrast, structure
}
