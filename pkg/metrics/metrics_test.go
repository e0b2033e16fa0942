package metrics

import (
	"errors"
	"math"
	"testing"

	"mrimotion/pkg/motion"
)

func testSignal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := float64(i)
		out[i] = 0.5 + 0.4*math.Sin(x/7) + 0.2*math.Cos(x/3)
	}
	return out
}

// TestCompareIdentical verifies that a signal compared against itself
// scores zero error and perfect similarity.
func TestCompareIdentical(t *testing.T) {
	x := testSignal(128)

	s, err := Compare(x, x)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if s.L1 != 0 {
		t.Errorf("Expected L1=0, got %g", s.L1)
	}
	if s.L2 != 0 {
		t.Errorf("Expected L2=0, got %g", s.L2)
	}
	if math.Abs(s.Pearson-1) > 1e-9 {
		t.Errorf("Expected Pearson=1, got %g", s.Pearson)
	}
	if math.Abs(s.NCC-1) > 1e-9 {
		t.Errorf("Expected NCC=1, got %g", s.NCC)
	}
	if math.Abs(s.SSIM-1) > 1e-9 {
		t.Errorf("Expected SSIM=1, got %g", s.SSIM)
	}
	if math.Abs(s.Luminance-1) > 1e-9 || math.Abs(s.Contrast-1) > 1e-9 || math.Abs(s.Structure-1) > 1e-9 {
		t.Errorf("Expected unit SSIM components, got %g %g %g",
			s.Luminance, s.Contrast, s.Structure)
	}
}

// TestCompareKnownErrors verifies L1 and L2 against a hand-computed pair.
func TestCompareKnownErrors(t *testing.T) {
	a := []float64{0, 0, 0, 0}
	b := []float64{1, 1, -1, 1}

	s, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if s.L1 != 1 {
		t.Errorf("Expected L1=1, got %g", s.L1)
	}
	if s.L2 != 1 {
		t.Errorf("Expected L2=1, got %g", s.L2)
	}
}

// TestCompareLengthMismatch verifies the shape guard.
func TestCompareLengthMismatch(t *testing.T) {
	_, err := Compare(make([]float64, 8), make([]float64, 9))
	if !errors.Is(err, motion.ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch, got %v", err)
	}
}

// TestCompareKSpaceIdentical verifies that identical signals score perfect
// similarity on both spectral magnitude and phase.
func TestCompareKSpaceIdentical(t *testing.T) {
	x := testSignal(64)

	mag, phase, err := CompareKSpace(x, x)
	if err != nil {
		t.Fatalf("CompareKSpace failed: %v", err)
	}
	if mag.L1 != 0 {
		t.Errorf("Expected magnitude L1=0, got %g", mag.L1)
	}
	if phase.L1 != 0 {
		t.Errorf("Expected phase L1=0, got %g", phase.L1)
	}
	if math.Abs(mag.SSIM-1) > 1e-9 {
		t.Errorf("Expected magnitude SSIM=1, got %g", mag.SSIM)
	}
}

// TestCompareKSpaceLengthMismatch verifies the shape guard on the spectral
// path.
func TestCompareKSpaceLengthMismatch(t *testing.T) {
	_, _, err := CompareKSpace(make([]float64, 8), make([]float64, 16))
	if !errors.Is(err, motion.ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch, got %v", err)
	}
}

// TestNCCAntiCorrelated verifies the sign convention of the normalized
// cross-correlation.
func TestNCCAntiCorrelated(t *testing.T) {
	a := testSignal(64)
	b := make([]float64, len(a))
	for i, v := range a {
		b[i] = -v
	}

	s, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if math.Abs(s.NCC+1) > 1e-9 {
		t.Errorf("Expected NCC=-1 for an inverted signal, got %g", s.NCC)
	}
	if math.Abs(s.Pearson+1) > 1e-9 {
		t.Errorf("Expected Pearson=-1 for an inverted signal, got %g", s.Pearson)
	}
}
