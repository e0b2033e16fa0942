package distance

import (
	"math"
	"testing"

	"mrimotion/internal/models"
)

// TestSurfaceDistancesIdentical verifies that identical masks are at
// surface distance zero.
func TestSurfaceDistancesIdentical(t *testing.T) {
	vol := cube(16, 4, 4, 4, 5)

	d, err := SurfaceDistances(vol, vol)
	if err != nil {
		t.Fatalf("SurfaceDistances failed: %v", err)
	}
	if d != 0 {
		t.Errorf("Expected surface distance 0 for identical masks, got %g", d)
	}
}

// TestSurfaceDistancesOffsetVoxels verifies the symmetric mean for two
// single voxels three apart: both directional means are 3.
func TestSurfaceDistancesOffsetVoxels(t *testing.T) {
	a := singleVoxel(32, 8, 8, 8)
	b := singleVoxel(32, 11, 8, 8)

	d, err := SurfaceDistances(a, b)
	if err != nil {
		t.Fatalf("SurfaceDistances failed: %v", err)
	}
	if math.Abs(d-3) > 1e-9 {
		t.Errorf("Expected surface distance 3, got %g", d)
	}
}

// TestSurfaceDistancesEmptyMask verifies that an empty boundary yields NaN
// rather than a fabricated distance.
func TestSurfaceDistancesEmptyMask(t *testing.T) {
	a := singleVoxel(16, 8, 8, 8)
	empty := models.NewVolume(16, 16, 16)

	d, err := SurfaceDistances(a, empty)
	if err != nil {
		t.Fatalf("SurfaceDistances failed: %v", err)
	}
	if !math.IsNaN(d) {
		t.Errorf("Expected NaN for an empty mask, got %g", d)
	}
}

// TestSurfaceDistancesShapeMismatch verifies the shape guard.
func TestSurfaceDistancesShapeMismatch(t *testing.T) {
	_, err := SurfaceDistances(models.NewVolume(8, 8, 8), models.NewVolume(9, 9, 9))
	if err == nil {
		t.Error("Expected an error for mismatched shapes")
	}
}

// TestEdgeMaskCube verifies that the distance-transform edge of a solid
// cube matches the shell found by the shift-based boundary.
func TestEdgeMaskCube(t *testing.T) {
	vol := cube(9, 2, 2, 2, 4)

	edge := edgeMask(vol)
	shell := binaryBoundary(vol)
	if edge.Sum() != shell.Sum() {
		t.Errorf("Expected edge count %g to match shell count %g", edge.Sum(), shell.Sum())
	}
	for i := range edge.Data {
		if edge.Data[i] != shell.Data[i] {
			t.Fatalf("Edge and shell disagree at flat index %d", i)
		}
	}
}

// TestEdtSquared verifies a few hand-computed squared distances around an
// isolated source voxel.
func TestEdtSquared(t *testing.T) {
	mask := singleVoxel(7, 3, 3, 3)

	sq := edtSquared(mask, true)
	cases := []struct {
		x, y, z int
		want    float64
	}{
		{3, 3, 3, 0},
		{4, 3, 3, 1},
		{4, 4, 3, 2},
		{4, 4, 4, 3},
		{6, 3, 3, 9},
		{0, 0, 0, 27},
	}
	for _, c := range cases {
		got := sq[mask.Index(c.x, c.y, c.z)]
		if got != c.want {
			t.Errorf("Expected squared distance %g at (%d,%d,%d), got %g",
				c.want, c.x, c.y, c.z, got)
		}
	}
}
