package distance

import (
	"errors"
	"math"
	"testing"

	"mrimotion/internal/models"
)

// singleVoxel returns a size^3 mask with one foreground voxel.
func singleVoxel(size, x, y, z int) *models.Volume {
	vol := models.NewVolume(size, size, size)
	vol.Set(x, y, z, 1)
	return vol
}

// TestNewInvalidRadius verifies the radius guard.
func TestNewInvalidRadius(t *testing.T) {
	if _, err := New(0.5, 0); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("Expected ErrInvalidRadius for radius 0, got %v", err)
	}
	if _, err := New(0.5, -3); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("Expected ErrInvalidRadius for a negative radius, got %v", err)
	}
}

// TestDistances verifies the discrete distance list: ascending, starting
// at zero for the center offset and ending at the clipped radius.
func TestDistances(t *testing.T) {
	m, err := New(0.5, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	d := m.Distances()
	if d[0] != 0 {
		t.Errorf("Expected smallest distance 0, got %g", d[0])
	}
	if d[len(d)-1] != 2 {
		t.Errorf("Expected largest distance equal to the radius, got %g", d[len(d)-1])
	}
	for i := 1; i < len(d); i++ {
		if d[i] <= d[i-1] {
			t.Errorf("Expected strictly ascending distances, got %g after %g", d[i], d[i-1])
		}
	}

	// sqrt(2) and sqrt(3) are the face-diagonal and cube-diagonal
	// neighbor distances and must be represented.
	found2, found3 := false, false
	for _, v := range d {
		if math.Abs(v-math.Sqrt2) < 1e-12 {
			found2 = true
		}
		if math.Abs(v-math.Sqrt(3)) < 1e-12 {
			found3 = true
		}
	}
	if !found2 || !found3 {
		t.Errorf("Expected sqrt(2) and sqrt(3) among distances %v", d)
	}
}

// TestKernelPartition verifies that the kernels partition the cubic
// neighborhood: every offset appears in exactly one kernel.
func TestKernelPartition(t *testing.T) {
	m, err := New(0.5, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	total := 0
	for _, kernel := range m.kernels {
		total += len(kernel)
	}
	if want := m.side * m.side * m.side; total != want {
		t.Errorf("Expected %d offsets across all kernels, got %d", want, total)
	}

	if len(m.kernels[0]) != 1 {
		t.Errorf("Expected exactly the center offset at distance 0, got %d offsets",
			len(m.kernels[0]))
	}
}

// TestNearestDistancesSelf verifies a source voxel lying on the target.
func TestNearestDistancesSelf(t *testing.T) {
	m, err := New(0.5, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	src := singleVoxel(9, 4, 4, 4)

	d, err := m.NearestDistances(src, src, false)
	if err != nil {
		t.Fatalf("NearestDistances failed: %v", err)
	}
	if len(d) != 1 || d[0] != 0 {
		t.Errorf("Expected [0], got %v", d)
	}
}

// TestNearestDistancesNeighbor verifies the unit distance to an adjacent
// target voxel.
func TestNearestDistancesNeighbor(t *testing.T) {
	m, err := New(0.5, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	src := singleVoxel(9, 4, 4, 4)
	tgt := singleVoxel(9, 5, 4, 4)

	d, err := m.NearestDistances(src, tgt, false)
	if err != nil {
		t.Fatalf("NearestDistances failed: %v", err)
	}
	if len(d) != 1 || d[0] != 1 {
		t.Errorf("Expected [1], got %v", d)
	}
}

// TestNearestDistancesEmptyTarget verifies that source voxels with no
// target in the neighborhood get the radius.
func TestNearestDistancesEmptyTarget(t *testing.T) {
	m, err := New(0.5, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	src := singleVoxel(9, 4, 4, 4)
	tgt := models.NewVolume(9, 9, 9)

	d, err := m.NearestDistances(src, tgt, false)
	if err != nil {
		t.Fatalf("NearestDistances failed: %v", err)
	}
	if len(d) != 1 || d[0] != 3 {
		t.Errorf("Expected [3], got %v", d)
	}
}

// TestNearestDistancesSingleKernel verifies the collapsed fast path: zero
// when any target voxel lies strictly inside the radius, the radius
// otherwise.
func TestNearestDistancesSingleKernel(t *testing.T) {
	m, err := New(0.5, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	src := singleVoxel(9, 4, 4, 4)

	near, err := m.NearestDistances(src, singleVoxel(9, 6, 4, 4), true)
	if err != nil {
		t.Fatalf("NearestDistances failed: %v", err)
	}
	if near[0] != 0 {
		t.Errorf("Expected 0 for a target inside the radius, got %g", near[0])
	}

	far, err := m.NearestDistances(src, models.NewVolume(9, 9, 9), true)
	if err != nil {
		t.Fatalf("NearestDistances failed: %v", err)
	}
	if far[0] != 3 {
		t.Errorf("Expected the radius for an empty target, got %g", far[0])
	}
}

// TestNearestDistancesShapeMismatch verifies the shape guard.
func TestNearestDistancesShapeMismatch(t *testing.T) {
	m, err := New(0.5, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = m.NearestDistances(models.NewVolume(4, 4, 4), models.NewVolume(5, 5, 5), false)
	if err == nil {
		t.Error("Expected an error for mismatched shapes")
	}
}

// TestAccessors verifies the exported parameter accessors.
func TestAccessors(t *testing.T) {
	m, err := New(0.25, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if m.Cut() != 0.25 {
		t.Errorf("Expected cut 0.25, got %g", m.Cut())
	}
	if m.Radius() != 4 {
		t.Errorf("Expected radius 4, got %d", m.Radius())
	}
}
