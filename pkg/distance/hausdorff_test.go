package distance

import (
	"testing"

	"mrimotion/internal/models"
)

// TestAverageHausdorffIdentical verifies that identical masks are at
// distance zero.
func TestAverageHausdorffIdentical(t *testing.T) {
	m, err := New(0.5, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	vol := cube(16, 4, 4, 4, 5)
	d, err := m.AverageHausdorffDistance(vol, vol)
	if err != nil {
		t.Fatalf("AverageHausdorffDistance failed: %v", err)
	}
	if d != 0 {
		t.Errorf("Expected distance 0 for identical masks, got %g", d)
	}
}

// TestAverageHausdorffOffsetVoxels verifies the hand-computed distance for
// two single voxels three apart: each direction contributes 3, and the
// directional terms are summed.
func TestAverageHausdorffOffsetVoxels(t *testing.T) {
	m, err := New(0.5, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	pred := singleVoxel(32, 8, 8, 8)
	tgt := singleVoxel(32, 11, 8, 8)

	d, err := m.AverageHausdorffDistance(pred, tgt)
	if err != nil {
		t.Fatalf("AverageHausdorffDistance failed: %v", err)
	}
	if d != 6 {
		t.Errorf("Expected distance 6, got %g", d)
	}
}

// TestAverageHausdorffEmptyTarget verifies that an empty target saturates
// the prediction side at the radius while the empty side contributes zero.
func TestAverageHausdorffEmptyTarget(t *testing.T) {
	m, err := New(0.5, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	pred := cube(16, 4, 4, 4, 3)
	tgt := models.NewVolume(16, 16, 16)

	d, err := m.AverageHausdorffDistance(pred, tgt)
	if err != nil {
		t.Fatalf("AverageHausdorffDistance failed: %v", err)
	}
	if d != 5 {
		t.Errorf("Expected the radius 5 for an empty target, got %g", d)
	}
}

// TestAverageHausdorffBothEmpty verifies that two empty masks are at
// distance zero.
func TestAverageHausdorffBothEmpty(t *testing.T) {
	m, err := New(0.5, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	empty := models.NewVolume(8, 8, 8)
	d, err := m.AverageHausdorffDistance(empty, empty)
	if err != nil {
		t.Fatalf("AverageHausdorffDistance failed: %v", err)
	}
	if d != 0 {
		t.Errorf("Expected distance 0 for empty masks, got %g", d)
	}
}

// TestAverageHausdorffShapeMismatch verifies the shape guard.
func TestAverageHausdorffShapeMismatch(t *testing.T) {
	m, err := New(0.5, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = m.AverageHausdorffDistance(models.NewVolume(8, 8, 8), models.NewVolume(9, 9, 9))
	if err == nil {
		t.Error("Expected an error for mismatched shapes")
	}
}

// TestAmountOfFarPoints verifies the unmatched-point count inside and
// outside the search radius.
func TestAmountOfFarPoints(t *testing.T) {
	m, err := New(0.5, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Three voxels apart: matched within the radius.
	near, err := m.AmountOfFarPoints(singleVoxel(32, 8, 8, 8), singleVoxel(32, 11, 8, 8))
	if err != nil {
		t.Fatalf("AmountOfFarPoints failed: %v", err)
	}
	if near != 0 {
		t.Errorf("Expected 0 far points within the radius, got %d", near)
	}

	// Ten voxels apart: unmatched.
	far, err := m.AmountOfFarPoints(singleVoxel(32, 8, 8, 8), singleVoxel(32, 18, 8, 8))
	if err != nil {
		t.Fatalf("AmountOfFarPoints failed: %v", err)
	}
	if far != 1 {
		t.Errorf("Expected 1 far point outside the radius, got %d", far)
	}

	// Identical masks have no exclusive voxels to count.
	same, err := m.AmountOfFarPoints(singleVoxel(32, 8, 8, 8), singleVoxel(32, 8, 8, 8))
	if err != nil {
		t.Fatalf("AmountOfFarPoints failed: %v", err)
	}
	if same != 0 {
		t.Errorf("Expected 0 far points for identical masks, got %d", same)
	}
}

// TestBatchAndMean verifies batch summing, mean normalization and the
// batch guards.
func TestBatchAndMean(t *testing.T) {
	m, err := New(0.5, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	pred := singleVoxel(32, 8, 8, 8)
	tgt := singleVoxel(32, 11, 8, 8)
	preds := []*models.Volume{pred, pred}
	tgts := []*models.Volume{tgt, tgt}

	sum, err := m.BatchAverageHausdorffDistance(preds, tgts)
	if err != nil {
		t.Fatalf("BatchAverageHausdorffDistance failed: %v", err)
	}
	if sum != 12 {
		t.Errorf("Expected batch sum 12, got %g", sum)
	}

	mean, err := m.MeanAverageHausdorffDistance(preds, tgts)
	if err != nil {
		t.Fatalf("MeanAverageHausdorffDistance failed: %v", err)
	}
	if mean != 6 {
		t.Errorf("Expected batch mean 6, got %g", mean)
	}

	farMean, err := m.MeanAmountOfFarPoints(preds, tgts)
	if err != nil {
		t.Fatalf("MeanAmountOfFarPoints failed: %v", err)
	}
	if farMean != 0 {
		t.Errorf("Expected mean far count 0, got %g", farMean)
	}

	if _, err := m.BatchAverageHausdorffDistance(preds, tgts[:1]); err == nil {
		t.Error("Expected an error for mismatched batch sizes")
	}
	if _, err := m.MeanAverageHausdorffDistance(nil, nil); err == nil {
		t.Error("Expected an error for an empty batch")
	}
	if _, err := m.MeanAmountOfFarPoints(nil, nil); err == nil {
		t.Error("Expected an error for an empty batch")
	}
}
