package distance

import (
	"fmt"

	"mrimotion/internal/models"
)

// AverageHausdorffDistance measures the boundary distance between a
// predicted and a target segmentation. Both volumes are thresholded at
// the Metric's cut. The distance is the sum of two directional averages:
// the mean nearest distance from prediction-only voxels to the target
// boundary, and the mean nearest distance from target-only voxels to the
// prediction boundary. Each average divides by the full foreground count
// of the respective mask, and an empty directional mask contributes zero.
//
// Note the asymmetric-sum convention: the two directional terms are
// summed, not averaged. SurfaceDistances implements the symmetric-mean
// variant.
func (m *Metric) AverageHausdorffDistance(prediction, target *models.Volume) (float64, error) {
	if !prediction.SameShape(target) {
		return 0, shapeError(prediction, target)
	}

	pred := m.threshold(prediction)
	tgt := m.threshold(target)

	first, err := m.directionalAverage(pred, tgt)
	if err != nil {
		return 0, err
	}
	second, err := m.directionalAverage(tgt, pred)
	if err != nil {
		return 0, err
	}
	return first + second, nil
}

// directionalAverage computes the mean nearest distance from the voxels
// of src that are not shared with other, to the boundary of other,
// normalized by the total foreground count of src.
func (m *Metric) directionalAverage(src, other *models.Volume) (float64, error) {
	only := exclusive(src, other)
	if only.Sum() == 0 {
		return 0, nil
	}

	dists, err := m.NearestDistances(only, binaryBoundary(other), false)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, d := range dists {
		sum += d
	}
	return sum / src.Sum(), nil
}

// AmountOfFarPoints counts the prediction-only voxels with no target
// boundary voxel strictly inside the search radius, i.e. points left
// unmatched within the search window. An empty prediction-only mask
// yields zero.
func (m *Metric) AmountOfFarPoints(prediction, target *models.Volume) (int, error) {
	if !prediction.SameShape(target) {
		return 0, shapeError(prediction, target)
	}

	pred := m.threshold(prediction)
	tgt := m.threshold(target)

	only := exclusive(pred, tgt)
	if only.Sum() == 0 {
		return 0, nil
	}

	dists, err := m.NearestDistances(only, binaryBoundary(tgt), true)
	if err != nil {
		return 0, err
	}

	far := 0
	for _, d := range dists {
		if d >= float64(m.radius) {
			far++
		}
	}
	return far, nil
}

// BatchAverageHausdorffDistance sums the metric over paired samples.
func (m *Metric) BatchAverageHausdorffDistance(predictions, targets []*models.Volume) (float64, error) {
	if len(predictions) != len(targets) {
		return 0, fmt.Errorf("batch sizes differ: %d predictions, %d targets",
			len(predictions), len(targets))
	}

	total := 0.0
	for i := range predictions {
		d, err := m.AverageHausdorffDistance(predictions[i], targets[i])
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		total += d
	}
	return total, nil
}

// BatchAmountOfFarPoints sums the far-point counts over paired samples.
func (m *Metric) BatchAmountOfFarPoints(predictions, targets []*models.Volume) (int, error) {
	if len(predictions) != len(targets) {
		return 0, fmt.Errorf("batch sizes differ: %d predictions, %d targets",
			len(predictions), len(targets))
	}

	total := 0
	for i := range predictions {
		c, err := m.AmountOfFarPoints(predictions[i], targets[i])
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		total += c
	}
	return total, nil
}

// MeanAverageHausdorffDistance divides the batch sum by the batch size.
func (m *Metric) MeanAverageHausdorffDistance(predictions, targets []*models.Volume) (float64, error) {
	if len(predictions) == 0 {
		return 0, fmt.Errorf("empty batch")
	}
	total, err := m.BatchAverageHausdorffDistance(predictions, targets)
	if err != nil {
		return 0, err
	}
	return total / float64(len(predictions)), nil
}

// MeanAmountOfFarPoints divides the batch sum by the batch size.
func (m *Metric) MeanAmountOfFarPoints(predictions, targets []*models.Volume) (float64, error) {
	if len(predictions) == 0 {
		return 0, fmt.Errorf("empty batch")
	}
	total, err := m.BatchAmountOfFarPoints(predictions, targets)
	if err != nil {
		return 0, err
	}
	return float64(total) / float64(len(predictions)), nil
}

// exclusive returns a copy of mask with voxels shared with other zeroed.
func exclusive(mask, other *models.Volume) *models.Volume {
	out := mask.Clone()
	for i := range out.Data {
		if mask.Data[i] != 0 && other.Data[i] != 0 {
			out.Data[i] = 0
		}
	}
	return out
}

func shapeError(a, b *models.Volume) error {
	return fmt.Errorf("prediction %dx%dx%d and target %dx%dx%d differ in shape",
		a.Width, a.Height, a.Depth, b.Width, b.Height, b.Depth)
}
