package distance

import "mrimotion/internal/models"

// Boundary thresholds the volume at the Metric's cut and returns the mask
// of foreground voxels adjacent to a foreground/background transition:
// for each spatial axis the thresholded volume is compared against itself
// shifted by one voxel in both directions, and voxels where the
// difference is exactly 1 are marked.
//
// A volume with no transitions (entirely background or entirely
// foreground) has an empty boundary; the volume edge itself does not
// count as a transition. Implementations that zero-pad before
// differencing instead mark foreground voxels on the volume edge as
// boundary, so masks touching the edge score differently here than
// under that convention.
func (m *Metric) Boundary(vol *models.Volume) *models.Volume {
	return binaryBoundary(m.threshold(vol))
}

// binaryBoundary is Boundary for an already-thresholded mask.
func binaryBoundary(ref *models.Volume) *models.Volume {
	out := models.NewVolume(ref.Width, ref.Height, ref.Depth)

	steps := [dim][3]int{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}

	for z := 0; z < ref.Depth; z++ {
		for y := 0; y < ref.Height; y++ {
			for x := 0; x < ref.Width; x++ {
				if ref.At(x, y, z) == 0 {
					continue
				}
				for _, s := range steps {
					if isBackground(ref, x+s[0], y+s[1], z+s[2]) ||
						isBackground(ref, x-s[0], y-s[1], z-s[2]) {
						out.Set(x, y, z, 1)
						break
					}
				}
			}
		}
	}
	return out
}

// isBackground reports whether the voxel is an in-bounds background voxel.
// Out-of-bounds neighbors are not transitions.
func isBackground(ref *models.Volume, x, y, z int) bool {
	return ref.In(x, y, z) && ref.At(x, y, z) == 0
}
