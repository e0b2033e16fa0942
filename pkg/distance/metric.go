// Package distance measures boundary-based shape distance between binary
// 3D segmentation masks. A Metric precomputes a bank of radial distance
// kernels once and reuses it for every comparison, so the per-call work is
// a set of mask convolutions that batch well on vectorized backends.
package distance

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"mrimotion/internal/models"
)

// ErrInvalidRadius is returned when a Metric is constructed with a search
// radius below one voxel.
var ErrInvalidRadius = errors.New("radius must be at least 1")

const dim = 3

// offset is a voxel displacement within the cubic search neighborhood.
type offset struct {
	dx, dy, dz int
}

// Metric computes Hausdorff-style distances between thresholded volumes.
// After construction the precomputed distance map and kernel bank are
// read-only, so a single Metric is safe for concurrent use.
type Metric struct {
	cut    float64
	radius int
	side   int // 2*radius + 1

	// distanceMap holds the Euclidean distance of each neighborhood
	// offset from the center, clipped at radius; indexed like a
	// side^3 cube.
	distanceMap []float64

	// distances is the sorted list of unique values in distanceMap.
	distances []float64

	// kernels[i] lists the offsets at distance distances[i]. The
	// kernels partition the neighborhood: every offset belongs to
	// exactly one kernel.
	kernels [][]offset
}

// New precomputes the distance map and kernel bank for the given
// threshold and search radius.
func New(cut float64, radius int) (*Metric, error) {
	if radius < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRadius, radius)
	}

	m := &Metric{
		cut:    cut,
		radius: radius,
		side:   2*radius + 1,
	}
	m.buildDistanceMap()
	m.buildKernels()
	return m, nil
}

// Cut returns the foreground threshold.
func (m *Metric) Cut() float64 { return m.cut }

// Radius returns the search radius in voxels, which is also the distance
// assigned to source voxels with no target voxel inside the neighborhood.
func (m *Metric) Radius() int { return m.radius }

// Distances returns the ascending list of discrete distances represented
// in the kernel bank. Index i of a kernel-bank convolution corresponds to
// Distances()[i].
func (m *Metric) Distances() []float64 {
	out := make([]float64, len(m.distances))
	copy(out, m.distances)
	return out
}

func (m *Metric) buildDistanceMap() {
	r := m.radius
	m.distanceMap = make([]float64, m.side*m.side*m.side)

	i := 0
	for dz := -r; dz <= r; dz++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				d := math.Sqrt(float64(dx*dx + dy*dy + dz*dz))
				if d > float64(r) {
					d = float64(r)
				}
				m.distanceMap[i] = d
				i++
			}
		}
	}

	seen := make(map[float64]bool)
	for _, d := range m.distanceMap {
		if !seen[d] {
			seen[d] = true
			m.distances = append(m.distances, d)
		}
	}
	sort.Float64s(m.distances)
}

func (m *Metric) buildKernels() {
	r := m.radius
	index := make(map[float64]int, len(m.distances))
	for i, d := range m.distances {
		index[d] = i
	}

	m.kernels = make([][]offset, len(m.distances))
	i := 0
	for dz := -r; dz <= r; dz++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				k := index[m.distanceMap[i]]
				m.kernels[k] = append(m.kernels[k], offset{dx, dy, dz})
				i++
			}
		}
	}
}

// threshold returns the binary foreground mask of a volume at the
// Metric's cut.
func (m *Metric) threshold(vol *models.Volume) *models.Volume {
	out := models.NewVolume(vol.Width, vol.Height, vol.Depth)
	for i, v := range vol.Data {
		if v > m.cut {
			out.Data[i] = 1
		}
	}
	return out
}

// NearestDistances convolves the target mask with every distance kernel
// and returns, for each nonzero source voxel, the smallest represented
// distance whose kernel count is nonzero at that voxel. Source voxels with
// no target voxel inside the neighborhood get the maximum distance
// (the radius).
//
// With singleKernel=true all kernels except the last collapse into one, so
// the result per source voxel is 0 when any target voxel lies strictly
// inside the search radius and the radius otherwise. This is the fast path
// for counting unmatched points.
//
// Both masks must already be binary (0/1) and share a shape.
func (m *Metric) NearestDistances(src, tgt *models.Volume, singleKernel bool) ([]float64, error) {
	if !src.SameShape(tgt) {
		return nil, fmt.Errorf("source %dx%dx%d and target %dx%dx%d masks differ in shape",
			src.Width, src.Height, src.Depth, tgt.Width, tgt.Height, tgt.Depth)
	}

	var out []float64
	for z := 0; z < src.Depth; z++ {
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				if src.At(x, y, z) == 0 {
					continue
				}
				if singleKernel {
					out = append(out, m.innerKernelDistance(tgt, x, y, z))
				} else {
					out = append(out, m.nearestKernelDistance(tgt, x, y, z))
				}
			}
		}
	}
	return out, nil
}

// nearestKernelDistance evaluates the kernel-bank convolution of tgt at a
// single voxel, in ascending distance order, and returns the first
// distance with a nonzero count.
func (m *Metric) nearestKernelDistance(tgt *models.Volume, x, y, z int) float64 {
	for k, kernel := range m.kernels {
		if m.kernelCount(tgt, kernel, x, y, z) > 0 {
			return m.distances[k]
		}
	}
	return float64(m.radius)
}

// innerKernelDistance is the single-kernel variant: the union of all
// kernels but the last, which covers every offset strictly inside the
// radius.
func (m *Metric) innerKernelDistance(tgt *models.Volume, x, y, z int) float64 {
	for _, kernel := range m.kernels[:len(m.kernels)-1] {
		if m.kernelCount(tgt, kernel, x, y, z) > 0 {
			return 0
		}
	}
	return float64(m.radius)
}

// kernelCount counts target voxels under a kernel centered at (x, y, z).
// Offsets falling outside the volume contribute zero, matching a
// convolution padded with the radius.
func (m *Metric) kernelCount(tgt *models.Volume, kernel []offset, x, y, z int) int {
	count := 0
	for _, o := range kernel {
		tx, ty, tz := x+o.dx, y+o.dy, z+o.dz
		if tgt.In(tx, ty, tz) && tgt.At(tx, ty, tz) != 0 {
			count++
		}
	}
	return count
}
