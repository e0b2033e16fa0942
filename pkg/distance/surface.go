package distance

import (
	"math"

	"mrimotion/internal/models"
)

// SurfaceDistances computes the average boundary distance between two
// binary masks through Euclidean distance transforms, independently of
// the kernel-bank machinery: the boundary of each mask is the set of
// foreground voxels at distance exactly 1 from the background, and the
// result is the mean of the two directional boundary-to-boundary mean
// distances.
//
// Unlike AverageHausdorffDistance this is a true symmetric mean, and it
// has no search radius cutoff. A mask with an empty boundary yields NaN,
// which propagates to the caller.
func SurfaceDistances(a, b *models.Volume) (float64, error) {
	if !a.SameShape(b) {
		return 0, shapeError(a, b)
	}

	aEdge := edgeMask(a)
	bEdge := edgeMask(b)

	aSurf := distanceToMask(aEdge)
	bSurf := distanceToMask(bEdge)

	aToB := meanAtMask(bSurf, aEdge)
	bToA := meanAtMask(aSurf, bEdge)

	return (aToB + bToA) / 2, nil
}

// edgeMask returns the foreground voxels whose Euclidean distance to the
// background is exactly one voxel.
func edgeMask(mask *models.Volume) *models.Volume {
	sq := edtSquared(mask, false)
	out := models.NewVolume(mask.Width, mask.Height, mask.Depth)
	for i, d := range sq {
		if d == 1 {
			out.Data[i] = 1
		}
	}
	return out
}

// distanceToMask returns, for every voxel, the Euclidean distance to the
// nearest nonzero voxel of the mask (the distance transform of the
// mask's complement).
func distanceToMask(mask *models.Volume) []float64 {
	sq := edtSquared(mask, true)
	out := make([]float64, len(sq))
	for i, d := range sq {
		out[i] = math.Sqrt(d)
	}
	return out
}

func meanAtMask(values []float64, mask *models.Volume) float64 {
	sum := 0.0
	count := 0
	for i, m := range mask.Data {
		if m != 0 {
			sum += values[i]
			count++
		}
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// edtFar stands in for infinity in the squared distance transform; using
// a large finite value keeps the parabola intersections well defined.
const edtFar = 1e20

// edtSquared computes the exact squared Euclidean distance transform of a
// mask with the separable lower-envelope algorithm, one 1D pass per axis.
// With invert=false, distances are measured from nonzero voxels to the
// nearest zero voxel (zero voxels map to 0). With invert=true the roles
// flip: distances are measured to the nearest nonzero voxel.
func edtSquared(mask *models.Volume, invert bool) []float64 {
	w, h, d := mask.Width, mask.Height, mask.Depth
	out := make([]float64, len(mask.Data))
	for i, v := range mask.Data {
		source := v == 0
		if invert {
			source = !source
		}
		if source {
			out[i] = 0
		} else {
			out[i] = edtFar
		}
	}

	longest := w
	if h > longest {
		longest = h
	}
	if d > longest {
		longest = d
	}
	f := make([]float64, longest)
	dt := make([]float64, longest)
	v := make([]int, longest)
	z := make([]float64, longest+1)

	// Pass along x.
	for zi := 0; zi < d; zi++ {
		for yi := 0; yi < h; yi++ {
			base := zi*w*h + yi*w
			for xi := 0; xi < w; xi++ {
				f[xi] = out[base+xi]
			}
			dt1d(f[:w], dt[:w], v, z)
			for xi := 0; xi < w; xi++ {
				out[base+xi] = dt[xi]
			}
		}
	}

	// Pass along y.
	for zi := 0; zi < d; zi++ {
		for xi := 0; xi < w; xi++ {
			for yi := 0; yi < h; yi++ {
				f[yi] = out[zi*w*h+yi*w+xi]
			}
			dt1d(f[:h], dt[:h], v, z)
			for yi := 0; yi < h; yi++ {
				out[zi*w*h+yi*w+xi] = dt[yi]
			}
		}
	}

	// Pass along z.
	for yi := 0; yi < h; yi++ {
		for xi := 0; xi < w; xi++ {
			for zi := 0; zi < d; zi++ {
				f[zi] = out[zi*w*h+yi*w+xi]
			}
			dt1d(f[:d], dt[:d], v, z)
			for zi := 0; zi < d; zi++ {
				out[zi*w*h+yi*w+xi] = dt[zi]
			}
		}
	}

	return out
}

// dt1d is the 1D squared distance transform over a sampled function:
// d[p] = min_q ((p-q)^2 + f[q]), computed via the lower envelope of the
// parabolas rooted at each q.
func dt1d(f, d []float64, v []int, z []float64) {
	n := len(f)
	k := 0
	v[0] = 0
	z[0] = -edtFar
	z[1] = edtFar

	for q := 1; q < n; q++ {
		s := intersect(f, q, v[k])
		for s <= z[k] {
			k--
			s = intersect(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = edtFar
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

// intersect returns the abscissa where the parabolas rooted at q and p
// cross.
func intersect(f []float64, q, p int) float64 {
	fq := float64(q)
	fp := float64(p)
	return ((f[q] + fq*fq) - (f[p] + fp*fp)) / (2*fq - 2*fp)
}
