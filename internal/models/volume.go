package models

// Volume represents a 3D scalar field such as an MRI volume or a
// segmentation mask
type Volume struct {
	// Data is the volume data as a 1D array in row-major order,
	// indexed as Data[z*Width*Height + y*Width + x]
	Data []float64

	// Width is the extent of the volume along x in voxels
	Width int

	// Height is the extent of the volume along y in voxels
	Height int

	// Depth is the extent of the volume along z in voxels
	Depth int
}

// NewVolume allocates a zero-filled volume with the given dimensions
func NewVolume(width, height, depth int) *Volume {
	return &Volume{
		Data:   make([]float64, width*height*depth),
		Width:  width,
		Height: height,
		Depth:  depth,
	}
}

// Index returns the flat index of the voxel at (x, y, z)
func (v *Volume) Index(x, y, z int) int {
	return z*v.Width*v.Height + y*v.Width + x
}

// At returns the value of the voxel at (x, y, z)
func (v *Volume) At(x, y, z int) float64 {
	return v.Data[v.Index(x, y, z)]
}

// Set assigns the value of the voxel at (x, y, z)
func (v *Volume) Set(x, y, z int, value float64) {
	v.Data[v.Index(x, y, z)] = value
}

// In reports whether (x, y, z) lies inside the volume bounds
func (v *Volume) In(x, y, z int) bool {
	return x >= 0 && x < v.Width &&
		y >= 0 && y < v.Height &&
		z >= 0 && z < v.Depth
}

// Clone returns a deep copy of the volume
func (v *Volume) Clone() *Volume {
	out := NewVolume(v.Width, v.Height, v.Depth)
	copy(out.Data, v.Data)
	return out
}

// SameShape reports whether two volumes have identical dimensions
func (v *Volume) SameShape(o *Volume) bool {
	return v.Width == o.Width && v.Height == o.Height && v.Depth == o.Depth
}

// Sum returns the sum of all voxel values. For a binary mask this is the
// number of foreground voxels.
func (v *Volume) Sum() float64 {
	total := 0.0
	for _, val := range v.Data {
		total += val
	}
	return total
}
