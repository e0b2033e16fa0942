// Package motion simulates rigid-body motion artifacts in MRI signals and
// volumes by phase-modulating their k-space representation with a
// time-varying displacement course, and provides the search routines used
// to estimate and remove residual uniform displacements.
package motion

import (
	"fmt"
	"log"
	"math"
)

// Method selects the parametric shape of a displacement course.
type Method string

const (
	// MethodGauss is a Gaussian displacement bump centered at the
	// requested frequency index.
	MethodGauss Method = "gauss"

	// MethodStep is a single ramped step; the step sign depends on
	// whether the center index falls in the first or second half of the
	// course.
	MethodStep Method = "step"

	// MethodTwoStep is a two-level course: ramp up to a first plateau,
	// ramp to a second plateau, then ramp back down to zero.
	MethodTwoStep Method = "2step"

	// MethodUStep is a rectangular displacement pulse.
	MethodUStep Method = "Ustep"

	// MethodSin is a sinusoidal course with period controlled by the
	// center index.
	MethodSin Method = "sin"
)

// Centering selects how a course is offset after construction.
type Centering string

const (
	// CenterZero shifts the course so its midpoint value is exactly 0,
	// which pins the k-space center to zero displacement.
	CenterZero Centering = "zero"

	// CenterNone leaves the course as constructed.
	CenterNone Centering = "none"
)

// NumRigidAxes is the number of rigid-motion degrees of freedom:
// 3 translations followed by 3 rotations.
const NumRigidAxes = 6

// CourseParams describes a parametric displacement course.
type CourseParams struct {
	// Center is the frequency index x0 at which the shape is anchored
	// (bump peak, step location, pulse center, or sinusoid period).
	Center int

	// Spread is the shape width sigma: the standard deviation for
	// MethodGauss, half the ramp length for MethodStep and
	// MethodTwoStep, and the pulse width for MethodUStep.
	Spread int

	// Plateaus holds the two plateau lengths used by MethodTwoStep.
	Plateaus [2]int

	// Amplitude is the displacement magnitude in voxels. For
	// MethodTwoStep it is the first plateau level.
	Amplitude float64

	// SecondAmplitude is the second plateau level for MethodTwoStep.
	SecondAmplitude float64

	// Method selects the course shape.
	Method Method

	// Centering selects the post-construction offset.
	Centering Centering

	// Resolution is the course length, equal to the k-space extent of
	// the transform axis it will be applied to.
	Resolution int
}

// BuildCourse builds a 1D displacement-vs-frequency-index course of length
// p.Resolution. An unrecognized method is an error rather than a silently
// unset course; callers get ErrUnknownMethod and no data.
func BuildCourse(p CourseParams) ([]float64, error) {
	if p.Resolution < 1 {
		return nil, fmt.Errorf("%w: resolution %d", ErrInvalidParameter, p.Resolution)
	}

	var y []float64
	switch p.Method {
	case MethodGauss:
		y = gaussCourse(p)
	case MethodStep:
		var err error
		y, err = stepCourse(p)
		if err != nil {
			return nil, err
		}
	case MethodTwoStep:
		var err error
		y, err = twoStepCourse(p)
		if err != nil {
			return nil, err
		}
	case MethodUStep:
		y = uStepCourse(p)
	case MethodSin:
		y = sinCourse(p)
	default:
		return nil, fmt.Errorf("%w: corruption method %q", ErrUnknownMethod, p.Method)
	}

	if p.Centering == CenterZero {
		mid := y[p.Resolution/2]
		for i := range y {
			y[i] -= mid
		}
	}

	return y, nil
}

// BuildRigidCourse builds the course and broadcasts it onto the requested
// subset of the 6 rigid-motion axes. Rows for unrequested axes stay zero.
func BuildRigidCourse(p CourseParams, axes []int) ([][]float64, error) {
	y, err := BuildCourse(p)
	if err != nil {
		return nil, err
	}

	course := make([][]float64, NumRigidAxes)
	for i := range course {
		course[i] = make([]float64, p.Resolution)
	}
	for _, axis := range axes {
		if axis < 0 || axis >= NumRigidAxes {
			return nil, fmt.Errorf("%w: rigid axis %d out of range [0,%d)",
				ErrInvalidParameter, axis, NumRigidAxes)
		}
		copy(course[axis], y)
	}

	return course, nil
}

func gaussCourse(p CourseParams) []float64 {
	y := make([]float64, p.Resolution)
	sigma := float64(p.Spread)
	for i := range y {
		d := float64(i - p.Center)
		y[i] = p.Amplitude * math.Exp(-d*d/(2*sigma*sigma))
	}
	return y
}

// stepCourse builds zeros, a ramp of 2*sigma+1 samples, then a plateau out
// to the end of the course. The step is positive when the center lies in
// the first half of the range and negative otherwise.
func stepCourse(p CourseParams) ([]float64, error) {
	lead := p.Center - p.Spread
	tail := p.Resolution - p.Center - p.Spread - 1
	if lead < 0 || tail < 0 {
		return nil, fmt.Errorf("%w: step at %d with spread %d does not fit resolution %d",
			ErrInvalidParameter, p.Center, p.Spread, p.Resolution)
	}

	amplitude := p.Amplitude
	if p.Center >= p.Resolution/2 {
		amplitude = -amplitude
	}

	y := make([]float64, 0, p.Resolution)
	y = append(y, make([]float64, lead)...)
	y = append(y, linspace(0, amplitude, 2*p.Spread+1)...)
	y = append(y, constant(amplitude, tail)...)
	return y, nil
}

// twoStepCourse builds zeros, a ramp to the first plateau, the plateau, a
// ramp to the second plateau, the second plateau, and a ramp back to zero.
// A course longer than the resolution is truncated with a diagnostic
// rather than rejected.
func twoStepCourse(p CourseParams) ([]float64, error) {
	lead := p.Center - p.Spread
	if lead < 0 || p.Plateaus[0] < 1 || p.Plateaus[1] < 1 {
		return nil, fmt.Errorf("%w: 2step at %d with spread %d and plateaus %v",
			ErrInvalidParameter, p.Center, p.Spread, p.Plateaus)
	}

	ramp := 2*p.Spread + 1
	y := make([]float64, 0, lead+3*ramp+p.Plateaus[0]+p.Plateaus[1])
	y = append(y, make([]float64, lead)...)
	y = append(y, linspace(0, p.Amplitude, ramp)...)
	y = append(y, constant(p.Amplitude, p.Plateaus[0]-1)...)
	y = append(y, linspace(p.Amplitude, p.SecondAmplitude, ramp)...)
	y = append(y, constant(p.SecondAmplitude, p.Plateaus[1]-1)...)
	y = append(y, linspace(p.SecondAmplitude, 0, ramp)...)

	if len(y) > p.Resolution {
		log.Printf("warning: 2step course of length %d exceeds resolution %d, truncating",
			len(y), p.Resolution)
		y = y[:p.Resolution]
	} else {
		y = append(y, make([]float64, p.Resolution-len(y))...)
	}
	return y, nil
}

func uStepCourse(p CourseParams) []float64 {
	y := make([]float64, p.Resolution)
	left := p.Center - p.Spread/2
	if left < 0 {
		left = 0
	}
	right := p.Center + p.Spread/2
	if right > p.Resolution {
		right = p.Resolution
	}
	for i := left; i < right; i++ {
		y[i] = p.Amplitude
	}
	return y
}

func sinCourse(p CourseParams) []float64 {
	y := make([]float64, p.Resolution)
	for i := range y {
		y[i] = math.Sin(float64(i) / float64(p.Center) * 2 * math.Pi)
	}
	return y
}

// linspace returns n evenly spaced samples from a to b inclusive.
func linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = a
		return out
	}
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	return out
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
