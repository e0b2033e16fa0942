package motion

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/interp"
)

// RandomTwoStep draws a random two-level course, used as the reference
// object in 1D motion experiments. The ramp length is fixed, plateau
// lengths and levels are drawn uniformly, and the anchor index is drawn
// from the first half of the range. With sym=true the first half of the
// course is mirrored onto the second, producing an even-symmetric object.
func RandomTwoStep(rng *rand.Rand, ramp int, sym bool, resolution int) ([]float64, error) {
	hi := resolution / 2
	if hi <= ramp {
		return nil, fmt.Errorf("%w: ramp %d too large for resolution %d",
			ErrInvalidParameter, ramp, resolution)
	}

	p := CourseParams{
		Center:          ramp + rng.Intn(hi-ramp),
		Spread:          ramp,
		Plateaus:        [2]int{10 + rng.Intn(90), 10 + rng.Intn(190)},
		Amplitude:       rng.Float64(),
		SecondAmplitude: rng.Float64(),
		Method:          MethodTwoStep,
		Centering:       CenterNone,
		Resolution:      resolution,
	}
	y, err := BuildCourse(p)
	if err != nil {
		return nil, err
	}

	if sym {
		center := resolution / 2
		for i := 0; i < resolution-center; i++ {
			y[center+i] = y[center-1-i]
		}
	}
	return y, nil
}

// PerlinCourse builds a smooth pseudo-random displacement course by
// summing weighted octaves of monotone-cubic interpolated uniform noise,
// normalizing the sum to [-0.5, 0.5], and resampling it linearly to the
// requested resolution.
func PerlinCourse(rng *rand.Rand, points int, weights []float64, resolution int) ([]float64, error) {
	noise, err := perlinNoise1D(rng, points, weights)
	if err != nil {
		return nil, err
	}

	var lin interp.PiecewiseLinear
	if err := lin.Fit(linspace(0, 1, len(noise)), noise); err != nil {
		return nil, fmt.Errorf("resampling perlin noise: %w", err)
	}

	out := make([]float64, resolution)
	for i, x := range linspace(0, 1, resolution) {
		out[i] = lin.Predict(x)
	}
	return out, nil
}

func perlinNoise1D(rng *rand.Rand, points int, weights []float64) ([]float64, error) {
	if points < 2 {
		return nil, fmt.Errorf("%w: perlin noise needs at least 2 points", ErrInvalidParameter)
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: perlin noise needs at least one octave weight", ErrInvalidParameter)
	}

	xvals := linspace(0, 1, points)
	total := make([]float64, points)

	for i, w := range weights {
		frequency := 1 << i
		octavePoints := int(math.Round(float64(points) / float64(frequency)))
		if octavePoints <= 1 {
			// Octave resolution maxed out; higher frequencies add nothing.
			continue
		}

		ys := make([]float64, octavePoints)
		for j := range ys {
			ys[j] = rng.Float64()
		}

		var pchip interp.FritschButland
		if err := pchip.Fit(linspace(0, 1, octavePoints), ys); err != nil {
			return nil, fmt.Errorf("fitting perlin octave %d: %w", i, err)
		}
		for j, x := range xvals {
			total[j] += w * pchip.Predict(x)
		}
	}

	min, max := total[0], total[0]
	for _, v := range total {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	span := max - min
	for i := range total {
		if span > 0 {
			total[i] = (total[i]-min)/span - 0.5
		} else {
			total[i] = -0.5
		}
	}
	return total, nil
}
