// Package experiment drives motion-corruption sweeps: for every point of
// an amplitude x spread x center grid it corrupts a reference object,
// estimates the residual rigid shift of the corrupted signal, re-simulates
// with the shift-corrected course and scores the outcome against the
// original object.
package experiment

import (
	"fmt"
	"log"
	"runtime"

	"mrimotion/pkg/metrics"
	"mrimotion/pkg/motion"
)

// Params configures a sweep.
type Params struct {
	// Resolution is the signal length of the reference object.
	Resolution int

	// Method is the displacement course shape used for corruption.
	Method motion.Method

	// Amplitudes, Spreads and Centers span the corruption grid.
	Amplitudes []float64
	Spreads    []int
	Centers    []int

	// ShiftMin and ShiftMax bound the residual shift search, in whole
	// voxels.
	ShiftMin int
	ShiftMax int

	// NumCores caps the number of grid points evaluated concurrently.
	// Zero means all available cores.
	NumCores int

	// Verbose enables per-point progress logging.
	Verbose bool
}

// Result holds the outcome of a single grid point.
type Result struct {
	// Corruption parameters of this point.
	Amplitude float64
	Spread    int
	Center    int

	// Shift is the estimated correction for the residual displacement
	// of the corrupted signal, in voxels: the negated displacement,
	// added onto the course before the corrected re-simulation.
	Shift float64

	// Image scores compare the shift-corrected simulation against the
	// original object in the signal domain.
	Image metrics.Scores

	// KSpaceMagnitude and KSpacePhase compare the centered spectra.
	KSpaceMagnitude metrics.Scores
	KSpacePhase     metrics.Scores
}

// Runner evaluates a sweep over a fixed reference object.
type Runner struct {
	params     Params
	object     []float64
	candidates []float64
}

// NewRunner validates the sweep parameters against the reference object.
func NewRunner(params Params, object []float64) (*Runner, error) {
	if len(object) != params.Resolution {
		return nil, fmt.Errorf("%w: object length %d, resolution %d",
			motion.ErrShapeMismatch, len(object), params.Resolution)
	}
	if params.ShiftMax < params.ShiftMin {
		return nil, fmt.Errorf("%w: shift range [%d, %d]",
			motion.ErrInvalidParameter, params.ShiftMin, params.ShiftMax)
	}
	if params.NumCores <= 0 {
		params.NumCores = runtime.NumCPU()
	}

	candidates := make([]float64, 0, params.ShiftMax-params.ShiftMin+1)
	for s := params.ShiftMin; s <= params.ShiftMax; s++ {
		candidates = append(candidates, float64(s))
	}

	obj := make([]float64, len(object))
	copy(obj, object)

	return &Runner{
		params:     params,
		object:     obj,
		candidates: candidates,
	}, nil
}

// Run evaluates every grid point, spreading the work over NumCores
// goroutines. Results come back in grid order: amplitude outermost, then
// spread, then center.
func (r *Runner) Run() ([]Result, error) {
	type task struct {
		index     int
		amplitude float64
		spread    int
		center    int
	}
	type outcome struct {
		index  int
		result Result
		err    error
	}

	total := len(r.params.Amplitudes) * len(r.params.Spreads) * len(r.params.Centers)
	tasks := make([]task, 0, total)
	i := 0
	for _, amp := range r.params.Amplitudes {
		for _, spread := range r.params.Spreads {
			for _, center := range r.params.Centers {
				tasks = append(tasks, task{i, amp, spread, center})
				i++
			}
		}
	}

	resultChan := make(chan outcome)
	sem := make(chan struct{}, r.params.NumCores)

	for _, t := range tasks {
		go func(t task) {
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := r.runPoint(t.amplitude, t.spread, t.center)
			resultChan <- outcome{index: t.index, result: res, err: err}
		}(t)
	}

	results := make([]Result, total)
	completed := 0
	var firstErr error
	for completed < total {
		out := <-resultChan
		completed++
		if out.err != nil {
			if firstErr == nil {
				firstErr = out.err
			}
			continue
		}
		results[out.index] = out.result
		if r.params.Verbose {
			log.Printf("sweep %d/%d: amplitude=%g spread=%d center=%d shift=%g",
				completed, total, out.result.Amplitude, out.result.Spread,
				out.result.Center, out.result.Shift)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// runPoint corrupts the object with one course, estimates the residual
// shift, re-simulates with the corrected course and scores the result.
func (r *Runner) runPoint(amplitude float64, spread, center int) (Result, error) {
	course, err := motion.BuildCourse(motion.CourseParams{
		Center:     center,
		Spread:     spread,
		Amplitude:  amplitude,
		Method:     r.params.Method,
		Centering:  motion.CenterNone,
		Resolution: r.params.Resolution,
	})
	if err != nil {
		return Result{}, fmt.Errorf("building course: %w", err)
	}

	corrupted, err := motion.Simulate(course, r.object)
	if err != nil {
		return Result{}, fmt.Errorf("simulating corruption: %w", err)
	}

	// The search rolls the corrupted signal toward the object, so the
	// returned shift is the negated residual displacement; adding it to
	// the course cancels the offset.
	shift, err := motion.EstimateUniformShift(corrupted, r.object, r.candidates, motion.SpatialL1)
	if err != nil {
		return Result{}, fmt.Errorf("estimating shift: %w", err)
	}

	corrected := make([]float64, len(course))
	for i, c := range course {
		corrected[i] = c + shift
	}
	recovered, err := motion.Simulate(corrected, r.object)
	if err != nil {
		return Result{}, fmt.Errorf("simulating corrected course: %w", err)
	}

	image, err := metrics.Compare(r.object, recovered)
	if err != nil {
		return Result{}, err
	}
	mag, phase, err := metrics.CompareKSpace(r.object, recovered)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Amplitude:       amplitude,
		Spread:          spread,
		Center:          center,
		Shift:           shift,
		Image:           image,
		KSpaceMagnitude: mag,
		KSpacePhase:     phase,
	}, nil
}
