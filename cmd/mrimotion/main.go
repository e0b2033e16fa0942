package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"mrimotion/internal/models"
	"mrimotion/pkg/config"
	"mrimotion/pkg/distance"
	"mrimotion/pkg/experiment"
	"mrimotion/pkg/motion"
	"mrimotion/pkg/visualization"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "mrimotion.yaml", "Path to YAML configuration file")
	createConfig := flag.Bool("create-config", false, "Write a default configuration file and exit")
	outputCSV := flag.String("output", "", "Results CSV path (overrides config)")
	numCores := flag.Int("cores", 0, "Number of CPU cores to use (0: value from config)")
	savePlots := flag.Bool("plots", false, "Save diagnostic plots for the first grid point")
	demoDistance := flag.Bool("distance-demo", false, "Run the segmentation distance demo on synthetic masks")
	flag.Parse()

	if *createConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write default config: %v", err)
		}
		fmt.Printf("Default configuration written to: %s\n", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *outputCSV != "" {
		cfg.Output.ResultsCSV = *outputCSV
	}
	if *numCores > 0 {
		cfg.Processing.NumCores = *numCores
	}
	if *savePlots {
		cfg.Output.SavePlots = true
	}

	if *demoDistance {
		if err := runDistanceDemo(cfg); err != nil {
			log.Fatalf("Distance demo failed: %v", err)
		}
		return
	}

	if err := runSweep(cfg); err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
}

func runSweep(cfg *config.Config) error {
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	object, err := motion.RandomTwoStep(rng, cfg.Simulation.ObjectRamp, true, cfg.Simulation.Resolution)
	if err != nil {
		return fmt.Errorf("building reference object: %w", err)
	}

	params := experiment.Params{
		Resolution: cfg.Simulation.Resolution,
		Method:     motion.Method(cfg.Simulation.Method),
		Amplitudes: cfg.Sweep.Amplitudes,
		Spreads:    cfg.Sweep.Spreads,
		Centers:    cfg.Sweep.Centers,
		ShiftMin:   cfg.Sweep.ShiftMin,
		ShiftMax:   cfg.Sweep.ShiftMax,
		NumCores:   cfg.Processing.NumCores,
		Verbose:    cfg.Output.Verbose,
	}
	runner, err := experiment.NewRunner(params, object)
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	fmt.Println("================================")
	fmt.Println("K-SPACE MOTION CORRUPTION SWEEP")
	fmt.Println("================================")
	fmt.Printf("Resolution: %d, method: %s, seed: %d\n",
		cfg.Simulation.Resolution, cfg.Simulation.Method, seed)
	fmt.Printf("Grid: %d amplitudes x %d spreads x %d centers, %d cores\n",
		len(cfg.Sweep.Amplitudes), len(cfg.Sweep.Spreads), len(cfg.Sweep.Centers),
		cfg.Processing.NumCores)

	startTime := time.Now()
	results, err := runner.Run()
	if err != nil {
		return err
	}
	fmt.Printf("\nSweep completed in %.2f seconds (%d points)\n",
		time.Since(startTime).Seconds(), len(results))

	printSummary(results)

	if err := experiment.WriteResults(cfg.Output.ResultsCSV, results); err != nil {
		return err
	}
	fmt.Printf("Results saved to: %s\n", cfg.Output.ResultsCSV)

	if cfg.Output.SavePlots && len(results) > 0 {
		if err := saveDiagnosticPlots(cfg, object, results[0]); err != nil {
			log.Printf("Warning: failed to save plots: %v", err)
		} else {
			fmt.Printf("Diagnostic plots saved to: %s\n", cfg.Output.PlotDir)
		}
	}
	return nil
}

func printSummary(results []experiment.Result) {
	if len(results) == 0 {
		return
	}

	best, worst := results[0], results[0]
	meanSSIM := 0.0
	for _, r := range results {
		meanSSIM += r.Image.SSIM
		if r.Image.SSIM > best.Image.SSIM {
			best = r
		}
		if r.Image.SSIM < worst.Image.SSIM {
			worst = r
		}
	}
	meanSSIM /= float64(len(results))

	fmt.Println("\nRecovery quality after shift correction:")
	fmt.Println("========================================")
	fmt.Printf("Mean SSIM: %.3f\n", meanSSIM)
	fmt.Printf("Best:  SSIM=%.3f L1=%.4f (amplitude=%g spread=%d center=%d shift=%g)\n",
		best.Image.SSIM, best.Image.L1, best.Amplitude, best.Spread, best.Center, best.Shift)
	fmt.Printf("Worst: SSIM=%.3f L1=%.4f (amplitude=%g spread=%d center=%d shift=%g)\n",
		worst.Image.SSIM, worst.Image.L1, worst.Amplitude, worst.Spread, worst.Center, worst.Shift)
}

// saveDiagnosticPlots re-runs the first grid point and plots its course,
// the corrupted signal and the shift-search loss curve.
func saveDiagnosticPlots(cfg *config.Config, object []float64, first experiment.Result) error {
	course, err := motion.BuildCourse(motion.CourseParams{
		Center:     first.Center,
		Spread:     first.Spread,
		Amplitude:  first.Amplitude,
		Method:     motion.Method(cfg.Simulation.Method),
		Centering:  motion.CenterNone,
		Resolution: cfg.Simulation.Resolution,
	})
	if err != nil {
		return err
	}
	corrupted, err := motion.Simulate(course, object)
	if err != nil {
		return err
	}

	candidates := make([]float64, 0, cfg.Sweep.ShiftMax-cfg.Sweep.ShiftMin+1)
	for s := cfg.Sweep.ShiftMin; s <= cfg.Sweep.ShiftMax; s++ {
		candidates = append(candidates, float64(s))
	}
	losses, err := motion.UniformShiftLosses(corrupted, object, candidates, motion.SpatialL1)
	if err != nil {
		return err
	}

	dir := cfg.Output.PlotDir
	if err := visualization.SaveCoursePlot(course, "Displacement course",
		filepath.Join(dir, "course.png")); err != nil {
		return err
	}
	if err := visualization.SaveSignalComparison(object, corrupted, "Signal corruption",
		filepath.Join(dir, "signals.png")); err != nil {
		return err
	}
	return visualization.SaveLossCurve(candidates, losses, "Shift search loss",
		filepath.Join(dir, "shift_loss.png"))
}

// runDistanceDemo compares two synthetic cube masks with the boundary
// distance metrics and exports the boundary of the shifted mask as images.
func runDistanceDemo(cfg *config.Config) error {
	const (
		size   = 32
		cube   = 8
		offset = 3
	)

	prediction := cubeMask(size, 8, 8, 8, cube)
	target := cubeMask(size, 8+offset, 8, 8, cube)

	metric, err := distance.New(cfg.Distance.Cut, cfg.Distance.Radius)
	if err != nil {
		return err
	}

	ahd, err := metric.AverageHausdorffDistance(prediction, target)
	if err != nil {
		return err
	}
	far, err := metric.AmountOfFarPoints(prediction, target)
	if err != nil {
		return err
	}
	surface, err := distance.SurfaceDistances(prediction, target)
	if err != nil {
		return err
	}

	fmt.Println("Segmentation distance demo")
	fmt.Println("==========================")
	fmt.Printf("Masks: two %dx%dx%d cubes in a %d^3 volume, offset %d along x\n",
		cube, cube, cube, size, offset)
	fmt.Printf("Average Hausdorff distance: %.4f\n", ahd)
	fmt.Printf("Far points (outside radius %d): %d\n", metric.Radius(), far)
	fmt.Printf("Surface distance: %.4f\n", surface)

	boundaryDir := filepath.Join(cfg.Output.PlotDir, "boundary")
	if err := os.MkdirAll(boundaryDir, 0755); err != nil {
		return err
	}
	viewer := visualization.NewViewer(metric.Boundary(target))
	if err := viewer.SaveSliceSequence("z", boundaryDir); err != nil {
		return err
	}
	fmt.Printf("Boundary slices saved to: %s\n", boundaryDir)
	return nil
}

func cubeMask(size, x0, y0, z0, side int) *models.Volume {
	vol := models.NewVolume(size, size, size)
	for z := z0; z < z0+side; z++ {
		for y := y0; y < y0+side; y++ {
			for x := x0; x < x0+side; x++ {
				vol.Set(x, y, z, 1)
			}
		}
	}
	return vol
}
