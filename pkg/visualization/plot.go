// Package visualization renders diagnostic output for motion experiments:
// line plots of displacement courses, signals and shift-search losses, and
// grayscale slice exports of 3D volumes.
package visualization

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveCoursePlot plots a displacement course against its frequency index.
func SaveCoursePlot(course []float64, title, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frequency index"
	p.Y.Label.Text = "Displacement (voxels)"

	line, err := plotter.NewLine(indexedXYs(course))
	if err != nil {
		return fmt.Errorf("error building course line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)

	return savePlot(p, filename)
}

// SaveSignalComparison plots the original and corrupted signals on shared
// axes.
func SaveSignalComparison(original, corrupted []float64, title, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Voxel"
	p.Y.Label.Text = "Intensity"

	origLine, err := plotter.NewLine(indexedXYs(original))
	if err != nil {
		return fmt.Errorf("error building original line: %w", err)
	}
	origLine.Width = vg.Points(1)
	p.Add(origLine)
	p.Legend.Add("original", origLine)

	corrLine, err := plotter.NewLine(indexedXYs(corrupted))
	if err != nil {
		return fmt.Errorf("error building corrupted line: %w", err)
	}
	corrLine.Width = vg.Points(1)
	corrLine.Color = color.RGBA{R: 200, A: 255}
	p.Add(corrLine)
	p.Legend.Add("corrupted", corrLine)

	return savePlot(p, filename)
}

// SaveLossCurve plots shift-search losses against the candidate shifts.
func SaveLossCurve(candidates, losses []float64, title, filename string) error {
	if len(candidates) != len(losses) {
		return fmt.Errorf("candidate count %d does not match loss count %d",
			len(candidates), len(losses))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Candidate shift (voxels)"
	p.Y.Label.Text = "Loss"

	pts := make(plotter.XYs, len(candidates))
	for i := range candidates {
		pts[i] = plotter.XY{X: candidates[i], Y: losses[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("error building loss line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)

	return savePlot(p, filename)
}

func indexedXYs(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	return pts
}

func savePlot(p *plot.Plot, filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating plot directory: %w", err)
	}
	if err := p.Save(14*vg.Inch, 6*vg.Inch, filename); err != nil {
		return fmt.Errorf("error saving plot: %w", err)
	}
	return nil
}
