package experiment

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"mrimotion/pkg/metrics"
)

// csvHeader lists the sweep result columns. Score triplets repeat for the
// image domain and for the k-space magnitude and phase.
var csvHeader = []string{
	"amplitude", "spread", "center", "shift",
	"image_l1", "image_l2", "image_pearson", "image_ncc", "image_ssim",
	"kmag_l1", "kmag_l2", "kmag_pearson", "kmag_ncc", "kmag_ssim",
	"kphase_l1", "kphase_l2", "kphase_pearson", "kphase_ncc", "kphase_ssim",
}

// WriteResults saves sweep results as CSV, creating parent directories as
// needed.
func WriteResults(path string, results []Result) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating results directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("error writing results header: %w", err)
	}

	for _, r := range results {
		record := []string{
			formatFloat(r.Amplitude),
			strconv.Itoa(r.Spread),
			strconv.Itoa(r.Center),
			formatFloat(r.Shift),
		}
		record = appendScores(record, r.Image)
		record = appendScores(record, r.KSpaceMagnitude)
		record = appendScores(record, r.KSpacePhase)
		if err := w.Write(record); err != nil {
			return fmt.Errorf("error writing result record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("error flushing results file: %w", err)
	}
	return nil
}

// ReadResults loads sweep results previously written by WriteResults.
func ReadResults(path string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening results file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading results file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("results file %s is empty", path)
	}
	if len(records[0]) != len(csvHeader) {
		return nil, fmt.Errorf("results file %s has %d columns, want %d",
			path, len(records[0]), len(csvHeader))
	}

	results := make([]Result, 0, len(records)-1)
	for i, record := range records[1:] {
		res, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func parseRecord(record []string) (Result, error) {
	fields := make([]float64, len(record))
	for i, s := range record {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Result{}, fmt.Errorf("column %s: %w", csvHeader[i], err)
		}
		fields[i] = v
	}

	var res Result
	res.Amplitude = fields[0]
	res.Spread = int(fields[1])
	res.Center = int(fields[2])
	res.Shift = fields[3]
	res.Image = parseScores(fields[4:9])
	res.KSpaceMagnitude = parseScores(fields[9:14])
	res.KSpacePhase = parseScores(fields[14:19])
	return res, nil
}

func appendScores(record []string, s metrics.Scores) []string {
	return append(record,
		formatFloat(s.L1),
		formatFloat(s.L2),
		formatFloat(s.Pearson),
		formatFloat(s.NCC),
		formatFloat(s.SSIM),
	)
}

func parseScores(fields []float64) metrics.Scores {
	return metrics.Scores{
		L1:      fields[0],
		L2:      fields[1],
		Pearson: fields[2],
		NCC:     fields[3],
		SSIM:    fields[4],
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
