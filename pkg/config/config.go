// Package config provides configuration loading and management for
// mrimotion. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Simulation parameters for the 1D motion experiments
	Simulation struct {
		// Resolution is the signal length and k-space extent
		Resolution int `yaml:"resolution"`

		// Method is the displacement course shape
		// (gauss, step, 2step, Ustep, sin)
		Method string `yaml:"method"`

		// Seed drives the random reference object; 0 means time-seeded
		Seed int64 `yaml:"seed"`

		// ObjectRamp is the ramp margin of the random reference object
		ObjectRamp int `yaml:"objectRamp"`
	} `yaml:"simulation"`

	// Sweep describes the corruption parameter grid
	Sweep struct {
		// Amplitudes are the displacement magnitudes in voxels
		Amplitudes []float64 `yaml:"amplitudes"`

		// Spreads are the course widths in frequency samples
		Spreads []int `yaml:"spreads"`

		// Centers are the course anchor indices
		Centers []int `yaml:"centers"`

		// ShiftMin and ShiftMax bound the residual shift search in voxels
		ShiftMin int `yaml:"shiftMin"`
		ShiftMax int `yaml:"shiftMax"`
	} `yaml:"sweep"`

	// Distance parameters for the segmentation metrics
	Distance struct {
		// Cut is the foreground threshold
		Cut float64 `yaml:"cut"`

		// Radius is the kernel bank search radius in voxels
		Radius int `yaml:"radius"`
	} `yaml:"distance"`

	// Processing parameters
	Processing struct {
		// NumCores specifies how many CPU cores to use for parallel
		// sweep execution
		NumCores int `yaml:"numCores"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// ResultsCSV is the path of the sweep results file
		ResultsCSV string `yaml:"resultsCsv"`

		// PlotDir is the directory for diagnostic plots
		PlotDir string `yaml:"plotDir"`

		// SavePlots controls whether diagnostic plots are written
		SavePlots bool `yaml:"savePlots"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default simulation parameters
	cfg.Simulation.Resolution = 512
	cfg.Simulation.Method = "Ustep"
	cfg.Simulation.Seed = 1
	cfg.Simulation.ObjectRamp = 2

	// Set default sweep parameters
	cfg.Sweep.Amplitudes = []float64{2, 5, 10, 20}
	cfg.Sweep.Spreads = []int{2, 4, 10, 20, 40, 80, 120, 160, 200}
	cfg.Sweep.Centers = []int{10, 34, 59, 83, 108, 130, 160, 190, 220, 256}
	cfg.Sweep.ShiftMin = -30
	cfg.Sweep.ShiftMax = 30

	// Set default distance parameters
	cfg.Distance.Cut = 0.5
	cfg.Distance.Radius = 5

	// Set default processing parameters
	cfg.Processing.NumCores = runtime.NumCPU() // Use all available cores by default

	// Set default output parameters
	cfg.Output.ResultsCSV = "motion_sweep.csv"
	cfg.Output.PlotDir = "plots"
	cfg.Output.SavePlots = false
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
