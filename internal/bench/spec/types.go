package spec

import "github.com/DjordjeVuckovic/sort-energy-bench/internal/energy"

// Plan is a benchmark definition loaded from YAML. Zero values are filled with defaults.
type Plan struct {
	Sizes      []int        `yaml:"sizes"`
	Algorithms []string     `yaml:"algorithms"`
	Runs       RunsConfig   `yaml:"runs"`
	Energy     EnergyConfig `yaml:"energy"`
	Output     OutputConfig `yaml:"output"`
}

type RunsConfig struct {
	Warmup     int    `yaml:"warmup"`
	Iterations int    `yaml:"iterations"`
	Seed       uint64 `yaml:"seed"`
}

type EnergyConfig struct {
	Backends   []string          `yaml:"backends"`
	Sysfs      string            `yaml:"sysfs"`
	PowerModel energy.PowerModel `yaml:"power_model"`
}

type OutputConfig struct {
	Dir     string `yaml:"dir"`
	JSON    string `yaml:"json"`
	Metrics string `yaml:"metrics"`
	NoPlot  bool   `yaml:"no_plot"`
}
