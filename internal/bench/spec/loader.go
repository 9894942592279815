package spec

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/sort-energy-bench/internal/apperr"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/energy"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/sorting"
	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan YAML: %w", err)
	}
	if err := checkExplicitIterations(data); err != nil {
		return nil, err
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Default returns a plan with every default applied and no sizes.
func Default() *Plan {
	p := &Plan{}
	applyDefaults(p)
	return p
}

// checkExplicitIterations rejects a plan that asks for fewer than one measured run.
// An omitted iterations field still falls back to the default.
func checkExplicitIterations(data []byte) error {
	var raw struct {
		Runs struct {
			Iterations *int `yaml:"iterations"`
		} `yaml:"runs"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse plan YAML: %w", err)
	}
	if it := raw.Runs.Iterations; it != nil && *it < 1 {
		return apperr.NewValidationf("iterations must be at least 1, got %d", *it)
	}
	return nil
}

func validate(p *Plan) error {
	for i, n := range p.Sizes {
		if n < 0 {
			return apperr.NewValidationf("size at index %d is negative: %d", i, n)
		}
	}
	for _, name := range p.Algorithms {
		if _, err := sorting.Lookup(name); err != nil {
			return fmt.Errorf("plan algorithms: %w", err)
		}
	}
	if _, err := energy.ParseMethods(p.Energy.Backends); err != nil {
		return fmt.Errorf("plan energy backends: %w", err)
	}
	if p.Runs.Warmup < 0 {
		return apperr.NewValidationf("warmup must not be negative, got %d", p.Runs.Warmup)
	}

	applyDefaults(p)

	if err := p.Energy.PowerModel.Validate(); err != nil {
		return fmt.Errorf("plan power model: %w", err)
	}
	return nil
}

func applyDefaults(p *Plan) {
	if p.Runs.Iterations == 0 {
		p.Runs.Iterations = runner.DefaultRuns
	}
	if p.Runs.Seed == 0 {
		p.Runs.Seed = runner.DefaultSeed
	}
	if len(p.Energy.Backends) == 0 {
		for _, m := range energy.DefaultMethods {
			p.Energy.Backends = append(p.Energy.Backends, m.String())
		}
	}
	if p.Energy.Sysfs == "" {
		p.Energy.Sysfs = energy.DefaultConfig().SysfsPath
	}
	if p.Energy.PowerModel == (energy.PowerModel{}) {
		p.Energy.PowerModel = energy.DefaultPowerModel()
	}
	if p.Output.Dir == "" {
		p.Output.Dir = "."
	}
}

// RunnerConfig converts the run settings for the benchmark runner.
func (p *Plan) RunnerConfig() runner.Config {
	return runner.Config{
		Runs:       p.Runs.Iterations,
		WarmupRuns: p.Runs.Warmup,
		Seed:       p.Runs.Seed,
	}
}

// MeterConfig converts the energy settings for the meter.
func (p *Plan) MeterConfig() (energy.Config, error) {
	methods, err := energy.ParseMethods(p.Energy.Backends)
	if err != nil {
		return energy.Config{}, err
	}
	return energy.Config{
		Methods:    methods,
		SysfsPath:  p.Energy.Sysfs,
		PowerModel: p.Energy.PowerModel,
	}, nil
}
