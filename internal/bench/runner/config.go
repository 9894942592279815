package runner

import "github.com/DjordjeVuckovic/sort-energy-bench/internal/apperr"

const (
	DefaultRuns       = 5
	DefaultWarmupRuns = 0
	DefaultSeed       = 1
)

type Config struct {
	Runs       int
	WarmupRuns int
	Seed       uint64
}

func DefaultConfig() Config {
	return Config{
		Runs:       DefaultRuns,
		WarmupRuns: DefaultWarmupRuns,
		Seed:       DefaultSeed,
	}
}

func (c Config) Validate() error {
	if c.Runs < 1 {
		return apperr.NewValidationf("runs must be at least 1, got %d", c.Runs)
	}
	if c.WarmupRuns < 0 {
		return apperr.NewValidationf("warmup runs must not be negative, got %d", c.WarmupRuns)
	}
	return nil
}
