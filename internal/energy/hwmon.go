package energy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// HwmonBackend sums the cumulative energy counters exposed by hwmon drivers
// such as amd_energy or zenpower (energyN_input, microjoules).
type HwmonBackend struct {
	sysfsPath string
}

func NewHwmonBackend(sysfsPath string) *HwmonBackend {
	if sysfsPath == "" {
		sysfsPath = "/sys"
	}
	return &HwmonBackend{sysfsPath: sysfsPath}
}

func (b *HwmonBackend) Method() Method { return MethodHwmon }

func (b *HwmonBackend) Open(_ context.Context) (Session, error) {
	pattern := filepath.Join(b.sysfsPath, "class", "hwmon", "hwmon*", "energy*_input")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: glob %q: %w", ErrUnavailable, pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no hwmon energy counters under %s", ErrUnavailable, b.sysfsPath)
	}
	sort.Strings(paths)

	start := make([]uint64, len(paths))
	for i, p := range paths {
		uj, err := readMicrojoules(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		start[i] = uj
	}

	return &hwmonSession{paths: paths, start: start}, nil
}

type hwmonSession struct {
	paths []string
	start []uint64
}

func (s *hwmonSession) Stop(_ context.Context, _ time.Duration) (float64, error) {
	var total uint64
	for i, p := range s.paths {
		uj, err := readMicrojoules(p)
		if err != nil {
			return 0, err
		}
		total += counterDelta(s.start[i], uj, 0)
	}
	return microjoulesToJoules(total), nil
}

func (s *hwmonSession) Close() error {
	s.paths = nil
	s.start = nil
	return nil
}

func readMicrojoules(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read energy counter: %w", err)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse energy counter %s: %w", path, err)
	}
	return v, nil
}
