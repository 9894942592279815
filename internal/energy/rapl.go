package energy

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/procfs/sysfs"
)

const (
	raplZonePackage = "package"
	raplZoneDRAM    = "dram"

	// Some Intel parts mirror the package counter under a second control type.
	raplMMIOPrefix = "intel-rapl-mmio"
)

// RAPLBackend reads Intel/AMD RAPL package and DRAM counters from the powercap class.
type RAPLBackend struct {
	sysfsPath string
}

func NewRAPLBackend(sysfsPath string) *RAPLBackend {
	if sysfsPath == "" {
		sysfsPath = sysfs.DefaultMountPoint
	}
	return &RAPLBackend{sysfsPath: sysfsPath}
}

func (b *RAPLBackend) Method() Method { return MethodRAPL }

func (b *RAPLBackend) Open(_ context.Context) (Session, error) {
	fs, err := sysfs.NewFS(b.sysfsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sysfs %q: %w", ErrUnavailable, b.sysfsPath, err)
	}

	zones, err := sysfs.GetRaplZones(fs)
	if err != nil {
		return nil, fmt.Errorf("%w: list rapl zones: %w", ErrUnavailable, err)
	}

	s := &raplSession{}
	for _, z := range zones {
		if strings.HasPrefix(filepath.Base(z.Path), raplMMIOPrefix) {
			continue
		}
		isPackage := strings.HasPrefix(z.Name, raplZonePackage)
		if !isPackage && !strings.HasPrefix(z.Name, raplZoneDRAM) {
			continue
		}
		uj, err := z.GetEnergyMicrojoules()
		if err != nil {
			return nil, fmt.Errorf("%w: read rapl zone %s-%d: %w", ErrUnavailable, z.Name, z.Index, err)
		}
		s.zones = append(s.zones, z)
		s.start = append(s.start, uj)
		s.hasPackage = s.hasPackage || isPackage
	}

	if !s.hasPackage {
		return nil, fmt.Errorf("%w: no rapl package zone under %s", ErrUnavailable, b.sysfsPath)
	}
	return s, nil
}

type raplSession struct {
	zones      []sysfs.RaplZone
	start      []uint64
	hasPackage bool
}

func (s *raplSession) Stop(_ context.Context, _ time.Duration) (float64, error) {
	var total uint64
	for i, z := range s.zones {
		uj, err := z.GetEnergyMicrojoules()
		if err != nil {
			return 0, fmt.Errorf("read rapl zone %s-%d: %w", z.Name, z.Index, err)
		}
		total += counterDelta(s.start[i], uj, z.MaxMicrojoules)
	}
	return microjoulesToJoules(total), nil
}

func (s *raplSession) Close() error {
	s.zones = nil
	s.start = nil
	return nil
}
