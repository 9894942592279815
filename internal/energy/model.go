package energy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

const (
	DefaultIdleWatts = 20.0
	DefaultMaxWatts  = 65.0
)

// PowerModel estimates package power as a linear function of CPU utilization.
type PowerModel struct {
	IdleWatts float64 `yaml:"idle_watts"`
	MaxWatts  float64 `yaml:"max_watts"`
}

func DefaultPowerModel() PowerModel {
	return PowerModel{IdleWatts: DefaultIdleWatts, MaxWatts: DefaultMaxWatts}
}

func (m PowerModel) Validate() error {
	if m.IdleWatts < 0 {
		return fmt.Errorf("idle watts must not be negative, got %v", m.IdleWatts)
	}
	if m.MaxWatts < m.IdleWatts {
		return fmt.Errorf("max watts (%v) must not be below idle watts (%v)", m.MaxWatts, m.IdleWatts)
	}
	return nil
}

// Power returns the estimated draw in watts at the given utilization fraction.
func (m PowerModel) Power(utilization float64) float64 {
	return m.IdleWatts + (m.MaxWatts-m.IdleWatts)*clamp01(utilization)
}

// Energy returns the estimated joules spent over elapsed at the given utilization fraction.
func (m PowerModel) Energy(utilization float64, elapsed time.Duration) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	return m.Power(utilization) * elapsed.Seconds()
}

// CPUTimes is a system-wide snapshot of cumulative CPU time in seconds.
type CPUTimes struct {
	Busy float64
	Idle float64
}

// Utilization returns the busy fraction between two snapshots, 0 when no time elapsed.
func Utilization(before, after CPUTimes) float64 {
	busy := after.Busy - before.Busy
	total := busy + (after.Idle - before.Idle)
	if total <= 0 {
		return 0
	}
	return clamp01(busy / total)
}

// CPUSampler takes system-wide CPU time snapshots.
type CPUSampler interface {
	Sample(ctx context.Context) (CPUTimes, error)
}

// HostCPUSampler reads aggregate CPU times through gopsutil.
type HostCPUSampler struct{}

func (HostCPUSampler) Sample(ctx context.Context) (CPUTimes, error) {
	stats, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return CPUTimes{}, fmt.Errorf("read cpu times: %w", err)
	}
	if len(stats) == 0 {
		return CPUTimes{}, fmt.Errorf("read cpu times: no data")
	}
	t := stats[0]
	return CPUTimes{
		Busy: t.User + t.System + t.Nice + t.Irq + t.Softirq + t.Steal,
		Idle: t.Idle + t.Iowait,
	}, nil
}

// ModelBackend estimates energy from CPU utilization and a PowerModel.
// It always opens; a failed CPU sample degrades to idle power.
type ModelBackend struct {
	model   PowerModel
	sampler CPUSampler
}

func NewModelBackend(model PowerModel, sampler CPUSampler) *ModelBackend {
	if sampler == nil {
		sampler = HostCPUSampler{}
	}
	return &ModelBackend{model: model, sampler: sampler}
}

func (b *ModelBackend) Method() Method { return MethodModel }

func (b *ModelBackend) Model() PowerModel { return b.model }

func (b *ModelBackend) Open(ctx context.Context) (Session, error) {
	s := &modelSession{backend: b}
	before, err := b.sampler.Sample(ctx)
	if err != nil {
		slog.Warn("CPU sample failed, model will assume idle utilization", "error", err)
	} else {
		s.before = &before
	}
	return s, nil
}

type modelSession struct {
	backend *ModelBackend
	before  *CPUTimes
}

func (s *modelSession) Stop(ctx context.Context, elapsed time.Duration) (float64, error) {
	var utilization float64
	if s.before != nil {
		after, err := s.backend.sampler.Sample(ctx)
		if err != nil {
			slog.Warn("CPU sample failed, model will assume idle utilization", "error", err)
		} else {
			utilization = Utilization(*s.before, after)
		}
	}
	return s.backend.model.Energy(utilization, elapsed), nil
}

func (s *modelSession) Close() error { return nil }

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
