package energy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSampler struct {
	samples []CPUTimes
	err     error
	calls   int
}

func (f *fakeSampler) Sample(context.Context) (CPUTimes, error) {
	f.calls++
	if f.err != nil {
		return CPUTimes{}, f.err
	}
	i := min(f.calls-1, len(f.samples)-1)
	return f.samples[i], nil
}

func TestPowerModel_Energy(t *testing.T) {
	m := PowerModel{IdleWatts: 20, MaxWatts: 65}

	assert.InDelta(t, 85.0, m.Energy(0.5, 2*time.Second), 1e-9)
	assert.InDelta(t, 20.0, m.Energy(0, time.Second), 1e-9)
	assert.InDelta(t, 65.0, m.Energy(1, time.Second), 1e-9)
	assert.InDelta(t, 65.0, m.Energy(1.7, time.Second), 1e-9, "utilization is clamped")
	assert.Zero(t, m.Energy(0.5, -time.Second))
}

func TestPowerModel_Validate(t *testing.T) {
	assert.NoError(t, DefaultPowerModel().Validate())
	assert.Error(t, PowerModel{IdleWatts: -1, MaxWatts: 10}.Validate())
	assert.Error(t, PowerModel{IdleWatts: 30, MaxWatts: 10}.Validate())
}

func TestUtilization(t *testing.T) {
	before := CPUTimes{Busy: 10, Idle: 90}

	assert.InDelta(t, 0.5, Utilization(before, CPUTimes{Busy: 15, Idle: 95}), 1e-9)
	assert.InDelta(t, 1.0, Utilization(before, CPUTimes{Busy: 20, Idle: 90}), 1e-9)
	assert.Zero(t, Utilization(before, before), "no elapsed ticks means zero utilization")
}

func TestModelBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("uses utilization between open and stop", func(t *testing.T) {
		sampler := &fakeSampler{samples: []CPUTimes{{Busy: 0, Idle: 0}, {Busy: 1, Idle: 1}}}
		b := NewModelBackend(PowerModel{IdleWatts: 20, MaxWatts: 65}, sampler)
		assert.Equal(t, MethodModel, b.Method())

		s, err := b.Open(ctx)
		require.NoError(t, err)
		j, err := s.Stop(ctx, 2*time.Second)
		require.NoError(t, err)
		assert.NoError(t, s.Close())

		assert.InDelta(t, 85.0, j, 1e-9)
		assert.Equal(t, 2, sampler.calls)
	})

	t.Run("sampling failure degrades to idle power", func(t *testing.T) {
		sampler := &fakeSampler{err: errors.New("no /proc")}
		b := NewModelBackend(PowerModel{IdleWatts: 20, MaxWatts: 65}, sampler)

		s, err := b.Open(ctx)
		require.NoError(t, err)
		j, err := s.Stop(ctx, time.Second)
		require.NoError(t, err)
		assert.InDelta(t, 20.0, j, 1e-9)
	})
}
