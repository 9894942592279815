package energy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/multierr"
)

// Meter measures a call with the first backend in its chain that can be opened.
// The chain is walked again on every Measure; nothing about availability is cached.
type Meter struct {
	backends []Backend
	fallback *ModelBackend
	now      func() time.Time
}

// NewMeter builds a meter over the given backends in priority order.
// A default model backend is appended when the chain does not already end in one,
// so a measurement can always be produced.
func NewMeter(backends ...Backend) *Meter {
	m := &Meter{now: time.Now}
	for _, b := range backends {
		if b == nil {
			continue
		}
		m.backends = append(m.backends, b)
	}

	if n := len(m.backends); n > 0 {
		if mb, ok := m.backends[n-1].(*ModelBackend); ok {
			m.fallback = mb
		}
	}
	if m.fallback == nil {
		m.fallback = NewModelBackend(DefaultPowerModel(), nil)
		m.backends = append(m.backends, m.fallback)
	}
	return m
}

func (m *Meter) Methods() []Method {
	methods := make([]Method, len(m.backends))
	for i, b := range m.backends {
		methods[i] = b.Method()
	}
	return methods
}

// Measure runs fn exactly once and reports its elapsed time and energy.
func (m *Meter) Measure(ctx context.Context, fn func()) (Measurement, error) {
	if fn == nil {
		return Measurement{}, fmt.Errorf("measure: nil function")
	}

	backend, session, unavailable := m.open(ctx)
	if backend == nil {
		return Measurement{}, fmt.Errorf("no energy backend could be opened: %w", unavailable)
	}
	if unavailable != nil {
		slog.Debug("Energy backends unavailable", "selected", backend.Method(), "error", unavailable)
	}
	defer closeSession(backend, session)

	// A hardware counter can still fail on the final read. Keep a model session
	// running alongside so the single call can be estimated instead of repeated.
	var shadow Session
	if backend != m.fallback {
		if s, err := m.fallback.Open(ctx); err == nil {
			shadow = s
			defer closeSession(m.fallback, shadow)
		}
	}

	start := m.now()
	fn()
	elapsed := m.now().Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}

	joules, err := session.Stop(ctx, elapsed)
	if err == nil {
		return Measurement{Elapsed: elapsed, Energy: nonNegative(joules), Method: backend.Method()}, nil
	}
	if shadow == nil {
		return Measurement{}, fmt.Errorf("stop %s session: %w", backend.Method(), err)
	}

	slog.Warn("Energy counter read failed after call, using model estimate",
		"method", backend.Method(),
		"error", err,
	)
	joules, err = shadow.Stop(ctx, elapsed)
	if err != nil {
		return Measurement{}, fmt.Errorf("stop %s session: %w", MethodModel, err)
	}
	return Measurement{Elapsed: elapsed, Energy: nonNegative(joules), Method: MethodModel}, nil
}

func (m *Meter) open(ctx context.Context) (Backend, Session, error) {
	var unavailable error
	// The fallback is always last in the chain.
	for _, b := range m.backends[:len(m.backends)-1] {
		s, err := b.Open(ctx)
		if err != nil {
			unavailable = multierr.Append(unavailable, fmt.Errorf("%s: %w", b.Method(), err))
			continue
		}
		return b, s, unavailable
	}

	s, err := m.fallback.Open(ctx)
	if err != nil {
		return nil, nil, multierr.Append(unavailable, fmt.Errorf("%s: %w", MethodModel, err))
	}
	return m.fallback, s, unavailable
}

func closeSession(b Backend, s Session) {
	if err := s.Close(); err != nil {
		slog.Debug("Close energy session", "method", b.Method(), "error", err)
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
