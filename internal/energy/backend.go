package energy

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is wrapped by Backend.Open when the backend cannot measure on this host.
var ErrUnavailable = errors.New("energy backend unavailable")

// Backend is one energy source in the measurement chain.
type Backend interface {
	Method() Method
	// Open prepares the backend and takes the starting reading.
	// Any error means the backend is unavailable for this measurement.
	Open(ctx context.Context) (Session, error)
}

// Session is a single open measurement. Sessions are not reusable.
type Session interface {
	// Stop takes the final reading and returns the energy consumed since Open, in joules.
	Stop(ctx context.Context, elapsed time.Duration) (float64, error)
	// Close releases the backend handle. It is safe to call after Stop.
	Close() error
}
