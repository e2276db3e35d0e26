package probe

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Func represents a health check that returns an error when the resource is unavailable.
type Func func(ctx context.Context) error

// NewPingProbe wraps fn with standardised error handling.
func NewPingProbe(name string, fn Func) Func {
	return func(ctx context.Context) error {
		if fn == nil {
			return nilComponentError(name, "ping function")
		}
		if err := fn(contextOrBackground(ctx)); err != nil {
			return fmt.Errorf("%s probe failed: %w", name, err)
		}
		return nil
	}
}

// MongoPinger captures the subset of the MongoDB client used for readiness checks.
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// NewMongoPingProbe creates a Func that pings MongoDB using the provided client.
// If readPref is nil it defaults to readpref.Primary.
func NewMongoPingProbe(client MongoPinger, readPref *readpref.ReadPref) Func {
	return func(ctx context.Context) error {
		if client == nil {
			return errors.New("mongo probe: client is nil")
		}

		rp := readPref
		if rp == nil {
			rp = readpref.Primary()
		}

		if err := client.Ping(contextOrBackground(ctx), rp); err != nil {
			return fmt.Errorf("mongo probe failed: %w", err)
		}
		return nil
	}
}

// RouteCounter is implemented by the operation registry handle.
type RouteCounter interface {
	RouteCount() int
}

// ErrNoRoutes is reported by NewRegistryProbe until operations are registered.
var ErrNoRoutes = errors.New("no operations registered")

// NewRegistryProbe reports ready once at least one operation is registered.
func NewRegistryProbe(routes RouteCounter) Func {
	return func(context.Context) error {
		if routes == nil {
			return nilComponentError("registry", "handle")
		}
		if routes.RouteCount() == 0 {
			return fmt.Errorf("registry probe: %w", ErrNoRoutes)
		}
		return nil
	}
}
