package probe_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/drblury/opweaver/probe"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type stubMongoPinger struct {
	err        error
	lastCtx    context.Context
	lastReadPF *readpref.ReadPref
}

func (s *stubMongoPinger) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	s.lastCtx = ctx
	s.lastReadPF = rp
	return s.err
}

type routeCount int

func (r routeCount) RouteCount() int { return int(r) }

func TestNewPingProbe(t *testing.T) {
	t.Run("nil function", func(t *testing.T) {
		if err := probe.NewPingProbe("spec", nil)(context.Background()); err == nil {
			t.Fatal("expected error when ping function is nil")
		}
	})

	t.Run("failure", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := probe.NewPingProbe("spec", func(ctx context.Context) error {
			return sentinel
		})(context.Background())
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected error to wrap sentinel, got %v", err)
		}
	})
}

func TestNewMongoPingProbe(t *testing.T) {
	t.Run("nil client", func(t *testing.T) {
		if err := probe.NewMongoPingProbe(nil, nil)(context.Background()); err == nil {
			t.Fatal("expected error when client is nil")
		}
	})

	t.Run("defaults to primary", func(t *testing.T) {
		stub := &stubMongoPinger{}
		if err := probe.NewMongoPingProbe(stub, nil)(context.Background()); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if stub.lastCtx == nil {
			t.Fatal("expected context to be forwarded")
		}
		if stub.lastReadPF.Mode() != readpref.PrimaryMode {
			t.Fatalf("expected primary read preference, got %v", stub.lastReadPF.Mode())
		}
	})

	t.Run("failure", func(t *testing.T) {
		sentinel := errors.New("unreachable")
		stub := &stubMongoPinger{err: sentinel}
		err := probe.NewMongoPingProbe(stub, readpref.Secondary())(context.Background())
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped sentinel, got %v", err)
		}
		if stub.lastReadPF.Mode() != readpref.SecondaryMode {
			t.Fatalf("expected secondary read preference, got %v", stub.lastReadPF.Mode())
		}
	})
}

func TestNewRegistryProbe(t *testing.T) {
	if err := probe.NewRegistryProbe(nil)(context.Background()); err == nil {
		t.Fatal("expected error for nil handle")
	}
	if err := probe.NewRegistryProbe(routeCount(0))(context.Background()); !errors.Is(err, probe.ErrNoRoutes) {
		t.Fatalf("expected ErrNoRoutes, got %v", err)
	}
	if err := probe.NewRegistryProbe(routeCount(3))(context.Background()); err != nil {
		t.Fatalf("expected ready, got %v", err)
	}
}

func ExampleNewPingProbe() {
	probeFunc := probe.NewPingProbe("noop", func(ctx context.Context) error {
		return nil
	})
	fmt.Println(probeFunc(context.Background()))
	// Output: <nil>
}
