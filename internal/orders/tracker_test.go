package orders

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/imarket-ke/imarket-backend/pkg/enums"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
)

func newTestTracker(t *testing.T, env *testEnv, interval time.Duration) *Tracker {
	t.Helper()
	tracker, err := NewTracker(TrackerParams{
		Orders:   env.orders,
		Activity: env.activity,
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Interval: interval,
	})
	if err != nil {
		t.Fatalf("tracker: %v", err)
	}
	t.Cleanup(tracker.StopAll)
	return tracker
}

func TestOpenReplacesExistingLoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if err := env.orders.Create(ctx, "s1", newOrder("ORD-A", enums.DeliveryOptionDelivery)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := env.orders.Create(ctx, "s1", newOrder("ORD-B", enums.DeliveryOptionDelivery)); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Long interval: no ticks fire during the test.
	tracker := newTestTracker(t, env, time.Hour)

	if _, err := tracker.Open(ctx, "s1", "ORD-A"); err != nil {
		t.Fatalf("open A: %v", err)
	}
	if id, ok := tracker.Tracking("s1"); !ok || id != "ORD-A" {
		t.Fatalf("expected to be tracking ORD-A, got %q %v", id, ok)
	}

	if _, err := tracker.Open(ctx, "s1", "ORD-B"); err != nil {
		t.Fatalf("open B: %v", err)
	}
	if id, ok := tracker.Tracking("s1"); !ok || id != "ORD-B" {
		t.Fatalf("opening a second order must replace the loop, tracking %q", id)
	}
}

func TestOpenTerminalOrderStartsNoLoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := newOrder("ORD-C", enums.DeliveryOptionDelivery)
	order.Status = enums.OrderStatusDelivered
	if err := env.orders.Create(ctx, "s1", order); err != nil {
		t.Fatalf("create: %v", err)
	}

	tracker := newTestTracker(t, env, time.Hour)
	got, err := tracker.Open(ctx, "s1", "ORD-C")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got.Status != enums.OrderStatusDelivered {
		t.Fatalf("unexpected status %s", got.Status)
	}
	if _, ok := tracker.Tracking("s1"); ok {
		t.Fatal("terminal orders must not start a loop")
	}
}

func TestTrackerAutoAdvancesToDelivered(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if err := env.orders.Create(ctx, "s1", newOrder("ORD-D", enums.DeliveryOptionDelivery)); err != nil {
		t.Fatalf("create: %v", err)
	}

	tracker := newTestTracker(t, env, 5*time.Millisecond)
	if _, err := tracker.Open(ctx, "s1", "ORD-D"); err != nil {
		t.Fatalf("open: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		order, err := env.orders.Get(ctx, "s1", "ORD-D")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if order.Status == enums.OrderStatusDelivered {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("order never reached Delivered, stuck at %s", order.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}

	// The loop unregisters itself once the chain completes.
	deadline = time.After(time.Second)
	for {
		if _, ok := tracker.Tracking("s1"); !ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("loop still registered after delivery")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
