package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/imarket-ke/imarket-backend/internal/activities"
	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/metrics"
)

const defaultAdvanceInterval = 5 * time.Second

// TrackerParams configure the tracking simulator.
type TrackerParams struct {
	Orders   Service
	Activity activities.Service
	Logger   *logger.Logger
	Metrics  *metrics.TrackingMetrics
	Interval time.Duration
}

// Tracker auto-advances tracked orders on a fixed cadence. Each
// session tracks at most one order at a time; opening tracking for a
// second order stops the first loop before the new one starts.
type Tracker struct {
	orders   Service
	activity activities.Service
	logg     *logger.Logger
	metrics  *metrics.TrackingMetrics
	interval time.Duration

	mu       sync.Mutex
	sessions map[string]*trackingLoop
}

type trackingLoop struct {
	orderID string
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewTracker builds the tracking simulator.
func NewTracker(params TrackerParams) (*Tracker, error) {
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders service required")
	}
	if params.Activity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activities service required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultAdvanceInterval
	}
	return &Tracker{
		orders:   params.Orders,
		activity: params.Activity,
		logg:     params.Logger,
		metrics:  params.Metrics,
		interval: interval,
		sessions: make(map[string]*trackingLoop),
	}, nil
}

// Open starts tracking an order for the session. Any loop already
// running for the session stops first. Orders already at a terminal
// status are returned without starting a loop.
func (t *Tracker) Open(ctx context.Context, sessionID, orderID string) (*Order, error) {
	order, err := t.orders.Get(ctx, sessionID, orderID)
	if err != nil {
		return nil, err
	}

	if err := t.activity.Record(ctx, sessionID, enums.ActivityOrderTracking,
		fmt.Sprintf("Opened tracking for order %s", orderID)); err != nil {
		t.logg.Warn(ctx, "recording tracking activity failed")
	}

	t.Stop(sessionID)
	if !order.Trackable() {
		return order, nil
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	loop := &trackingLoop{orderID: orderID, cancel: cancel, done: make(chan struct{})}

	t.mu.Lock()
	t.sessions[sessionID] = loop
	t.mu.Unlock()

	t.metrics.IncSession()
	go t.run(loopCtx, sessionID, loop)

	return order, nil
}

// Stop halts the session's tracking loop, if any. It does not wait
// for an in-flight advance to finish.
func (t *Tracker) Stop(sessionID string) {
	t.mu.Lock()
	loop, ok := t.sessions[sessionID]
	if ok {
		delete(t.sessions, sessionID)
	}
	t.mu.Unlock()
	if ok {
		loop.cancel()
	}
}

// Tracking reports the order id the session is currently following.
func (t *Tracker) Tracking(sessionID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	loop, ok := t.sessions[sessionID]
	if !ok {
		return "", false
	}
	return loop.orderID, true
}

// StopAll halts every running loop. Used at shutdown.
func (t *Tracker) StopAll() {
	t.mu.Lock()
	loops := make([]*trackingLoop, 0, len(t.sessions))
	for id, loop := range t.sessions {
		loops = append(loops, loop)
		delete(t.sessions, id)
	}
	t.mu.Unlock()
	for _, loop := range loops {
		loop.cancel()
	}
}

func (t *Tracker) run(ctx context.Context, sessionID string, loop *trackingLoop) {
	defer close(loop.done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	logCtx := t.logg.WithSessionID(ctx, sessionID)
	logCtx = t.logg.WithField(logCtx, "order_id", loop.orderID)
	t.logg.Info(logCtx, "tracking loop started")

	for {
		select {
		case <-ctx.Done():
			t.logg.Info(logCtx, "tracking loop stopped")
			return
		case <-ticker.C:
			order, err := t.orders.Advance(ctx, sessionID, loop.orderID)
			if err != nil {
				if coded := pkgerrors.As(err); coded != nil && coded.Code() == pkgerrors.CodeStateConflict {
					// Reached the end of the chain.
					t.logg.Info(logCtx, "tracking loop complete")
				} else {
					t.logg.Error(logCtx, "auto-advance failed", err)
				}
				t.detach(sessionID, loop)
				return
			}
			if !order.Trackable() || order.Status == enums.OrderStatusDelivered {
				t.logg.Info(logCtx, "tracking loop complete")
				t.detach(sessionID, loop)
				return
			}
		}
	}
}

// detach removes the loop from the registry if it is still the
// session's active loop.
func (t *Tracker) detach(sessionID string, loop *trackingLoop) {
	t.mu.Lock()
	if current, ok := t.sessions[sessionID]; ok && current == loop {
		delete(t.sessions, sessionID)
	}
	t.mu.Unlock()
}
