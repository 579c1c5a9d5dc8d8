package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imarket-ke/imarket-backend/internal/activities"
	"github.com/imarket-ke/imarket-backend/internal/notifications"
	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/metrics"
)

// Service exposes order history and the tracking state machine.
type Service interface {
	List(ctx context.Context, sessionID string) ([]Order, error)
	Get(ctx context.Context, sessionID, orderID string) (*Order, error)
	Create(ctx context.Context, sessionID string, order Order) error
	Advance(ctx context.Context, sessionID, orderID string) (*Order, error)
	Finalize(ctx context.Context, sessionID, orderID string) (*Order, error)
	MarkReviewed(ctx context.Context, sessionID, orderID string) (*Order, error)
}

type service struct {
	repo     Repository
	notify   notifications.Service
	activity activities.Service
	logg     *logger.Logger
	metrics  *metrics.TrackingMetrics
	now      func() time.Time
}

// NewService wires order dependencies.
func NewService(repo Repository, notify notifications.Service, activity activities.Service, logg *logger.Logger, m *metrics.TrackingMetrics) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
	}
	if notify == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications service required")
	}
	if activity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activities service required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		repo:     repo,
		notify:   notify,
		activity: activity,
		logg:     logg,
		metrics:  m,
		now:      time.Now,
	}, nil
}

func (s *service) List(ctx context.Context, sessionID string) ([]Order, error) {
	return s.repo.List(ctx, sessionID)
}

func (s *service) Get(ctx context.Context, sessionID, orderID string) (*Order, error) {
	return s.repo.Get(ctx, sessionID, orderID)
}

func (s *service) Create(ctx context.Context, sessionID string, order Order) error {
	return s.repo.Append(ctx, sessionID, order)
}

// Advance moves the order one stage along the chain, appending exactly
// one tracking entry. Terminal and fully-delivered orders conflict.
func (s *service) Advance(ctx context.Context, sessionID, orderID string) (*Order, error) {
	order, err := s.repo.Get(ctx, sessionID, orderID)
	if err != nil {
		return nil, err
	}

	next, ok := order.Status.Next()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order %s is already %s", orderID, order.Status))
	}

	order.Status = next
	order.TrackingHistory = append(order.TrackingHistory, TrackingEntry{
		Stage:     next,
		Timestamp: s.now(),
	})
	if next == enums.OrderStatusDelivered && order.ReviewStatus != enums.ReviewStatusReviewed {
		order.ReviewStatus = enums.ReviewStatusPending
	}

	if err := s.repo.Update(ctx, sessionID, *order); err != nil {
		return nil, err
	}
	s.metrics.IncTransition(string(next))

	if err := s.activity.Record(ctx, sessionID, enums.ActivityStatusUpdate,
		fmt.Sprintf("Order %s status changed to: %s", orderID, next)); err != nil {
		s.logg.Warn(ctx, "recording status activity failed")
	}

	switch next {
	case enums.OrderStatusOutForDelivery:
		s.addNotification(ctx, sessionID, orderID,
			fmt.Sprintf("Your order #%s is out for delivery!", orderID), enums.NotificationTypeDelivery)
	case enums.OrderStatusDelivered:
		s.addNotification(ctx, sessionID, orderID,
			fmt.Sprintf("Your order #%s has been delivered!", orderID), enums.NotificationTypeDelivery)
	}

	return order, nil
}

// Finalize short-circuits the chain to the delivery option's terminal
// status.
func (s *service) Finalize(ctx context.Context, sessionID, orderID string) (*Order, error) {
	order, err := s.repo.Get(ctx, sessionID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order %s is already %s", orderID, order.Status))
	}

	final := order.DeliveryOption.FinalStatus()
	order.Status = final
	order.TrackingHistory = append(order.TrackingHistory, TrackingEntry{
		Stage:     final,
		Timestamp: s.now(),
	})
	if order.ReviewStatus != enums.ReviewStatusReviewed {
		order.ReviewStatus = enums.ReviewStatusPending
	}

	if err := s.repo.Update(ctx, sessionID, *order); err != nil {
		return nil, err
	}
	s.metrics.IncTransition(string(final))

	if err := s.activity.Record(ctx, sessionID, enums.ActivityOrderFinalized,
		fmt.Sprintf("Order %s manually marked as %s", orderID, final)); err != nil {
		s.logg.Warn(ctx, "recording finalize activity failed")
	}

	kind := enums.NotificationTypeDelivery
	if final == enums.OrderStatusPickedUp {
		kind = enums.NotificationTypePickup
	}
	s.addNotification(ctx, sessionID, orderID,
		fmt.Sprintf("Your order #%s has been %s!", orderID, strings.ToLower(string(final))), kind)

	return order, nil
}

// MarkReviewed flips the order's review flag. The flip is one-way.
func (s *service) MarkReviewed(ctx context.Context, sessionID, orderID string) (*Order, error) {
	order, err := s.repo.Get(ctx, sessionID, orderID)
	if err != nil {
		return nil, err
	}
	if order.ReviewStatus == enums.ReviewStatusReviewed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already reviewed")
	}
	order.ReviewStatus = enums.ReviewStatusReviewed
	if err := s.repo.Update(ctx, sessionID, *order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) addNotification(ctx context.Context, sessionID, orderID, message string, kind enums.NotificationType) {
	if _, err := s.notify.Add(ctx, sessionID, message, kind, orderID); err != nil {
		s.logg.Warn(ctx, "adding order notification failed")
	}
}
