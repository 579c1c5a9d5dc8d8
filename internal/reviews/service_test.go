package reviews

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/imarket-ke/imarket-backend/internal/activities"
	"github.com/imarket-ke/imarket-backend/internal/catalog"
	"github.com/imarket-ke/imarket-backend/internal/notifications"
	"github.com/imarket-ke/imarket-backend/internal/orders"
	"github.com/imarket-ke/imarket-backend/internal/profile"
	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

func newReviewEnv(t *testing.T) (Service, orders.Service) {
	return newReviewEnvWithStore(t, storage.NewMemory())
}

func newReviewEnvWithStore(t *testing.T, store storage.Store) (Service, orders.Service) {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	cat, err := catalog.NewService(&catalog.Catalog{Products: []catalog.Product{
		{ID: "p1", Name: "Wireless Mouse", OriginalPrice: decimal.NewFromInt(1500)},
	}}, 10)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	notify, err := notifications.NewService(store, logg)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	activity, err := activities.NewService(store, logg)
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	profiles, err := profile.NewService(store, activity, logg)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	repo, err := orders.NewRepository(store, logg)
	if err != nil {
		t.Fatalf("repository: %v", err)
	}
	orderSvc, err := orders.NewService(repo, notify, activity, logg, nil)
	if err != nil {
		t.Fatalf("orders: %v", err)
	}
	svc, err := NewService(ServiceParams{
		Store:    store,
		Catalog:  cat,
		Orders:   orderSvc,
		Profiles: profiles,
		Notify:   notify,
		Activity: activity,
		Logger:   logg,
	})
	if err != nil {
		t.Fatalf("reviews: %v", err)
	}
	return svc, orderSvc
}

func seedDeliveredOrder(t *testing.T, orderSvc orders.Service, sessionID, orderID string) {
	t.Helper()
	err := orderSvc.Create(context.Background(), sessionID, orders.Order{
		OrderID:      orderID,
		Status:       enums.OrderStatusDelivered,
		ReviewStatus: enums.ReviewStatusPending,
		OrderDate:    time.Now(),
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func TestSubmitRequiresRatingAndComment(t *testing.T) {
	svc, orderSvc := newReviewEnv(t)
	seedDeliveredOrder(t, orderSvc, "s1", "ORD-1")

	_, err := svc.Submit(context.Background(), "s1", SubmitInput{
		OrderID: "ORD-1", ProductID: "p1", Rating: 0, Comment: "great",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("zero rating must fail validation, got %v", err)
	}

	_, err = svc.Submit(context.Background(), "s1", SubmitInput{
		OrderID: "ORD-1", ProductID: "p1", Rating: 4, Comment: "   ",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("blank comment must fail validation, got %v", err)
	}
}

func TestSubmitFlipsOrderToReviewed(t *testing.T) {
	svc, orderSvc := newReviewEnv(t)
	seedDeliveredOrder(t, orderSvc, "s1", "ORD-2")
	ctx := context.Background()

	entry, err := svc.Submit(ctx, "s1", SubmitInput{
		OrderID: "ORD-2", ProductID: "p1", Rating: 5, Comment: "excellent",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if entry.Review.ReviewerName != "Guest User" {
		t.Fatalf("default reviewer name expected, got %q", entry.Review.ReviewerName)
	}

	order, err := orderSvc.Get(ctx, "s1", "ORD-2")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.ReviewStatus != enums.ReviewStatusReviewed {
		t.Fatalf("order must be marked reviewed, got %q", order.ReviewStatus)
	}

	// Second submission against the same order conflicts.
	_, err = svc.Submit(ctx, "s1", SubmitInput{
		OrderID: "ORD-2", ProductID: "p1", Rating: 3, Comment: "changed my mind",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("re-review must conflict, got %v", err)
	}

	entries, err := svc.List(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("rejected re-review must not append, got %d entries", len(entries))
	}
}

func TestSubmitSimulatesMediaUploads(t *testing.T) {
	svc, orderSvc := newReviewEnv(t)
	seedDeliveredOrder(t, orderSvc, "s1", "ORD-3")

	entry, err := svc.Submit(context.Background(), "s1", SubmitInput{
		OrderID: "ORD-3", ProductID: "p1", Rating: 4, Comment: "nice",
		Media: []string{"photo.jpg"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(entry.Review.Media) != 1 || entry.Review.Media[0] != "simulated_upload_url/photo.jpg" {
		t.Fatalf("unexpected media urls %v", entry.Review.Media)
	}
}

type failingSetStore struct {
	storage.Store
	failKey string
}

func (s *failingSetStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	if key == s.failKey {
		return errors.New("disk full")
	}
	return s.Store.Set(ctx, sessionID, key, value)
}

func TestSubmitFailedSaveLeavesOrderReviewable(t *testing.T) {
	store := &failingSetStore{Store: storage.NewMemory(), failKey: storage.KeyProductReviews}
	svc, orderSvc := newReviewEnvWithStore(t, store)
	seedDeliveredOrder(t, orderSvc, "s1", "ORD-5")
	ctx := context.Background()

	_, err := svc.Submit(ctx, "s1", SubmitInput{
		OrderID: "ORD-5", ProductID: "p1", Rating: 5, Comment: "great",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("failed save must surface a dependency error, got %v", err)
	}

	order, err := orderSvc.Get(ctx, "s1", "ORD-5")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.ReviewStatus != enums.ReviewStatusPending {
		t.Fatalf("order must stay reviewable after a failed save, got %q", order.ReviewStatus)
	}

	// A retry against a working store succeeds.
	store.failKey = ""
	if _, err := svc.Submit(ctx, "s1", SubmitInput{
		OrderID: "ORD-5", ProductID: "p1", Rating: 5, Comment: "great",
	}); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestSubmitUnknownProduct(t *testing.T) {
	svc, orderSvc := newReviewEnv(t)
	seedDeliveredOrder(t, orderSvc, "s1", "ORD-4")

	_, err := svc.Submit(context.Background(), "s1", SubmitInput{
		OrderID: "ORD-4", ProductID: "ghost", Rating: 4, Comment: "hm",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unknown product must 404, got %v", err)
	}
}
