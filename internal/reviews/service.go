package reviews

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

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

// Review is the submitted review body.
type Review struct {
	ReviewerName string    `json:"reviewerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Date         time.Time `json:"date"`
	Media        []string  `json:"media"`
}

// Entry pairs a review with the product it targets.
type Entry struct {
	ProductID string `json:"productId"`
	Review    Review `json:"review"`
}

// SubmitInput carries a review submission. Media holds uploaded file
// names; uploads are simulated and only produce placeholder URLs.
type SubmitInput struct {
	OrderID   string   `json:"orderId" validate:"required"`
	ProductID string   `json:"productId" validate:"required"`
	Rating    int      `json:"rating" validate:"required,min=1,max=5"`
	Comment   string   `json:"comment" validate:"required"`
	Media     []string `json:"media"`
}

// Service accepts and lists product reviews.
type Service interface {
	Submit(ctx context.Context, sessionID string, input SubmitInput) (*Entry, error)
	List(ctx context.Context, sessionID string) ([]Entry, error)
}

type service struct {
	store    storage.Store
	catalog  catalog.Service
	orders   orders.Service
	profiles profile.Service
	notify   notifications.Service
	activity activities.Service
	logg     *logger.Logger
	validate *validator.Validate
	now      func() time.Time
}

// ServiceParams collect review dependencies.
type ServiceParams struct {
	Store    storage.Store
	Catalog  catalog.Service
	Orders   orders.Service
	Profiles profile.Service
	Notify   notifications.Service
	Activity activities.Service
	Logger   *logger.Logger
}

// NewService wires review dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reviews storage required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog service required")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders service required")
	}
	if params.Profiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile service required")
	}
	if params.Notify == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications service required")
	}
	if params.Activity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activities service required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		store:    params.Store,
		catalog:  params.Catalog,
		orders:   params.Orders,
		profiles: params.Profiles,
		notify:   params.Notify,
		activity: params.Activity,
		logg:     params.Logger,
		validate: validator.New(),
		now:      time.Now,
	}, nil
}

func (s *service) Submit(ctx context.Context, sessionID string, input SubmitInput) (*Entry, error) {
	input.Comment = strings.TrimSpace(input.Comment)
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "please provide a star rating and a comment")
	}

	product, err := s.catalog.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Get(ctx, sessionID, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.ReviewStatus == enums.ReviewStatusReviewed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already reviewed")
	}

	prof, err := s.profiles.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	media := make([]string, 0, len(input.Media))
	for _, name := range input.Media {
		media = append(media, "simulated_upload_url/"+name)
	}

	entry := Entry{
		ProductID: input.ProductID,
		Review: Review{
			ReviewerName: prof.Name,
			Rating:       input.Rating,
			Comment:      input.Comment,
			Date:         s.now(),
			Media:        media,
		},
	}

	entries, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	entries = append(entries, entry)
	if err := storage.Save(ctx, s.store, sessionID, storage.KeyProductReviews, entries); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving reviews")
	}

	// The flag flips only after the review is stored; a failed save
	// leaves the order reviewable.
	if _, err := s.orders.MarkReviewed(ctx, sessionID, input.OrderID); err != nil {
		return nil, err
	}

	if err := s.activity.Record(ctx, sessionID, enums.ActivityReviewSubmit,
		fmt.Sprintf("Submitted a %d-star review for %q", input.Rating, product.Name)); err != nil {
		s.logg.Warn(ctx, "recording review activity failed")
	}
	if _, err := s.notify.Add(ctx, sessionID,
		fmt.Sprintf("Thank you for reviewing %q!", product.Name),
		enums.NotificationTypeReview, product.ID); err != nil {
		s.logg.Warn(ctx, "adding review notification failed")
	}

	return &entry, nil
}

func (s *service) List(ctx context.Context, sessionID string) ([]Entry, error) {
	entries, err := storage.Load(ctx, s.store, s.logg, sessionID, storage.KeyProductReviews, []Entry{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading reviews")
	}
	return entries, nil
}
