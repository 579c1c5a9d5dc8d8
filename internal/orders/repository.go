package orders

import (
	"context"

	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

// Repository persists a session's order list.
type Repository interface {
	List(ctx context.Context, sessionID string) ([]Order, error)
	Get(ctx context.Context, sessionID, orderID string) (*Order, error)
	Append(ctx context.Context, sessionID string, order Order) error
	Update(ctx context.Context, sessionID string, order Order) error
}

type storageRepository struct {
	store storage.Store
	logg  *logger.Logger
}

// NewRepository builds the session-storage backed order repository.
func NewRepository(store storage.Store, logg *logger.Logger) (Repository, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders storage required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &storageRepository{store: store, logg: logg}, nil
}

func (r *storageRepository) List(ctx context.Context, sessionID string) ([]Order, error) {
	items, err := storage.Load(ctx, r.store, r.logg, sessionID, storage.KeyUserOrders, []Order{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading orders")
	}
	return items, nil
}

func (r *storageRepository) Get(ctx context.Context, sessionID, orderID string) (*Order, error) {
	items, err := r.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].OrderID == orderID {
			o := items[i]
			return &o, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (r *storageRepository) Append(ctx context.Context, sessionID string, order Order) error {
	items, err := r.List(ctx, sessionID)
	if err != nil {
		return err
	}
	// Newest orders render first in the account page.
	items = append([]Order{order}, items...)
	return r.save(ctx, sessionID, items)
}

func (r *storageRepository) Update(ctx context.Context, sessionID string, order Order) error {
	items, err := r.List(ctx, sessionID)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].OrderID == order.OrderID {
			items[i] = order
			return r.save(ctx, sessionID, items)
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (r *storageRepository) save(ctx context.Context, sessionID string, items []Order) error {
	if err := storage.Save(ctx, r.store, sessionID, storage.KeyUserOrders, items); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving orders")
	}
	return nil
}
