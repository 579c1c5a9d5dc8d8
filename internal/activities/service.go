package activities

import (
	"context"
	"time"

	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

// Activity is one entry in a session's activity log.
type Activity struct {
	Type        enums.ActivityType `json:"type"`
	Description string             `json:"description"`
	Date        time.Time          `json:"date"`
}

// Service records and lists account activity.
type Service interface {
	Record(ctx context.Context, sessionID string, kind enums.ActivityType, description string) error
	List(ctx context.Context, sessionID string) ([]Activity, error)
}

type service struct {
	store storage.Store
	logg  *logger.Logger
	now   func() time.Time
}

// NewService wires activity log dependencies.
func NewService(store storage.Store, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activities storage required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{store: store, logg: logg, now: time.Now}, nil
}

func (s *service) Record(ctx context.Context, sessionID string, kind enums.ActivityType, description string) error {
	if description == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "activity description required")
	}

	items, err := storage.Load(ctx, s.store, s.logg, sessionID, storage.KeyUserActivities, []Activity{})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading activities")
	}

	// Newest entries go first.
	items = append([]Activity{{Type: kind, Description: description, Date: s.now()}}, items...)

	if err := storage.Save(ctx, s.store, sessionID, storage.KeyUserActivities, items); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving activities")
	}
	return nil
}

func (s *service) List(ctx context.Context, sessionID string) ([]Activity, error) {
	items, err := storage.Load(ctx, s.store, s.logg, sessionID, storage.KeyUserActivities, []Activity{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading activities")
	}
	return items, nil
}
