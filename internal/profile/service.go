package profile

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/imarket-ke/imarket-backend/internal/activities"
	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

// Profile is the account holder's contact record.
type Profile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	MemberSince string `json:"memberSince"`
}

// UpdateInput is a full profile overwrite. Phone and address may be
// blank.
type UpdateInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Service reads and updates the session profile.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Profile, error)
	Update(ctx context.Context, sessionID string, input UpdateInput) (*Profile, error)
}

type service struct {
	store    storage.Store
	activity activities.Service
	logg     *logger.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService wires profile dependencies.
func NewService(store storage.Store, activity activities.Service, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile storage required")
	}
	if activity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activities service required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		store:    store,
		activity: activity,
		logg:     logg,
		validate: validator.New(),
		now:      time.Now,
	}, nil
}

func (s *service) defaultProfile() Profile {
	return Profile{
		Name:        "Guest User",
		Email:       "guest@example.com",
		MemberSince: s.now().Format("2006-01-02"),
	}
}

func (s *service) Get(ctx context.Context, sessionID string) (*Profile, error) {
	p, err := storage.Load(ctx, s.store, s.logg, sessionID, storage.KeyUserProfile, s.defaultProfile())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading profile")
	}
	return &p, nil
}

func (s *service) Update(ctx context.Context, sessionID string, input UpdateInput) (*Profile, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "name and email are required")
	}

	current, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	updated := Profile{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		MemberSince: current.MemberSince,
	}
	if err := storage.Save(ctx, s.store, sessionID, storage.KeyUserProfile, updated); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving profile")
	}

	if err := s.activity.Record(ctx, sessionID, enums.ActivityProfileUpdate, "Updated profile information"); err != nil {
		s.logg.Warn(ctx, "recording profile activity failed")
	}
	return &updated, nil
}
