package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

// Notification is one entry in a session's notification feed.
type Notification struct {
	ID        uuid.UUID              `json:"id"`
	Message   string                 `json:"message"`
	Type      enums.NotificationType `json:"type"`
	Read      bool                   `json:"read"`
	Date      time.Time              `json:"date"`
	RelatedID string                 `json:"relatedId,omitempty"`
}

// Feed is the rendered notification list plus its unread count.
type Feed struct {
	Items  []Notification `json:"items"`
	Unread int            `json:"unread"`
}

// Service defines notification add/list/read operations.
type Service interface {
	Add(ctx context.Context, sessionID, message string, kind enums.NotificationType, relatedID string) (*Notification, error)
	List(ctx context.Context, sessionID string) (*Feed, error)
	MarkRead(ctx context.Context, sessionID string, id uuid.UUID) error
	MarkAllRead(ctx context.Context, sessionID string) (int, error)
}

type service struct {
	store storage.Store
	logg  *logger.Logger
	now   func() time.Time
}

// NewService wires notifications dependencies.
func NewService(store storage.Store, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications storage required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{store: store, logg: logg, now: time.Now}, nil
}

func (s *service) load(ctx context.Context, sessionID string) ([]Notification, error) {
	items, err := storage.Load(ctx, s.store, s.logg, sessionID, storage.KeyUserNotifications, []Notification{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading notifications")
	}
	return items, nil
}

func (s *service) save(ctx context.Context, sessionID string, items []Notification) error {
	if err := storage.Save(ctx, s.store, sessionID, storage.KeyUserNotifications, items); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving notifications")
	}
	return nil
}

func (s *service) Add(ctx context.Context, sessionID, message string, kind enums.NotificationType, relatedID string) (*Notification, error) {
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification message required")
	}
	if !kind.IsValid() {
		kind = enums.NotificationTypeInfo
	}

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	n := Notification{
		ID:        uuid.New(),
		Message:   message,
		Type:      kind,
		Date:      s.now(),
		RelatedID: relatedID,
	}
	// Newest entries go first.
	items = append([]Notification{n}, items...)

	if err := s.save(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *service) List(ctx context.Context, sessionID string) (*Feed, error) {
	items, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	return &Feed{Items: items, Unread: unread}, nil
}

func (s *service) MarkRead(ctx context.Context, sessionID string, id uuid.UUID) error {
	items, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Read = true
			return s.save(ctx, sessionID, items)
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
}

func (s *service) MarkAllRead(ctx context.Context, sessionID string) (int, error) {
	items, err := s.load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	changed := 0
	for i := range items {
		if !items[i].Read {
			items[i].Read = true
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	return changed, s.save(ctx, sessionID, items)
}
