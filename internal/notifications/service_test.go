package notifications

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(storage.NewMemory(), logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestAddPutsNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "s1", "first", enums.NotificationTypeOrder, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, "s1", "second", enums.NotificationTypeDelivery, "ORD-1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	feed, err := svc.List(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(feed.Items) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(feed.Items))
	}
	if feed.Items[0].Message != "second" {
		t.Fatalf("newest must come first, got %q", feed.Items[0].Message)
	}
	if feed.Items[0].RelatedID != "ORD-1" {
		t.Fatalf("related id lost: %q", feed.Items[0].RelatedID)
	}
	if feed.Unread != 2 {
		t.Fatalf("expected 2 unread, got %d", feed.Unread)
	}
}

func TestAddAssignsDistinctIDs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a, err := svc.Add(ctx, "s1", "a", enums.NotificationTypeInfo, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, err := svc.Add(ctx, "s1", "b", enums.NotificationTypeInfo, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.ID == b.ID || a.ID == uuid.Nil {
		t.Fatalf("ids must be distinct and non-nil: %s %s", a.ID, b.ID)
	}
}

func TestMarkRead(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	n, err := svc.Add(ctx, "s1", "hello", enums.NotificationTypeInfo, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.MarkRead(ctx, "s1", n.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	feed, err := svc.List(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if feed.Unread != 0 || !feed.Items[0].Read {
		t.Fatal("notification should be read")
	}

	err = svc.MarkRead(ctx, "s1", uuid.New())
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unknown id must 404, got %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for _, msg := range []string{"a", "b", "c"} {
		if _, err := svc.Add(ctx, "s1", msg, enums.NotificationTypeInfo, ""); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	changed, err := svc.MarkAllRead(ctx, "s1")
	if err != nil {
		t.Fatalf("mark all: %v", err)
	}
	if changed != 3 {
		t.Fatalf("expected 3 changed, got %d", changed)
	}

	changed, err = svc.MarkAllRead(ctx, "s1")
	if err != nil {
		t.Fatalf("second mark all: %v", err)
	}
	if changed != 0 {
		t.Fatalf("idempotent call must change nothing, got %d", changed)
	}
}

func TestInvalidTypeFallsBackToInfo(t *testing.T) {
	svc := newTestService(t)
	n, err := svc.Add(context.Background(), "s1", "hello", enums.NotificationType("bogus"), "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if n.Type != enums.NotificationTypeInfo {
		t.Fatalf("expected info fallback, got %s", n.Type)
	}
}
