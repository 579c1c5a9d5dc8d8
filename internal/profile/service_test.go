package profile

import (
	"context"
	"io"
	"testing"

	"github.com/imarket-ke/imarket-backend/internal/activities"
	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

func newTestService(t *testing.T) (Service, activities.Service) {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	store := storage.NewMemory()
	activity, err := activities.NewService(store, logg)
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	svc, err := NewService(store, activity, logg)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	return svc, activity
}

func TestGetReturnsGuestDefault(t *testing.T) {
	svc, _ := newTestService(t)
	p, err := svc.Get(context.Background(), "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Guest User" || p.Email != "guest@example.com" {
		t.Fatalf("unexpected default profile %+v", p)
	}
	if p.MemberSince == "" {
		t.Fatal("member-since must be set")
	}
}

func TestUpdateOverwritesAndLogsActivity(t *testing.T) {
	svc, activity := newTestService(t)
	ctx := context.Background()

	p, err := svc.Update(ctx, "s1", UpdateInput{
		Name:    "Jane Wanjiku",
		Email:   "jane@example.com",
		Phone:   "0700000000",
		Address: "123 Moi Ave",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Name != "Jane Wanjiku" || p.Phone != "0700000000" {
		t.Fatalf("unexpected profile %+v", p)
	}

	got, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "jane@example.com" {
		t.Fatalf("update not persisted: %+v", got)
	}

	log, err := activity.List(ctx, "s1")
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	if len(log) != 1 || log[0].Type != enums.ActivityProfileUpdate {
		t.Fatalf("expected a profile-update activity, got %+v", log)
	}
}

func TestUpdateClearsOptionalFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Update(ctx, "s1", UpdateInput{
		Name: "Jane", Email: "jane@example.com", Phone: "0700000000",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	// Full overwrite: omitting phone blanks it.
	p, err := svc.Update(ctx, "s1", UpdateInput{Name: "Jane", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if p.Phone != "" {
		t.Fatalf("phone should be cleared, got %q", p.Phone)
	}
}

func TestUpdateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, "s1", UpdateInput{Email: "jane@example.com"})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("missing name must fail, got %v", err)
	}
	_, err = svc.Update(ctx, "s1", UpdateInput{Name: "Jane", Email: "not-an-email"})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("bad email must fail, got %v", err)
	}
}
