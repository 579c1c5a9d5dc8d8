package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/pagination"
)

func newTestService(t *testing.T, cat *Catalog) Service {
	t.Helper()
	svc, err := NewService(cat, 10)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestListProductsWindowGrowsCumulatively(t *testing.T) {
	var products []Product
	for i := 0; i < 40; i++ {
		products = append(products, Product{
			ID:        fmt.Sprintf("p%02d", i),
			Name:      fmt.Sprintf("Item %02d", i),
			DateAdded: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	svc := newTestService(t, &Catalog{Products: products})

	page0, err := svc.ListProducts(context.Background(), ProductFilter{}, pagination.Params{Page: 0, Size: 15})
	if err != nil {
		t.Fatalf("page 0: %v", err)
	}
	if len(page0.Items) != 15 || !page0.HasMore {
		t.Fatalf("page 0: expected 15 items with more, got %d hasMore=%v", len(page0.Items), page0.HasMore)
	}

	page2, err := svc.ListProducts(context.Background(), ProductFilter{}, pagination.Params{Page: 2, Size: 15})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page2.Items) != 40 || page2.HasMore {
		t.Fatalf("page 2: expected all 40 items and no more, got %d hasMore=%v", len(page2.Items), page2.HasMore)
	}
	if page2.Total != 40 {
		t.Fatalf("expected total 40, got %d", page2.Total)
	}
}

func TestGetCarByCompositeKey(t *testing.T) {
	svc := newTestService(t, &Catalog{Cars: testCars()})

	car, err := svc.GetCar(context.Background(), "toyota-axio-2018")
	if err != nil {
		t.Fatalf("lookup must be case-insensitive: %v", err)
	}
	if car.Model != "Axio" {
		t.Fatalf("wrong car: %s", car.Model)
	}

	_, err = svc.GetCar(context.Background(), "Toyota-Axio-1999")
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestGetProductUnknownID(t *testing.T) {
	svc := newTestService(t, &Catalog{Products: testProducts()})
	_, err := svc.GetProduct(context.Background(), "nope")
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}
