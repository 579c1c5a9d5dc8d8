package cart

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/imarket-ke/imarket-backend/internal/catalog"
	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func d(v string) decimal.Decimal {
	out, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return out
}

func newCartService(t *testing.T, products []catalog.Product, office []catalog.OfficeProduct) (Service, storage.Store) {
	t.Helper()
	cat, err := catalog.NewService(&catalog.Catalog{Products: products, OfficeProducts: office}, 10)
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	store := storage.NewMemory()
	svc, err := NewService(store, cat, testLogger())
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}
	return svc, store
}

func limitedStockProduct() catalog.Product {
	return catalog.Product{
		ID:            "p-scarce",
		Name:          "Scarce Widget",
		Price:         d("100"),
		OriginalPrice: d("120"),
		IsDiscounted:  true,
		InStock:       2,
		Images:        []string{"img/widget.webp"},
	}
}

func TestAddStopsAtStock(t *testing.T) {
	svc, _ := newCartService(t, []catalog.Product{limitedStockProduct()}, nil)
	ctx := context.Background()

	c, err := svc.Add(ctx, "s1", enums.ShopClickNGet, "p-scarce", 1)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if c.Count != 1 {
		t.Fatalf("expected count 1, got %d", c.Count)
	}

	c, err = svc.Add(ctx, "s1", enums.ShopClickNGet, "p-scarce", 1)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if c.Count != 2 {
		t.Fatalf("expected count 2, got %d", c.Count)
	}

	_, err = svc.Add(ctx, "s1", enums.ShopClickNGet, "p-scarce", 1)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("third add must fail validation, got %v", err)
	}

	c, err = svc.Get(ctx, "s1", enums.ShopClickNGet)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Count != 2 {
		t.Fatalf("rejected add must not change the cart, count=%d", c.Count)
	}
}

func TestAddEnforcesMinimumOnNewLinesOnly(t *testing.T) {
	p := catalog.Product{
		ID: "p-bulk", Name: "Bulk Paper", OriginalPrice: d("50"),
		InStock: 100, MinOrderQuantity: 3,
	}
	svc, _ := newCartService(t, []catalog.Product{p}, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", enums.ShopClickNGet, "p-bulk", 2)
	if pkgerrors.As(err) == nil {
		t.Fatal("below-minimum first add must be rejected")
	}

	if _, err := svc.Add(ctx, "s1", enums.ShopClickNGet, "p-bulk", 3); err != nil {
		t.Fatalf("minimum add: %v", err)
	}
	// Top-ups under the minimum are fine once the line exists.
	c, err := svc.Add(ctx, "s1", enums.ShopClickNGet, "p-bulk", 1)
	if err != nil {
		t.Fatalf("top-up add: %v", err)
	}
	if c.Count != 4 {
		t.Fatalf("expected 4, got %d", c.Count)
	}
}

func TestAddUsesEffectivePrice(t *testing.T) {
	svc, _ := newCartService(t, []catalog.Product{limitedStockProduct()}, nil)
	c, err := svc.Add(context.Background(), "s1", enums.ShopClickNGet, "p-scarce", 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !c.Items[0].Price.Equal(d("100")) {
		t.Fatalf("discounted price expected, got %s", c.Items[0].Price)
	}
	if !c.Subtotal.Equal(d("100")) {
		t.Fatalf("subtotal %s", c.Subtotal)
	}
}

func TestUpdateQuantityClampsWithWarning(t *testing.T) {
	p := catalog.Product{
		ID: "p-max", Name: "Capped Gadget", OriginalPrice: d("10"),
		InStock: 50, MaxOrderQuantity: 5,
	}
	svc, _ := newCartService(t, []catalog.Product{p}, nil)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "s1", enums.ShopClickNGet, "p-max", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	c, err := svc.UpdateQuantity(ctx, "s1", enums.ShopClickNGet, "p-max", 99)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected clamp to 5, got %d", c.Items[0].Quantity)
	}
	if c.Warning == "" {
		t.Fatal("clamped update must carry a warning")
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, _ := newCartService(t, []catalog.Product{limitedStockProduct()}, nil)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "s1", enums.ShopClickNGet, "p-scarce", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	c, err := svc.UpdateQuantity(ctx, "s1", enums.ShopClickNGet, "p-scarce", 0)
	if err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(c.Items))
	}
}

func TestCartsAreScopedPerShopAndSession(t *testing.T) {
	office := catalog.OfficeProduct{
		ItemID: "OT-1", Name: "Stapler", PriceKsh: d("450"), InStock: true,
	}
	svc, _ := newCartService(t, []catalog.Product{limitedStockProduct()}, []catalog.OfficeProduct{office})
	ctx := context.Background()

	if _, err := svc.Add(ctx, "s1", enums.ShopClickNGet, "p-scarce", 1); err != nil {
		t.Fatalf("clicknget add: %v", err)
	}
	if _, err := svc.Add(ctx, "s1", enums.ShopOfficeTech, "OT-1", 1); err != nil {
		t.Fatalf("officetech add: %v", err)
	}

	c, err := svc.Get(ctx, "s1", enums.ShopOfficeTech)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].ID != "OT-1" {
		t.Fatalf("officetech cart must only hold its own items: %+v", c.Items)
	}

	c, err = svc.Get(ctx, "s2", enums.ShopClickNGet)
	if err != nil {
		t.Fatalf("get other session: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatal("another session must see an empty cart")
	}
}

func TestOutOfStockOfficeProductRejected(t *testing.T) {
	office := catalog.OfficeProduct{ItemID: "OT-2", Name: "Shredder", PriceKsh: d("9000"), InStock: false}
	svc, _ := newCartService(t, nil, []catalog.OfficeProduct{office})
	_, err := svc.Add(context.Background(), "s1", enums.ShopOfficeTech, "OT-2", 1)
	if pkgerrors.As(err) == nil {
		t.Fatal("out-of-stock item must be rejected")
	}
}

func TestShopsWithoutCarts(t *testing.T) {
	svc, _ := newCartService(t, nil, nil)
	_, err := svc.Get(context.Background(), "s1", enums.ShopAutoGiant)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("autogiant has no cart, got %v", err)
	}
}
