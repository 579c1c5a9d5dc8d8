package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/imarket-ke/imarket-backend/pkg/config"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/metrics"
)

// Catalog holds every storefront's listings, loaded once at startup.
type Catalog struct {
	Products       []Product
	OfficeProducts []OfficeProduct
	Cars           []Car
	Properties     []Property
}

// Load reads all four catalog files from the configured data
// directory. A missing or malformed file is terminal; the process has
// nothing to serve without its catalogs.
func Load(ctx context.Context, cfg config.CatalogConfig, logg *logger.Logger, m *metrics.TrackingMetrics) (*Catalog, error) {
	cat := &Catalog{}

	if err := loadFile(ctx, cfg, logg, m, "clicknget", cfg.ProductsFile, &cat.Products); err != nil {
		return nil, err
	}
	if err := loadFile(ctx, cfg, logg, m, "officetech", cfg.OfficeFile, &cat.OfficeProducts); err != nil {
		return nil, err
	}
	if err := loadFile(ctx, cfg, logg, m, "autogiant", cfg.CarsFile, &cat.Cars); err != nil {
		return nil, err
	}
	if err := loadFile(ctx, cfg, logg, m, "sokoproperties", cfg.PropertiesFile, &cat.Properties); err != nil {
		return nil, err
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"products":        len(cat.Products),
		"office_products": len(cat.OfficeProducts),
		"cars":            len(cat.Cars),
		"properties":      len(cat.Properties),
	}), "catalogs loaded")

	return cat, nil
}

func loadFile[T any](ctx context.Context, cfg config.CatalogConfig, logg *logger.Logger, m *metrics.TrackingMetrics, shop, name string, dst *[]T) error {
	start := time.Now()
	path := filepath.Join(cfg.DataDir, name)

	raw, err := os.ReadFile(path)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading catalog file "+name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding catalog file "+name)
	}

	m.ObserveCatalogLoad(shop, time.Since(start))
	logg.Info(logg.WithFields(ctx, map[string]any{"file": name, "items": len(*dst)}), "catalog file loaded")
	return nil
}
