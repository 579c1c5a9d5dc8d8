package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "IMARKET"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Catalog  CatalogConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Checkout CheckoutConfig
	Tracking TrackingConfig
	Listing  ListingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"IMARKET_APP_ENV" default:"dev"`
	Port         string `envconfig:"IMARKET_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"IMARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"IMARKET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig points at the static JSON catalog files.
type CatalogConfig struct {
	DataDir        string `envconfig:"IMARKET_CATALOG_DATA_DIR" default:"data"`
	CarsFile       string `envconfig:"IMARKET_CATALOG_CARS_FILE" default:"cars.json"`
	ProductsFile   string `envconfig:"IMARKET_CATALOG_PRODUCTS_FILE" default:"clicknget-products.json"`
	OfficeFile     string `envconfig:"IMARKET_CATALOG_OFFICE_FILE" default:"office-products.json"`
	PropertiesFile string `envconfig:"IMARKET_CATALOG_PROPERTIES_FILE" default:"properties.json"`
}

// StorageConfig selects the session-state backend. The sqlite driver is
// the dev default; postgres and redis are selected by driver name.
type StorageConfig struct {
	Driver string `envconfig:"IMARKET_STORAGE_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"IMARKET_STORAGE_DSN"`

	SQLitePath string `envconfig:"IMARKET_STORAGE_SQLITE_PATH" default:"imarket.db"`

	LegacyHost     string `envconfig:"IMARKET_STORAGE_HOST"`
	LegacyPort     int    `envconfig:"IMARKET_STORAGE_PORT" default:"5432"`
	LegacyUser     string `envconfig:"IMARKET_STORAGE_USER"`
	LegacyPassword string `envconfig:"IMARKET_STORAGE_PASSWORD"`
	LegacyName     string `envconfig:"IMARKET_STORAGE_NAME"`
	LegacySSLMode  string `envconfig:"IMARKET_STORAGE_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"IMARKET_STORAGE_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"IMARKET_STORAGE_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"IMARKET_STORAGE_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"IMARKET_STORAGE_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"IMARKET_STORAGE_AUTO_MIGRATE" default:"true"`
}

const (
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
)

type RedisConfig struct {
	URL          string        `envconfig:"IMARKET_REDIS_URL"`
	Address      string        `envconfig:"IMARKET_REDIS_ADDR"`
	Password     string        `envconfig:"IMARKET_REDIS_PASSWORD"`
	DB           int           `envconfig:"IMARKET_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"IMARKET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"IMARKET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"IMARKET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"IMARKET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"IMARKET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CheckoutConfig carries the simulated fulfillment constants.
type CheckoutConfig struct {
	ShippingPerUnit string `envconfig:"IMARKET_CHECKOUT_SHIPPING_PER_UNIT" default:"5.00"`
	ETAMinDays      int    `envconfig:"IMARKET_CHECKOUT_ETA_MIN_DAYS" default:"3"`
	ETAMaxDays      int    `envconfig:"IMARKET_CHECKOUT_ETA_MAX_DAYS" default:"7"`
	OrderPrefix     string `envconfig:"IMARKET_CHECKOUT_ORDER_PREFIX" default:"CNG-ORD"`
}

// TrackingConfig controls the simulated order progression.
type TrackingConfig struct {
	AdvanceInterval time.Duration `envconfig:"IMARKET_TRACKING_ADVANCE_INTERVAL" default:"5s"`
}

// ListingConfig controls list rendering.
type ListingConfig struct {
	PageSize       int `envconfig:"IMARKET_LISTING_PAGE_SIZE" default:"15"`
	MaxSuggestions int `envconfig:"IMARKET_LISTING_MAX_SUGGESTIONS" default:"10"`
}

func (s *StorageConfig) ensureDSN() error {
	switch s.Driver {
	case StorageDriverSQLite:
		if s.DSN == "" {
			s.DSN = s.SQLitePath
		}
		return nil
	case StorageDriverRedis:
		return nil
	case StorageDriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", s.Driver)
	}

	if s.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		"IMARKET_STORAGE_HOST": s.LegacyHost,
		"IMARKET_STORAGE_USER": s.LegacyUser,
		"IMARKET_STORAGE_NAME": s.LegacyName,
	}
	for _, name := range []string{"IMARKET_STORAGE_HOST", "IMARKET_STORAGE_USER", "IMARKET_STORAGE_NAME"} {
		if legacyValues[name] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either IMARKET_STORAGE_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(s.LegacyUser)
	if s.LegacyPassword != "" {
		userInfo = url.UserPassword(s.LegacyUser, s.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", s.LegacyHost, s.LegacyPort),
		Path:   s.LegacyName,
	}
	if s.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", s.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	s.DSN = u.String()
	return nil
}
