package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/imarket-ke/imarket-backend/pkg/config"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// SessionEntry is one (session, key) blob row.
type SessionEntry struct {
	SessionID string    `gorm:"primaryKey;size:64;column:session_id"`
	Key       string    `gorm:"primaryKey;size:64;column:key"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName keeps the table name stable across dialects.
func (SessionEntry) TableName() string { return "session_entries" }

// GormStore backs Store with a relational database through GORM.
type GormStore struct {
	conn *gorm.DB
}

// NewGorm opens the sqlite or postgres backend selected by the config.
func NewGorm(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (*GormStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("storage DSN is required")
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.StorageDriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case config.StorageDriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("gorm storage does not support driver %q", cfg.Driver)
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening storage connection: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	applyPoolSettings(sqlDB, cfg)

	if cfg.AutoMigrate && cfg.Driver == config.StorageDriverSQLite {
		if err := conn.AutoMigrate(&SessionEntry{}); err != nil {
			return nil, fmt.Errorf("migrating session storage: %w", err)
		}
	}

	if logg != nil {
		logg.Info(ctx, "session storage connection established")
	}

	return &GormStore{conn: conn}, nil
}

func applyPoolSettings(sqlDB *sql.DB, cfg config.StorageConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// DB returns the underlying GORM connection.
func (s *GormStore) DB() *gorm.DB {
	return s.conn
}

func (s *GormStore) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	var entry SessionEntry
	err := s.conn.WithContext(ctx).
		Where("session_id = ? AND key = ?", sessionID, key).
		Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entry.Value, nil
}

func (s *GormStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	entry := SessionEntry{
		SessionID: sessionID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *GormStore) Delete(ctx context.Context, sessionID, key string) error {
	return s.conn.WithContext(ctx).
		Where("session_id = ? AND key = ?", sessionID, key).
		Delete(&SessionEntry{}).Error
}

func (s *GormStore) Clear(ctx context.Context, sessionID string) error {
	return s.conn.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&SessionEntry{}).Error
}

// Ping verifies the datasource is reachable.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts down the pooled connections.
func (s *GormStore) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
