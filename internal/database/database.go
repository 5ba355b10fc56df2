package database

import (
	"context"
	"fmt"
	"time"

	"github.com/base14/examples/gin-product-catalog/internal/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Debug           bool
}

// Connect opens a PostgreSQL connection pool.
func Connect(databaseURL string, opts Options) (*gorm.DB, error) {
	return Open(postgres.Open(databaseURL), opts)
}

// Open configures GORM on top of any dialector. Tests use it with SQLite.
func Open(dialector gorm.Dialector, opts Options) (*gorm.DB, error) {
	logLevel := logger.Warn
	if opts.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.NewGormLogger(logLevel),
		NowFunc:        Now,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Use(otelgorm.NewPlugin(otelgorm.WithDBName(db.Dialector.Name()))); err != nil {
		return nil, fmt.Errorf("failed to setup otel plugin: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	return db, nil
}

// Now is the clock used for created_date/updated_date. PostgreSQL keeps
// microsecond precision, so values are truncated to match what is stored.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func CheckHealth(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
