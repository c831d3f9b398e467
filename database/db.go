package database

import (
	"context"
	"fmt"

	"taskboard/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

// GormConfig is shared by Setup and the test helpers so both run with the
// same mapper behaviour.
func GormConfig(logLevel logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:            logger.Default.LogMode(logLevel),
		AllowGlobalUpdate: false,
		// Every store operation is a single independent statement.
		SkipDefaultTransaction: true,
		// Task.assignee is a weak reference.
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

func dialectorFor(cfg config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DBPath), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// migrate is swapped in tests.
var migrate = RunMigrations

func Setup(cfg config.Config) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Info
	if cfg.IsProduction() {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, GormConfig(logLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	if cfg.DBDriver == config.DriverSQLite {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	}

	zap.L().Info("running database migrations", zap.String("driver", cfg.DBDriver))
	if err := migrate(db); err != nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			zap.L().Error("failed to close database connection", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() {
	if d.DB == nil {
		zap.L().Warn("database connection is nil, nothing to close")
		return
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		zap.L().Error("failed to get database connection", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		zap.L().Error("failed to close database connection", zap.Error(err))
	}
}

// Ping reports whether the underlying connection is usable.
func (d *Database) Ping(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// WithContext scopes a query to the caller's context.
func (d *Database) WithContext(ctx context.Context) *gorm.DB {
	return d.DB.WithContext(ctx)
}
