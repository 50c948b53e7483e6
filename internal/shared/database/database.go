package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clubly/internal/shared/config"
	"clubly/pkg/cache"
	applog "clubly/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds database connections
type DB struct {
	PostgreSQL *gorm.DB
	Redis      *redis.Client
}

// InitDB connects to PostgreSQL and Redis and migrates the schema
func InitDB(cfg *config.Config) (*DB, error) {
	pg, err := initPostgreSQL(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}

	if err := Migrate(pg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := MigrateConstraints(pg); err != nil {
		return nil, fmt.Errorf("failed to apply constraints: %w", err)
	}

	rdb, err := cache.NewClient(cache.DefaultConfig(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	applog.GetDefault().Info("Redis connected", "addr", cfg.Redis.Addr)

	return &DB{
		PostgreSQL: pg,
		Redis:      rdb,
	}, nil
}

// queryLogger routes gorm output through the application slog handler
func queryLogger(cfg *config.Config) logger.Interface {
	level := logger.Warn
	if !cfg.IsDevelopment() {
		level = logger.Error
	}

	writer := slog.NewLogLogger(applog.GetDefault().Handler(), slog.LevelWarn)
	return logger.New(writer, logger.Config{
		SlowThreshold:             cfg.Database.SlowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      !cfg.IsDevelopment(),
	})
}

func initPostgreSQL(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: queryLogger(cfg),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	applog.GetDefault().Info("PostgreSQL connected", "host", cfg.Database.Host, "database", cfg.Database.Name)
	return db, nil
}

// Close closes all database connections
func (db *DB) Close() error {
	var errs []error

	if db.PostgreSQL != nil {
		if sqlDB, err := db.PostgreSQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close PostgreSQL: %w", err))
			}
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	return errors.Join(errs...)
}

// HealthCheck pings both stores and reports each failure
func (db *DB) HealthCheck(ctx context.Context) error {
	var errs []error

	if db.PostgreSQL != nil {
		if sqlDB, err := db.PostgreSQL.DB(); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		} else if err := sqlDB.PingContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Ping(ctx).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}

	return errors.Join(errs...)
}
