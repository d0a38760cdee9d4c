package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"msgboard/internal/config"
)

//go:embed migrations/sqlite3/*.sql migrations/mysql/*.sql
var migrations embed.FS

// DB bundles the connection pool with its ORM session.
type DB struct {
	SQL    *sql.DB
	Gorm   *gorm.DB
	driver string
}

// Open connects to the configured database and wraps it for the ORM.
// Migrations are not applied; call Migrate for that.
func Open(ctx context.Context, cfg config.Config) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverSQLite:
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		if err := applyPragmas(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to apply pragmas: %w", err)
		}
		dialector = sqlite.New(sqlite.Config{DriverName: cfg.DBDriver, Conn: sqlDB})
	case config.DriverMySQL:
		sqlDB.SetConnMaxLifetime(3 * time.Minute)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		dialector = mysql.New(mysql.Config{Conn: sqlDB})
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.Default(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	log.Printf("✅ Database connection established (%s)", cfg.DBDriver)
	return &DB{SQL: sqlDB, Gorm: gormDB, driver: cfg.DBDriver}, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db == nil || db.SQL == nil {
		return nil
	}
	return db.SQL.Close()
}

// Driver returns the driver name the database was opened with.
func (db *DB) Driver() string {
	return db.driver
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) provider() (*goose.Provider, error) {
	dialect := goose.DialectSQLite3
	if db.driver == config.DriverMySQL {
		dialect = goose.DialectMySQL
	}

	fsys, err := fs.Sub(migrations, "migrations/"+db.driver)
	if err != nil {
		return nil, fmt.Errorf("migrations for %s: %w", db.driver, err)
	}

	p, err := goose.NewProvider(dialect, db.SQL, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return p, nil
}

// Migrate applies all pending migrations.
func (db *DB) Migrate(ctx context.Context) error {
	p, err := db.provider()
	if err != nil {
		return err
	}

	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, r := range results {
		log.Printf("[migrate] applied %s (%s)", r.Source.Path, r.Duration)
	}
	return nil
}

// Rollback reverts the most recently applied migration.
func (db *DB) Rollback(ctx context.Context) error {
	p, err := db.provider()
	if err != nil {
		return err
	}

	result, err := p.Down(ctx)
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	log.Printf("[migrate] rolled back %s (%s)", result.Source.Path, result.Duration)
	return nil
}

// MigrationStatus describes one embedded migration.
type MigrationStatus struct {
	Version   int64
	Path      string
	Applied   bool
	AppliedAt time.Time
}

// MigrationStatus lists every embedded migration and whether it is applied.
func (db *DB) MigrationStatus(ctx context.Context) ([]MigrationStatus, error) {
	p, err := db.provider()
	if err != nil {
		return nil, err
	}

	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version:   s.Source.Version,
			Path:      s.Source.Path,
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}
