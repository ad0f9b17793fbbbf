package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"transaksi-api/internal/config"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrConnection is returned when the database cannot be reached or rejects the credentials.
var ErrConnection = errors.New("database connection failed")

// Provider hands out one live connection per call. The connection is released
// when fn returns.
type Provider interface {
	WithConnection(ctx context.Context, fn func(conn *gorm.DB) error) error
}

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

// New opens a bounded connection pool for the configured driver.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}
	return Open(dialector, cfg)
}

// Open builds a DB over an arbitrary GORM dialector and applies the pool limits from cfg.
func Open(dialector gorm.Dialector, cfg *config.DatabaseConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func newDialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		sqlDB, err := sql.Open("postgres", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnection, err)
		}
		return postgres.New(postgres.Config{Conn: sqlDB}), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// WithConnection acquires a dedicated connection from the pool, runs fn with a
// session bound to it and releases the connection afterwards. Acquisition
// failures are reported as ErrConnection; errors from fn are returned as is.
func (db *DB) WithConnection(ctx context.Context, fn func(conn *gorm.DB) error) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer conn.Close()

	session := db.DB.Session(&gorm.Session{Context: ctx})
	session.Statement.ConnPool = conn

	return fn(session)
}

func (db *DB) HealthCheck(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsConnectionError reports whether err was caused by a lost or refused connection
// rather than by the statement itself.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConnection) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}
