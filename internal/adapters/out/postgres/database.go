package postgres

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"

	"shiptrack/internal/adapters/out/postgres/adminrepo"
	"shiptrack/internal/adapters/out/postgres/courierrepo"
	"shiptrack/internal/adapters/out/postgres/customerrepo"
	"shiptrack/internal/adapters/out/postgres/sessionrepo"
	"shiptrack/internal/adapters/out/postgres/shipmentrepo"
	"shiptrack/internal/adapters/out/postgres/supportrepo"

	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects and addresses the database.
type Config struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// DSN builds a lib/pq connection URL.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.Name,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Open connects to the configured database. PostgreSQL connections go
// through lib/pq; SQLite is meant for local runs and tests.
func Open(cfg Config, gormLogger logger.Interface) (*gorm.DB, error) {
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}
	gormCfg := &gorm.Config{Logger: gormLogger}

	switch cfg.Driver {
	case DriverPostgres, "":
		sqlDB, err := sql.Open("postgres", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), gormCfg)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil

	case DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, gormLogger)

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// OpenSQLite opens path (":memory:" for a throwaway database) with a single
// connection so that every statement sees the same database.
func OpenSQLite(path string, gormLogger logger.Interface) (*gorm.DB, error) {
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Models lists every persisted DTO in dependency order.
func Models() []any {
	return []any{
		&customerrepo.CustomerDTO{},
		&courierrepo.CourierDTO{},
		&adminrepo.AdminDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.TrackingEventDTO{},
		&supportrepo.TicketDTO{},
		&supportrepo.CommentDTO{},
		&sessionrepo.RevokedSessionDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
