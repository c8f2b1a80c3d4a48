// Package pgtest opens migrated databases for repository and application
// tests: a PostgreSQL testcontainer, or an in-memory SQLite database when
// docker is not wanted.
package pgtest

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"shiptrack/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Opener returns a migrated database and a function releasing it.
type Opener func(ctx context.Context) (*gorm.DB, func(), error)

// SQLite opens a private in-memory database.
func SQLite(_ context.Context) (*gorm.DB, func(), error) {
	db, err := postgres.OpenSQLite(":memory:", logger.Discard)
	if err != nil {
		return nil, nil, err
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, nil, err
	}
	return db, func() { _ = postgres.Close(db) }, nil
}

// Postgres starts a postgres:15-alpine container and connects to it through
// lib/pq.
func Postgres(ctx context.Context) (*gorm.DB, func(), error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}
	terminate := func() { _ = container.Terminate(context.Background()) }

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return nil, nil, err
	}
	cfg, err := configFromDSN(dsn)
	if err != nil {
		terminate()
		return nil, nil, err
	}

	db, err := postgres.Open(cfg, logger.Discard)
	if err != nil {
		terminate()
		return nil, nil, err
	}
	if err = postgres.Migrate(db); err != nil {
		terminate()
		return nil, nil, err
	}

	return db, func() {
		_ = postgres.Close(db)
		terminate()
	}, nil
}

// Reset empties every table, children first.
func Reset(db *gorm.DB) error {
	for _, table := range []string{
		"tracking_events",
		"shipments",
		"support_comments",
		"support_tickets",
		"revoked_sessions",
		"admins",
		"couriers",
		"customers",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

func configFromDSN(dsn string) (postgres.Config, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return postgres.Config{}, err
	}
	password, _ := u.User.Password()
	return postgres.Config{
		Driver:   postgres.DriverPostgres,
		Host:     u.Hostname(),
		Port:     u.Port(),
		User:     u.User.Username(),
		Password: password,
		Name:     u.Path[1:],
		SSLMode:  u.Query().Get("sslmode"),
	}, nil
}
