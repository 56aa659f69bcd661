package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"regexp"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"   // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations
var migrationsFS embed.FS

var placeholderRe = regexp.MustCompile(`\$\d+`)

// DB is the shared connection pool together with the dialect it speaks.
type DB struct {
	*sql.DB
	Driver string
}

// New creates a new database connection pool and checks it is reachable.
func New(driver, dataSourceName string) (*DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sql.Open(driver, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// SQLite allows a single writer; serialise through one connection.
		conn.SetMaxOpenConns(1)
	}
	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}
	return &DB{DB: conn, Driver: driver}, nil
}

// Rebind converts a query written with PostgreSQL $N placeholders into the
// driver's native form. Queries must reference each placeholder once, in
// ascending order, for the SQLite form to bind correctly.
func (db *DB) Rebind(query string) string {
	if db.Driver != DriverSQLite {
		return query
	}
	return placeholderRe.ReplaceAllString(query, "?")
}

// Migrate applies every pending schema migration for the pool's dialect.
func Migrate(db *DB) error {
	src, err := iofs.New(migrationsFS, "migrations/"+db.Driver)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	var target migratedb.Driver
	switch db.Driver {
	case DriverPostgres:
		// Borrow a single connection so closing the migration driver hands it
		// back to the pool instead of closing the pool.
		conn, connErr := db.Conn(context.Background())
		if connErr != nil {
			return fmt.Errorf("failed to acquire migration connection: %w", connErr)
		}
		var pg *migratepostgres.Postgres
		pg, err = migratepostgres.WithConnection(context.Background(), conn, &migratepostgres.Config{})
		if err != nil {
			conn.Close()
			return fmt.Errorf("failed to prepare migration driver: %w", err)
		}
		defer pg.Close()
		target = pg
	case DriverSQLite:
		target, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("failed to prepare migration driver: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", db.Driver)
	}

	m, err := migrate.NewWithInstance("iofs", src, db.Driver, target)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
