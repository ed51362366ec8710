// Package migrate applies the embedded postgres schema with golang-migrate
package migrate

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"chatter/internal/platform/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver "pgx"
)

//go:embed sql/*.sql
var files embed.FS

// Up applies every pending migration. An up to date schema is not an error
func Up(dsn string) error {
	m, closeFn, err := open(dsn)
	if err != nil {
		return err
	}
	defer closeFn()

	log := logger.Named("migrate")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("schema up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	v, _, _ := m.Version()
	log.Info().Uint("version", v).Msg("schema migrated")
	return nil
}

// Down rolls back every migration
func Down(dsn string) error {
	m, closeFn, err := open(dsn)
	if err != nil {
		return err
	}
	defer closeFn()
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

func open(dsn string) (*migrate.Migrate, func(), error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	drv, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate driver: %w", err)
	}
	src, err := iofs.New(files, "sql")
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate init: %w", err)
	}
	return m, func() { _, _ = m.Close() }, nil
}
