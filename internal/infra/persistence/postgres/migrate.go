package postgres

import (
	"embed"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	pgLib "github.com/slighter12/go-lib/database/postgres"

	"guidemyai/internal/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending schema migrations against the master
// connection. Already being at the latest version is not an error.
func RunMigrations(conn *pgLib.DBConn) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "failed to create migration source")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrationURL(conn))
	if err != nil {
		return errors.Wrap(err, "failed to create migrator")
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to run migrations")
	}

	return nil
}

func migrationURL(conn *pgLib.DBConn) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(conn.Master.UserName),
		url.QueryEscape(conn.Master.Password),
		conn.Master.Host,
		conn.Master.Port,
		conn.Database,
		conn.SSLMode,
	)
}
