package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxRetries    = 10
	retryInterval = 2 * time.Second
)

// Connect opens a PostgreSQL connection, retrying while the database starts up
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		var db *sqlx.DB
		db, err = sqlx.ConnectContext(ctx, "postgres", databaseURL)
		if err == nil {
			log.Info().Msg("connected to database")
			return db, nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("failed to connect to database, retrying in %s", retryInterval)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", maxRetries, err)
}

// RunMigrations executes every *.up.sql file in migrationsPath in name order.
// Migrations must be idempotent; they run on every start.
func RunMigrations(ctx context.Context, db *sqlx.DB, migrationsPath string) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read migration %q: %w", file, err)
		}

		stmt := strings.TrimSpace(string(sqlBytes))
		if stmt == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute migration %q: %w", file, err)
		}
		log.Debug().Str("file", filepath.Base(file)).Msg("applied migration")
	}

	return nil
}
