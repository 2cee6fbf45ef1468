package connection

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"salescrm/logs"
	"salescrm/repository"
)

func PGConnection(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("environment variable DATABASE_URL is not set")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := repository.NewPostgresStore(db).Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logs.Log.Info("Postgres connection successful")
	return db, nil
}
