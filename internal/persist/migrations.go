package persist

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// journalSchema is the migration directory with the embed prefix stripped.
func journalSchema() (fs.FS, error) {
	return fs.Sub(migrations, "migrations")
}

// migrate applies pending journal migrations through a goose provider, which
// keeps no package-level state.
func (db *DB) migrate(ctx context.Context) error {
	schema, err := journalSchema()
	if err != nil {
		return fmt.Errorf("journal schema: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, schema)
	if err != nil {
		return fmt.Errorf("journal migrations: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run journal migrations: %w", err)
	}
	for _, r := range results {
		db.log.Info("journal migration applied",
			zap.Int64("version", r.Source.Version),
			zap.Duration("took", r.Duration),
		)
	}
	return nil
}
