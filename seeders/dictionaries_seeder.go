package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Уникальность имени держит частичный индекс по lower(name) среди активных строк,
// поэтому ON CONFLICT ссылается на то же выражение.
func seedDictionary(ctx context.Context, db *pgxpool.Pool, table string, items []dictionaryItem, logger *zap.Logger) error {
	logger.Info("Наполнение справочника", zap.String("table", table))

	query := fmt.Sprintf(
		`INSERT INTO %s (name, description) VALUES ($1, NULLIF($2, ''))
		 ON CONFLICT (lower(name)) WHERE is_active DO UPDATE SET description = EXCLUDED.description, updated_at = now()`,
		pgx.Identifier{table}.Sanitize(),
	)

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, item := range items {
		if _, err := tx.Exec(ctx, query, item.Name, item.Description); err != nil {
			return fmt.Errorf("%s %q: %w", table, item.Name, err)
		}
	}
	return tx.Commit(ctx)
}
