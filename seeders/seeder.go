package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hr-system/pkg/config"
)

// SeedDictionaries наполняет роли, должности и отделы. Повторный запуск безопасен.
func SeedDictionaries(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	if err := seedDictionary(ctx, db, "roles", rolesData, logger); err != nil {
		return fmt.Errorf("ошибка наполнения ролей: %w", err)
	}
	if err := seedDictionary(ctx, db, "titles", titlesData, logger); err != nil {
		return fmt.Errorf("ошибка наполнения должностей: %w", err)
	}
	if err := seedDictionary(ctx, db, "departments", departmentsData, logger); err != nil {
		return fmt.Errorf("ошибка наполнения отделов: %w", err)
	}
	logger.Info("Наполнение справочников завершено")
	return nil
}

// SeedAdmin создаёт администратора из SEED_ADMIN_*, если его ещё нет.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) error {
	if err := seedAdmin(ctx, db, cfg.Seed, logger); err != nil {
		return fmt.Errorf("ошибка создания администратора: %w", err)
	}
	return nil
}
