package seeders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hr-system/internal/authz"
	"hr-system/pkg/config"
	"hr-system/pkg/utils"
)

const adminUserNumber = "ADM-0001"

func seedAdmin(ctx context.Context, db *pgxpool.Pool, cfg config.SeedConfig, logger *zap.Logger) error {
	logger.Info("Создание администратора", zap.String("username", cfg.AdminUsername))

	var exists bool
	err := db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE lower(username) = lower($1) AND is_active)",
		cfg.AdminUsername,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("Администратор уже существует, пропускаем")
		return nil
	}

	var roleID string
	err = db.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1 AND is_active", authz.RoleAdmin).Scan(&roleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("не найдена роль %q, сначала запустите -dictionaries", authz.RoleAdmin)
	}
	if err != nil {
		return err
	}

	hashedPassword, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (user_number, username, password_hash, first_name, last_name, role_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		adminUserNumber, cfg.AdminUsername, hashedPassword, "Администратор", "Системы", roleID,
	)
	return err
}
