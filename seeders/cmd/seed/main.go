package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"hr-system/pkg/config"
	"hr-system/pkg/database/migrations"
	"hr-system/pkg/database/postgresql"
	applogger "hr-system/pkg/logger"
	"hr-system/seeders"
)

func main() {
	runMigrate := flag.Bool("migrate", false, "Применить миграции перед наполнением")
	runDictionaries := flag.Bool("dictionaries", false, "Наполнить роли, должности и отделы")
	runAdmin := flag.Bool("admin", false, "Создать администратора из SEED_ADMIN_USERNAME / SEED_ADMIN_PASSWORD")
	runAll := flag.Bool("all", false, "Запустить всё (эквивалентно -migrate -dictionaries -admin)")
	flag.Parse()

	if !*runMigrate && !*runDictionaries && !*runAdmin && !*runAll {
		log.Println("Не выбран ни один сидер для запуска. Доступные флаги:")
		flag.PrintDefaults()
		log.Println("Пример: go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	logger, err := applogger.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("не удалось создать логгер: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if *runAll || *runMigrate {
		if err := migrations.Up(ctx, dbPool, logger); err != nil {
			logger.Fatal("не удалось применить миграции", zap.Error(err))
		}
	}
	if *runAll || *runDictionaries {
		if err := seeders.SeedDictionaries(ctx, dbPool, logger); err != nil {
			logger.Fatal("сидер справочников завершился ошибкой", zap.Error(err))
		}
	}
	// Администратор зависит от роли admin
	if *runAll || *runAdmin {
		if err := seeders.SeedAdmin(ctx, dbPool, cfg, logger); err != nil {
			logger.Fatal("сидер администратора завершился ошибкой", zap.Error(err))
		}
	}

	logger.Info("Все указанные операции сидирования завершены")
}
