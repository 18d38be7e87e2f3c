package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/repositories"
	apperrors "hr-system/pkg/errors"
)

const maxImportRows = 5000

var importAssetTypes = map[string]string{
	entities.AssetTypeLaptop: entities.AssetTypeLaptop,
	entities.AssetTypeMobile: entities.AssetTypeMobile,
	entities.AssetTypePhone:  entities.AssetTypePhone,
	"ноутбук":                entities.AssetTypeLaptop,
	"смартфон":               entities.AssetTypeMobile,
	"телефон":                entities.AssetTypePhone,
}

// Колонки узнаём по заголовкам выгрузки, поэтому выгруженный файл можно загрузить обратно.
type importColumns map[string]int

func (c importColumns) get(row []string, header string) string {
	idx, ok := c[strings.ToLower(header)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (c importColumns) optional(row []string, header string) null.String {
	if v := c.get(row, header); v != "" {
		return null.StringFrom(v)
	}
	return null.String{}
}

type AssetImportServiceInterface interface {
	ImportAssets(ctx context.Context, r io.Reader) (*dto.AssetImportResultDTO, error)
}

type AssetImportService struct {
	assetRepository repositories.AssetRepositoryInterface
	txManager       repositories.TxManagerInterface
	logger          *zap.Logger
}

func NewAssetImportService(
	assetRepository repositories.AssetRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) AssetImportServiceInterface {
	return &AssetImportService{
		assetRepository: assetRepository,
		txManager:       txManager,
		logger:          logger,
	}
}

// ImportAssets читает книгу целиком и пишет строки одной транзакцией.
// Любая ошибочная строка отклоняет весь файл.
func (s *AssetImportService) ImportAssets(ctx context.Context, r io.Reader) (*dto.AssetImportResultDTO, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Файл не является книгой Excel (.xlsx)", err, nil)
	}
	defer f.Close()

	rows, columns, headerRow := findImportHeader(f)
	if headerRow < 0 {
		return nil, apperrors.NewBadRequestError("Не найдена шапка таблицы: нужны колонки 'Название' и 'Тип'")
	}
	if len(rows)-headerRow-1 > maxImportRows {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Слишком много строк, максимум %d", maxImportRows))
	}

	var (
		assets  []entities.Asset
		details []string
		skipped int
	)
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		name := columns.get(row, "Название")
		if isSummaryRow(name) {
			skipped++
			continue
		}

		rawType := strings.ToLower(columns.get(row, "Тип"))
		assetType, ok := importAssetTypes[rawType]
		if !ok {
			details = append(details, fmt.Sprintf("строка %d: неизвестный тип техники %q", i+1, rawType))
			continue
		}

		assets = append(assets, entities.Asset{
			Name:           name,
			AssetType:      assetType,
			SerialNumber:   columns.optional(row, "Серийный номер"),
			Description:    columns.optional(row, "Описание"),
			LaptopBrand:    columns.optional(row, "Бренд ноутбука"),
			LaptopModel:    columns.optional(row, "Модель ноутбука"),
			LaptopCPU:      columns.optional(row, "Процессор"),
			LaptopRAM:      columns.optional(row, "ОЗУ"),
			LaptopStorage:  columns.optional(row, "Накопитель"),
			MobileBrand:    columns.optional(row, "Бренд телефона"),
			MobileModel:    columns.optional(row, "Модель телефона"),
			MobileIMEI:     columns.optional(row, "IMEI"),
			PhoneNumber:    columns.optional(row, "Номер"),
			PhoneExtension: columns.optional(row, "Добавочный"),
		})
	}

	if len(details) > 0 {
		s.logger.Warn("Импорт техники отклонён", zap.Int("errors", len(details)))
		return nil, apperrors.NewValidationError("Файл содержит ошибки", details...)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, asset := range assets {
			if _, err := s.assetRepository.CreateAsset(ctx, tx, asset); err != nil {
				return fmt.Errorf("техника %q: %w", asset.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Ошибка при импорте техники", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Импорт техники завершён", zap.Int("created", len(assets)), zap.Int("skipped", skipped))
	return &dto.AssetImportResultDTO{Created: len(assets), Skipped: skipped}, nil
}

func findImportHeader(f *excelize.File) ([][]string, importColumns, int) {
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for rIdx, row := range rows {
			columns := make(importColumns, len(row))
			for cIdx, cell := range row {
				columns[strings.ToLower(strings.TrimSpace(cell))] = cIdx
			}
			_, hasName := columns["название"]
			_, hasType := columns["тип"]
			if hasName && hasType {
				return rows, columns, rIdx
			}
		}
	}
	return nil, nil, -1
}

// Пустые строки и итоги в конце таблицы пропускаются.
func isSummaryRow(name string) bool {
	v := strings.ToLower(name)
	return v == "" || strings.HasPrefix(v, "итого") || strings.HasPrefix(v, "всего")
}
