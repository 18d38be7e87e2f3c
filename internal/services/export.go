package services

import (
	"context"
	"fmt"
	"io"

	"github.com/aarondl/null/v8"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"hr-system/internal/entities"
	"hr-system/internal/repositories"
	"hr-system/pkg/types"
)

const exportDateFormat = "02.01.2006 15:04"

var assetExportHeaders = []interface{}{
	"ID", "Название", "Тип", "Серийный номер", "Описание",
	"Бренд ноутбука", "Модель ноутбука", "Процессор", "ОЗУ", "Накопитель",
	"Бренд телефона", "Модель телефона", "IMEI", "Номер", "Добавочный", "Создано",
}

var trackingExportHeaders = []interface{}{
	"ID", "Техника", "Серийный номер", "Табельный номер", "Сотрудник",
	"Выдано", "Возвращено", "Примечание",
}

type ExportServiceInterface interface {
	ExportAssets(ctx context.Context, filter types.Filter, w io.Writer) error
	ExportAssetTrackings(ctx context.Context, filter types.Filter, w io.Writer) error
}

type ExportService struct {
	assetRepository    repositories.AssetRepositoryInterface
	trackingRepository repositories.AssetTrackingRepositoryInterface
	logger             *zap.Logger
}

func NewExportService(
	assetRepository repositories.AssetRepositoryInterface,
	trackingRepository repositories.AssetTrackingRepositoryInterface,
	logger *zap.Logger,
) ExportServiceInterface {
	return &ExportService{
		assetRepository:    assetRepository,
		trackingRepository: trackingRepository,
		logger:             logger,
	}
}

// ExportAssets выгружает весь отфильтрованный список без пагинации.
func (s *ExportService) ExportAssets(ctx context.Context, filter types.Filter, w io.Writer) error {
	filter.WithPagination = false
	assets, _, err := s.assetRepository.GetAssets(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при выгрузке техники", zap.Error(err))
		return listFailed("технику", err)
	}

	rows := make([][]interface{}, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, []interface{}{
			a.ID.String(), a.Name, a.AssetType, cellString(a.SerialNumber), cellString(a.Description),
			cellString(a.LaptopBrand), cellString(a.LaptopModel), cellString(a.LaptopCPU),
			cellString(a.LaptopRAM), cellString(a.LaptopStorage),
			cellString(a.MobileBrand), cellString(a.MobileModel), cellString(a.MobileIMEI),
			cellString(a.PhoneNumber), cellString(a.PhoneExtension),
			a.CreatedAt.Format(exportDateFormat),
		})
	}
	return writeWorkbook(w, "Техника", assetExportHeaders, rows)
}

func (s *ExportService) ExportAssetTrackings(ctx context.Context, filter types.Filter, w io.Writer) error {
	filter.WithPagination = false
	trackings, _, err := s.trackingRepository.GetAssetTrackings(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при выгрузке выдач техники", zap.Error(err))
		return listFailed("выдачи техники", err)
	}

	rows := make([][]interface{}, 0, len(trackings))
	for i := range trackings {
		rows = append(rows, trackingRow(&trackings[i]))
	}
	return writeWorkbook(w, "Выдачи", trackingExportHeaders, rows)
}

func trackingRow(t *entities.AssetTracking) []interface{} {
	var assetName, serial, userNumber, fullName, removedAt string
	if t.Asset != nil {
		assetName = t.Asset.Name
		serial = cellString(t.Asset.SerialNumber)
	}
	if t.User != nil {
		userNumber = t.User.UserNumber
		fullName = t.User.FirstName + " " + t.User.LastName
	}
	if t.RemovedAt.Valid {
		removedAt = t.RemovedAt.Time.Format(exportDateFormat)
	}
	return []interface{}{
		t.ID.String(), assetName, serial, userNumber, fullName,
		t.AssignedAt.Format(exportDateFormat), removedAt, cellString(t.Notes),
	}
}

func cellString(s null.String) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

func writeWorkbook(w io.Writer, sheet string, headers []interface{}, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, style); err != nil {
		return err
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("строка %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 38); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "E", 25); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
