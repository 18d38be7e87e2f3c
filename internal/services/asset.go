package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/repositories"
	"hr-system/pkg/types"
)

type AssetServiceInterface interface {
	GetAssets(ctx context.Context, filter types.Filter) ([]dto.AssetDTO, uint64, error)
	FindAsset(ctx context.Context, id uuid.UUID, unscoped bool) (*dto.AssetDTO, error)
	CreateAsset(ctx context.Context, payload dto.CreateAssetDTO) (*dto.AssetDTO, error)
	UpdateAsset(ctx context.Context, id uuid.UUID, payload dto.UpdateAssetDTO) (*dto.AssetDTO, error)
	DeleteAsset(ctx context.Context, id uuid.UUID) error
}

type AssetService struct {
	assetRepository   repositories.AssetRepositoryInterface
	attachmentService AttachmentServiceInterface
	logger            *zap.Logger
}

func NewAssetService(
	assetRepository repositories.AssetRepositoryInterface,
	attachmentService AttachmentServiceInterface,
	logger *zap.Logger,
) AssetServiceInterface {
	return &AssetService{
		assetRepository:   assetRepository,
		attachmentService: attachmentService,
		logger:            logger,
	}
}

// GetAssets подкладывает вложения всей страницы одним запросом.
func (s *AssetService) GetAssets(ctx context.Context, filter types.Filter) ([]dto.AssetDTO, uint64, error) {
	assets, total, err := s.assetRepository.GetAssets(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при получении списка техники", zap.Error(err))
		return nil, 0, listFailed("технику", err)
	}

	ids := make([]uuid.UUID, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}
	attachments, err := s.attachmentService.FetchBatch(ctx, entities.OwnerAssets, ids)
	if err != nil {
		s.logger.Error("Ошибка при получении вложений техники", zap.Error(err))
		return nil, 0, listFailed("технику", err)
	}

	result := make([]dto.AssetDTO, 0, len(assets))
	for i := range assets {
		assets[i].Attachments = attachments[assets[i].ID]
		result = append(result, *assetEntityToDTO(&assets[i]))
	}
	return result, total, nil
}

// FindAsset с unscoped=true отдаёт и удалённую технику (для истории выдач).
func (s *AssetService) FindAsset(ctx context.Context, id uuid.UUID, unscoped bool) (*dto.AssetDTO, error) {
	var (
		asset *entities.Asset
		err   error
	)
	if unscoped {
		asset, err = s.assetRepository.FindAssetUnscoped(ctx, id)
	} else {
		asset, err = s.assetRepository.FindAsset(ctx, nil, id)
	}
	if err != nil {
		return nil, notFoundAs(err, "Техника не найдена")
	}

	attachments, err := s.attachmentService.FetchBatch(ctx, entities.OwnerAssets, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	asset.Attachments = attachments[id]
	return assetEntityToDTO(asset), nil
}

func (s *AssetService) CreateAsset(ctx context.Context, payload dto.CreateAssetDTO) (*dto.AssetDTO, error) {
	created, err := s.assetRepository.CreateAsset(ctx, nil, entities.Asset{
		Name:           payload.Name,
		AssetType:      payload.AssetType,
		SerialNumber:   trimNull(payload.SerialNumber),
		Description:    payload.Description,
		LaptopBrand:    payload.LaptopBrand,
		LaptopModel:    payload.LaptopModel,
		LaptopCPU:      payload.LaptopCPU,
		LaptopRAM:      payload.LaptopRAM,
		LaptopStorage:  payload.LaptopStorage,
		MobileBrand:    payload.MobileBrand,
		MobileModel:    payload.MobileModel,
		MobileIMEI:     payload.MobileIMEI,
		PhoneNumber:    payload.PhoneNumber,
		PhoneExtension: payload.PhoneExtension,
	})
	if err != nil {
		s.logger.Error("Ошибка при создании техники", zap.String("name", payload.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Техника добавлена", zap.String("id", created.ID.String()), zap.String("asset_type", created.AssetType))
	return assetEntityToDTO(created), nil
}

func (s *AssetService) UpdateAsset(ctx context.Context, id uuid.UUID, payload dto.UpdateAssetDTO) (*dto.AssetDTO, error) {
	patch := repositories.AssetPatch{
		Name:      payload.Name,
		AssetType: payload.AssetType,
		Optional: map[string]types.OptionalString{
			"serial_number":   payload.SerialNumber,
			"description":     payload.Description,
			"laptop_brand":    payload.LaptopBrand,
			"laptop_model":    payload.LaptopModel,
			"laptop_cpu":      payload.LaptopCPU,
			"laptop_ram":      payload.LaptopRAM,
			"laptop_storage":  payload.LaptopStorage,
			"mobile_brand":    payload.MobileBrand,
			"mobile_model":    payload.MobileModel,
			"mobile_imei":     payload.MobileIMEI,
			"phone_number":    payload.PhoneNumber,
			"phone_extension": payload.PhoneExtension,
		},
	}

	updated, err := s.assetRepository.UpdateAsset(ctx, nil, id, patch)
	if err != nil {
		s.logger.Error("Ошибка при обновлении техники", zap.String("id", id.String()), zap.Error(err))
		return nil, notFoundAs(err, "Техника не найдена")
	}

	attachments, err := s.attachmentService.FetchBatch(ctx, entities.OwnerAssets, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	updated.Attachments = attachments[id]
	return assetEntityToDTO(updated), nil
}

// DeleteAsset не закрывает выдачи: история продолжает ссылаться на удалённую технику.
func (s *AssetService) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	if err := s.assetRepository.DeleteAsset(ctx, nil, id); err != nil {
		return notFoundAs(err, "Техника не найдена")
	}
	s.logger.Info("Техника удалена", zap.String("id", id.String()))
	return nil
}
