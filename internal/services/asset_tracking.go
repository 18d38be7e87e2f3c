package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/events"
	"hr-system/internal/repositories"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/eventbus"
	"hr-system/pkg/types"
)

// EventPublisher - то, что сервисы ждут от шины событий.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type AssetTrackingServiceInterface interface {
	GetAssetTrackings(ctx context.Context, filter types.Filter) ([]dto.AssetTrackingDTO, uint64, error)
	FindAssetTracking(ctx context.Context, id uuid.UUID) (*dto.AssetTrackingDTO, error)
	CreateAssetTracking(ctx context.Context, payload dto.CreateAssetTrackingDTO) (*dto.AssetTrackingDTO, error)
	UpdateAssetTracking(ctx context.Context, id uuid.UUID, payload dto.UpdateAssetTrackingDTO) (*dto.AssetTrackingDTO, error)
	DeleteAssetTracking(ctx context.Context, id uuid.UUID) error
}

type AssetTrackingService struct {
	trackingRepository repositories.AssetTrackingRepositoryInterface
	txManager          repositories.TxManagerInterface
	publisher          EventPublisher
	logger             *zap.Logger
	now                func() time.Time
}

func NewAssetTrackingService(
	trackingRepository repositories.AssetTrackingRepositoryInterface,
	txManager repositories.TxManagerInterface,
	publisher EventPublisher,
	logger *zap.Logger,
) AssetTrackingServiceInterface {
	return &AssetTrackingService{
		trackingRepository: trackingRepository,
		txManager:          txManager,
		publisher:          publisher,
		logger:             logger,
		now:                time.Now,
	}
}

func (s *AssetTrackingService) GetAssetTrackings(ctx context.Context, filter types.Filter) ([]dto.AssetTrackingDTO, uint64, error) {
	items, total, err := s.trackingRepository.GetAssetTrackings(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при получении выдач техники", zap.Error(err))
		return nil, 0, listFailed("выдачи техники", err)
	}
	result := make([]dto.AssetTrackingDTO, 0, len(items))
	for i := range items {
		result = append(result, *assetTrackingEntityToDTO(&items[i]))
	}
	return result, total, nil
}

func (s *AssetTrackingService) FindAssetTracking(ctx context.Context, id uuid.UUID) (*dto.AssetTrackingDTO, error) {
	item, err := s.trackingRepository.FindAssetTracking(ctx, nil, id)
	if err != nil {
		return nil, notFoundAs(err, "Запись о выдаче не найдена")
	}
	return assetTrackingEntityToDTO(item), nil
}

// CreateAssetTracking: пропущенный assigned_at - текущее время, явный null - 400.
// Занятость техники другой открытой выдачей не проверяется.
func (s *AssetTrackingService) CreateAssetTracking(ctx context.Context, payload dto.CreateAssetTrackingDTO) (*dto.AssetTrackingDTO, error) {
	if payload.AssignedAt.IsNull() {
		return nil, apperrors.NewValidationError("Некорректные данные", "поле 'assigned_at' не может быть пустым")
	}
	tracking := entities.AssetTracking{
		AssetID:    payload.AssetID,
		UserID:     payload.UserID,
		AssignedAt: s.now().UTC(),
		RemovedAt:  payload.RemovedAt.Value,
		Notes:      payload.Notes,
	}
	if payload.AssignedAt.Value.Valid {
		tracking.AssignedAt = payload.AssignedAt.Value.Time.UTC()
	}
	if err := checkInterval(tracking.AssignedAt, tracking.RemovedAt.Ptr()); err != nil {
		return nil, err
	}

	created, err := s.trackingRepository.CreateAssetTracking(ctx, nil, tracking)
	if err != nil {
		s.logger.Error("Ошибка при выдаче техники",
			zap.String("asset_id", payload.AssetID.String()),
			zap.String("user_id", payload.UserID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Техника выдана", zap.String("id", created.ID.String()))
	s.publisher.Publish(ctx, assignedEvent(created))
	if !created.IsOpen() {
		s.publisher.Publish(ctx, releasedEvent(created))
	}
	return assetTrackingEntityToDTO(created), nil
}

func (s *AssetTrackingService) UpdateAssetTracking(ctx context.Context, id uuid.UUID, payload dto.UpdateAssetTrackingDTO) (*dto.AssetTrackingDTO, error) {
	if payload.AssignedAt.IsNull() {
		return nil, apperrors.NewValidationError("Некорректные данные", "поле 'assigned_at' не может быть пустым")
	}
	patch := repositories.AssetTrackingPatch{
		AssetID:   payload.AssetID,
		UserID:    payload.UserID,
		RemovedAt: payload.RemovedAt,
		Notes:     payload.Notes,
	}
	if payload.AssignedAt.Set {
		patch.AssignedAt = payload.AssignedAt.Ptr()
	}

	var before, after *entities.AssetTracking
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		before, err = s.trackingRepository.FindAssetTracking(ctx, tx, id)
		if err != nil {
			return err
		}

		assignedAt := before.AssignedAt
		if patch.AssignedAt != nil {
			assignedAt = *patch.AssignedAt
		}
		removedAt := before.RemovedAt.Ptr()
		if patch.RemovedAt.Set {
			removedAt = patch.RemovedAt.Ptr()
		}
		if err := checkInterval(assignedAt, removedAt); err != nil {
			return err
		}

		after, err = s.trackingRepository.UpdateAssetTracking(ctx, tx, id, patch)
		return err
	})
	if err != nil {
		s.logger.Error("Ошибка при обновлении выдачи техники", zap.String("id", id.String()), zap.Error(err))
		return nil, notFoundAs(err, "Запись о выдаче не найдена")
	}

	if before.IsOpen() && !after.IsOpen() {
		s.logger.Info("Техника возвращена", zap.String("id", id.String()))
		s.publisher.Publish(ctx, releasedEvent(after))
	}
	return assetTrackingEntityToDTO(after), nil
}

func (s *AssetTrackingService) DeleteAssetTracking(ctx context.Context, id uuid.UUID) error {
	if err := s.trackingRepository.DeleteAssetTracking(ctx, nil, id); err != nil {
		return notFoundAs(err, "Запись о выдаче не найдена")
	}
	s.logger.Info("Запись о выдаче удалена", zap.String("id", id.String()))
	return nil
}

// checkInterval: дата возврата не может быть раньше даты выдачи.
func checkInterval(assignedAt time.Time, removedAt *time.Time) error {
	if removedAt != nil && removedAt.Before(assignedAt) {
		return apperrors.NewValidationError("Некорректные данные", "поле 'removed_at' раньше 'assigned_at'")
	}
	return nil
}

func assetName(t *entities.AssetTracking) string {
	if t.Asset == nil {
		return ""
	}
	return t.Asset.Name
}

func assignedEvent(t *entities.AssetTracking) events.AssetAssignedEvent {
	return events.AssetAssignedEvent{
		TrackingID: t.ID,
		AssetID:    t.AssetID,
		AssetName:  assetName(t),
		UserID:     t.UserID,
		AssignedAt: t.AssignedAt,
	}
}

func releasedEvent(t *entities.AssetTracking) events.AssetReleasedEvent {
	return events.AssetReleasedEvent{
		TrackingID: t.ID,
		AssetID:    t.AssetID,
		AssetName:  assetName(t),
		UserID:     t.UserID,
		AssignedAt: t.AssignedAt,
		RemovedAt:  t.RemovedAt.Time,
	}
}
