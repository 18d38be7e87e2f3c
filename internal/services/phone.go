package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/repositories"
	"hr-system/pkg/types"
)

type PhoneServiceInterface interface {
	GetPhones(ctx context.Context, filter types.Filter) ([]dto.PhoneDTO, uint64, error)
	FindPhone(ctx context.Context, id uuid.UUID) (*dto.PhoneDTO, error)
	CreatePhone(ctx context.Context, payload dto.CreatePhoneDTO) (*dto.PhoneDTO, error)
	UpdatePhone(ctx context.Context, id uuid.UUID, payload dto.UpdatePhoneDTO) (*dto.PhoneDTO, error)
	DeletePhone(ctx context.Context, id uuid.UUID) error
}

type PhoneService struct {
	phoneRepository repositories.PhoneRepositoryInterface
	userRepository  repositories.UserRepositoryInterface
	txManager       repositories.TxManagerInterface
	logger          *zap.Logger
}

func NewPhoneService(
	phoneRepository repositories.PhoneRepositoryInterface,
	userRepository repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) PhoneServiceInterface {
	return &PhoneService{
		phoneRepository: phoneRepository,
		userRepository:  userRepository,
		txManager:       txManager,
		logger:          logger,
	}
}

func (s *PhoneService) GetPhones(ctx context.Context, filter types.Filter) ([]dto.PhoneDTO, uint64, error) {
	phones, total, err := s.phoneRepository.GetPhones(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при получении списка телефонов", zap.Error(err))
		return nil, 0, listFailed("телефоны", err)
	}
	result := make([]dto.PhoneDTO, 0, len(phones))
	for i := range phones {
		result = append(result, phoneEntityToDTO(&phones[i]))
	}
	return result, total, nil
}

func (s *PhoneService) FindPhone(ctx context.Context, id uuid.UUID) (*dto.PhoneDTO, error) {
	phone, err := s.phoneRepository.FindPhone(ctx, nil, id)
	if err != nil {
		return nil, notFoundAs(err, "Телефон не найден")
	}
	result := phoneEntityToDTO(phone)
	return &result, nil
}

// CreatePhone: новый основной телефон снимает признак основного с остальных.
func (s *PhoneService) CreatePhone(ctx context.Context, payload dto.CreatePhoneDTO) (*dto.PhoneDTO, error) {
	var created *entities.Phone
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.userRepository.FindUser(ctx, tx, payload.UserID); err != nil {
			return missingReference(err, "Пользователь не найден")
		}
		phones, err := s.phoneRepository.CreatePhones(ctx, tx, []entities.Phone{{
			UserID:    payload.UserID,
			Number:    payload.Number,
			PhoneType: payload.PhoneType,
			IsPrimary: payload.IsPrimary,
		}})
		if err != nil {
			return err
		}
		created = &phones[0]
		if created.IsPrimary {
			return s.phoneRepository.ClearPrimary(ctx, tx, created.UserID, created.ID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Ошибка при создании телефона", zap.String("user_id", payload.UserID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Телефон добавлен", zap.String("id", created.ID.String()))
	result := phoneEntityToDTO(created)
	return &result, nil
}

func (s *PhoneService) UpdatePhone(ctx context.Context, id uuid.UUID, payload dto.UpdatePhoneDTO) (*dto.PhoneDTO, error) {
	var updated *entities.Phone
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if payload.UserID != nil {
			if _, err := s.userRepository.FindUser(ctx, tx, *payload.UserID); err != nil {
				return missingReference(err, "Пользователь не найден")
			}
		}
		var err error
		updated, err = s.phoneRepository.UpdatePhone(ctx, tx, id, repositories.PhonePatch{
			UserID:    payload.UserID,
			Number:    payload.Number,
			PhoneType: payload.PhoneType,
			IsPrimary: payload.IsPrimary,
		})
		if err != nil {
			return err
		}
		if updated.IsPrimary {
			return s.phoneRepository.ClearPrimary(ctx, tx, updated.UserID, updated.ID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Ошибка при обновлении телефона", zap.String("id", id.String()), zap.Error(err))
		return nil, notFoundAs(err, "Телефон не найден")
	}

	result := phoneEntityToDTO(updated)
	return &result, nil
}

func (s *PhoneService) DeletePhone(ctx context.Context, id uuid.UUID) error {
	if err := s.phoneRepository.DeletePhone(ctx, nil, id); err != nil {
		return notFoundAs(err, "Телефон не найден")
	}
	s.logger.Info("Телефон удалён", zap.String("id", id.String()))
	return nil
}
