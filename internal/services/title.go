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

type TitleServiceInterface interface {
	GetTitles(ctx context.Context, filter types.Filter) ([]dto.TitleDTO, uint64, error)
	FindTitle(ctx context.Context, id uuid.UUID) (*dto.TitleDTO, error)
	CreateTitle(ctx context.Context, payload dto.CreateDictionaryDTO) (*dto.TitleDTO, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, payload dto.UpdateDictionaryDTO) (*dto.TitleDTO, error)
	DeleteTitle(ctx context.Context, id uuid.UUID) error
}

type TitleService struct {
	titleRepository repositories.TitleRepositoryInterface
	flow            dictionaryFlow[entities.Title]
	logger          *zap.Logger
}

func NewTitleService(titleRepository repositories.TitleRepositoryInterface, txManager repositories.TxManagerInterface, logger *zap.Logger) TitleServiceInterface {
	return &TitleService{
		titleRepository: titleRepository,
		flow: dictionaryFlow[entities.Title]{
			txManager: txManager,
			nameTaken: titleRepository.NameTaken,
			conflict:  "Должность '%s' уже существует",
			notFound:  "Должность не найдена",
		},
		logger: logger,
	}
}

func (s *TitleService) GetTitles(ctx context.Context, filter types.Filter) ([]dto.TitleDTO, uint64, error) {
	titles, total, err := s.titleRepository.GetTitles(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при получении списка должностей", zap.Error(err))
		return nil, 0, listFailed("должности", err)
	}
	result := make([]dto.TitleDTO, 0, len(titles))
	for i := range titles {
		result = append(result, *titleEntityToDTO(&titles[i]))
	}
	return result, total, nil
}

func (s *TitleService) FindTitle(ctx context.Context, id uuid.UUID) (*dto.TitleDTO, error) {
	title, err := s.titleRepository.FindTitle(ctx, nil, id)
	if err != nil {
		return nil, notFoundAs(err, s.flow.notFound)
	}
	return titleEntityToDTO(title), nil
}

func (s *TitleService) CreateTitle(ctx context.Context, payload dto.CreateDictionaryDTO) (*dto.TitleDTO, error) {
	created, err := s.flow.create(ctx, payload.Name, func(tx pgx.Tx) (*entities.Title, error) {
		return s.titleRepository.CreateTitle(ctx, tx, entities.Title{Name: payload.Name, Description: payload.Description})
	})
	if err != nil {
		s.logger.Error("Ошибка при создании должности", zap.String("name", payload.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Должность успешно создана", zap.String("id", created.ID.String()), zap.String("name", created.Name))
	return titleEntityToDTO(created), nil
}

func (s *TitleService) UpdateTitle(ctx context.Context, id uuid.UUID, payload dto.UpdateDictionaryDTO) (*dto.TitleDTO, error) {
	patch := repositories.DictionaryPatch{Name: payload.Name, Description: payload.Description}
	updated, err := s.flow.update(ctx, id, patch, func(tx pgx.Tx, patch repositories.DictionaryPatch) (*entities.Title, error) {
		return s.titleRepository.UpdateTitle(ctx, tx, id, patch)
	})
	if err != nil {
		s.logger.Error("Ошибка при обновлении должности", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Должность успешно обновлена", zap.String("id", id.String()))
	return titleEntityToDTO(updated), nil
}

// DeleteTitle не трогает пользователей: title_id у них остаётся, а текстовое поле
// title хранит название на момент назначения.
func (s *TitleService) DeleteTitle(ctx context.Context, id uuid.UUID) error {
	err := s.flow.remove(ctx, nil, func(tx pgx.Tx) error {
		return s.titleRepository.DeleteTitle(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("Ошибка при удалении должности", zap.String("id", id.String()), zap.Error(err))
		return err
	}
	s.logger.Info("Должность удалена", zap.String("id", id.String()))
	return nil
}
