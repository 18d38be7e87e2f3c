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

type DepartmentServiceInterface interface {
	GetDepartments(ctx context.Context, filter types.Filter) ([]dto.DepartmentDTO, uint64, error)
	FindDepartment(ctx context.Context, id uuid.UUID) (*dto.DepartmentDTO, error)
	CreateDepartment(ctx context.Context, payload dto.CreateDictionaryDTO) (*dto.DepartmentDTO, error)
	UpdateDepartment(ctx context.Context, id uuid.UUID, payload dto.UpdateDictionaryDTO) (*dto.DepartmentDTO, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
}

type DepartmentService struct {
	departmentRepository repositories.DepartmentRepositoryInterface
	flow                 dictionaryFlow[entities.Department]
	logger               *zap.Logger
}

func NewDepartmentService(departmentRepository repositories.DepartmentRepositoryInterface, txManager repositories.TxManagerInterface, logger *zap.Logger) DepartmentServiceInterface {
	return &DepartmentService{
		departmentRepository: departmentRepository,
		flow: dictionaryFlow[entities.Department]{
			txManager: txManager,
			nameTaken: departmentRepository.NameTaken,
			conflict:  "Отдел '%s' уже существует",
			notFound:  "Отдел не найден",
		},
		logger: logger,
	}
}

func (s *DepartmentService) GetDepartments(ctx context.Context, filter types.Filter) ([]dto.DepartmentDTO, uint64, error) {
	departments, total, err := s.departmentRepository.GetDepartments(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при получении списка отделов", zap.Error(err))
		return nil, 0, listFailed("отделы", err)
	}
	result := make([]dto.DepartmentDTO, 0, len(departments))
	for i := range departments {
		result = append(result, *departmentEntityToDTO(&departments[i]))
	}
	return result, total, nil
}

func (s *DepartmentService) FindDepartment(ctx context.Context, id uuid.UUID) (*dto.DepartmentDTO, error) {
	department, err := s.departmentRepository.FindDepartment(ctx, nil, id)
	if err != nil {
		return nil, notFoundAs(err, s.flow.notFound)
	}
	return departmentEntityToDTO(department), nil
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, payload dto.CreateDictionaryDTO) (*dto.DepartmentDTO, error) {
	created, err := s.flow.create(ctx, payload.Name, func(tx pgx.Tx) (*entities.Department, error) {
		return s.departmentRepository.CreateDepartment(ctx, tx, entities.Department{Name: payload.Name, Description: payload.Description})
	})
	if err != nil {
		s.logger.Error("Ошибка при создании отдела", zap.String("name", payload.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Отдел успешно создан", zap.String("id", created.ID.String()), zap.String("name", created.Name))
	return departmentEntityToDTO(created), nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uuid.UUID, payload dto.UpdateDictionaryDTO) (*dto.DepartmentDTO, error) {
	patch := repositories.DictionaryPatch{Name: payload.Name, Description: payload.Description}
	updated, err := s.flow.update(ctx, id, patch, func(tx pgx.Tx, patch repositories.DictionaryPatch) (*entities.Department, error) {
		return s.departmentRepository.UpdateDepartment(ctx, tx, id, patch)
	})
	if err != nil {
		s.logger.Error("Ошибка при обновлении отдела", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Отдел успешно обновлён", zap.String("id", id.String()))
	return departmentEntityToDTO(updated), nil
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	err := s.flow.remove(ctx, nil, func(tx pgx.Tx) error {
		return s.departmentRepository.DeleteDepartment(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("Ошибка при удалении отдела", zap.String("id", id.String()), zap.Error(err))
		return err
	}
	s.logger.Info("Отдел удалён", zap.String("id", id.String()))
	return nil
}
