package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/repositories"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/types"
)

type RoleServiceInterface interface {
	GetRoles(ctx context.Context, filter types.Filter) ([]dto.RoleDTO, uint64, error)
	FindRole(ctx context.Context, id uuid.UUID) (*dto.RoleDTO, error)
	CreateRole(ctx context.Context, payload dto.CreateDictionaryDTO) (*dto.RoleDTO, error)
	UpdateRole(ctx context.Context, id uuid.UUID, payload dto.UpdateDictionaryDTO) (*dto.RoleDTO, error)
	DeleteRole(ctx context.Context, id uuid.UUID) error
}

type RoleService struct {
	roleRepository repositories.RoleRepositoryInterface
	flow           dictionaryFlow[entities.Role]
	logger         *zap.Logger
}

func NewRoleService(roleRepository repositories.RoleRepositoryInterface, txManager repositories.TxManagerInterface, logger *zap.Logger) RoleServiceInterface {
	return &RoleService{
		roleRepository: roleRepository,
		flow: dictionaryFlow[entities.Role]{
			txManager: txManager,
			nameTaken: roleRepository.NameTaken,
			conflict:  "Роль '%s' уже существует",
			notFound:  "Роль не найдена",
		},
		logger: logger,
	}
}

func (s *RoleService) GetRoles(ctx context.Context, filter types.Filter) ([]dto.RoleDTO, uint64, error) {
	roles, total, err := s.roleRepository.GetRoles(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при получении списка ролей", zap.Error(err))
		return nil, 0, listFailed("роли", err)
	}
	result := make([]dto.RoleDTO, 0, len(roles))
	for i := range roles {
		result = append(result, *roleEntityToDTO(&roles[i]))
	}
	return result, total, nil
}

func (s *RoleService) FindRole(ctx context.Context, id uuid.UUID) (*dto.RoleDTO, error) {
	role, err := s.roleRepository.FindRole(ctx, nil, id)
	if err != nil {
		return nil, notFoundAs(err, s.flow.notFound)
	}
	return roleEntityToDTO(role), nil
}

func (s *RoleService) CreateRole(ctx context.Context, payload dto.CreateDictionaryDTO) (*dto.RoleDTO, error) {
	created, err := s.flow.create(ctx, payload.Name, func(tx pgx.Tx) (*entities.Role, error) {
		return s.roleRepository.CreateRole(ctx, tx, entities.Role{Name: payload.Name, Description: payload.Description})
	})
	if err != nil {
		s.logger.Error("Ошибка при создании роли", zap.String("name", payload.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Роль успешно создана", zap.String("id", created.ID.String()), zap.String("name", created.Name))
	return roleEntityToDTO(created), nil
}

func (s *RoleService) UpdateRole(ctx context.Context, id uuid.UUID, payload dto.UpdateDictionaryDTO) (*dto.RoleDTO, error) {
	patch := repositories.DictionaryPatch{Name: payload.Name, Description: payload.Description}
	updated, err := s.flow.update(ctx, id, patch, func(tx pgx.Tx, patch repositories.DictionaryPatch) (*entities.Role, error) {
		return s.roleRepository.UpdateRole(ctx, tx, id, patch)
	})
	if err != nil {
		s.logger.Error("Ошибка при обновлении роли", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Роль успешно обновлена", zap.String("id", id.String()))
	return roleEntityToDTO(updated), nil
}

// DeleteRole не даёт удалить роль, на которую ссылаются активные пользователи.
func (s *RoleService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	inUse := func(tx pgx.Tx) error {
		count, err := s.roleRepository.CountActiveUsers(ctx, tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.NewConflictError(fmt.Sprintf("Роль назначена %d пользователям", count))
		}
		return nil
	}
	err := s.flow.remove(ctx, inUse, func(tx pgx.Tx) error {
		return s.roleRepository.DeleteRole(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("Ошибка при удалении роли", zap.String("id", id.String()), zap.Error(err))
		return err
	}
	s.logger.Info("Роль удалена", zap.String("id", id.String()))
	return nil
}
