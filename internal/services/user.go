package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/repositories"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/types"
	"hr-system/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uuid.UUID) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	userRepository       repositories.UserRepositoryInterface
	roleRepository       repositories.RoleRepositoryInterface
	titleRepository      repositories.TitleRepositoryInterface
	departmentRepository repositories.DepartmentRepositoryInterface
	phoneRepository      repositories.PhoneRepositoryInterface
	txManager            repositories.TxManagerInterface
	logger               *zap.Logger
}

func NewUserService(
	userRepository repositories.UserRepositoryInterface,
	roleRepository repositories.RoleRepositoryInterface,
	titleRepository repositories.TitleRepositoryInterface,
	departmentRepository repositories.DepartmentRepositoryInterface,
	phoneRepository repositories.PhoneRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepository:       userRepository,
		roleRepository:       roleRepository,
		titleRepository:      titleRepository,
		departmentRepository: departmentRepository,
		phoneRepository:      phoneRepository,
		txManager:            txManager,
		logger:               logger,
	}
}

// enrich подгружает роли, телефоны и отделы пачкой для всех пользователей.
func (s *UserService) enrich(ctx context.Context, tx pgx.Tx, users []entities.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	phones, err := s.phoneRepository.ListByUserIDs(ctx, tx, ids)
	if err != nil {
		return err
	}
	departments, err := s.departmentRepository.ListByUserIDs(ctx, tx, ids)
	if err != nil {
		return err
	}

	roles := make(map[uuid.UUID]*entities.Role)
	for i := range users {
		u := &users[i]
		role, ok := roles[u.RoleID]
		if !ok {
			role, err = s.roleRepository.FindRole(ctx, tx, u.RoleID)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			// Удалённая роль не показывается, но пользователь остаётся в выдаче
			roles[u.RoleID] = role
		}
		u.Role = role
		u.Phones = phones[u.ID]
		u.Departments = departments[u.ID]
	}
	return nil
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepository.GetUsers(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при получении списка пользователей", zap.Error(err))
		return nil, 0, listFailed("пользователей", err)
	}
	if err := s.enrich(ctx, nil, users); err != nil {
		s.logger.Error("Ошибка при загрузке связей пользователей", zap.Error(err))
		return nil, 0, listFailed("пользователей", err)
	}

	result := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		result = append(result, *userEntityToDTO(&users[i]))
	}
	return result, total, nil
}

func (s *UserService) findEnriched(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.User, error) {
	user, err := s.userRepository.FindUser(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	users := []entities.User{*user}
	if err := s.enrich(ctx, tx, users); err != nil {
		return nil, err
	}
	return &users[0], nil
}

func (s *UserService) FindUser(ctx context.Context, id uuid.UUID) (*dto.UserDTO, error) {
	user, err := s.findEnriched(ctx, nil, id)
	if err != nil {
		return nil, notFoundAs(err, "Пользователь не найден")
	}
	return userEntityToDTO(user), nil
}

func (s *UserService) checkUserNumber(ctx context.Context, tx pgx.Tx, userNumber string, exceptID *uuid.UUID) error {
	taken, err := s.userRepository.UserNumberTaken(ctx, tx, userNumber, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewConflictError(fmt.Sprintf("Табельный номер '%s' уже занят", userNumber))
	}
	return nil
}

func (s *UserService) checkUsername(ctx context.Context, tx pgx.Tx, username string, exceptID *uuid.UUID) error {
	taken, err := s.userRepository.UsernameTaken(ctx, tx, username, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewConflictError(fmt.Sprintf("Логин '%s' уже занят", username))
	}
	return nil
}

// checkRole требует активную роль; ссылка на удалённую или несуществующую роль - 400.
func (s *UserService) checkRole(ctx context.Context, tx pgx.Tx, roleID uuid.UUID) error {
	_, err := s.roleRepository.FindRole(ctx, tx, roleID)
	return missingReference(err, "Роль не найдена")
}

func (s *UserService) checkTitle(ctx context.Context, tx pgx.Tx, titleID uuid.UUID) (*entities.Title, error) {
	title, err := s.titleRepository.FindTitle(ctx, tx, titleID)
	if err != nil {
		return nil, missingReference(err, "Должность не найдена")
	}
	return title, nil
}

func (s *UserService) checkDepartments(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, err := s.departmentRepository.FindDepartment(ctx, tx, id); err != nil {
			return missingReference(err, fmt.Sprintf("Отдел %s не найден", id))
		}
	}
	return nil
}

// CreateUser создаёт пользователя, его телефоны и связи с отделами в одной транзакции.
func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	logger := s.logger.With(zap.String("user_number", payload.UserNumber))

	var created *entities.User
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.checkUserNumber(ctx, tx, payload.UserNumber, nil); err != nil {
			return err
		}
		if payload.Username.Valid {
			if err := s.checkUsername(ctx, tx, payload.Username.String, nil); err != nil {
				return err
			}
		}
		if err := s.checkRole(ctx, tx, payload.RoleID); err != nil {
			return err
		}

		user := entities.User{
			UserNumber: payload.UserNumber,
			Username:   trimNull(payload.Username),
			FirstName:  strings.TrimSpace(payload.FirstName),
			LastName:   strings.TrimSpace(payload.LastName),
			Email:      trimNull(payload.Email),
			RoleID:     payload.RoleID,
			TitleID:    payload.TitleID,
			Title:      payload.Title,
		}
		if payload.TitleID != nil {
			title, err := s.checkTitle(ctx, tx, *payload.TitleID)
			if err != nil {
				return err
			}
			if !user.Title.Valid {
				user.Title = null.StringFrom(title.Name)
			}
		}
		if payload.Password.Valid {
			hash, err := utils.HashPassword(payload.Password.String)
			if err != nil {
				return err
			}
			user.PasswordHash = null.StringFrom(hash)
		}
		if err := s.checkDepartments(ctx, tx, payload.DepartmentIDs); err != nil {
			return err
		}

		inserted, err := s.userRepository.CreateUser(ctx, tx, user)
		if err != nil {
			return err
		}
		if err := s.departmentRepository.ReplaceUserDepartments(ctx, tx, inserted.ID, payload.DepartmentIDs); err != nil {
			return err
		}
		if _, err := s.phoneRepository.CreatePhones(ctx, tx, userPhones(inserted.ID, payload.Phones)); err != nil {
			return err
		}

		created, err = s.findEnriched(ctx, tx, inserted.ID)
		return err
	})
	if err != nil {
		logger.Error("Ошибка при создании пользователя", zap.Error(err))
		return nil, err
	}

	logger.Info("Пользователь успешно создан", zap.String("id", created.ID.String()))
	return userEntityToDTO(created), nil
}

// userPhones оставляет основным только первый телефон, помеченный как основной.
func userPhones(userID uuid.UUID, payload []dto.CreateUserPhoneDTO) []entities.Phone {
	phones := make([]entities.Phone, 0, len(payload))
	hasPrimary := false
	for _, p := range payload {
		primary := p.IsPrimary && !hasPrimary
		hasPrimary = hasPrimary || primary
		phones = append(phones, entities.Phone{
			UserID:    userID,
			Number:    p.Number,
			PhoneType: p.PhoneType,
			IsPrimary: primary,
		})
	}
	return phones
}

func trimNull(s null.String) null.String {
	if !s.Valid {
		return s
	}
	trimmed := strings.TrimSpace(s.String)
	if trimmed == "" {
		return null.String{}
	}
	return null.StringFrom(trimmed)
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	logger := s.logger.With(zap.String("id", id.String()))

	patch := repositories.UserPatch{
		UserNumber: payload.UserNumber,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		RoleID:     payload.RoleID,
		Title:      payload.Title,
	}
	if payload.Username.Set {
		patch.Username = types.OptionalString{Set: true, Value: trimNull(payload.Username.Value)}
	}
	if payload.Email.Set {
		patch.Email = types.OptionalString{Set: true, Value: trimNull(payload.Email.Value)}
	}
	if payload.TitleID.Set {
		patch.TitleID.Set = true
		if payload.TitleID.Value.Valid {
			titleID, err := uuid.Parse(payload.TitleID.Value.String)
			if err != nil {
				return nil, apperrors.NewInvalidIDError(payload.TitleID.Value.String)
			}
			patch.TitleID.Value = &titleID
		}
	}

	var updated *entities.User
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.userRepository.FindUser(ctx, tx, id); err != nil {
			return err
		}
		if patch.UserNumber != nil {
			if err := s.checkUserNumber(ctx, tx, *patch.UserNumber, &id); err != nil {
				return err
			}
		}
		if patch.Username.Set && patch.Username.Value.Valid {
			if err := s.checkUsername(ctx, tx, patch.Username.Value.String, &id); err != nil {
				return err
			}
		}
		if patch.RoleID != nil {
			if err := s.checkRole(ctx, tx, *patch.RoleID); err != nil {
				return err
			}
		}
		if patch.TitleID.Value != nil {
			title, err := s.checkTitle(ctx, tx, *patch.TitleID.Value)
			if err != nil {
				return err
			}
			if !patch.Title.Set {
				patch.Title = types.OptionalStringFrom(title.Name)
			}
		}

		if _, err := s.userRepository.UpdateUser(ctx, tx, id, patch); err != nil {
			return err
		}
		if payload.DepartmentIDs != nil {
			if err := s.checkDepartments(ctx, tx, *payload.DepartmentIDs); err != nil {
				return err
			}
			if err := s.departmentRepository.ReplaceUserDepartments(ctx, tx, id, *payload.DepartmentIDs); err != nil {
				return err
			}
		}

		var err error
		updated, err = s.findEnriched(ctx, tx, id)
		return err
	})
	if err != nil {
		logger.Error("Ошибка при обновлении пользователя", zap.Error(err))
		return nil, notFoundAs(err, "Пользователь не найден")
	}

	logger.Info("Пользователь успешно обновлён")
	return userEntityToDTO(updated), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepository.DeleteUser(ctx, nil, id); err != nil {
		s.logger.Error("Ошибка при удалении пользователя", zap.String("id", id.String()), zap.Error(err))
		return notFoundAs(err, "Пользователь не найден")
	}
	s.logger.Info("Пользователь удалён", zap.String("id", id.String()))
	return nil
}
