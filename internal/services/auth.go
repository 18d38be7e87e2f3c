package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hr-system/internal/authz"
	"hr-system/internal/dto"
	"hr-system/internal/repositories"
	"hr-system/pkg/config"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/service"
	"hr-system/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID uuid.UUID) (*dto.MeDTO, error)
}

type AuthService struct {
	userRepo    repositories.UserRepositoryInterface
	roleRepo    repositories.RoleRepositoryInterface
	userService UserServiceInterface
	cacheRepo   repositories.CacheRepositoryInterface
	jwtService  service.JWTService
	gatekeeper  *authz.Gatekeeper
	cfg         config.AuthConfig
	logger      *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	roleRepo repositories.RoleRepositoryInterface,
	userService UserServiceInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	gatekeeper *authz.Gatekeeper,
	cfg config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		userService: userService,
		cacheRepo:   cacheRepo,
		jwtService:  jwtService,
		gatekeeper:  gatekeeper,
		cfg:         cfg,
		logger:      logger,
	}
}

func loginAttemptsKey(username string) string {
	return fmt.Sprintf("login_attempts:%s", strings.ToLower(username))
}

func refreshKey(jti string) string {
	return fmt.Sprintf("refresh:%s", jti)
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error) {
	role, err := s.roleRepo.FindByName(ctx, nil, s.cfg.DefaultRoleName)
	if err != nil {
		s.logger.Error("Роль по умолчанию не найдена", zap.String("role", s.cfg.DefaultRoleName), zap.Error(err))
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Роль по умолчанию не настроена", err, nil)
	}

	email := null.String{}
	if payload.Email != "" {
		email = null.StringFrom(payload.Email)
	}
	user, err := s.userService.CreateUser(ctx, dto.CreateUserDTO{
		UserNumber: payload.UserNumber,
		Username:   null.StringFrom(payload.Username),
		Password:   null.StringFrom(payload.Password),
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Email:      email,
		RoleID:     role.ID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Пользователь зарегистрирован", zap.String("user_id", user.ID.String()))
	return s.issue(ctx, *user, role.Name)
}

// Login блокирует вход на LockoutDuration после MaxLoginAttempts неудач подряд.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	logger := s.logger.With(zap.String("username", payload.Username))
	attemptsKey := loginAttemptsKey(payload.Username)

	attemptsStr, err := s.cacheRepo.Get(ctx, attemptsKey)
	if err != nil && !errors.Is(err, repositories.ErrCacheMiss) {
		logger.Error("Не удалось прочитать счётчик попыток входа", zap.Error(err))
		return nil, err
	}
	if attempts, _ := strconv.Atoi(attemptsStr); s.cfg.MaxLoginAttempts > 0 && attempts >= s.cfg.MaxLoginAttempts {
		logger.Warn("Вход заблокирован: превышено число попыток", zap.Int("attempts", attempts))
		return nil, apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Слишком много попыток. Попробуйте через %.0f минут.", s.cfg.LockoutDuration.Minutes()),
			apperrors.ErrTooManyAttempts,
			nil,
		)
	}

	user, err := s.userRepo.FindByUsername(ctx, payload.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Ошибка при поиске пользователя", zap.Error(err))
		return nil, err
	}
	if err != nil || !user.PasswordHash.Valid || utils.ComparePasswords(user.PasswordHash.String, payload.Password) != nil {
		s.registerFailure(ctx, logger, attemptsKey)
		return nil, apperrors.NewHttpError(http.StatusUnauthorized, "Неверный логин или пароль", apperrors.ErrInvalidCredentials, nil)
	}

	if err := s.cacheRepo.Del(ctx, attemptsKey); err != nil {
		logger.Warn("Не удалось сбросить счётчик попыток входа", zap.Error(err))
	}

	role, err := s.roleRepo.FindRole(ctx, nil, user.RoleID)
	if err != nil {
		logger.Warn("Роль пользователя не найдена", zap.Error(err))
		return nil, apperrors.NewHttpError(http.StatusForbidden, "Роль пользователя недоступна", apperrors.ErrForbidden, nil)
	}

	profile, err := s.userService.FindUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	logger.Info("Успешный вход", zap.String("user_id", user.ID.String()))
	return s.issue(ctx, *profile, role.Name)
}

func (s *AuthService) registerFailure(ctx context.Context, logger *zap.Logger, key string) {
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		logger.Error("Не удалось увеличить счётчик попыток входа", zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration); err != nil {
			logger.Error("Не удалось выставить TTL счётчика попыток", zap.Error(err))
		}
	}
	logger.Warn("Неудачная попытка входа", zap.Int64("attempts", attempts))
}

// Refresh ротирует refresh-токен: старый jti удаляется, повторное использование даёт 401.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	key := refreshKey(claims.ID)
	owner, err := s.cacheRepo.Get(ctx, key)
	if errors.Is(err, repositories.ErrCacheMiss) || (err == nil && owner != claims.UserID.String()) {
		s.logger.Warn("Повторное использование refresh-токена", zap.String("user_id", claims.UserID.String()))
		return nil, apperrors.ErrTokenRevoked
	}
	if err != nil {
		return nil, err
	}
	if err := s.cacheRepo.Del(ctx, key); err != nil {
		return nil, err
	}

	user, err := s.userService.FindUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	roleName := claims.Role
	if user.Role != nil {
		roleName = user.Role.Name
	}
	return s.issue(ctx, *user, roleName)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return err
	}
	if !claims.IsRefreshToken {
		return apperrors.ErrTokenIsNotRefresh
	}
	return s.cacheRepo.Del(ctx, refreshKey(claims.ID))
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.MeDTO, error) {
	user, err := s.userService.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	permissions := []string{}
	if user.Role != nil {
		permissions = s.gatekeeper.Permissions(user.Role.Name)
	}
	return &dto.MeDTO{User: *user, Permissions: permissions}, nil
}

func (s *AuthService) issue(ctx context.Context, user dto.UserDTO, roleName string) (*dto.AuthResponseDTO, error) {
	tokens, err := s.jwtService.GenerateTokens(user.ID, roleName)
	if err != nil {
		s.logger.Error("Не удалось выпустить токены", zap.Error(err))
		return nil, err
	}
	if err := s.cacheRepo.Set(ctx, refreshKey(tokens.RefreshID), user.ID.String(), s.jwtService.GetRefreshTokenTTL()); err != nil {
		s.logger.Error("Не удалось сохранить refresh-токен", zap.Error(err))
		return nil, err
	}
	return &dto.AuthResponseDTO{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}
