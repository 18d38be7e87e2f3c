package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/authz"
	"hr-system/internal/dto"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/service"
	"hr-system/pkg/utils"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, gatekeeper *authz.Gatekeeper, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		gatekeeper: gatekeeper,
		logger:     logger,
	}
}

// Auth проверяет Bearer access-токен и кладёт claims в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		ctx := utils.ContextWithClaims(c.Request().Context(), &dto.UserClaims{
			UserID: claims.UserID,
			Role:   claims.Role,
		})
		c.SetRequest(c.Request().WithContext(ctx))

		m.logger.Debug("AuthMiddleware: Пользователь аутентифицирован",
			zap.String("userID", claims.UserID.String()),
			zap.String("role", claims.Role),
		)
		return next(c)
	}
}

// RequirePermission пропускает запрос, только если роли из токена разрешено действие.
func (m *AuthMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := utils.GetClaimsFromContext(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if !m.gatekeeper.Can(claims.Role, permission) {
				m.logger.Warn("Доступ запрещён",
					zap.String("userID", claims.UserID.String()),
					zap.String("role", claims.Role),
					zap.String("permission", permission),
				)
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}

// Allowed используется контроллерами для точечных проверок (например unscoped-чтение).
func (m *AuthMiddleware) Allowed(c echo.Context, permission string) bool {
	claims, err := utils.GetClaimsFromContext(c.Request().Context())
	if err != nil {
		return false
	}
	return m.gatekeeper.Can(claims.Role, permission)
}
