package utils

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/types"
)

// ErrorBody - единый формат ошибки для всех ответов API.
type ErrorBody struct {
	StatusCode int      `json:"statusCode"`
	Message    []string `json:"message"`
	Error      string   `json:"error"`
	Path       string   `json:"path"`
	Method     string   `json:"method"`
	Timestamp  string   `json:"timestamp"`
}

// SuccessOne отвечает конвертом {message, <key>: body}.
func SuccessOne(c echo.Context, code int, message, key string, body interface{}) error {
	return c.JSON(code, map[string]interface{}{
		"message": message,
		key:       body,
	})
}

// SuccessList отвечает конвертом {message, <key>, count, total, page, limit, totalPages}.
func SuccessList(c echo.Context, message, key string, items interface{}, count int, pagination types.Pagination) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    message,
		key:          items,
		"count":      count,
		"total":      pagination.Total,
		"page":       pagination.Page,
		"limit":      pagination.Limit,
		"totalPages": pagination.TotalPages,
	})
}

func SuccessMessage(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]interface{}{"message": message})
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	code, messages := describeError(err)

	if code >= http.StatusInternalServerError {
		logger.Error("Необработанная ошибка",
			zap.String("path", c.Request().URL.Path),
			zap.String("method", c.Request().Method),
			zap.Error(err),
		)
	} else {
		var httpErr *apperrors.HttpError
		if errors.As(err, &httpErr) && httpErr.Err != nil {
			logger.Warn("HTTP ошибка",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
	}

	return c.JSON(code, ErrorBody{
		StatusCode: code,
		Message:    messages,
		Error:      http.StatusText(code),
		Path:       c.Request().URL.Path,
		Method:     c.Request().Method,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// HTTPErrorHandler подключает ErrorResponse как обработчик ошибок echo, чтобы 404/405
// маршрутизатора и ошибки Bind уходили в том же формате.
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if respErr := ErrorResponse(c, err, logger); respErr != nil {
			logger.Error("не удалось отправить ответ с ошибкой", zap.Error(respErr))
		}
	}
}

func describeError(err error) (int, []string) {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if len(httpErr.Details) > 0 {
			return httpErr.Code, httpErr.Details
		}
		return httpErr.Code, []string{httpErr.Message}
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			msgs = append(msgs, fieldMessage(fe))
		}
		return http.StatusBadRequest, msgs
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code, []string{fmt.Sprint(echoErr.Message)}
	}

	code := apperrors.StatusCode(err)
	if code >= http.StatusInternalServerError {
		return code, []string{"Внутренняя ошибка сервера"}
	}
	return code, []string{err.Error()}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("поле '%s' обязательно", fe.Field())
	case "min":
		return fmt.Sprintf("поле '%s' должно быть не короче %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("поле '%s' должно быть не длиннее %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("поле '%s' должно быть одним из: %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("поле '%s' должно быть email-адресом", fe.Field())
	case "uuid", "uuid4":
		return fmt.Sprintf("поле '%s' должно быть UUID", fe.Field())
	}
	return fmt.Sprintf("поле '%s' не прошло проверку '%s'", fe.Field(), fe.Tag())
}
