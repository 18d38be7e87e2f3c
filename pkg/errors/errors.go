package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")
	ErrTokenRevoked         = fmt.Errorf("токен отозван")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")
	ErrTooManyAttempts    = fmt.Errorf("слишком много попыток входа")

	// Общие
	ErrNotFound      = fmt.Errorf("запись не найдена")
	ErrBadRequest    = fmt.Errorf("неверный запрос")
	ErrConflict      = fmt.Errorf("запись уже существует")
	ErrDataIntegrity = fmt.Errorf("нарушение целостности данных")
)

// HttpError несёт HTTP-код, сообщение для клиента и исходную ошибку для логов.
type HttpError struct {
	Code    int
	Message string
	Details []string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message, Err: ErrBadRequest}
}

// NewValidationError возвращает 400 со списком сообщений по полям.
func NewValidationError(message string, details ...string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message, Details: details, Err: ErrBadRequest}
}

func NewNotFoundError(message string) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func NewConflictError(message string) *HttpError {
	return &HttpError{Code: http.StatusConflict, Message: message, Err: ErrConflict}
}

// NewDataIntegrityError используется для висячих ссылок (FK). Текст исходной ошибки
// попадает в ответ.
func NewDataIntegrityError(cause error) *HttpError {
	details := []string{}
	if cause != nil {
		details = append(details, cause.Error())
	}
	return &HttpError{
		Code:    http.StatusBadRequest,
		Message: "Нарушение целостности данных",
		Details: details,
		Err:     fmt.Errorf("%w: %v", ErrDataIntegrity, cause),
	}
}

func NewInvalidIDError(raw string) *HttpError {
	if raw == "" {
		return NewBadRequestError("ID не указан")
	}
	return NewBadRequestError(fmt.Sprintf("Неверный формат ID: %s", raw))
}

// IsKind сообщает, является ли err ошибкой из pkg/errors (а не сырой ошибкой БД или сети).
func IsKind(err error) bool {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return true
	}
	for _, known := range []error{ErrNotFound, ErrConflict, ErrBadRequest, ErrDataIntegrity, ErrUnauthorized, ErrForbidden} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

// StatusCode сопоставляет ошибку с HTTP-кодом.
func StatusCode(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrDataIntegrity):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrEmptyAuthHeader),
		errors.Is(err, ErrInvalidAuthHeader),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrInvalidSigningMethod),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenIsNotAccess),
		errors.Is(err, ErrTokenIsNotRefresh),
		errors.Is(err, ErrTokenRevoked):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
