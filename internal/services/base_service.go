package services

import (
	"errors"
	"net/http"

	apperrors "hr-system/pkg/errors"
)

// listFailed приводит сбой чтения списка к 400 "не удалось получить ...". Ошибки
// фильтра, уже ставшие 4xx, отдаются как есть.
func listFailed(what string, err error) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
		return err
	}
	return apperrors.NewHttpError(http.StatusBadRequest, "не удалось получить "+what, err, nil)
}

// notFoundAs подменяет текст для ErrNotFound, остальные ошибки не трогает.
func notFoundAs(err error, message string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		var httpErr *apperrors.HttpError
		if errors.As(err, &httpErr) {
			return err
		}
		return apperrors.NewHttpError(http.StatusNotFound, message, apperrors.ErrNotFound, nil)
	}
	return err
}

// missingReference - ссылка из тела запроса указывает на несуществующую запись.
func missingReference(err error, message string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewValidationError(message, message)
	}
	return err
}
