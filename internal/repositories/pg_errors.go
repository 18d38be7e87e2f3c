package repositories

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "hr-system/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
)

// mapPgError переводит ошибки PostgreSQL в ошибки приложения. conflictMessage
// используется для нарушения уникальности.
func mapPgError(err error, conflictMessage string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return apperrors.NewHttpError(http.StatusConflict, conflictMessage, errors.Join(apperrors.ErrConflict, err), map[string]interface{}{
			"constraint": pgErr.ConstraintName,
		})
	case pgForeignKeyViolation:
		return apperrors.NewDataIntegrityError(errors.New(pgErr.Message + ": " + pgErr.Detail))
	case pgCheckViolation, pgInvalidText:
		return apperrors.NewValidationError("Некорректные данные", pgErr.Message)
	}
	return err
}
