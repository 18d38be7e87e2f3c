package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"hr-system/internal/repositories"
	apperrors "hr-system/pkg/errors"
)

type nameTakenFunc func(ctx context.Context, tx pgx.Tx, name string, exceptID *uuid.UUID) (bool, error)

// dictionaryFlow - общий порядок записи для ролей, отделов и должностей:
// проверка уникальности имени среди активных строк и запись в одной транзакции.
type dictionaryFlow[E any] struct {
	txManager repositories.TxManagerInterface
	nameTaken nameTakenFunc
	conflict  string // формат: "Отдел '%s' уже существует"
	notFound  string
}

func (f dictionaryFlow[E]) ensureFree(ctx context.Context, tx pgx.Tx, name string, exceptID *uuid.UUID) error {
	taken, err := f.nameTaken(ctx, tx, name, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewConflictError(fmt.Sprintf(f.conflict, strings.TrimSpace(name)))
	}
	return nil
}

func (f dictionaryFlow[E]) create(ctx context.Context, name string, insert func(tx pgx.Tx) (*E, error)) (*E, error) {
	var created *E
	err := f.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := f.ensureFree(ctx, tx, name, nil); err != nil {
			return err
		}
		var err error
		created, err = insert(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (f dictionaryFlow[E]) update(ctx context.Context, id uuid.UUID, patch repositories.DictionaryPatch, apply func(tx pgx.Tx, patch repositories.DictionaryPatch) (*E, error)) (*E, error) {
	var updated *E
	err := f.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if patch.Name != nil {
			if err := f.ensureFree(ctx, tx, *patch.Name, &id); err != nil {
				return err
			}
		}
		var err error
		updated, err = apply(tx, patch)
		return err
	})
	if err != nil {
		return nil, notFoundAs(err, f.notFound)
	}
	return updated, nil
}

// remove вызывает guard перед удалением в той же транзакции. guard может быть nil.
func (f dictionaryFlow[E]) remove(ctx context.Context, guard, del func(tx pgx.Tx) error) error {
	err := f.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if guard != nil {
			if err := guard(tx); err != nil {
				return err
			}
		}
		return del(tx)
	})
	return notFoundAs(err, f.notFound)
}
