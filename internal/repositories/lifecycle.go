package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/types"
)

var lifecycleColumns = []string{"is_active", "deleted_at"}

// lifecycleScan - приёмники для колонок is_active и deleted_at.
type lifecycleScan struct {
	isActive  bool
	deletedAt *time.Time
}

func (l *lifecycleScan) targets() []interface{} {
	return []interface{}{&l.isActive, &l.deletedAt}
}

func (l *lifecycleScan) lifecycle() types.Lifecycle {
	return types.LifecycleFromColumns(l.isActive, l.deletedAt)
}

// softDelete переводит активную запись в Deleted одним UPDATE. Если активной записи
// нет (в том числе уже удалённой), возвращает ErrNotFound.
func softDelete(ctx context.Context, q querier, table string, id uuid.UUID, at time.Time, touchUpdatedAt bool) error {
	isActive, deletedAt := types.Deleted(at).Columns()
	builder := psql.Update(table).
		Set("is_active", isActive).
		Set("deleted_at", deletedAt).
		Where(sq.Eq{"id": id, "is_active": true})
	if touchUpdatedAt {
		builder = builder.Set("updated_at", at)
	}

	tag, err := exec(ctx, q, builder)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func utc(t time.Time) time.Time { return t.UTC() }
