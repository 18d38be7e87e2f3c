package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	db "hr-system/internal/infrastructure/bd"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/types"
)

// dictionaryRecord совпадает по полям с entities.Role, entities.Department и
// entities.Title и приводится к ним прямым преобразованием типа.
type dictionaryRecord struct {
	ID          uuid.UUID
	Name        string
	Description null.String
	Lifecycle   types.Lifecycle

	types.BaseEntity
}

// DictionaryPatch - изменения справочной записи. Name == nil - не менять.
type DictionaryPatch struct {
	Name        *string
	Description types.OptionalString
}

// dictionaryStore - общий SQL для таблиц вида (name, description) с мягким удалением.
type dictionaryStore struct {
	storage  querier
	table    string
	alias    string
	conflict string
	logger   *zap.Logger
	now      func() time.Time
}

func newDictionaryStore(storage querier, table, conflict string, logger *zap.Logger) *dictionaryStore {
	return &dictionaryStore{
		storage:  storage,
		table:    table,
		alias:    "t",
		conflict: conflict,
		logger:   logger,
		now:      time.Now,
	}
}

var dictionaryListSchema = db.ListSchema{
	Fields: db.Schema{
		{Name: "name", Kind: db.KindText, Column: "t.name"},
		{Name: "createdAt", Kind: db.KindDateRange, Column: "t.created_at"},
		{Name: "updatedAt", Kind: db.KindDateRange, Column: "t.updated_at"},
	},
	SearchColumns: []string{"t.name", "t.description"},
	SortColumns: map[string]string{
		"name":      "t.name",
		"createdAt": "t.created_at",
		"updatedAt": "t.updated_at",
	},
	DefaultSort: "createdAt",
}

func (s *dictionaryStore) columns() []string {
	a := s.alias + "."
	return []string{a + "id", a + "name", a + "description", a + "is_active", a + "deleted_at", a + "created_at", a + "updated_at"}
}

func (s *dictionaryStore) from() string {
	return s.table + " AS " + s.alias
}

func scanDictionary(row pgx.Row) (*dictionaryRecord, error) {
	var rec dictionaryRecord
	var lc lifecycleScan
	dest := append([]interface{}{&rec.ID, &rec.Name, &rec.Description}, lc.targets()...)
	dest = append(dest, &rec.CreatedAt, &rec.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	rec.Lifecycle = lc.lifecycle()
	rec.CreatedAt, rec.UpdatedAt = utc(rec.CreatedAt), utc(rec.UpdatedAt)
	return &rec, nil
}

func (s *dictionaryStore) list(ctx context.Context, filter types.Filter) ([]dictionaryRecord, uint64, error) {
	base := psql.Select().From(s.from()).Where(sq.Eq{s.alias + ".is_active": true})
	base, err := db.ApplyFilters(base, filter, dictionaryListSchema)
	if err != nil {
		return nil, 0, err
	}

	total, err := count(ctx, s.storage, base.Columns("COUNT(*)"))
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта %s: %w", s.table, err)
	}
	if total == 0 {
		return []dictionaryRecord{}, 0, nil
	}

	rows, err := query(ctx, s.storage, db.ApplyOrderAndPage(base.Columns(s.columns()...), filter, dictionaryListSchema))
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выборки %s: %w", s.table, err)
	}
	defer rows.Close()

	records := make([]dictionaryRecord, 0, filter.Limit)
	for rows.Next() {
		rec, err := scanDictionary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования %s: %w", s.table, err)
		}
		records = append(records, *rec)
	}
	return records, total, rows.Err()
}

func (s *dictionaryStore) findByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*dictionaryRecord, error) {
	builder := psql.Select(s.columns()...).From(s.from()).
		Where(sq.Eq{s.alias + ".id": id, s.alias + ".is_active": true})
	row, err := queryRow(ctx, pick(s.storage, tx), builder)
	if err != nil {
		return nil, err
	}
	rec, err := scanDictionary(row)
	if err != nil {
		return nil, mapPgError(err, s.conflict)
	}
	return rec, nil
}

func (s *dictionaryStore) findByName(ctx context.Context, tx pgx.Tx, name string) (*dictionaryRecord, error) {
	builder := psql.Select(s.columns()...).From(s.from()).
		Where(sq.Eq{"lower(" + s.alias + ".name)": strings.ToLower(strings.TrimSpace(name)), s.alias + ".is_active": true})
	row, err := queryRow(ctx, pick(s.storage, tx), builder)
	if err != nil {
		return nil, err
	}
	rec, err := scanDictionary(row)
	if err != nil {
		return nil, mapPgError(err, s.conflict)
	}
	return rec, nil
}

// nameTaken проверяет имя среди активных записей без учёта регистра.
func (s *dictionaryStore) nameTaken(ctx context.Context, tx pgx.Tx, name string, exceptID *uuid.UUID) (bool, error) {
	builder := psql.Select("1").From(s.table).
		Where(sq.Eq{"lower(name)": strings.ToLower(strings.TrimSpace(name)), "is_active": true})
	if exceptID != nil {
		builder = builder.Where(sq.NotEq{"id": *exceptID})
	}
	sqlText, args, err := builder.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, err
	}
	var exists bool
	if err := pick(s.storage, tx).QueryRow(ctx, sqlText, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *dictionaryStore) create(ctx context.Context, tx pgx.Tx, rec dictionaryRecord) (*dictionaryRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := s.now().UTC()
	isActive, deletedAt := types.Active().Columns()

	builder := psql.Insert(s.table).
		Columns("id", "name", "description", "is_active", "deleted_at", "created_at", "updated_at").
		Values(rec.ID, strings.TrimSpace(rec.Name), rec.Description, isActive, deletedAt, now, now).
		Suffix("RETURNING id, name, description, is_active, deleted_at, created_at, updated_at")

	row, err := queryRow(ctx, pick(s.storage, tx), builder)
	if err != nil {
		return nil, err
	}
	created, err := scanDictionary(row)
	if err != nil {
		return nil, mapPgError(err, s.conflict)
	}
	return created, nil
}

// update меняет только активную запись; для удалённой возвращает ErrNotFound.
func (s *dictionaryStore) update(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch DictionaryPatch) (*dictionaryRecord, error) {
	builder := psql.Update(s.table).
		Set("updated_at", s.now().UTC()).
		Where(sq.Eq{"id": id, "is_active": true}).
		Suffix("RETURNING id, name, description, is_active, deleted_at, created_at, updated_at")
	if patch.Name != nil {
		builder = builder.Set("name", strings.TrimSpace(*patch.Name))
	}
	if patch.Description.Set {
		builder = builder.Set("description", patch.Description.Value)
	}

	row, err := queryRow(ctx, pick(s.storage, tx), builder)
	if err != nil {
		return nil, err
	}
	updated, err := scanDictionary(row)
	if err != nil {
		return nil, mapPgError(err, s.conflict)
	}
	return updated, nil
}

func (s *dictionaryStore) remove(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	err := softDelete(ctx, pick(s.storage, tx), s.table, id, s.now().UTC(), true)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Error("ошибка мягкого удаления", zap.String("table", s.table), zap.Error(err))
	}
	return err
}
