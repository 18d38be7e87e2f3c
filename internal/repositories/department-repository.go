package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hr-system/internal/entities"
	"hr-system/pkg/types"
)

const (
	departmentTable     = "departments"
	userDepartmentTable = "user_departments"
)

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error)
	FindDepartment(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Department, error)
	NameTaken(ctx context.Context, tx pgx.Tx, name string, exceptID *uuid.UUID) (bool, error)
	CreateDepartment(ctx context.Context, tx pgx.Tx, department entities.Department) (*entities.Department, error)
	UpdateDepartment(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch DictionaryPatch) (*entities.Department, error)
	DeleteDepartment(ctx context.Context, tx pgx.Tx, id uuid.UUID) error

	ListByUserIDs(ctx context.Context, tx pgx.Tx, userIDs []uuid.UUID) (map[uuid.UUID][]entities.Department, error)
	ReplaceUserDepartments(ctx context.Context, tx pgx.Tx, userID uuid.UUID, departmentIDs []uuid.UUID) error
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
	store   *dictionaryStore
	logger  *zap.Logger
	now     func() time.Time
}

func NewDepartmentRepository(storage *pgxpool.Pool, logger *zap.Logger) DepartmentRepositoryInterface {
	return &DepartmentRepository{
		storage: storage,
		store:   newDictionaryStore(storage, departmentTable, "Отдел с таким названием уже существует", logger),
		logger:  logger,
		now:     time.Now,
	}
}

func toDepartment(rec *dictionaryRecord, err error) (*entities.Department, error) {
	if err != nil {
		return nil, err
	}
	department := entities.Department(*rec)
	return &department, nil
}

func (r *DepartmentRepository) GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error) {
	records, total, err := r.store.list(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	departments := make([]entities.Department, len(records))
	for i, rec := range records {
		departments[i] = entities.Department(rec)
	}
	return departments, total, nil
}

func (r *DepartmentRepository) FindDepartment(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Department, error) {
	return toDepartment(r.store.findByID(ctx, tx, id))
}

func (r *DepartmentRepository) NameTaken(ctx context.Context, tx pgx.Tx, name string, exceptID *uuid.UUID) (bool, error) {
	return r.store.nameTaken(ctx, tx, name, exceptID)
}

func (r *DepartmentRepository) CreateDepartment(ctx context.Context, tx pgx.Tx, department entities.Department) (*entities.Department, error) {
	return toDepartment(r.store.create(ctx, tx, dictionaryRecord(department)))
}

func (r *DepartmentRepository) UpdateDepartment(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch DictionaryPatch) (*entities.Department, error) {
	return toDepartment(r.store.update(ctx, tx, id, patch))
}

func (r *DepartmentRepository) DeleteDepartment(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	return r.store.remove(ctx, tx, id)
}

// ListByUserIDs возвращает активные отделы пользователей одним запросом. Учитываются
// только активные связи.
func (r *DepartmentRepository) ListByUserIDs(ctx context.Context, tx pgx.Tx, userIDs []uuid.UUID) (map[uuid.UUID][]entities.Department, error) {
	result := make(map[uuid.UUID][]entities.Department, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	columns := append([]string{"ud.user_id"}, r.store.columns()...)
	builder := psql.Select(columns...).
		From(userDepartmentTable + " AS ud").
		Join(departmentTable + " AS t ON t.id = ud.department_id").
		Where(sq.Eq{"ud.user_id": userIDs, "ud.is_active": true, "t.is_active": true}).
		OrderBy("t.name ASC")

	rows, err := query(ctx, pick(r.storage, tx), builder)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения отделов пользователей: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID uuid.UUID
		rec, err := scanDictionary(prefixedRow{row: rows, head: []interface{}{&userID}})
		if err != nil {
			return nil, err
		}
		result[userID] = append(result[userID], entities.Department(*rec))
	}
	return result, rows.Err()
}

// ReplaceUserDepartments приводит связи пользователя к указанному набору: лишние
// связи мягко удаляются, недостающие добавляются.
func (r *DepartmentRepository) ReplaceUserDepartments(ctx context.Context, tx pgx.Tx, userID uuid.UUID, departmentIDs []uuid.UUID) error {
	q := pick(r.storage, tx)
	now := r.now().UTC()
	wanted := uniqueIDs(departmentIDs)

	isActive, deletedAt := types.Deleted(now).Columns()
	unlink := psql.Update(userDepartmentTable).
		Set("is_active", isActive).
		Set("deleted_at", deletedAt).
		Where(sq.Eq{"user_id": userID, "is_active": true})
	if len(wanted) > 0 {
		unlink = unlink.Where(sq.NotEq{"department_id": wanted})
	}
	if _, err := exec(ctx, q, unlink); err != nil {
		return fmt.Errorf("ошибка снятия связей с отделами: %w", err)
	}
	if len(wanted) == 0 {
		return nil
	}

	rows, err := query(ctx, q, psql.Select("department_id").From(userDepartmentTable).
		Where(sq.Eq{"user_id": userID, "is_active": true}))
	if err != nil {
		return err
	}
	linked := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		linked[id] = struct{}{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	insert := psql.Insert(userDepartmentTable).Columns("id", "user_id", "department_id", "is_active", "deleted_at", "created_at")
	added := 0
	activeFlag, noDeletedAt := types.Active().Columns()
	for _, departmentID := range wanted {
		if _, ok := linked[departmentID]; ok {
			continue
		}
		insert = insert.Values(uuid.New(), userID, departmentID, activeFlag, noDeletedAt, now)
		added++
	}
	if added == 0 {
		return nil
	}
	if _, err := exec(ctx, q, insert); err != nil {
		return mapPgError(err, "Пользователь уже привязан к отделу")
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
