package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hr-system/internal/entities"
	db "hr-system/internal/infrastructure/bd"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/types"
)

const (
	userTable    = "users"
	userConflict = "Пользователь с таким табельным номером или логином уже существует"
)

var userColumns = []string{
	"u.id", "u.user_number", "u.username", "u.password_hash", "u.first_name", "u.last_name",
	"u.email", "u.role_id", "u.title_id", "u.title", "u.is_active", "u.deleted_at", "u.created_at", "u.updated_at",
}

const userReturning = "RETURNING id, user_number, username, password_hash, first_name, last_name, email, role_id, title_id, title, is_active, deleted_at, created_at, updated_at"

var userListSchema = db.ListSchema{
	Fields: db.Schema{
		{Name: "user_number", Kind: db.KindExact, Column: "u.user_number"},
		{Name: "username", Kind: db.KindText, Column: "u.username"},
		{Name: "first_name", Kind: db.KindText, Column: "u.first_name"},
		{Name: "last_name", Kind: db.KindText, Column: "u.last_name"},
		{Name: "role_id", Kind: db.KindExact, Column: "u.role_id"},
		{Name: "title_id", Kind: db.KindExact, Column: "u.title_id"},
		{Name: "createdAt", Kind: db.KindDateRange, Column: "u.created_at"},
	},
	SearchColumns: []string{"u.user_number", "u.username", "u.first_name", "u.last_name", "u.email"},
	SortColumns: map[string]string{
		"user_number": "u.user_number",
		"first_name":  "u.first_name",
		"last_name":   "u.last_name",
		"createdAt":   "u.created_at",
		"updatedAt":   "u.updated_at",
	},
	DefaultSort: "createdAt",
}

// UUIDPatch - изменение nullable-ссылки: Set == false - не менять, Value == nil - очистить.
type UUIDPatch struct {
	Set   bool
	Value *uuid.UUID
}

type UserPatch struct {
	UserNumber   *string
	Username     types.OptionalString
	PasswordHash *string
	FirstName    *string
	LastName     *string
	Email        types.OptionalString
	RoleID       *uuid.UUID
	TitleID      UUIDPatch
	Title        types.OptionalString
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	UserNumberTaken(ctx context.Context, tx pgx.Tx, userNumber string, exceptID *uuid.UUID) (bool, error)
	UsernameTaken(ctx context.Context, tx pgx.Tx, username string, exceptID *uuid.UUID) (bool, error)
	CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (*entities.User, error)
	UpdateUser(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch UserPatch) (*entities.User, error)
	DeleteUser(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
	now     func() time.Time
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger, now: time.Now}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	var lc lifecycleScan
	dest := []interface{}{
		&user.ID, &user.UserNumber, &user.Username, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Email, &user.RoleID, &user.TitleID, &user.Title,
	}
	dest = append(dest, lc.targets()...)
	dest = append(dest, &user.CreatedAt, &user.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	user.Lifecycle = lc.lifecycle()
	user.CreatedAt, user.UpdatedAt = utc(user.CreatedAt), utc(user.UpdatedAt)
	return &user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	base := psql.Select().From(userTable + " AS u").Where(sq.Eq{"u.is_active": true})
	base, err := db.ApplyFilters(base, filter, userListSchema)
	if err != nil {
		return nil, 0, err
	}
	// Отдел проверяется через активные связи
	if departmentID := filter.Value("department_id"); departmentID != nil && departmentID != "" {
		base = base.Where(sq.Expr(
			"EXISTS (SELECT 1 FROM user_departments ud WHERE ud.user_id = u.id AND ud.department_id = ? AND ud.is_active)",
			departmentID,
		))
	}

	total, err := count(ctx, r.storage, base.Columns("COUNT(*)"))
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета пользователей: %w", mapPgError(err, userConflict))
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	rows, err := query(ctx, r.storage, db.ApplyOrderAndPage(base.Columns(userColumns...), filter, userListSchema))
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0, filter.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) findOne(ctx context.Context, q querier, where sq.Sqlizer) (*entities.User, error) {
	builder := psql.Select(userColumns...).From(userTable + " AS u").Where(where)
	row, err := queryRow(ctx, q, builder)
	if err != nil {
		return nil, err
	}
	user, err := scanUser(row)
	if err != nil {
		return nil, mapPgError(err, userConflict)
	}
	return user, nil
}

func (r *UserRepository) FindUser(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.User, error) {
	return r.findOne(ctx, pick(r.storage, tx), sq.Eq{"u.id": id, "u.is_active": true})
}

// FindByUsername ищет активного пользователя по логину без учёта регистра.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"lower(u.username)": strings.ToLower(strings.TrimSpace(username)), "u.is_active": true})
}

func (r *UserRepository) exists(ctx context.Context, q querier, where sq.Sqlizer, exceptID *uuid.UUID) (bool, error) {
	builder := psql.Select("1").From(userTable).Where(where).Where(sq.Eq{"is_active": true})
	if exceptID != nil {
		builder = builder.Where(sq.NotEq{"id": *exceptID})
	}
	sqlText, args, err := builder.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, err
	}
	var found bool
	if err := q.QueryRow(ctx, sqlText, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

func (r *UserRepository) UserNumberTaken(ctx context.Context, tx pgx.Tx, userNumber string, exceptID *uuid.UUID) (bool, error) {
	return r.exists(ctx, pick(r.storage, tx), sq.Eq{"user_number": strings.TrimSpace(userNumber)}, exceptID)
}

func (r *UserRepository) UsernameTaken(ctx context.Context, tx pgx.Tx, username string, exceptID *uuid.UUID) (bool, error) {
	return r.exists(ctx, pick(r.storage, tx), sq.Eq{"lower(username)": strings.ToLower(strings.TrimSpace(username))}, exceptID)
}

func (r *UserRepository) CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (*entities.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := r.now().UTC()
	isActive, deletedAt := types.Active().Columns()

	builder := psql.Insert(userTable).
		Columns("id", "user_number", "username", "password_hash", "first_name", "last_name", "email",
			"role_id", "title_id", "title", "is_active", "deleted_at", "created_at", "updated_at").
		Values(user.ID, strings.TrimSpace(user.UserNumber), user.Username, user.PasswordHash, user.FirstName, user.LastName,
			user.Email, user.RoleID, user.TitleID, user.Title, isActive, deletedAt, now, now).
		Suffix(userReturning)

	row, err := queryRow(ctx, pick(r.storage, tx), builder)
	if err != nil {
		return nil, err
	}
	created, err := scanUser(row)
	if err != nil {
		return nil, mapPgError(err, userConflict)
	}
	return created, nil
}

// UpdateUser меняет только активного пользователя; для удалённого вернёт ErrNotFound.
func (r *UserRepository) UpdateUser(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch UserPatch) (*entities.User, error) {
	builder := psql.Update(userTable).
		Set("updated_at", r.now().UTC()).
		Where(sq.Eq{"id": id, "is_active": true}).
		Suffix(userReturning)

	if patch.UserNumber != nil {
		builder = builder.Set("user_number", strings.TrimSpace(*patch.UserNumber))
	}
	if patch.Username.Set {
		builder = builder.Set("username", patch.Username.Value)
	}
	if patch.PasswordHash != nil {
		builder = builder.Set("password_hash", *patch.PasswordHash)
	}
	if patch.FirstName != nil {
		builder = builder.Set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		builder = builder.Set("last_name", *patch.LastName)
	}
	if patch.Email.Set {
		builder = builder.Set("email", patch.Email.Value)
	}
	if patch.RoleID != nil {
		builder = builder.Set("role_id", *patch.RoleID)
	}
	if patch.TitleID.Set {
		builder = builder.Set("title_id", patch.TitleID.Value)
	}
	if patch.Title.Set {
		builder = builder.Set("title", patch.Title.Value)
	}

	row, err := queryRow(ctx, pick(r.storage, tx), builder)
	if err != nil {
		return nil, err
	}
	updated, err := scanUser(row)
	if err != nil {
		return nil, mapPgError(err, userConflict)
	}
	return updated, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	err := softDelete(ctx, pick(r.storage, tx), userTable, id, r.now().UTC(), true)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		r.logger.Error("ошибка удаления пользователя", zap.String("id", id.String()), zap.Error(err))
	}
	return err
}
