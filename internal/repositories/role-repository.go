package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hr-system/internal/entities"
	"hr-system/pkg/types"
)

const roleTable = "roles"

type RoleRepositoryInterface interface {
	GetRoles(ctx context.Context, filter types.Filter) ([]entities.Role, uint64, error)
	FindRole(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Role, error)
	FindByName(ctx context.Context, tx pgx.Tx, name string) (*entities.Role, error)
	NameTaken(ctx context.Context, tx pgx.Tx, name string, exceptID *uuid.UUID) (bool, error)
	CreateRole(ctx context.Context, tx pgx.Tx, role entities.Role) (*entities.Role, error)
	UpdateRole(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch DictionaryPatch) (*entities.Role, error)
	DeleteRole(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	CountActiveUsers(ctx context.Context, tx pgx.Tx, roleID uuid.UUID) (uint64, error)
}

type RoleRepository struct {
	storage *pgxpool.Pool
	store   *dictionaryStore
	logger  *zap.Logger
}

func NewRoleRepository(storage *pgxpool.Pool, logger *zap.Logger) RoleRepositoryInterface {
	return &RoleRepository{
		storage: storage,
		store:   newDictionaryStore(storage, roleTable, "Роль с таким названием уже существует", logger),
		logger:  logger,
	}
}

func toRole(rec *dictionaryRecord, err error) (*entities.Role, error) {
	if err != nil {
		return nil, err
	}
	role := entities.Role(*rec)
	return &role, nil
}

func (r *RoleRepository) GetRoles(ctx context.Context, filter types.Filter) ([]entities.Role, uint64, error) {
	records, total, err := r.store.list(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	roles := make([]entities.Role, len(records))
	for i, rec := range records {
		roles[i] = entities.Role(rec)
	}
	return roles, total, nil
}

func (r *RoleRepository) FindRole(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Role, error) {
	return toRole(r.store.findByID(ctx, tx, id))
}

func (r *RoleRepository) FindByName(ctx context.Context, tx pgx.Tx, name string) (*entities.Role, error) {
	return toRole(r.store.findByName(ctx, tx, name))
}

func (r *RoleRepository) NameTaken(ctx context.Context, tx pgx.Tx, name string, exceptID *uuid.UUID) (bool, error) {
	return r.store.nameTaken(ctx, tx, name, exceptID)
}

func (r *RoleRepository) CreateRole(ctx context.Context, tx pgx.Tx, role entities.Role) (*entities.Role, error) {
	return toRole(r.store.create(ctx, tx, dictionaryRecord(role)))
}

func (r *RoleRepository) UpdateRole(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch DictionaryPatch) (*entities.Role, error) {
	return toRole(r.store.update(ctx, tx, id, patch))
}

func (r *RoleRepository) DeleteRole(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	return r.store.remove(ctx, tx, id)
}

// CountActiveUsers - сколько активных пользователей ссылаются на роль.
func (r *RoleRepository) CountActiveUsers(ctx context.Context, tx pgx.Tx, roleID uuid.UUID) (uint64, error) {
	builder := psql.Select("COUNT(*)").From(userTable).Where(sq.Eq{"role_id": roleID, "is_active": true})
	return count(ctx, pick(r.storage, tx), builder)
}
