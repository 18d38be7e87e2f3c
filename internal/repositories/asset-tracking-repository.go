package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
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
	assetTrackingTable    = "asset_tracking"
	assetTrackingConflict = "Такая запись о выдаче уже существует"
	activeOnlyParam       = "activeOnly"
)

// Сводки техники и сотрудника читаются без фильтра is_active.
const assetTrackingFrom = assetTrackingTable + " AS tr " +
	"JOIN " + assetTable + " AS a ON a.id = tr.asset_id " +
	"JOIN " + userTable + " AS u ON u.id = tr.user_id"

var assetTrackingColumns = []string{
	"tr.id", "tr.asset_id", "tr.user_id", "tr.assigned_at", "tr.removed_at", "tr.notes",
	"tr.is_active", "tr.deleted_at", "tr.created_at", "tr.updated_at",
	"a.id", "a.name", "a.asset_type", "a.serial_number", "a.is_active",
	"u.id", "u.user_number", "u.first_name", "u.last_name", "u.is_active",
}

var assetTrackingListSchema = db.ListSchema{
	Fields: db.Schema{
		{Name: "asset_id", Kind: db.KindExact, Column: "tr.asset_id"},
		{Name: "user_id", Kind: db.KindExact, Column: "tr.user_id"},
		{Name: "assignedAt", Kind: db.KindDateRange, Column: "tr.assigned_at"},
		{Name: "removedAt", Kind: db.KindDateRange, Column: "tr.removed_at"},
		{Name: "createdAt", Kind: db.KindDateRange, Column: "tr.created_at"},
	},
	SearchColumns: []string{"a.name", "a.serial_number", "u.user_number", "u.first_name", "u.last_name", "tr.notes"},
	SortColumns: map[string]string{
		"assignedAt": "tr.assigned_at",
		"removedAt":  "tr.removed_at",
		"createdAt":  "tr.created_at",
		"updatedAt":  "tr.updated_at",
	},
	DefaultSort: "createdAt",
}

type AssetTrackingPatch struct {
	AssetID    *uuid.UUID
	UserID     *uuid.UUID
	AssignedAt *time.Time
	RemovedAt  types.OptionalTime
	Notes      types.OptionalString
}

type AssetTrackingRepositoryInterface interface {
	GetAssetTrackings(ctx context.Context, filter types.Filter) ([]entities.AssetTracking, uint64, error)
	FindAssetTracking(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.AssetTracking, error)
	CreateAssetTracking(ctx context.Context, tx pgx.Tx, tracking entities.AssetTracking) (*entities.AssetTracking, error)
	UpdateAssetTracking(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch AssetTrackingPatch) (*entities.AssetTracking, error)
	DeleteAssetTracking(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type AssetTrackingRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
	now     func() time.Time
}

func NewAssetTrackingRepository(storage *pgxpool.Pool, logger *zap.Logger) AssetTrackingRepositoryInterface {
	return &AssetTrackingRepository{storage: storage, logger: logger, now: time.Now}
}

func scanAssetTracking(row pgx.Row) (*entities.AssetTracking, error) {
	var t entities.AssetTracking
	var lc lifecycleScan
	asset := &entities.AssetSummary{}
	user := &entities.UserSummary{}

	dest := []interface{}{&t.ID, &t.AssetID, &t.UserID, &t.AssignedAt, &t.RemovedAt, &t.Notes}
	dest = append(dest, lc.targets()...)
	dest = append(dest, &t.CreatedAt, &t.UpdatedAt,
		&asset.ID, &asset.Name, &asset.AssetType, &asset.SerialNumber, &asset.IsActive,
		&user.ID, &user.UserNumber, &user.FirstName, &user.LastName, &user.IsActive,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	t.Lifecycle = lc.lifecycle()
	t.AssignedAt = utc(t.AssignedAt)
	if t.RemovedAt.Valid {
		t.RemovedAt = null.TimeFrom(utc(t.RemovedAt.Time))
	}
	t.CreatedAt, t.UpdatedAt = utc(t.CreatedAt), utc(t.UpdatedAt)
	t.Asset, t.User = asset, user
	return &t, nil
}

// activeOnly сужает выборку до открытых выдач. Удалённые записи исключаются всегда.
func activeOnly(filter types.Filter) (bool, error) {
	raw := filter.Value(activeOnlyParam)
	switch v := raw.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			return false, apperrors.NewValidationError("Неверный фильтр", "параметр 'activeOnly' должен быть true или false")
		}
		return b, nil
	}
	return false, apperrors.NewValidationError("Неверный фильтр", "параметр 'activeOnly' должен быть true или false")
}

func (r *AssetTrackingRepository) GetAssetTrackings(ctx context.Context, filter types.Filter) ([]entities.AssetTracking, uint64, error) {
	base := psql.Select().From(assetTrackingFrom).Where(sq.Eq{"tr.is_active": true})
	onlyOpen, err := activeOnly(filter)
	if err != nil {
		return nil, 0, err
	}
	if onlyOpen {
		base = base.Where(sq.Eq{"tr.removed_at": nil})
	}
	base, err = db.ApplyFilters(base, filter, assetTrackingListSchema)
	if err != nil {
		return nil, 0, err
	}

	total, err := count(ctx, r.storage, base.Columns("COUNT(*)"))
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета выдач техники: %w", err)
	}
	if total == 0 {
		return []entities.AssetTracking{}, 0, nil
	}

	rows, err := query(ctx, r.storage, db.ApplyOrderAndPage(base.Columns(assetTrackingColumns...), filter, assetTrackingListSchema))
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения выдач техники: %w", err)
	}
	defer rows.Close()

	items := make([]entities.AssetTracking, 0, filter.Limit)
	for rows.Next() {
		item, err := scanAssetTracking(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, total, rows.Err()
}

func (r *AssetTrackingRepository) FindAssetTracking(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.AssetTracking, error) {
	builder := psql.Select(assetTrackingColumns...).From(assetTrackingFrom).
		Where(sq.Eq{"tr.id": id, "tr.is_active": true})
	row, err := queryRow(ctx, pick(r.storage, tx), builder)
	if err != nil {
		return nil, err
	}
	item, err := scanAssetTracking(row)
	if err != nil {
		return nil, mapPgError(err, assetTrackingConflict)
	}
	return item, nil
}

// CreateAssetTracking не проверяет, выдана ли техника кому-то ещё: несколько открытых
// выдач одной техники допустимы. Висячие asset_id/user_id отдаются как ошибка целостности.
func (r *AssetTrackingRepository) CreateAssetTracking(ctx context.Context, tx pgx.Tx, t entities.AssetTracking) (*entities.AssetTracking, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := r.now().UTC()
	if t.AssignedAt.IsZero() {
		t.AssignedAt = now
	}
	isActive, deletedAt := types.Active().Columns()

	q := pick(r.storage, tx)
	builder := psql.Insert(assetTrackingTable).
		Columns("id", "asset_id", "user_id", "assigned_at", "removed_at", "notes", "is_active", "deleted_at", "created_at", "updated_at").
		Values(t.ID, t.AssetID, t.UserID, t.AssignedAt.UTC(), t.RemovedAt, t.Notes, isActive, deletedAt, now, now)
	if _, err := exec(ctx, q, builder); err != nil {
		return nil, mapPgError(err, assetTrackingConflict)
	}
	return r.FindAssetTracking(ctx, tx, t.ID)
}

func (r *AssetTrackingRepository) UpdateAssetTracking(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch AssetTrackingPatch) (*entities.AssetTracking, error) {
	builder := psql.Update(assetTrackingTable).
		Set("updated_at", r.now().UTC()).
		Where(sq.Eq{"id": id, "is_active": true})
	if patch.AssetID != nil {
		builder = builder.Set("asset_id", *patch.AssetID)
	}
	if patch.UserID != nil {
		builder = builder.Set("user_id", *patch.UserID)
	}
	if patch.AssignedAt != nil {
		builder = builder.Set("assigned_at", patch.AssignedAt.UTC())
	}
	if patch.RemovedAt.Set {
		builder = builder.Set("removed_at", patch.RemovedAt.Value)
	}
	if patch.Notes.Set {
		builder = builder.Set("notes", patch.Notes.Value)
	}

	tag, err := exec(ctx, pick(r.storage, tx), builder)
	if err != nil {
		return nil, mapPgError(err, assetTrackingConflict)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.FindAssetTracking(ctx, tx, id)
}

func (r *AssetTrackingRepository) DeleteAssetTracking(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	err := softDelete(ctx, pick(r.storage, tx), assetTrackingTable, id, r.now().UTC(), true)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		r.logger.Error("ошибка удаления выдачи техники", zap.String("id", id.String()), zap.Error(err))
	}
	return err
}
