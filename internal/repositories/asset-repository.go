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
	assetTable    = "assets"
	assetConflict = "Такая техника уже существует"
)

// Порядок колонок совпадает с порядком полей в scanAsset.
var assetDataColumns = []string{
	"name", "asset_type", "serial_number", "description",
	"laptop_brand", "laptop_model", "laptop_cpu", "laptop_ram", "laptop_storage",
	"mobile_brand", "mobile_model", "mobile_imei",
	"phone_number", "phone_extension",
}

func assetColumns(alias string) []string {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	cols := []string{prefix + "id"}
	for _, c := range assetDataColumns {
		cols = append(cols, prefix+c)
	}
	return append(cols, prefix+"is_active", prefix+"deleted_at", prefix+"created_at", prefix+"updated_at")
}

var assetListSchema = db.ListSchema{
	Fields: db.Schema{
		{Name: "asset_type", Kind: db.KindEnum, Column: "a.asset_type"},
		{Name: "name", Kind: db.KindText, Column: "a.name"},
		{Name: "serial_number", Kind: db.KindExact, Column: "a.serial_number"},
		{Name: "createdAt", Kind: db.KindDateRange, Column: "a.created_at"},
		{Name: "createdOn", Kind: db.KindDate, Column: "a.created_at"},
	},
	SearchColumns: []string{
		"a.name", "a.serial_number", "a.description",
		"a.laptop_brand", "a.laptop_model", "a.mobile_brand", "a.mobile_model",
	},
	SortColumns: map[string]string{
		"name":       "a.name",
		"asset_type": "a.asset_type",
		"createdAt":  "a.created_at",
		"updatedAt":  "a.updated_at",
	},
	DefaultSort: "createdAt",
}

// AssetPatch - частичное изменение техники. Nullable-поля лежат в Optional по имени колонки.
type AssetPatch struct {
	Name      *string
	AssetType *string
	Optional  map[string]types.OptionalString
}

type AssetRepositoryInterface interface {
	GetAssets(ctx context.Context, filter types.Filter) ([]entities.Asset, uint64, error)
	FindAsset(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Asset, error)
	FindAssetUnscoped(ctx context.Context, id uuid.UUID) (*entities.Asset, error)
	CreateAsset(ctx context.Context, tx pgx.Tx, asset entities.Asset) (*entities.Asset, error)
	UpdateAsset(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch AssetPatch) (*entities.Asset, error)
	DeleteAsset(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type AssetRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
	now     func() time.Time
}

func NewAssetRepository(storage *pgxpool.Pool, logger *zap.Logger) AssetRepositoryInterface {
	return &AssetRepository{storage: storage, logger: logger, now: time.Now}
}

func scanAsset(row pgx.Row) (*entities.Asset, error) {
	var a entities.Asset
	var lc lifecycleScan
	dest := []interface{}{
		&a.ID, &a.Name, &a.AssetType, &a.SerialNumber, &a.Description,
		&a.LaptopBrand, &a.LaptopModel, &a.LaptopCPU, &a.LaptopRAM, &a.LaptopStorage,
		&a.MobileBrand, &a.MobileModel, &a.MobileIMEI,
		&a.PhoneNumber, &a.PhoneExtension,
	}
	dest = append(dest, lc.targets()...)
	dest = append(dest, &a.CreatedAt, &a.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	a.Lifecycle = lc.lifecycle()
	a.CreatedAt, a.UpdatedAt = utc(a.CreatedAt), utc(a.UpdatedAt)
	return &a, nil
}

func (r *AssetRepository) GetAssets(ctx context.Context, filter types.Filter) ([]entities.Asset, uint64, error) {
	base := psql.Select().From(assetTable + " AS a").Where(sq.Eq{"a.is_active": true})
	base, err := db.ApplyFilters(base, filter, assetListSchema)
	if err != nil {
		return nil, 0, err
	}

	total, err := count(ctx, r.storage, base.Columns("COUNT(*)"))
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета техники: %w", err)
	}
	if total == 0 {
		return []entities.Asset{}, 0, nil
	}

	rows, err := query(ctx, r.storage, db.ApplyOrderAndPage(base.Columns(assetColumns("a")...), filter, assetListSchema))
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения техники: %w", err)
	}
	defer rows.Close()

	assets := make([]entities.Asset, 0, filter.Limit)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, 0, err
		}
		assets = append(assets, *asset)
	}
	return assets, total, rows.Err()
}

func (r *AssetRepository) findOne(ctx context.Context, q querier, where sq.Eq) (*entities.Asset, error) {
	row, err := queryRow(ctx, q, psql.Select(assetColumns("a")...).From(assetTable+" AS a").Where(where))
	if err != nil {
		return nil, err
	}
	asset, err := scanAsset(row)
	if err != nil {
		return nil, mapPgError(err, assetConflict)
	}
	return asset, nil
}

func (r *AssetRepository) FindAsset(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Asset, error) {
	return r.findOne(ctx, pick(r.storage, tx), sq.Eq{"a.id": id, "a.is_active": true})
}

// FindAssetUnscoped читает технику вне зависимости от удаления.
func (r *AssetRepository) FindAssetUnscoped(ctx context.Context, id uuid.UUID) (*entities.Asset, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"a.id": id})
}

func (r *AssetRepository) CreateAsset(ctx context.Context, tx pgx.Tx, a entities.Asset) (*entities.Asset, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := r.now().UTC()
	isActive, deletedAt := types.Active().Columns()

	columns := append([]string{"id"}, assetDataColumns...)
	columns = append(columns, "is_active", "deleted_at", "created_at", "updated_at")
	builder := psql.Insert(assetTable).
		Columns(columns...).
		Values(a.ID, strings.TrimSpace(a.Name), a.AssetType, a.SerialNumber, a.Description,
			a.LaptopBrand, a.LaptopModel, a.LaptopCPU, a.LaptopRAM, a.LaptopStorage,
			a.MobileBrand, a.MobileModel, a.MobileIMEI,
			a.PhoneNumber, a.PhoneExtension,
			isActive, deletedAt, now, now).
		Suffix("RETURNING " + strings.Join(assetColumns(""), ", "))

	row, err := queryRow(ctx, pick(r.storage, tx), builder)
	if err != nil {
		return nil, err
	}
	created, err := scanAsset(row)
	if err != nil {
		return nil, mapPgError(err, assetConflict)
	}
	return created, nil
}

func (r *AssetRepository) UpdateAsset(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch AssetPatch) (*entities.Asset, error) {
	builder := psql.Update(assetTable).
		Set("updated_at", r.now().UTC()).
		Where(sq.Eq{"id": id, "is_active": true}).
		Suffix("RETURNING " + strings.Join(assetColumns(""), ", "))
	if patch.Name != nil {
		builder = builder.Set("name", strings.TrimSpace(*patch.Name))
	}
	if patch.AssetType != nil {
		builder = builder.Set("asset_type", *patch.AssetType)
	}
	// Неизвестные ключи отбрасываются, чтобы в SET не попало ничего кроме колонок техники
	for _, column := range assetDataColumns[2:] {
		if value, ok := patch.Optional[column]; ok && value.Set {
			builder = builder.Set(column, value.Value)
		}
	}

	row, err := queryRow(ctx, pick(r.storage, tx), builder)
	if err != nil {
		return nil, err
	}
	updated, err := scanAsset(row)
	if err != nil {
		return nil, mapPgError(err, assetConflict)
	}
	return updated, nil
}

func (r *AssetRepository) DeleteAsset(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	err := softDelete(ctx, pick(r.storage, tx), assetTable, id, r.now().UTC(), true)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		r.logger.Error("ошибка удаления техники", zap.String("id", id.String()), zap.Error(err))
	}
	return err
}
