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
	phoneTable    = "phones"
	phoneConflict = "Такой телефон уже существует"
)

var phoneColumns = []string{
	"p.id", "p.user_id", "p.number", "p.phone_type", "p.is_primary",
	"p.is_active", "p.deleted_at", "p.created_at", "p.updated_at",
}

const phoneReturning = "RETURNING id, user_id, number, phone_type, is_primary, is_active, deleted_at, created_at, updated_at"

var phoneListSchema = db.ListSchema{
	Fields: db.Schema{
		{Name: "user_id", Kind: db.KindExact, Column: "p.user_id"},
		{Name: "phone_type", Kind: db.KindEnum, Column: "p.phone_type"},
		{Name: "is_primary", Kind: db.KindBoolean, Column: "p.is_primary"},
		{Name: "number", Kind: db.KindText, Column: "p.number"},
		{Name: "createdAt", Kind: db.KindDateRange, Column: "p.created_at"},
	},
	SearchColumns: []string{"p.number"},
	SortColumns: map[string]string{
		"number":    "p.number",
		"createdAt": "p.created_at",
		"updatedAt": "p.updated_at",
	},
	DefaultSort: "createdAt",
}

type PhonePatch struct {
	UserID    *uuid.UUID
	Number    *string
	PhoneType *string
	IsPrimary *bool
}

type PhoneRepositoryInterface interface {
	GetPhones(ctx context.Context, filter types.Filter) ([]entities.Phone, uint64, error)
	FindPhone(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Phone, error)
	ListByUserIDs(ctx context.Context, tx pgx.Tx, userIDs []uuid.UUID) (map[uuid.UUID][]entities.Phone, error)
	CreatePhones(ctx context.Context, tx pgx.Tx, phones []entities.Phone) ([]entities.Phone, error)
	UpdatePhone(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch PhonePatch) (*entities.Phone, error)
	ClearPrimary(ctx context.Context, tx pgx.Tx, userID uuid.UUID, exceptID uuid.UUID) error
	DeletePhone(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type PhoneRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
	now     func() time.Time
}

func NewPhoneRepository(storage *pgxpool.Pool, logger *zap.Logger) PhoneRepositoryInterface {
	return &PhoneRepository{storage: storage, logger: logger, now: time.Now}
}

func scanPhone(row pgx.Row) (*entities.Phone, error) {
	var phone entities.Phone
	var lc lifecycleScan
	dest := []interface{}{&phone.ID, &phone.UserID, &phone.Number, &phone.PhoneType, &phone.IsPrimary}
	dest = append(dest, lc.targets()...)
	dest = append(dest, &phone.CreatedAt, &phone.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	phone.Lifecycle = lc.lifecycle()
	phone.CreatedAt, phone.UpdatedAt = utc(phone.CreatedAt), utc(phone.UpdatedAt)
	return &phone, nil
}

func collectPhones(rows pgx.Rows) ([]entities.Phone, error) {
	defer rows.Close()
	phones := make([]entities.Phone, 0)
	for rows.Next() {
		phone, err := scanPhone(rows)
		if err != nil {
			return nil, err
		}
		phones = append(phones, *phone)
	}
	return phones, rows.Err()
}

func (r *PhoneRepository) GetPhones(ctx context.Context, filter types.Filter) ([]entities.Phone, uint64, error) {
	base := psql.Select().From(phoneTable + " AS p").Where(sq.Eq{"p.is_active": true})
	base, err := db.ApplyFilters(base, filter, phoneListSchema)
	if err != nil {
		return nil, 0, err
	}

	total, err := count(ctx, r.storage, base.Columns("COUNT(*)"))
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета телефонов: %w", mapPgError(err, phoneConflict))
	}
	if total == 0 {
		return []entities.Phone{}, 0, nil
	}

	rows, err := query(ctx, r.storage, db.ApplyOrderAndPage(base.Columns(phoneColumns...), filter, phoneListSchema))
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения телефонов: %w", err)
	}
	phones, err := collectPhones(rows)
	if err != nil {
		return nil, 0, err
	}
	return phones, total, nil
}

func (r *PhoneRepository) FindPhone(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Phone, error) {
	builder := psql.Select(phoneColumns...).From(phoneTable + " AS p").Where(sq.Eq{"p.id": id, "p.is_active": true})
	row, err := queryRow(ctx, pick(r.storage, tx), builder)
	if err != nil {
		return nil, err
	}
	phone, err := scanPhone(row)
	if err != nil {
		return nil, mapPgError(err, phoneConflict)
	}
	return phone, nil
}

// ListByUserIDs - активные телефоны пользователей одним запросом, основной первым.
func (r *PhoneRepository) ListByUserIDs(ctx context.Context, tx pgx.Tx, userIDs []uuid.UUID) (map[uuid.UUID][]entities.Phone, error) {
	result := make(map[uuid.UUID][]entities.Phone, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	builder := psql.Select(phoneColumns...).From(phoneTable+" AS p").
		Where(sq.Eq{"p.user_id": userIDs, "p.is_active": true}).
		OrderBy("p.is_primary DESC", "p.created_at ASC")

	rows, err := query(ctx, pick(r.storage, tx), builder)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения телефонов пользователей: %w", err)
	}
	phones, err := collectPhones(rows)
	if err != nil {
		return nil, err
	}
	for _, phone := range phones {
		result[phone.UserID] = append(result[phone.UserID], phone)
	}
	return result, nil
}

// CreatePhones вставляет телефоны одним INSERT.
func (r *PhoneRepository) CreatePhones(ctx context.Context, tx pgx.Tx, phones []entities.Phone) ([]entities.Phone, error) {
	if len(phones) == 0 {
		return []entities.Phone{}, nil
	}
	now := r.now().UTC()
	isActive, deletedAt := types.Active().Columns()

	builder := psql.Insert(phoneTable).
		Columns("id", "user_id", "number", "phone_type", "is_primary", "is_active", "deleted_at", "created_at", "updated_at").
		Suffix(phoneReturning)
	for _, phone := range phones {
		if phone.ID == uuid.Nil {
			phone.ID = uuid.New()
		}
		builder = builder.Values(phone.ID, phone.UserID, strings.TrimSpace(phone.Number), phone.PhoneType, phone.IsPrimary,
			isActive, deletedAt, now, now)
	}

	rows, err := query(ctx, pick(r.storage, tx), builder)
	if err != nil {
		return nil, mapPgError(err, phoneConflict)
	}
	created, err := collectPhones(rows)
	if err != nil {
		return nil, mapPgError(err, phoneConflict)
	}
	return created, nil
}

func (r *PhoneRepository) UpdatePhone(ctx context.Context, tx pgx.Tx, id uuid.UUID, patch PhonePatch) (*entities.Phone, error) {
	builder := psql.Update(phoneTable).
		Set("updated_at", r.now().UTC()).
		Where(sq.Eq{"id": id, "is_active": true}).
		Suffix(phoneReturning)
	if patch.UserID != nil {
		builder = builder.Set("user_id", *patch.UserID)
	}
	if patch.Number != nil {
		builder = builder.Set("number", strings.TrimSpace(*patch.Number))
	}
	if patch.PhoneType != nil {
		builder = builder.Set("phone_type", *patch.PhoneType)
	}
	if patch.IsPrimary != nil {
		builder = builder.Set("is_primary", *patch.IsPrimary)
	}

	row, err := queryRow(ctx, pick(r.storage, tx), builder)
	if err != nil {
		return nil, err
	}
	phone, err := scanPhone(row)
	if err != nil {
		return nil, mapPgError(err, phoneConflict)
	}
	return phone, nil
}

// ClearPrimary снимает признак основного со всех телефонов пользователя, кроме exceptID.
func (r *PhoneRepository) ClearPrimary(ctx context.Context, tx pgx.Tx, userID uuid.UUID, exceptID uuid.UUID) error {
	builder := psql.Update(phoneTable).
		Set("is_primary", false).
		Set("updated_at", r.now().UTC()).
		Where(sq.Eq{"user_id": userID, "is_active": true, "is_primary": true}).
		Where(sq.NotEq{"id": exceptID})
	_, err := exec(ctx, pick(r.storage, tx), builder)
	return err
}

func (r *PhoneRepository) DeletePhone(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	err := softDelete(ctx, pick(r.storage, tx), phoneTable, id, r.now().UTC(), true)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		r.logger.Error("ошибка удаления телефона", zap.String("id", id.String()), zap.Error(err))
	}
	return err
}
