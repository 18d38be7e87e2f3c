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
	attachmentTable    = "attachments"
	attachmentConflict = "Такое вложение уже существует"
	attachmentColumns  = "id, entity_id, entity_type, name, mime_type, extension, storage_path, size, is_active, deleted_at, created_at"
)

type AttachmentRepositoryInterface interface {
	// OwnerExists проверяет, что id указывает на активную запись таблицы владельца.
	OwnerExists(ctx context.Context, tx pgx.Tx, owner entities.AttachmentOwner, id uuid.UUID) (bool, error)
	CreateBatch(ctx context.Context, tx pgx.Tx, attachments []entities.Attachment) ([]entities.Attachment, error)
	FetchByEntity(ctx context.Context, owner entities.AttachmentOwner, entityID string) ([]entities.Attachment, error)
	FetchBatch(ctx context.Context, owner entities.AttachmentOwner, entityIDs []string) (map[string][]entities.Attachment, error)
	FindActivePaths(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]string, error)
	SoftDeleteMany(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) (int64, error)
}

type AttachmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
	now     func() time.Time
}

func NewAttachmentRepository(storage *pgxpool.Pool, logger *zap.Logger) AttachmentRepositoryInterface {
	return &AttachmentRepository{storage: storage, logger: logger, now: time.Now}
}

func scanAttachment(row pgx.Row) (*entities.Attachment, error) {
	var a entities.Attachment
	var lc lifecycleScan
	var entityType string
	dest := []interface{}{&a.ID, &a.EntityID, &entityType, &a.Name, &a.MimeType, &a.Extension, &a.StoragePath, &a.Size}
	dest = append(dest, lc.targets()...)
	dest = append(dest, &a.CreatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	owner, err := entities.ParseAttachmentOwner(entityType)
	if err != nil {
		return nil, err
	}
	a.EntityType = owner
	a.Lifecycle = lc.lifecycle()
	a.CreatedAt = utc(a.CreatedAt)
	return &a, nil
}

func collectAttachments(rows pgx.Rows) ([]entities.Attachment, error) {
	defer rows.Close()
	attachments := make([]entities.Attachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, *a)
	}
	return attachments, rows.Err()
}

func (r *AttachmentRepository) OwnerExists(ctx context.Context, tx pgx.Tx, owner entities.AttachmentOwner, id uuid.UUID) (bool, error) {
	if owner.IsZero() {
		return false, fmt.Errorf("не указан тип владельца вложения")
	}
	sqlText, args, err := psql.Select("1").From(owner.Table()).
		Where(sq.Eq{"id": id, "is_active": true}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}
	var found bool
	if err := pick(r.storage, tx).QueryRow(ctx, sqlText, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

// CreateBatch вставляет все вложения одним INSERT.
func (r *AttachmentRepository) CreateBatch(ctx context.Context, tx pgx.Tx, attachments []entities.Attachment) ([]entities.Attachment, error) {
	if len(attachments) == 0 {
		return []entities.Attachment{}, nil
	}
	now := r.now().UTC()
	isActive, deletedAt := types.Active().Columns()

	builder := psql.Insert(attachmentTable).
		Columns("id", "entity_id", "entity_type", "name", "mime_type", "extension", "storage_path", "size", "is_active", "deleted_at", "created_at").
		Suffix("RETURNING " + attachmentColumns)
	for _, a := range attachments {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		builder = builder.Values(a.ID, a.EntityID, a.EntityType.String(), a.Name, a.MimeType, a.Extension, a.StoragePath, a.Size,
			isActive, deletedAt, now)
	}

	rows, err := query(ctx, pick(r.storage, tx), builder)
	if err != nil {
		return nil, mapPgError(err, attachmentConflict)
	}
	created, err := collectAttachments(rows)
	if err != nil {
		return nil, mapPgError(err, attachmentConflict)
	}
	return created, nil
}

func (r *AttachmentRepository) FetchByEntity(ctx context.Context, owner entities.AttachmentOwner, entityID string) ([]entities.Attachment, error) {
	builder := psql.Select(attachmentColumns).From(attachmentTable).
		Where(sq.Eq{"entity_type": owner.String(), "entity_id": entityID, "is_active": true}).
		OrderBy("created_at DESC")
	rows, err := query(ctx, r.storage, builder)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения вложений: %w", err)
	}
	return collectAttachments(rows)
}

// FetchBatch - вложения нескольких владельцев одного вида одним запросом, новые первыми.
func (r *AttachmentRepository) FetchBatch(ctx context.Context, owner entities.AttachmentOwner, entityIDs []string) (map[string][]entities.Attachment, error) {
	result := make(map[string][]entities.Attachment, len(entityIDs))
	if len(entityIDs) == 0 {
		return result, nil
	}
	builder := psql.Select(attachmentColumns).From(attachmentTable).
		Where(sq.Eq{"entity_type": owner.String(), "entity_id": entityIDs, "is_active": true}).
		OrderBy("created_at DESC")
	rows, err := query(ctx, r.storage, builder)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения вложений: %w", err)
	}
	attachments, err := collectAttachments(rows)
	if err != nil {
		return nil, err
	}
	for _, a := range attachments {
		result[a.EntityID] = append(result[a.EntityID], a)
	}
	return result, nil
}

// FindActivePaths возвращает пути файлов только для активных вложений из ids.
func (r *AttachmentRepository) FindActivePaths(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	rows, err := query(ctx, pick(r.storage, tx), psql.Select("storage_path").From(attachmentTable).
		Where(sq.Eq{"id": ids, "is_active": true}))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := make([]string, 0, len(ids))
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

// SoftDeleteMany мягко удаляет активные вложения одним UPDATE и возвращает их число.
func (r *AttachmentRepository) SoftDeleteMany(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	isActive, deletedAt := types.Deleted(r.now().UTC()).Columns()
	tag, err := exec(ctx, pick(r.storage, tx), psql.Update(attachmentTable).
		Set("is_active", isActive).
		Set("deleted_at", deletedAt).
		Where(sq.Eq{"id": ids, "is_active": true}))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
