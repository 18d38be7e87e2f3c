package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hr-system/config"
	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/repositories"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/filestorage"
	"hr-system/pkg/validation"
)

// Сколько файлов одновременно пишется или удаляется в хранилище.
const storageConcurrency = 8

type AttachmentServiceInterface interface {
	Upload(ctx context.Context, owner entities.AttachmentOwner, ownerID uuid.UUID, files []*multipart.FileHeader) ([]dto.AttachmentDTO, error)
	Fetch(ctx context.Context, owner entities.AttachmentOwner, ownerID uuid.UUID) ([]dto.AttachmentDTO, error)
	FetchBatch(ctx context.Context, owner entities.AttachmentOwner, ownerIDs []uuid.UUID) (map[uuid.UUID][]entities.Attachment, error)
	Delete(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type AttachmentService struct {
	repo        repositories.AttachmentRepositoryInterface
	fileStorage filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewAttachmentService(
	repo repositories.AttachmentRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) AttachmentServiceInterface {
	return &AttachmentService{
		repo:        repo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

type checkedFile struct {
	header   *multipart.FileHeader
	mimeType string
}

func (s *AttachmentService) validateFiles(owner entities.AttachmentOwner, files []*multipart.FileHeader) ([]checkedFile, error) {
	rules := config.UploadContexts[owner.String()]
	if len(files) == 0 {
		return nil, apperrors.NewValidationError("Файлы не переданы", "поле 'files' обязательно")
	}
	if rules.MaxFiles > 0 && len(files) > rules.MaxFiles {
		return nil, apperrors.NewValidationError("Слишком много файлов",
			fmt.Sprintf("можно загрузить не больше %d файлов за раз", rules.MaxFiles))
	}

	checked := make([]checkedFile, 0, len(files))
	var problems []string
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			problems = append(problems, fmt.Sprintf("не удалось открыть файл %s", header.Filename))
			continue
		}
		mimeType, err := validation.ValidateFile(header, file, owner.String())
		file.Close()
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		checked = append(checked, checkedFile{header: header, mimeType: mimeType})
	}
	if len(problems) > 0 {
		return nil, apperrors.NewValidationError("Некорректные файлы", problems...)
	}
	return checked, nil
}

// Upload сохраняет файлы в хранилище параллельно и записывает их в БД одним INSERT.
// Если запись в БД не удалась, уже сохранённые файлы удаляются.
func (s *AttachmentService) Upload(ctx context.Context, owner entities.AttachmentOwner, ownerID uuid.UUID, files []*multipart.FileHeader) ([]dto.AttachmentDTO, error) {
	logger := s.logger.With(zap.String("entity_type", owner.String()), zap.String("entity_id", ownerID.String()))

	exists, err := s.repo.OwnerExists(ctx, nil, owner, ownerID)
	if err != nil {
		logger.Error("Ошибка проверки владельца вложений", zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("Владелец вложений не найден")
	}

	checked, err := s.validateFiles(owner, files)
	if err != nil {
		return nil, err
	}

	prefix := config.UploadContexts[owner.String()].PathPrefix
	paths := make([]string, len(checked))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(storageConcurrency)
	for i, f := range checked {
		g.Go(func() error {
			src, err := f.header.Open()
			if err != nil {
				return err
			}
			defer src.Close()

			path, err := s.fileStorage.Save(gctx, src, f.header.Filename, prefix)
			if err != nil {
				return fmt.Errorf("не удалось сохранить файл %s: %w", f.header.Filename, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Ошибка сохранения файлов", zap.Error(err))
		s.removeFiles(ctx, paths)
		return nil, err
	}

	records := make([]entities.Attachment, 0, len(checked))
	for i, f := range checked {
		records = append(records, entities.Attachment{
			ID:          uuid.New(),
			EntityID:    ownerID.String(),
			EntityType:  owner,
			Name:        f.header.Filename,
			MimeType:    f.mimeType,
			Extension:   strings.TrimPrefix(strings.ToLower(filepath.Ext(f.header.Filename)), "."),
			StoragePath: paths[i],
			Size:        f.header.Size,
		})
	}

	created, err := s.repo.CreateBatch(ctx, nil, records)
	if err != nil {
		logger.Error("Ошибка записи вложений в БД", zap.Error(err))
		s.removeFiles(ctx, paths)
		return nil, err
	}

	logger.Info("Вложения загружены", zap.Int("count", len(created)))
	return attachmentsToDTO(created), nil
}

func (s *AttachmentService) Fetch(ctx context.Context, owner entities.AttachmentOwner, ownerID uuid.UUID) ([]dto.AttachmentDTO, error) {
	items, err := s.repo.FetchByEntity(ctx, owner, ownerID.String())
	if err != nil {
		s.logger.Error("Ошибка получения вложений", zap.String("entity_id", ownerID.String()), zap.Error(err))
		return nil, listFailed("вложения", err)
	}
	return attachmentsToDTO(items), nil
}

// FetchBatch - вложения для списка владельцев без N+1.
func (s *AttachmentService) FetchBatch(ctx context.Context, owner entities.AttachmentOwner, ownerIDs []uuid.UUID) (map[uuid.UUID][]entities.Attachment, error) {
	keys := make([]string, 0, len(ownerIDs))
	for _, id := range ownerIDs {
		keys = append(keys, id.String())
	}
	byKey, err := s.repo.FetchBatch(ctx, owner, keys)
	if err != nil {
		return nil, err
	}
	result := make(map[uuid.UUID][]entities.Attachment, len(byKey))
	for _, id := range ownerIDs {
		if items, ok := byKey[id.String()]; ok {
			result[id] = items
		}
	}
	return result, nil
}

// Delete: пути файлов читаются одним запросом, строки удаляются другим, затем файлы
// удаляются из хранилища. Сбой хранилища только логируется.
func (s *AttachmentService) Delete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	paths, err := s.repo.FindActivePaths(ctx, nil, ids)
	if err != nil {
		s.logger.Error("Ошибка получения путей вложений", zap.Error(err))
		return 0, err
	}
	deleted, err := s.repo.SoftDeleteMany(ctx, nil, ids)
	if err != nil {
		s.logger.Error("Ошибка удаления вложений", zap.Error(err))
		return 0, err
	}
	if deleted == 0 {
		return 0, apperrors.NewNotFoundError("Вложения не найдены")
	}

	s.removeFiles(ctx, paths)
	s.logger.Info("Вложения удалены", zap.Int64("count", deleted))
	return deleted, nil
}

// removeFiles удаляет файлы параллельно и не возвращает ошибок. Контекст запроса
// не отменяет удаление.
func (s *AttachmentService) removeFiles(ctx context.Context, paths []string) {
	ctx = context.WithoutCancel(ctx)
	var g errgroup.Group
	g.SetLimit(storageConcurrency)
	for _, path := range paths {
		if path == "" {
			continue
		}
		g.Go(func() error {
			if err := s.fileStorage.Delete(ctx, path); err != nil {
				s.logger.Warn("Не удалось удалить файл из хранилища", zap.String("path", path), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
