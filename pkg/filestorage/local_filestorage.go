package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStorageInterface - внешнее хранилище байтов вложений. Путь, который
// возвращает Save, относительный и сохраняется в БД как есть.
type FileStorageInterface interface {
	Save(ctx context.Context, file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	Delete(ctx context.Context, filePath string) error
}

type LocalFileStorage struct {
	basePath string
	now      func() time.Time
}

func NewLocalFileStorage(basePath string) (*LocalFileStorage, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию: %w", err)
		}
	}
	return &LocalFileStorage{basePath: basePath, now: time.Now}, nil
}

func (s *LocalFileStorage) Save(ctx context.Context, file io.Reader, originalFileName string, prefix string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := s.now()
	ext := strings.ToLower(filepath.Ext(originalFileName))
	uniqueFileName := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), uuid.New().String(), ext)

	datePath := now.Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, prefix, datePath)

	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(fullDirPath, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}

	return filepath.ToSlash(filepath.Join(prefix, datePath, uniqueFileName)), nil
}

// Delete удаляет файл по относительному пути. Отсутствующий файл не ошибка.
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relativePath := filepath.Clean("/" + strings.TrimPrefix(filePath, "/uploads/"))
	fullPath := filepath.Join(s.basePath, relativePath)

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path возвращает абсолютный путь на диске, для раздачи файлов.
func (s *LocalFileStorage) Path(filePath string) string {
	return filepath.Join(s.basePath, filepath.Clean("/"+filePath))
}
