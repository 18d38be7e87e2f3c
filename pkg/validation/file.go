package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"hr-system/config"
)

// ValidateFile проверяет размер и MIME-тип файла по правилам контекста
// загрузки (ключ из config.UploadContexts). Возвращает определённый MIME-тип.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, contextName string) (string, error) {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return "", fmt.Errorf("внутренняя ошибка: неизвестный контекст загрузки '%s'", contextName)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return "", fmt.Errorf("размер файла %s (%.2f MB) превышает лимит в %d MB",
				fileHeader.Filename, float64(fileHeader.Size)/1024/1024, rules.MaxSizeMB)
		}
	}

	// Тип определяем по содержимому, а не по заголовку клиента
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("ошибка чтения файла %s", fileHeader.Filename)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("ошибка обработки файла %s", fileHeader.Filename)
	}
	buffer = buffer[:n]

	mimeType := http.DetectContentType(buffer)
	if isPossibleXml(mimeType) && isSvgSignature(buffer) {
		mimeType = "image/svg+xml"
	}

	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return "", fmt.Errorf("недопустимый формат файла %s: %s", fileHeader.Filename, mimeType)
	}

	return mimeType, nil
}

func isPossibleXml(mime string) bool {
	return mime == "text/plain; charset=utf-8" ||
		mime == "text/xml; charset=utf-8" ||
		mime == "application/octet-stream"
}

func isSvgSignature(buf []byte) bool {
	return len(buf) > 5 && (string(buf[:4]) == "<svg" || string(buf[:5]) == "<?xml")
}
