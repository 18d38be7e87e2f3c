package filestorage

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndDelete(t *testing.T) {
	storage, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)
	storage.now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	path, err := storage.Save(ctx, strings.NewReader("hello"), "Invoice.PDF", "assets")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "assets/2025/01/02/2025-01-02-"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	data, err := os.ReadFile(storage.Path(path))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, storage.Delete(ctx, path))
	_, err = os.Stat(storage.Path(path))
	assert.True(t, os.IsNotExist(err))

	// повторное удаление не ошибка
	assert.NoError(t, storage.Delete(ctx, path))
}

func TestDeleteStaysInsideBasePath(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalFileStorage(base)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(storage.Path("../../etc/passwd"), base))
}

func TestSaveHonoursCancelledContext(t *testing.T) {
	storage, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = storage.Save(ctx, strings.NewReader("x"), "a.txt", "users")
	assert.ErrorIs(t, err, context.Canceled)
}
