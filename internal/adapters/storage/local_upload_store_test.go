package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anushahashmi071/CareGroup-sub001/internal/adapters/storage"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

func newStore(t *testing.T, maxBytes int64) (string, *storage.LocalUploadStore) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := storage.NewLocalUploadStore(dir, maxBytes)
	require.NoError(t, err)
	return dir, store.(*storage.LocalUploadStore)
}

func TestLocalUploadStore_SaveAndRemove(t *testing.T) {
	dir, store := newStore(t, 1024)
	ctx := context.Background()

	rel, err := store.Save(ctx, entities.Upload{Filename: "Banner.PNG", Content: []byte("png-bytes")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "uploads/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(rel)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Remove(ctx, rel))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(rel)))
	assert.True(t, os.IsNotExist(err))

	// removing twice is not an error
	assert.NoError(t, store.Remove(ctx, rel))
}

func TestLocalUploadStore_RejectsDisallowedExtension(t *testing.T) {
	_, store := newStore(t, 1024)

	for _, name := range []string{"script.php", "noext", "image.jpg.exe", "doc.pdf"} {
		_, err := store.Save(context.Background(), entities.Upload{Filename: name, Content: []byte("x")})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), name)
	}
}

func TestLocalUploadStore_AcceptsEveryAllowedExtension(t *testing.T) {
	_, store := newStore(t, 1024)

	for ext := range storage.AllowedExtensions {
		_, err := store.Save(context.Background(), entities.Upload{Filename: "a." + ext, Content: []byte("x")})
		assert.NoError(t, err, ext)
	}
}

func TestLocalUploadStore_EnforcesSizeLimit(t *testing.T) {
	_, store := newStore(t, 4)

	_, err := store.Save(context.Background(), entities.Upload{Filename: "a.gif", Content: []byte("12345")})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = store.Save(context.Background(), entities.Upload{Filename: "a.gif"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestLocalUploadStore_RemoveRejectsTraversal(t *testing.T) {
	_, store := newStore(t, 1024)

	err := store.Remove(context.Background(), "uploads/../../etc/passwd")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
