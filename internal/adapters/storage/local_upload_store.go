// Package storage keeps uploaded images on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// AllowedExtensions lists the image types accepted for upload.
var AllowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
	"jfif": true,
}

// LocalUploadStore writes uploads into a single directory. Saved files are
// named by a random uuid and reported relative to the directory's parent,
// e.g. "uploads/3f2c...e1.png".
type LocalUploadStore struct {
	dir      string
	maxBytes int64
}

// NewLocalUploadStore creates the upload directory if needed
func NewLocalUploadStore(dir string, maxBytes int64) (providers.UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalUploadStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save validates and stores the upload, returning its relative path
func (s *LocalUploadStore) Save(ctx context.Context, upload entities.Upload) (string, error) {
	ext, err := extension(upload.Filename)
	if err != nil {
		return "", err
	}
	size := int64(len(upload.Content))
	if size == 0 {
		return "", apperrors.NewValidationError("uploaded file is empty")
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return "", apperrors.NewValidationError(fmt.Sprintf("file exceeds the %d byte limit", s.maxBytes))
	}

	name := uuid.NewString() + "." + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), upload.Content, 0o644); err != nil {
		return "", apperrors.NewInternalError("failed to store upload", err)
	}

	rel := path.Join(filepath.Base(s.dir), name)
	log.Ctx(ctx).Debug().Str("path", rel).Int64("bytes", size).Msg("stored upload")
	return rel, nil
}

// Remove deletes a previously saved file. Missing files are ignored.
func (s *LocalUploadStore) Remove(_ context.Context, rel string) error {
	if rel == "" {
		return nil
	}
	name := path.Base(rel)
	if name != path.Clean(strings.TrimPrefix(rel, filepath.Base(s.dir)+"/")) {
		return apperrors.NewValidationError("invalid upload path")
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return apperrors.NewInternalError("failed to remove upload", err)
	}
	return nil
}

func extension(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !AllowedExtensions[ext] {
		return "", apperrors.NewValidationError("only jpg, jpeg, png, gif, webp and jfif images are allowed")
	}
	return ext, nil
}
