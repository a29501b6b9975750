package providers

import (
	"context"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
)

// UploadStore persists uploaded images
type UploadStore interface {
	// Save validates and stores the upload, returning its relative path
	Save(ctx context.Context, upload entities.Upload) (string, error)

	// Remove deletes a stored upload. Missing files are not an error.
	Remove(ctx context.Context, path string) error
}
