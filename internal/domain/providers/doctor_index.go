package providers

import (
	"context"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
)

// DoctorIndex is a full-text index over the doctor directory
type DoctorIndex interface {
	// Upsert indexes or re-indexes a doctor
	Upsert(ctx context.Context, doctor *entities.DoctorView) error

	// Remove drops a doctor from the index
	Remove(ctx context.Context, doctorID int64) error

	// Search returns matching doctor ids in relevance order and the total
	// number of hits
	Search(ctx context.Context, filter entities.DoctorFilter) ([]int64, int, error)
}
