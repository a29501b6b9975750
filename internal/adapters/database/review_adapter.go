package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/repositories"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{client: client}
}

// Create creates a new review
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	sqlStr, args, err := dialect.Insert("reviews").Prepared(true).
		Rows(goqu.Record{
			"doctor_id":  review.DoctorID,
			"patient_id": review.PatientID,
			"rating":     review.Rating,
			"comment":    nullString(review.Comment),
		}).
		Returning("review_id", "created_at").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if err := a.client.DB().QueryRowContext(ctx, sqlStr, args...).Scan(&review.ID, &review.CreatedAt); err != nil {
		return mapError(err, "failed to create review")
	}
	return nil
}

// ListByDoctor returns a doctor's reviews, newest first
func (a *ReviewAdapter) ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]*entities.Review, error) {
	ds := dialect.From("reviews").Prepared(true).
		Select("review_id", "doctor_id", "patient_id", "rating", "comment", "created_at").
		Where(goqu.C("doctor_id").Eq(doctorID)).
		Order(goqu.C("created_at").Desc(), goqu.C("review_id").Desc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}
	sqlStr, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err, "failed to list reviews")
	}
	defer rows.Close()

	reviews := []*entities.Review{}
	for rows.Next() {
		r := &entities.Review{}
		var comment sql.NullString
		if err := rows.Scan(&r.ID, &r.DoctorID, &r.PatientID, &r.Rating, &comment, &r.CreatedAt); err != nil {
			return nil, mapError(err, "failed to scan review")
		}
		r.Comment = comment.String
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "failed to iterate reviews")
	}
	return reviews, nil
}
