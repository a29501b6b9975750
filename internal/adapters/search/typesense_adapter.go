package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	tsclient "github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/typesense"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

const queryBy = "full_name,specialization_name,city_name,qualification,registration_number"

// TypesenseAdapter implements the doctor directory index using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements DoctorIndex
var _ providers.DoctorIndex = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// Upsert indexes a doctor
func (a *TypesenseAdapter) Upsert(ctx context.Context, doctor *entities.DoctorView) error {
	_, err := a.client.Client().Collection(tsclient.DoctorsCollection).Documents().Upsert(ctx, buildDoctorDocument(doctor))
	if err != nil {
		return apperrors.NewExternalError("failed to index doctor", err)
	}
	return nil
}

// Remove removes a doctor from the index
func (a *TypesenseAdapter) Remove(ctx context.Context, doctorID int64) error {
	_, err := a.client.Client().Collection(tsclient.DoctorsCollection).Document(strconv.FormatInt(doctorID, 10)).Delete(ctx)
	if err != nil {
		return apperrors.NewExternalError("failed to remove doctor from index", err)
	}
	return nil
}

// Search returns doctor ids matching the filter in relevance order
func (a *TypesenseAdapter) Search(ctx context.Context, filter entities.DoctorFilter) ([]int64, int, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	params := &api.SearchCollectionParams{
		Q:       pointer.String(searchTerm(filter.Search)),
		QueryBy: pointer.String(queryBy),
		Page:    pointer.Int(filter.Offset/limit + 1),
		PerPage: pointer.Int(limit),
	}
	if f := buildFilterBy(filter); f != "" {
		params.FilterBy = pointer.String(f)
	}

	result, err := a.client.Client().Collection(tsclient.DoctorsCollection).Documents().Search(ctx, params)
	if err != nil {
		return nil, 0, apperrors.NewExternalError("failed to search doctors", err)
	}

	var docs []map[string]interface{}
	if result.Hits != nil {
		for _, hit := range *result.Hits {
			if hit.Document != nil {
				docs = append(docs, *hit.Document)
			}
		}
	}
	total := 0
	if result.Found != nil {
		total = *result.Found
	}
	return hitIDs(docs), total, nil
}

func buildDoctorDocument(d *entities.DoctorView) map[string]interface{} {
	return map[string]interface{}{
		"id":                  strconv.FormatInt(d.ID, 10),
		"full_name":           d.FullName,
		"qualification":       d.Qualification,
		"registration_number": d.RegistrationNumber,
		"specialization_id":   d.SpecializationID,
		"specialization_name": d.SpecializationName,
		"city_id":             d.CityID,
		"city_name":           d.CityName,
		"status":              string(d.Status),
		"experience_years":    d.ExperienceYears,
		"consultation_fee":    d.ConsultationFee,
		"created_at":          d.CreatedAt.Unix(),
	}
}

func searchTerm(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return "*"
	}
	return term
}

// buildFilterBy renders the structured part of a filter. Only numeric ids
// and whitelisted statuses reach the filter string.
func buildFilterBy(f entities.DoctorFilter) string {
	var parts []string
	if status, err := entities.ParseDoctorStatus(f.Status); err == nil {
		parts = append(parts, "status:="+string(status))
	}
	if f.SpecializationID > 0 {
		parts = append(parts, fmt.Sprintf("specialization_id:=%d", f.SpecializationID))
	}
	if f.CityID > 0 {
		parts = append(parts, fmt.Sprintf("city_id:=%d", f.CityID))
	}
	return strings.Join(parts, " && ")
}

func hitIDs(docs []map[string]interface{}) []int64 {
	ids := make([]int64, 0, len(docs))
	for _, doc := range docs {
		raw, ok := doc["id"].(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
