package handlers

import (
	"context"
	"net/http"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/pkg/pagination"
)

// DoctorService defines the interface for the doctor directory
type DoctorService interface {
	Search(ctx context.Context, auth entities.AuthContext, filter entities.DoctorFilter) ([]*entities.DoctorView, int, error)
	Get(ctx context.Context, auth entities.AuthContext, id int64) (*entities.DoctorView, error)
	Create(ctx context.Context, auth entities.AuthContext, input entities.DoctorInput) (*entities.DoctorView, error)
	Update(ctx context.Context, auth entities.AuthContext, id int64, input entities.DoctorInput) (*entities.DoctorView, error)
	Delete(ctx context.Context, auth entities.AuthContext, id int64) error
}

// DoctorHandler handles doctor directory requests
type DoctorHandler struct {
	service DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(service DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// Search handles GET /api/doctors
func (h *DoctorHandler) Search(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	filter := entities.DoctorFilter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	var ok bool
	if filter.SpecializationID, ok = queryInt64(w, r, "specialization_id"); !ok {
		return
	}
	if filter.CityID, ok = queryInt64(w, r, "city_id"); !ok {
		return
	}

	doctors, total, err := h.service.Search(r.Context(), caller(r), filter)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pagination.NewResponse(doctors, total, page))
}

// Get handles GET /api/doctors/{id}
func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doctor, err := h.service.Get(r.Context(), caller(r), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, doctor)
}

// Create handles POST /api/doctors
func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input entities.DoctorInput
	if !decodeJSON(w, r, &input) {
		return
	}

	doctor, err := h.service.Create(r.Context(), caller(r), input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, doctor)
}

// Update handles PUT /api/doctors/{id}
func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input entities.DoctorInput
	if !decodeJSON(w, r, &input) {
		return
	}

	doctor, err := h.service.Update(r.Context(), caller(r), id, input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, doctor)
}

// Delete handles DELETE /api/doctors/{id}
func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller(r), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
