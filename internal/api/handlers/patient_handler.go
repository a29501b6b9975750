package handlers

import (
	"context"
	"net/http"

	"github.com/anushahashmi071/CareGroup-sub001/internal/application/services"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/pkg/pagination"
)

// PatientService defines the interface for patient operations
type PatientService interface {
	List(ctx context.Context, auth entities.AuthContext, q services.PatientQuery) ([]*entities.PatientView, int, error)
	Get(ctx context.Context, auth entities.AuthContext, id int64) (*entities.PatientView, error)
	Create(ctx context.Context, auth entities.AuthContext, input entities.PatientInput) (*entities.PatientView, error)
	Update(ctx context.Context, auth entities.AuthContext, id int64, input entities.PatientInput) (*entities.PatientView, error)
	Delete(ctx context.Context, auth entities.AuthContext, id int64) error
}

// PatientHandler handles patient requests
type PatientHandler struct {
	service PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(service PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// List handles GET /api/patients
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	cityID, ok := queryInt64(w, r, "city_id")
	if !ok {
		return
	}

	patients, total, err := h.service.List(r.Context(), caller(r), services.PatientQuery{
		Search: r.URL.Query().Get("search"),
		CityID: cityID,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pagination.NewResponse(patients, total, page))
}

// Get handles GET /api/patients/{id}
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	patient, err := h.service.Get(r.Context(), caller(r), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, patient)
}

// Create handles POST /api/patients
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input entities.PatientInput
	if !decodeJSON(w, r, &input) {
		return
	}

	patient, err := h.service.Create(r.Context(), caller(r), input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, patient)
}

// Update handles PUT /api/patients/{id}
func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input entities.PatientInput
	if !decodeJSON(w, r, &input) {
		return
	}

	patient, err := h.service.Update(r.Context(), caller(r), id, input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, patient)
}

// Delete handles DELETE /api/patients/{id}
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
