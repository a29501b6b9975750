package handlers

import (
	"context"
	"net/http"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
)

// ReferenceService defines the interface for specializations and cities
type ReferenceService interface {
	Specializations(ctx context.Context) ([]*entities.Specialization, error)
	Specialization(ctx context.Context, id int64) (*entities.Specialization, error)
	CreateSpecialization(ctx context.Context, auth entities.AuthContext, input entities.LookupInput) (*entities.Specialization, error)
	UpdateSpecialization(ctx context.Context, auth entities.AuthContext, id int64, input entities.LookupInput) (*entities.Specialization, error)
	DeleteSpecialization(ctx context.Context, auth entities.AuthContext, id int64) error

	Cities(ctx context.Context) ([]*entities.City, error)
	City(ctx context.Context, id int64) (*entities.City, error)
	CreateCity(ctx context.Context, auth entities.AuthContext, input entities.LookupInput) (*entities.City, error)
	UpdateCity(ctx context.Context, auth entities.AuthContext, id int64, input entities.LookupInput) (*entities.City, error)
	DeleteCity(ctx context.Context, auth entities.AuthContext, id int64) error
}

// ReferenceHandler handles specialization and city requests
type ReferenceHandler struct {
	service ReferenceService
}

// NewReferenceHandler creates a new reference data handler
func NewReferenceHandler(service ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// ListSpecializations handles GET /api/specializations
func (h *ReferenceHandler) ListSpecializations(w http.ResponseWriter, r *http.Request) {
	specs, err := h.service.Specializations(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, specs)
}

// GetSpecialization handles GET /api/specializations/{id}
func (h *ReferenceHandler) GetSpecialization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	specialization, err := h.service.Specialization(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, specialization)
}

// CreateSpecialization handles POST /api/specializations
func (h *ReferenceHandler) CreateSpecialization(w http.ResponseWriter, r *http.Request) {
	var input entities.LookupInput
	if !decodeJSON(w, r, &input) {
		return
	}
	specialization, err := h.service.CreateSpecialization(r.Context(), caller(r), input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, specialization)
}

// UpdateSpecialization handles PUT /api/specializations/{id}
func (h *ReferenceHandler) UpdateSpecialization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input entities.LookupInput
	if !decodeJSON(w, r, &input) {
		return
	}
	specialization, err := h.service.UpdateSpecialization(r.Context(), caller(r), id, input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, specialization)
}

// DeleteSpecialization handles DELETE /api/specializations/{id}
func (h *ReferenceHandler) DeleteSpecialization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteSpecialization(r.Context(), caller(r), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCities handles GET /api/cities
func (h *ReferenceHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.Cities(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cities)
}

// GetCity handles GET /api/cities/{id}
func (h *ReferenceHandler) GetCity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	city, err := h.service.City(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, city)
}

// CreateCity handles POST /api/cities
func (h *ReferenceHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var input entities.LookupInput
	if !decodeJSON(w, r, &input) {
		return
	}
	city, err := h.service.CreateCity(r.Context(), caller(r), input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, city)
}

// UpdateCity handles PUT /api/cities/{id}
func (h *ReferenceHandler) UpdateCity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input entities.LookupInput
	if !decodeJSON(w, r, &input) {
		return
	}
	city, err := h.service.UpdateCity(r.Context(), caller(r), id, input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, city)
}

// DeleteCity handles DELETE /api/cities/{id}
func (h *ReferenceHandler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteCity(r.Context(), caller(r), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
